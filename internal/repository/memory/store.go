// Package memory holds in-process implementations of the post, comment and
// like stores. The like ledger enforces the same (user, comment) uniqueness
// the postgres primary key does.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/google/uuid"
)

type likeKey struct {
	userId    uuid.UUID
	commentId uuid.UUID
}

type Store struct {
	mu       sync.Mutex
	posts    map[uuid.UUID]model.Posts
	users    map[uuid.UUID]string
	comments map[uuid.UUID]model.PostComments
	likes    map[likeKey]time.Time
}

func NewStore() *Store {
	return &Store{
		posts:    make(map[uuid.UUID]model.Posts),
		users:    make(map[uuid.UUID]string),
		comments: make(map[uuid.UUID]model.PostComments),
		likes:    make(map[likeKey]time.Time),
	}
}

func (store *Store) AddPost(post model.Posts) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.posts[post.Id] = post
}

func (store *Store) AddUser(user model.CommentUser) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.users[user.Id] = user.Name
}

// AddComment inserts a row as-is, without any of the checks the usecases apply.
func (store *Store) AddComment(comment model.PostComments) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.comments[comment.Id] = comment
}

func (store *Store) CommentCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	return len(store.comments)
}

func (store *Store) Posts() *PostStore {
	return &PostStore{store: store}
}

func (store *Store) Comments() *CommentStore {
	return &CommentStore{store: store}
}

func (store *Store) Likes() *LikeLedger {
	return &LikeLedger{store: store}
}

type PostStore struct {
	store *Store
}

func (s *PostStore) FindAll(ctx context.Context) ([]model.PostSummaryResponse, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	posts := make([]model.Posts, 0, len(s.store.posts))
	for _, post := range s.store.posts {
		posts = append(posts, post)
	}

	slices.SortFunc(posts, func(a, b model.Posts) int {
		if c := b.CreateDatetime.Compare(a.CreateDatetime); c != 0 {
			return c
		}
		return slices.Compare(b.Id[:], a.Id[:])
	})

	summaries := make([]model.PostSummaryResponse, len(posts))
	for i, post := range posts {
		summaries[i] = model.PostSummaryResponse{Id: post.Id, Title: post.Title}
	}

	return summaries, nil
}

func (s *PostStore) FindById(ctx context.Context, postId uuid.UUID) (*model.Posts, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	post, ok := s.store.posts[postId]
	if !ok {
		return nil, nil
	}

	return &post, nil
}

type CommentStore struct {
	store *Store
}

func (s *CommentStore) FindManyByPost(ctx context.Context, postId uuid.UUID) ([]model.PostComments, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	comments := []model.PostComments{}
	for _, comment := range s.store.comments {
		if comment.PostId == postId {
			comment.AuthorName = s.store.users[comment.AuthorId]
			comments = append(comments, comment)
		}
	}

	return comments, nil
}

func (s *CommentStore) FindById(ctx context.Context, commentId uuid.UUID) (*model.PostComments, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	comment, ok := s.store.comments[commentId]
	if !ok {
		return nil, nil
	}

	comment.AuthorName = s.store.users[comment.AuthorId]
	return &comment, nil
}

func (s *CommentStore) Create(ctx context.Context, comment model.PostComments) (model.PostComments, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.comments[comment.Id] = comment
	comment.AuthorName = s.store.users[comment.AuthorId]

	return comment, nil
}

func (s *CommentStore) UpdateMessage(ctx context.Context, commentId uuid.UUID, message string, updateDatetime time.Time) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	comment, ok := s.store.comments[commentId]
	if !ok {
		return false, nil
	}

	comment.Message = message
	comment.UpdateDatetime = updateDatetime
	s.store.comments[commentId] = comment

	return true, nil
}

// Delete drops the comment and its likes, leaving replies untouched.
func (s *CommentStore) Delete(ctx context.Context, commentId uuid.UUID) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.comments[commentId]; !ok {
		return false, nil
	}

	delete(s.store.comments, commentId)
	for key := range s.store.likes {
		if key.commentId == commentId {
			delete(s.store.likes, key)
		}
	}

	return true, nil
}

type LikeLedger struct {
	store *Store
}

func (s *LikeLedger) FindByUserAndComment(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	_, ok := s.store.likes[likeKey{userId: userId, commentId: commentId}]
	return ok, nil
}

func (s *LikeLedger) FindManyByComments(ctx context.Context, userId uuid.UUID, commentIds []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	liked := make(map[uuid.UUID]struct{})
	for _, commentId := range commentIds {
		if _, ok := s.store.likes[likeKey{userId: userId, commentId: commentId}]; ok {
			liked[commentId] = struct{}{}
		}
	}

	return liked, nil
}

func (s *LikeLedger) CountManyByComments(ctx context.Context, commentIds []uuid.UUID) (map[uuid.UUID]int, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	wanted := make(map[uuid.UUID]struct{}, len(commentIds))
	for _, commentId := range commentIds {
		wanted[commentId] = struct{}{}
	}

	counts := make(map[uuid.UUID]int)
	for key := range s.store.likes {
		if _, ok := wanted[key.commentId]; ok {
			counts[key.commentId]++
		}
	}

	return counts, nil
}

func (s *LikeLedger) Create(ctx context.Context, like model.CommentLikes) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.comments[like.CommentId]; !ok {
		return model.ErrLikeTargetMissing
	}

	key := likeKey{userId: like.UserId, commentId: like.CommentId}
	if _, ok := s.store.likes[key]; ok {
		return model.ErrLikeAlreadyExists
	}

	s.store.likes[key] = like.CreateDatetime
	return nil
}

func (s *LikeLedger) Delete(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	delete(s.store.likes, likeKey{userId: userId, commentId: commentId})
	return nil
}
