package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/ferdian3456/virdanthread/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store unavailable")

type commentFixture struct {
	store   *memory.Store
	usecase *CommentUsecase
	postId  uuid.UUID
	kyle    uuid.UUID
	sally   uuid.UUID
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()

	store := memory.NewStore()
	fixture := &commentFixture{
		store:  store,
		postId: uuid.New(),
		kyle:   uuid.New(),
		sally:  uuid.New(),
	}

	store.AddPost(model.Posts{Id: fixture.postId, Title: "First post", Body: "hello", CreateDatetime: time.Now()})
	store.AddUser(model.CommentUser{Id: fixture.kyle, Name: "Kyle"})
	store.AddUser(model.CommentUser{Id: fixture.sally, Name: "Sally"})

	fixture.usecase = NewCommentUsecase(store.Comments(), store.Likes(), store.Posts(), zap.NewNop())
	return fixture
}

func (f *commentFixture) create(t *testing.T, userId uuid.UUID, message string, parentId *uuid.UUID) model.AnnotatedComment {
	t.Helper()

	payload := model.CreateCommentRequest{Message: message}
	if parentId != nil {
		id := parentId.String()
		payload.ParentId = &id
	}

	comment, err := f.usecase.CreateComment(context.Background(), f.postId.String(), userId, payload)
	require.NoError(t, err)
	return comment
}

// failingComments fails every write while reads go to the wrapped store.
type failingComments struct {
	CommentStore
}

func (f failingComments) Create(ctx context.Context, comment model.PostComments) (model.PostComments, error) {
	return model.PostComments{}, errStoreDown
}

func (f failingComments) UpdateMessage(ctx context.Context, commentId uuid.UUID, message string, updateDatetime time.Time) (bool, error) {
	return false, errStoreDown
}

// vanishingComments reports every update and delete as affecting no rows,
// as if the comment was removed right after it was read.
type vanishingComments struct {
	CommentStore
}

func (v vanishingComments) UpdateMessage(ctx context.Context, commentId uuid.UUID, message string, updateDatetime time.Time) (bool, error) {
	return false, nil
}

func (v vanishingComments) Delete(ctx context.Context, commentId uuid.UUID) (bool, error) {
	return false, nil
}

// racingLikes sees no like on read but loses the insert to a concurrent toggle.
type racingLikes struct {
	LikeLedger
}

func (r racingLikes) FindByUserAndComment(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) (bool, error) {
	return false, nil
}

func (r racingLikes) Create(ctx context.Context, like model.CommentLikes) error {
	return model.ErrLikeAlreadyExists
}

func TestCreateCommentRejectsEmptyMessage(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.usecase.CreateComment(context.Background(), f.postId.String(), f.kyle, model.CreateCommentRequest{Message: ""})

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, constant.ERR_VALIDATION_CODE, validationErr.Code)
	require.Equal(t, "message", validationErr.Param)
	require.Zero(t, f.store.CommentCount())
}

func TestCreateCommentReturnsAnnotatedComment(t *testing.T) {
	f := newCommentFixture(t)

	comment := f.create(t, f.kyle, "first!", nil)

	require.NotEqual(t, uuid.Nil, comment.Id)
	require.Equal(t, "first!", comment.Message)
	require.Nil(t, comment.ParentId)
	require.Equal(t, model.CommentUser{Id: f.kyle, Name: "Kyle"}, comment.User)
	require.Zero(t, comment.LikeCount)
	require.False(t, comment.LikedByMe)
	require.NotNil(t, comment.Children)
	require.Empty(t, comment.Children)
	require.Equal(t, 1, f.store.CommentCount())
}

func TestCreateCommentReply(t *testing.T) {
	f := newCommentFixture(t)

	parent := f.create(t, f.kyle, "parent", nil)
	reply := f.create(t, f.sally, "reply", &parent.Id)

	require.Equal(t, &parent.Id, reply.ParentId)
	require.Equal(t, "Sally", reply.User.Name)
}

func TestCreateCommentRejectsParentFromAnotherPost(t *testing.T) {
	f := newCommentFixture(t)

	otherPost := uuid.New()
	f.store.AddPost(model.Posts{Id: otherPost, Title: "Other"})
	foreign := model.PostComments{Id: uuid.New(), PostId: otherPost, AuthorId: f.kyle, Message: "elsewhere"}
	f.store.AddComment(foreign)

	parentId := foreign.Id.String()
	_, err := f.usecase.CreateComment(context.Background(), f.postId.String(), f.kyle, model.CreateCommentRequest{Message: "reply", ParentId: &parentId})

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "parentId", validationErr.Param)
	require.Equal(t, 1, f.store.CommentCount())
}

func TestCreateCommentRejectsMalformedIds(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.usecase.CreateComment(context.Background(), "not-a-uuid", f.kyle, model.CreateCommentRequest{Message: "hi"})
	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "postId", validationErr.Param)

	bad := "nope"
	_, err = f.usecase.CreateComment(context.Background(), f.postId.String(), f.kyle, model.CreateCommentRequest{Message: "hi", ParentId: &bad})
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "parentId", validationErr.Param)
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.usecase.CreateComment(context.Background(), uuid.NewString(), f.kyle, model.CreateCommentRequest{Message: "hi"})

	var notFoundErr *model.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	require.Equal(t, "postId", notFoundErr.Param)
}

func TestCreateCommentPropagatesStoreError(t *testing.T) {
	f := newCommentFixture(t)
	f.usecase.CommentStore = failingComments{CommentStore: f.store.Comments()}

	_, err := f.usecase.CreateComment(context.Background(), f.postId.String(), f.kyle, model.CreateCommentRequest{Message: "hi"})
	require.ErrorIs(t, err, errStoreDown)
}

func TestEditCommentByOwner(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "typo", nil)

	response, err := f.usecase.EditComment(context.Background(), f.postId.String(), comment.Id.String(), f.kyle, model.EditCommentRequest{Message: "fixed"})
	require.NoError(t, err)
	require.Equal(t, "fixed", response.Message)

	stored, err := f.store.Comments().FindById(context.Background(), comment.Id)
	require.NoError(t, err)
	require.Equal(t, "fixed", stored.Message)
}

func TestEditCommentByOtherUserIsForbidden(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "mine", nil)

	_, err := f.usecase.EditComment(context.Background(), f.postId.String(), comment.Id.String(), f.sally, model.EditCommentRequest{Message: "hijacked"})

	var forbiddenErr *model.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
	require.Equal(t, constant.ERR_FORBIDDEN_ERROR, forbiddenErr.Code)

	stored, err := f.store.Comments().FindById(context.Background(), comment.Id)
	require.NoError(t, err)
	require.Equal(t, "mine", stored.Message)
}

func TestEditCommentValidation(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "mine", nil)

	_, err := f.usecase.EditComment(context.Background(), f.postId.String(), comment.Id.String(), f.kyle, model.EditCommentRequest{Message: ""})

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "message", validationErr.Param)
}

func TestEditCommentNotFound(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "mine", nil)

	var notFoundErr *model.NotFoundError

	_, err := f.usecase.EditComment(context.Background(), f.postId.String(), uuid.NewString(), f.kyle, model.EditCommentRequest{Message: "x"})
	require.ErrorAs(t, err, &notFoundErr)

	_, err = f.usecase.EditComment(context.Background(), uuid.NewString(), comment.Id.String(), f.kyle, model.EditCommentRequest{Message: "x"})
	require.ErrorAs(t, err, &notFoundErr, "comment must belong to the post in the path")

	f.usecase.CommentStore = vanishingComments{CommentStore: f.store.Comments()}
	_, err = f.usecase.EditComment(context.Background(), f.postId.String(), comment.Id.String(), f.kyle, model.EditCommentRequest{Message: "x"})
	require.ErrorAs(t, err, &notFoundErr)
}

func TestEditCommentPropagatesStoreError(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "mine", nil)
	f.usecase.CommentStore = failingComments{CommentStore: f.store.Comments()}

	_, err := f.usecase.EditComment(context.Background(), f.postId.String(), comment.Id.String(), f.kyle, model.EditCommentRequest{Message: "x"})
	require.ErrorIs(t, err, errStoreDown)
}

func TestDeleteCommentLeavesRepliesAsOrphans(t *testing.T) {
	f := newCommentFixture(t)
	parent := f.create(t, f.kyle, "parent", nil)
	reply := f.create(t, f.sally, "reply", &parent.Id)

	response, err := f.usecase.DeleteComment(context.Background(), f.postId.String(), parent.Id.String(), f.kyle)
	require.NoError(t, err)
	require.Equal(t, parent.Id, response.Id)

	posts := NewPostUsecase(f.store.Posts(), f.store.Comments(), f.store.Likes(), zap.NewNop())
	post, err := posts.GetPost(context.Background(), f.postId.String(), f.kyle)
	require.NoError(t, err)
	require.Len(t, post.Comments, 1)
	require.Equal(t, reply.Id, post.Comments[0].Id)
}

func TestDeleteCommentByOtherUserIsForbidden(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "mine", nil)

	_, err := f.usecase.DeleteComment(context.Background(), f.postId.String(), comment.Id.String(), f.sally)

	var forbiddenErr *model.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
	require.Equal(t, 1, f.store.CommentCount())
}

func TestDeleteCommentNotFound(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "mine", nil)

	var notFoundErr *model.NotFoundError

	_, err := f.usecase.DeleteComment(context.Background(), f.postId.String(), uuid.NewString(), f.kyle)
	require.ErrorAs(t, err, &notFoundErr)

	f.usecase.CommentStore = vanishingComments{CommentStore: f.store.Comments()}
	_, err = f.usecase.DeleteComment(context.Background(), f.postId.String(), comment.Id.String(), f.kyle)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestToggleLikeFlipsState(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "like me", nil)

	toggle := func() bool {
		response, err := f.usecase.ToggleLike(context.Background(), f.postId.String(), comment.Id.String(), f.sally)
		require.NoError(t, err)
		return response.Liked
	}

	require.True(t, toggle())
	require.False(t, toggle())
	require.True(t, toggle())

	counts, err := f.store.Likes().CountManyByComments(context.Background(), []uuid.UUID{comment.Id})
	require.NoError(t, err)
	require.Equal(t, 1, counts[comment.Id])
}

func TestToggleLikeLosingRaceReportsLiked(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "like me", nil)
	f.usecase.LikeLedger = racingLikes{LikeLedger: f.store.Likes()}

	response, err := f.usecase.ToggleLike(context.Background(), f.postId.String(), comment.Id.String(), f.sally)
	require.NoError(t, err)
	require.True(t, response.Liked)
}

func TestToggleLikeNotFound(t *testing.T) {
	f := newCommentFixture(t)
	comment := f.create(t, f.kyle, "like me", nil)

	var notFoundErr *model.NotFoundError

	_, err := f.usecase.ToggleLike(context.Background(), f.postId.String(), uuid.NewString(), f.sally)
	require.ErrorAs(t, err, &notFoundErr)

	_, err = f.usecase.ToggleLike(context.Background(), uuid.NewString(), comment.Id.String(), f.sally)
	require.ErrorAs(t, err, &notFoundErr)

	var validationErr *model.ValidationError
	_, err = f.usecase.ToggleLike(context.Background(), f.postId.String(), "bad", f.sally)
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "commentId", validationErr.Param)
}
