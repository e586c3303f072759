package usecase

import (
	"bytes"
	"slices"

	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/google/uuid"
)

// AssembleThread nests a post's flat comments into a forest ordered newest
// first at every level. Equal timestamps fall back to id, descending.
//
// A comment whose parent is not part of comments is promoted to the top level.
// Comments caught in a parent cycle can never be reached from a root and are dropped.
func AssembleThread(comments []model.PostComments, likedByCaller map[uuid.UUID]struct{}, likeCounts map[uuid.UUID]int) []model.AnnotatedComment {
	sorted := slices.Clone(comments)
	slices.SortStableFunc(sorted, compareNewestFirst)

	present := make(map[uuid.UUID]struct{}, len(sorted))
	for _, comment := range sorted {
		present[comment.Id] = struct{}{}
	}

	roots := []int{}
	children := make(map[uuid.UUID][]int)
	for i, comment := range sorted {
		if comment.ParentId == nil {
			roots = append(roots, i)
			continue
		}

		if _, ok := present[*comment.ParentId]; !ok {
			roots = append(roots, i)
			continue
		}

		children[*comment.ParentId] = append(children[*comment.ParentId], i)
	}

	var build func(i int) model.AnnotatedComment
	build = func(i int) model.AnnotatedComment {
		node := AnnotateComment(sorted[i], likedByCaller, likeCounts)
		for _, child := range children[sorted[i].Id] {
			node.Children = append(node.Children, build(child))
		}

		return node
	}

	forest := make([]model.AnnotatedComment, 0, len(roots))
	for _, i := range roots {
		forest = append(forest, build(i))
	}

	return forest
}

// AnnotateComment attaches like state to a single comment, without children.
func AnnotateComment(comment model.PostComments, likedByCaller map[uuid.UUID]struct{}, likeCounts map[uuid.UUID]int) model.AnnotatedComment {
	_, likedByMe := likedByCaller[comment.Id]

	return model.AnnotatedComment{
		Id:        comment.Id,
		Message:   comment.Message,
		ParentId:  comment.ParentId,
		CreatedAt: comment.CreateDatetime,
		User: model.CommentUser{
			Id:   comment.AuthorId,
			Name: comment.AuthorName,
		},
		LikeCount: likeCounts[comment.Id],
		LikedByMe: likedByMe,
		Children:  []model.AnnotatedComment{},
	}
}

func compareNewestFirst(a, b model.PostComments) int {
	if c := b.CreateDatetime.Compare(a.CreateDatetime); c != 0 {
		return c
	}

	return bytes.Compare(b.Id[:], a.Id[:])
}
