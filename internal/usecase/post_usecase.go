package usecase

import (
	"context"

	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/ferdian3456/virdanthread/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostUsecase struct {
	PostStore    PostStore
	CommentStore CommentStore
	LikeLedger   LikeLedger
	Log          *zap.Logger
}

func NewPostUsecase(postStore PostStore, commentStore CommentStore, likeLedger LikeLedger, zap *zap.Logger) *PostUsecase {
	return &PostUsecase{
		PostStore:    postStore,
		CommentStore: commentStore,
		LikeLedger:   likeLedger,
		Log:          zap,
	}
}

func (usecase *PostUsecase) ListPosts(ctx context.Context) ([]model.PostSummaryResponse, error) {
	posts, err := usecase.PostStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []model.PostSummaryResponse{}
	}

	return posts, nil
}

// GetPost returns the post with its full thread annotated for userId. Like
// facts are only fetched for the comments of this post.
func (usecase *PostUsecase) GetPost(ctx context.Context, postIdParam string, userId uuid.UUID) (model.PostDetailResponse, error) {
	response := model.PostDetailResponse{}

	postId, err := parseId(postIdParam, "postId", "Invalid post id")
	if err != nil {
		return response, err
	}

	post, err := usecase.PostStore.FindById(ctx, postId)
	if err != nil {
		return response, err
	}

	if post == nil {
		return response, &model.NotFoundError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Post not found",
			Param:   "postId",
		}
	}

	comments, err := usecase.CommentStore.FindManyByPost(ctx, postId)
	if err != nil {
		return response, err
	}

	commentIds := make([]uuid.UUID, len(comments))
	for i, comment := range comments {
		commentIds[i] = comment.Id
	}

	var likedByCaller map[uuid.UUID]struct{}
	var likeCounts map[uuid.UUID]int

	if len(commentIds) > 0 {
		likedByCaller, err = usecase.LikeLedger.FindManyByComments(ctx, userId, commentIds)
		if err != nil {
			return response, err
		}

		likeCounts, err = usecase.LikeLedger.CountManyByComments(ctx, commentIds)
		if err != nil {
			return response, err
		}
	}

	response.Id = post.Id
	response.Title = post.Title
	response.Body = post.Body
	response.Comments = AssembleThread(comments, likedByCaller, likeCounts)
	observability.RecordThreadSize(len(comments))

	return response, nil
}
