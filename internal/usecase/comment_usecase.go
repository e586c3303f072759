package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/ferdian3456/virdanthread/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentUsecase struct {
	CommentStore CommentStore
	LikeLedger   LikeLedger
	PostStore    PostStore
	Log          *zap.Logger
}

func NewCommentUsecase(commentStore CommentStore, likeLedger LikeLedger, postStore PostStore, zap *zap.Logger) *CommentUsecase {
	return &CommentUsecase{
		CommentStore: commentStore,
		LikeLedger:   likeLedger,
		PostStore:    postStore,
		Log:          zap,
	}
}

func (usecase *CommentUsecase) CreateComment(ctx context.Context, postIdParam string, userId uuid.UUID, payload model.CreateCommentRequest) (_ model.AnnotatedComment, err error) {
	defer func() { observability.RecordMutation("create", err) }()

	if payload.Message == "" {
		return model.AnnotatedComment{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Message is required",
			Param:   "message",
		}
	}

	postId, err := parseId(postIdParam, "postId", "Invalid post id")
	if err != nil {
		return model.AnnotatedComment{}, err
	}

	var parentId *uuid.UUID
	if payload.ParentId != nil && *payload.ParentId != "" {
		id, err := parseId(*payload.ParentId, "parentId", "Invalid parent id")
		if err != nil {
			return model.AnnotatedComment{}, err
		}

		parentId = &id
	}

	post, err := usecase.PostStore.FindById(ctx, postId)
	if err != nil {
		return model.AnnotatedComment{}, err
	}

	if post == nil {
		return model.AnnotatedComment{}, &model.NotFoundError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Post not found",
			Param:   "postId",
		}
	}

	if parentId != nil {
		parent, err := usecase.CommentStore.FindById(ctx, *parentId)
		if err != nil {
			return model.AnnotatedComment{}, err
		}

		if parent == nil || parent.PostId != postId {
			return model.AnnotatedComment{}, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Parent comment does not belong to this post",
				Param:   "parentId",
			}
		}
	}

	// postgres keeps microseconds; truncating keeps the returned value equal to the stored one
	now := time.Now().UTC().Truncate(time.Microsecond)

	comment := model.PostComments{
		Id:             uuid.New(),
		PostId:         postId,
		ParentId:       parentId,
		AuthorId:       userId,
		Message:        payload.Message,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	comment, err = usecase.CommentStore.Create(ctx, comment)
	if err != nil {
		return model.AnnotatedComment{}, err
	}

	observability.WithContext(ctx, usecase.Log).Debug("comment created",
		zap.String("commentId", comment.Id.String()),
		zap.String("postId", postId.String()),
		zap.String("userId", userId.String()),
	)

	// a brand-new comment cannot have likes yet
	return AnnotateComment(comment, nil, nil), nil
}

func (usecase *CommentUsecase) EditComment(ctx context.Context, postIdParam string, commentIdParam string, userId uuid.UUID, payload model.EditCommentRequest) (_ model.EditCommentResponse, err error) {
	defer func() { observability.RecordMutation("edit", err) }()

	if payload.Message == "" {
		return model.EditCommentResponse{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Message is required",
			Param:   "message",
		}
	}

	comment, err := usecase.findOwnedComment(ctx, postIdParam, commentIdParam, userId, "You can only edit your own comments")
	if err != nil {
		return model.EditCommentResponse{}, err
	}

	updated, err := usecase.CommentStore.UpdateMessage(ctx, comment.Id, payload.Message, time.Now().UTC())
	if err != nil {
		return model.EditCommentResponse{}, err
	}

	// deleted between the ownership check and the update
	if !updated {
		return model.EditCommentResponse{}, commentNotFound()
	}

	observability.WithContext(ctx, usecase.Log).Debug("comment edited",
		zap.String("commentId", comment.Id.String()),
		zap.String("userId", userId.String()),
	)

	return model.EditCommentResponse{Message: payload.Message}, nil
}

// DeleteComment removes a single comment. Replies are left in place and are
// shown at the top level of the thread from then on.
func (usecase *CommentUsecase) DeleteComment(ctx context.Context, postIdParam string, commentIdParam string, userId uuid.UUID) (_ model.DeleteCommentResponse, err error) {
	defer func() { observability.RecordMutation("delete", err) }()

	comment, err := usecase.findOwnedComment(ctx, postIdParam, commentIdParam, userId, "You can only delete your own comments")
	if err != nil {
		return model.DeleteCommentResponse{}, err
	}

	deleted, err := usecase.CommentStore.Delete(ctx, comment.Id)
	if err != nil {
		return model.DeleteCommentResponse{}, err
	}

	if !deleted {
		return model.DeleteCommentResponse{}, commentNotFound()
	}

	observability.WithContext(ctx, usecase.Log).Debug("comment deleted",
		zap.String("commentId", comment.Id.String()),
		zap.String("userId", userId.String()),
	)

	return model.DeleteCommentResponse{Id: comment.Id}, nil
}

// ToggleLike flips the caller's like on a comment. The ledger's uniqueness
// constraint settles concurrent toggles: a losing create means the like is
// already there, and deleting an absent like changes nothing.
func (usecase *CommentUsecase) ToggleLike(ctx context.Context, postIdParam string, commentIdParam string, userId uuid.UUID) (_ model.ToggleLikeResponse, err error) {
	defer func() { observability.RecordMutation("toggle_like", err) }()

	comment, err := usecase.findComment(ctx, postIdParam, commentIdParam)
	if err != nil {
		return model.ToggleLikeResponse{}, err
	}

	log := observability.WithContext(ctx, usecase.Log).With(
		zap.String("commentId", comment.Id.String()),
		zap.String("userId", userId.String()),
	)

	liked, err := usecase.LikeLedger.FindByUserAndComment(ctx, userId, comment.Id)
	if err != nil {
		return model.ToggleLikeResponse{}, err
	}

	if liked {
		err = usecase.LikeLedger.Delete(ctx, userId, comment.Id)
		if err != nil {
			return model.ToggleLikeResponse{}, err
		}

		log.Debug("comment unliked")

		return model.ToggleLikeResponse{Liked: false}, nil
	}

	err = usecase.LikeLedger.Create(ctx, model.CommentLikes{
		UserId:         userId,
		CommentId:      comment.Id,
		CreateDatetime: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, model.ErrLikeAlreadyExists) {
			log.Debug("concurrent like already recorded")
			return model.ToggleLikeResponse{Liked: true}, nil
		}

		if errors.Is(err, model.ErrLikeTargetMissing) {
			return model.ToggleLikeResponse{}, commentNotFound()
		}

		return model.ToggleLikeResponse{}, err
	}

	log.Debug("comment liked")

	return model.ToggleLikeResponse{Liked: true}, nil
}

func (usecase *CommentUsecase) findComment(ctx context.Context, postIdParam string, commentIdParam string) (*model.PostComments, error) {
	postId, err := parseId(postIdParam, "postId", "Invalid post id")
	if err != nil {
		return nil, err
	}

	commentId, err := parseId(commentIdParam, "commentId", "Invalid comment id")
	if err != nil {
		return nil, err
	}

	comment, err := usecase.CommentStore.FindById(ctx, commentId)
	if err != nil {
		return nil, err
	}

	if comment == nil || comment.PostId != postId {
		return nil, commentNotFound()
	}

	return comment, nil
}

// authorId never changes after creation, so the check stays valid until the
// mutation runs; only a concurrent delete can intervene.
func (usecase *CommentUsecase) findOwnedComment(ctx context.Context, postIdParam string, commentIdParam string, userId uuid.UUID, forbiddenMessage string) (*model.PostComments, error) {
	comment, err := usecase.findComment(ctx, postIdParam, commentIdParam)
	if err != nil {
		return nil, err
	}

	if comment.AuthorId != userId {
		return nil, &model.ForbiddenError{
			Code:    constant.ERR_FORBIDDEN_ERROR,
			Message: forbiddenMessage,
			Param:   "commentId",
		}
	}

	return comment, nil
}

func commentNotFound() error {
	return &model.NotFoundError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "Comment not found",
		Param:   "commentId",
	}
}

func parseId(param string, name string, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: message,
			Param:   name,
		}
	}

	return id, nil
}
