package usecase

import (
	"context"
	"time"

	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/google/uuid"
)

// CommentStore persists comment rows. Lookups return nil when the row is absent.
type CommentStore interface {
	FindManyByPost(ctx context.Context, postId uuid.UUID) ([]model.PostComments, error)
	FindById(ctx context.Context, commentId uuid.UUID) (*model.PostComments, error)
	Create(ctx context.Context, comment model.PostComments) (model.PostComments, error)
	UpdateMessage(ctx context.Context, commentId uuid.UUID, message string, updateDatetime time.Time) (bool, error)
	Delete(ctx context.Context, commentId uuid.UUID) (bool, error)
}

// LikeLedger records (user, comment) like facts. Create must fail with
// model.ErrLikeAlreadyExists when the pair exists; Delete of a missing pair is a no-op.
type LikeLedger interface {
	FindByUserAndComment(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) (bool, error)
	FindManyByComments(ctx context.Context, userId uuid.UUID, commentIds []uuid.UUID) (map[uuid.UUID]struct{}, error)
	CountManyByComments(ctx context.Context, commentIds []uuid.UUID) (map[uuid.UUID]int, error)
	Create(ctx context.Context, like model.CommentLikes) error
	Delete(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) error
}

type PostStore interface {
	FindAll(ctx context.Context) ([]model.PostSummaryResponse, error)
	FindById(ctx context.Context, postId uuid.UUID) (*model.Posts, error)
}
