package repository

import (
	"context"
	"errors"

	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type LikeRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewLikeRepository(zap *zap.Logger, db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *LikeRepository) FindByUserAndComment(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) (bool, error) {
	query := "SELECT 1 FROM comment_likes WHERE user_id = $1 AND comment_id = $2"

	var exists int
	err := repository.DB.QueryRow(ctx, query, userId, commentId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return exists == 1, nil
}

// FindManyByComments returns the subset of commentIds the user has liked.
func (repository *LikeRepository) FindManyByComments(ctx context.Context, userId uuid.UUID, commentIds []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	liked := make(map[uuid.UUID]struct{})
	if len(commentIds) == 0 {
		return liked, nil
	}

	query := "SELECT comment_id FROM comment_likes WHERE user_id = $1 AND comment_id = ANY($2::uuid[])"

	rows, err := repository.DB.Query(ctx, query, userId, uuidStrings(commentIds))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var commentId uuid.UUID
		err := rows.Scan(&commentId)
		if err != nil {
			return nil, err
		}

		liked[commentId] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return liked, nil
}

func (repository *LikeRepository) CountManyByComments(ctx context.Context, commentIds []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	if len(commentIds) == 0 {
		return counts, nil
	}

	query := `
		SELECT comment_id, COUNT(*)
		FROM comment_likes
		WHERE comment_id = ANY($1::uuid[])
		GROUP BY comment_id
	`

	rows, err := repository.DB.Query(ctx, query, uuidStrings(commentIds))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var commentId uuid.UUID
		var count int
		err := rows.Scan(&commentId, &count)
		if err != nil {
			return nil, err
		}

		counts[commentId] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// Create relies on the (user_id, comment_id) primary key for uniqueness.
func (repository *LikeRepository) Create(ctx context.Context, like model.CommentLikes) error {
	query := "INSERT INTO comment_likes (user_id, comment_id, create_datetime) VALUES ($1, $2, $3)"

	_, err := repository.DB.Exec(ctx, query, like.UserId, like.CommentId, like.CreateDatetime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return model.ErrLikeAlreadyExists
			case pgForeignKeyViolation:
				return model.ErrLikeTargetMissing
			}
		}

		return err
	}

	return nil
}

// Delete is a no-op when the like is already gone.
func (repository *LikeRepository) Delete(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) error {
	query := "DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2"

	_, err := repository.DB.Exec(ctx, query, userId, commentId)
	if err != nil {
		return err
	}

	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
