package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CommentRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewCommentRepository(zap *zap.Logger, db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *CommentRepository) FindManyByPost(ctx context.Context, postId uuid.UUID) ([]model.PostComments, error) {
	query := `
		SELECT pc.id, pc.post_id, pc.parent_id, pc.author_id, COALESCE(u.name, ''), pc.message, pc.create_datetime, pc.update_datetime
		FROM post_comments pc
		LEFT JOIN users u ON u.id = pc.author_id
		WHERE pc.post_id = $1
		ORDER BY pc.create_datetime DESC, pc.id DESC
	`

	rows, err := repository.DB.Query(ctx, query, postId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.PostComments{}

	for rows.Next() {
		var comment model.PostComments
		err := rows.Scan(&comment.Id, &comment.PostId, &comment.ParentId, &comment.AuthorId, &comment.AuthorName, &comment.Message, &comment.CreateDatetime, &comment.UpdateDatetime)
		if err != nil {
			return nil, err
		}

		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

// FindById returns nil without error when the comment does not exist.
func (repository *CommentRepository) FindById(ctx context.Context, commentId uuid.UUID) (*model.PostComments, error) {
	query := `
		SELECT pc.id, pc.post_id, pc.parent_id, pc.author_id, COALESCE(u.name, ''), pc.message, pc.create_datetime, pc.update_datetime
		FROM post_comments pc
		LEFT JOIN users u ON u.id = pc.author_id
		WHERE pc.id = $1
	`

	var comment model.PostComments
	err := repository.DB.QueryRow(ctx, query, commentId).Scan(&comment.Id, &comment.PostId, &comment.ParentId, &comment.AuthorId, &comment.AuthorName, &comment.Message, &comment.CreateDatetime, &comment.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &comment, nil
}

func (repository *CommentRepository) Create(ctx context.Context, comment model.PostComments) (model.PostComments, error) {
	query := `
		WITH inserted AS (
			INSERT INTO post_comments (id, post_id, parent_id, author_id, message, create_datetime, update_datetime)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING author_id
		)
		SELECT COALESCE(u.name, '')
		FROM inserted i
		LEFT JOIN users u ON u.id = i.author_id
	`

	err := repository.DB.QueryRow(ctx, query, comment.Id, comment.PostId, comment.ParentId, comment.AuthorId, comment.Message, comment.CreateDatetime, comment.UpdateDatetime).Scan(&comment.AuthorName)
	if err != nil {
		return comment, err
	}

	return comment, nil
}

// UpdateMessage reports false when the comment vanished before the update ran.
func (repository *CommentRepository) UpdateMessage(ctx context.Context, commentId uuid.UUID, message string, updateDatetime time.Time) (bool, error) {
	query := "UPDATE post_comments SET message = $1, update_datetime = $2 WHERE id = $3"

	tag, err := repository.DB.Exec(ctx, query, message, updateDatetime, commentId)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes only the comment row; replies keep their parent_id.
func (repository *CommentRepository) Delete(ctx context.Context, commentId uuid.UUID) (bool, error) {
	query := "DELETE FROM post_comments WHERE id = $1"

	tag, err := repository.DB.Exec(ctx, query, commentId)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
