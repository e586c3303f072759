package repository

import (
	"context"

	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		Log: zap,
		DB:  db,
	}
}

// Upsert keeps the display name shown next to comments in sync with the caller.
func (repository *UserRepository) Upsert(ctx context.Context, user model.CommentUser) error {
	query := `
		INSERT INTO users (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`

	_, err := repository.DB.Exec(ctx, query, user.Id, user.Name)
	if err != nil {
		return err
	}

	return nil
}
