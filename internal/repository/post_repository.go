package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PostRepository reads posts. Posts are immutable here, so rows are cached in
// redis; comment and like data never goes through the cache.
type PostRepository struct {
	Log      *zap.Logger
	DB       *pgxpool.Pool
	DBCache  *redis.Client
	CacheTTL time.Duration
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client, cacheTTL time.Duration) *PostRepository {
	if cacheTTL <= 0 {
		cacheTTL = constant.DEFAULT_POST_CACHE_TTL
	}

	return &PostRepository{
		Log:      zap,
		DB:       db,
		DBCache:  dbCache,
		CacheTTL: cacheTTL,
	}
}

func (repository *PostRepository) FindAll(ctx context.Context) ([]model.PostSummaryResponse, error) {
	posts := []model.PostSummaryResponse{}
	if repository.getCache(ctx, constant.CACHE_KEY_POST_LIST, &posts) {
		return posts, nil
	}

	query := "SELECT id, title FROM posts ORDER BY create_datetime DESC, id DESC"

	rows, err := repository.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var post model.PostSummaryResponse
		err := rows.Scan(&post.Id, &post.Title)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	repository.setCache(ctx, constant.CACHE_KEY_POST_LIST, posts)

	return posts, nil
}

// FindById returns nil without error when the post does not exist.
func (repository *PostRepository) FindById(ctx context.Context, postId uuid.UUID) (*model.Posts, error) {
	key := constant.CACHE_KEY_POST_PREFIX + postId.String()

	var cached model.Posts
	if repository.getCache(ctx, key, &cached) {
		return &cached, nil
	}

	query := "SELECT id, title, body, create_datetime FROM posts WHERE id = $1"

	var post model.Posts
	err := repository.DB.QueryRow(ctx, query, postId).Scan(&post.Id, &post.Title, &post.Body, &post.CreateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	repository.setCache(ctx, key, post)

	return &post, nil
}

func (repository *PostRepository) Create(ctx context.Context, post model.Posts) error {
	query := "INSERT INTO posts (id, title, body, create_datetime) VALUES ($1, $2, $3, $4)"

	_, err := repository.DB.Exec(ctx, query, post.Id, post.Title, post.Body, post.CreateDatetime)
	if err != nil {
		return err
	}

	repository.invalidateCache(ctx, constant.CACHE_KEY_POST_LIST)

	return nil
}

// Cache failures only cost a database round trip, so they are logged and swallowed.
func (repository *PostRepository) getCache(ctx context.Context, key string, result interface{}) bool {
	if repository.DBCache == nil {
		return false
	}

	raw, err := repository.DBCache.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	} else if err != nil {
		repository.Log.Warn("failed to read post cache", zap.String("key", key), zap.Error(err))
		return false
	}

	err = sonic.Unmarshal(raw, result)
	if err != nil {
		repository.Log.Warn("failed to decode post cache", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (repository *PostRepository) setCache(ctx context.Context, key string, value interface{}) {
	if repository.DBCache == nil {
		return
	}

	raw, err := sonic.Marshal(value)
	if err != nil {
		repository.Log.Warn("failed to encode post cache", zap.String("key", key), zap.Error(err))
		return
	}

	err = repository.DBCache.Set(ctx, key, raw, repository.CacheTTL).Err()
	if err != nil {
		repository.Log.Warn("failed to write post cache", zap.String("key", key), zap.Error(err))
	}
}

func (repository *PostRepository) invalidateCache(ctx context.Context, key string) {
	if repository.DBCache == nil {
		return
	}

	err := repository.DBCache.Del(ctx, key).Err()
	if err != nil {
		repository.Log.Warn("failed to invalidate post cache", zap.String("key", key), zap.Error(err))
	}
}
