package setup

import (
	"context"
	"testing"

	"github.com/ferdian3456/virdanthread/internal/config"
	"github.com/ferdian3456/virdanthread/internal/exception"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const JWTSecret = "test-secret-key-for-jwt-token-generation"

// SetupTestApp wires the real repositories against the test containers.
func SetupTestApp(t *testing.T, pgURL, redisURL string) (*fiber.App, *pgxpool.Pool, *redis.Client) {
	t.Log("Setting up test application...")

	ctx := context.Background()

	testConfig := koanf.New(".")
	require.NoError(t, testConfig.Set("POSTGRES_URL", pgURL))
	require.NoError(t, testConfig.Set("REDIS_URL", redisURL))
	require.NoError(t, testConfig.Set("JWT_SECRET_KEY", JWTSecret))
	require.NoError(t, testConfig.Set("POST_CACHE_TTL", "1m"))

	zapLogger := zap.NewExample()

	dbPool := config.NewPostgresqlPool(testConfig, zapLogger)
	redisClient := config.NewRedisClient(testConfig, zapLogger)
	require.NoError(t, redisClient.FlushDB(ctx).Err())

	app := config.NewFiber()
	app.Use(exception.Recovery(zapLogger))

	config.Server(&config.ServerConfig{
		Router:  app,
		DB:      dbPool,
		DBCache: redisClient,
		Log:     zapLogger,
		Config:  testConfig,
	})

	return app, dbPool, redisClient
}
