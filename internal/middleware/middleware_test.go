package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTraceLoggerMiddlewareInstallsLogger(t *testing.T) {
	base := zap.NewNop()
	fallback := zap.NewNop()

	var got *zap.Logger
	app := fiber.New()
	app.Use(TraceLoggerMiddleware(base))
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetLoggerFromContext(c, fallback)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, got)
	require.NotSame(t, fallback, got)
}

func TestGetLoggerFromContextFallback(t *testing.T) {
	fallback := zap.NewNop()

	var got *zap.Logger
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetLoggerFromContext(c, fallback)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Same(t, fallback, got)
}
