package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/virdanthread/internal/config"
	"github.com/ferdian3456/virdanthread/internal/delivery/http/middleware"
	"github.com/ferdian3456/virdanthread/internal/exception"
	"github.com/ferdian3456/virdanthread/internal/observability"
	traceMiddleware "github.com/ferdian3456/virdanthread/internal/middleware"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC

	bootLog := config.NewZap("info")
	koanf := config.NewKoanf(bootLog)
	zap := config.NewZap(koanf.String("LOG_LEVEL"))

	observabilityConfig := config.LoadObservabilityConfig(koanf)
	shutdownTracer := func(context.Context) error { return nil }
	if observabilityConfig.Enabled() {
		shutdown, err := observability.Init(context.Background(), observabilityConfig, zap)
		if err != nil {
			zap.Fatal("failed to initialize tracing", zapLog.Error(err))
		}
		shutdownTracer = shutdown
	}

	fiber := config.NewFiber()
	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)

	fiber.Use(exception.Recovery(zap))
	fiber.Use(otelfiber.Middleware())
	fiber.Use(traceMiddleware.TraceLoggerMiddleware(zap))
	fiber.Use(middleware.SetupCORS(koanf.String("CLIENT_URL")))

	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	config.Server(&config.ServerConfig{
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
	})

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	// the shutdown deadline starts once a stop signal arrives
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	postgresql.Close()
	_ = rds.Close()

	err = shutdownTracer(ctx)
	if err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
