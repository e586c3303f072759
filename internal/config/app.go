package config

import (
	http "github.com/ferdian3456/virdanthread/internal/delivery/http"
	"github.com/ferdian3456/virdanthread/internal/delivery/http/middleware"
	"github.com/ferdian3456/virdanthread/internal/delivery/http/route"
	"github.com/ferdian3456/virdanthread/internal/repository"
	"github.com/ferdian3456/virdanthread/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
}

func Server(config *ServerConfig) {
	postRepository := repository.NewPostRepository(config.Log, config.DB, config.DBCache, config.Config.Duration("POST_CACHE_TTL"))
	commentRepository := repository.NewCommentRepository(config.Log, config.DB)
	likeRepository := repository.NewLikeRepository(config.Log, config.DB)

	postUsecase := usecase.NewPostUsecase(postRepository, commentRepository, likeRepository, config.Log)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, likeRepository, postRepository, config.Log)

	postController := http.NewPostController(postUsecase, config.Log, config.Config)
	commentController := http.NewCommentController(commentUsecase, config.Log, config.Config)

	authMiddleware := middleware.NewAuthMiddleware(config.Log, config.Config)

	routeConfig := route.RouteConfig{
		App:               config.Router,
		AuthMiddleware:    authMiddleware,
		PostController:    postController,
		CommentController: commentController,
	}

	routeConfig.SetupRoute()
}
