package http

import (
	"github.com/ferdian3456/virdanthread/internal/middleware"
	"github.com/ferdian3456/virdanthread/internal/usecase"
	"github.com/ferdian3456/virdanthread/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PostController struct {
	PostUsecase *usecase.PostUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewPostController(postUsecase *usecase.PostUsecase, zap *zap.Logger, koanf *koanf.Koanf) *PostController {
	return &PostController{
		PostUsecase: postUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller *PostController) ListPosts(ctx *fiber.Ctx) error {
	posts, err := controller.PostUsecase.ListPosts(ctx.UserContext())
	if err != nil {
		return util.SendUsecaseError(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, posts)
}

func (controller *PostController) GetPost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	post, err := controller.PostUsecase.GetPost(ctx.UserContext(), ctx.Params("postId"), userId)
	if err != nil {
		return util.SendUsecaseError(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, post)
}
