package http

import (
	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/middleware"
	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/ferdian3456/virdanthread/internal/usecase"
	"github.com/ferdian3456/virdanthread/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type CommentController struct {
	CommentUsecase *usecase.CommentUsecase
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewCommentController(commentUsecase *usecase.CommentUsecase, zap *zap.Logger, koanf *koanf.Koanf) *CommentController {
	return &CommentController{
		CommentUsecase: commentUsecase,
		Log:            zap,
		Config:         koanf,
	}
}

func (controller *CommentController) CreateComment(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.CreateCommentRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	comment, err := controller.CommentUsecase.CreateComment(ctx.UserContext(), ctx.Params("postId"), userId, payload)
	if err != nil {
		return util.SendUsecaseError(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, comment)
}

func (controller *CommentController) EditComment(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.EditCommentRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	response, err := controller.CommentUsecase.EditComment(ctx.UserContext(), ctx.Params("postId"), ctx.Params("commentId"), userId, payload)
	if err != nil {
		return util.SendUsecaseError(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller *CommentController) DeleteComment(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	response, err := controller.CommentUsecase.DeleteComment(ctx.UserContext(), ctx.Params("postId"), ctx.Params("commentId"), userId)
	if err != nil {
		return util.SendUsecaseError(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller *CommentController) ToggleLike(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	response, err := controller.CommentUsecase.ToggleLike(ctx.UserContext(), ctx.Params("postId"), ctx.Params("commentId"), userId)
	if err != nil {
		return util.SendUsecaseError(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func invalidRequestBody() *model.ValidationError {
	return &model.ValidationError{
		Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
		Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
	}
}
