package util

import (
	"errors"

	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ReadRequestBody(ctx *fiber.Ctx, result interface{}) error {
	err := ctx.BodyParser(result)
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusOK).JSON(data)
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponse(ctx *fiber.Ctx, error error) error {
	return sendError(ctx, fiber.StatusBadRequest, error)
}

func SendErrorResponseUnauthorized(ctx *fiber.Ctx, error error) error {
	return sendError(ctx, fiber.StatusUnauthorized, error)
}

func SendErrorResponseForbidden(ctx *fiber.Ctx, error error) error {
	return sendError(ctx, fiber.StatusForbidden, error)
}

func SendErrorResponseNotFound(ctx *fiber.Ctx, error error) error {
	return sendError(ctx, fiber.StatusNotFound, error)
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
			"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
		},
	})
	if err != nil {
		return err
	}

	return nil
}

// SendUsecaseError maps the usecase error taxonomy onto HTTP statuses.
// Anything untyped is a store failure and is reported as 500.
func SendUsecaseError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var validationErr *model.ValidationError
	var notFoundErr *model.NotFoundError
	var forbiddenErr *model.ForbiddenError
	var unauthorizedErr *model.UnauthorizedError

	switch {
	case errors.As(err, &validationErr):
		return SendErrorResponse(ctx, validationErr)
	case errors.As(err, &notFoundErr):
		return SendErrorResponseNotFound(ctx, notFoundErr)
	case errors.As(err, &forbiddenErr):
		return SendErrorResponseForbidden(ctx, forbiddenErr)
	case errors.As(err, &unauthorizedErr):
		return SendErrorResponseUnauthorized(ctx, unauthorizedErr)
	default:
		return SendErrorResponseInternalServer(ctx, log, err)
	}
}

func sendError(ctx *fiber.Ctx, status int, error error) error {
	err := ctx.Status(status).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}
