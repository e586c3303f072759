package middleware

import (
	"github.com/ferdian3456/virdanthread/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// AuthMiddleware is the auth collaborator: it turns the bearer token into the
// caller identity stored under Locals("userId"). Handlers trust it verbatim.
type AuthMiddleware struct {
	Log    *zap.Logger
	Config *koanf.Koanf
}

func NewAuthMiddleware(zap *zap.Logger, koanf *koanf.Koanf) *AuthMiddleware {
	return &AuthMiddleware{
		Log:    zap,
		Config: koanf,
	}
}

func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := util.ValidateAccessToken(ctx.Get(fiber.HeaderAuthorization), middleware.Config.String("JWT_SECRET_KEY"))
		if err != nil {
			return util.SendUsecaseError(ctx, middleware.Log, err)
		}

		ctx.Locals("userId", userId)

		return ctx.Next()
	}
}
