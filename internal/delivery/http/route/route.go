package route

import (
	"github.com/ferdian3456/virdanthread/internal/delivery/http"
	"github.com/ferdian3456/virdanthread/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteConfig struct {
	App               *fiber.App
	AuthMiddleware    *middleware.AuthMiddleware
	PostController    *http.PostController
	CommentController *http.CommentController
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	postGroup := api.Group("/posts", c.AuthMiddleware.ProtectedRoute())
	postGroup.Get("/", c.PostController.ListPosts)
	postGroup.Get("/:postId", c.PostController.GetPost)

	commentGroup := postGroup.Group("/:postId/comments")
	commentGroup.Post("/", c.CommentController.CreateComment)
	commentGroup.Put("/:commentId", c.CommentController.EditComment)
	commentGroup.Delete("/:commentId", c.CommentController.DeleteComment)
	commentGroup.Post("/:commentId/toggleLike", c.CommentController.ToggleLike)
}
