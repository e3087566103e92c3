package router

import (
	"study_portal_service/internal/social/app"
	"study_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register the social feed routes behind the shared JWT
// middleware. Fixed paths go first so they are not captured by :id.
func RegisterRoutes(r *fiber.App, postHandler *app.PostHandler) {
	posts := r.Group("/api/posts", middlewares.JWTMiddleware())

	posts.Get("/", postHandler.List)
	posts.Post("/", postHandler.Create)

	posts.Post("/visit", postHandler.Visit)
	posts.Get("/activity", postHandler.Activity)
	posts.Get("/users", postHandler.Users)

	posts.Post("/:id/like", postHandler.Like)
	posts.Post("/:id/comment", postHandler.Comment)
	posts.Post("/:id/vote", postHandler.Vote)
	posts.Post("/:id/view", postHandler.View)
	posts.Delete("/:id", postHandler.Delete)
}
