package router

import (
	"context"

	"study_portal_service/internal/chat/app"
	"study_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register the chat gateway routes: the websocket endpoint
// and the two read endpoints, all behind the shared JWT middleware
func RegisterRoutes(r *fiber.App, chatWebsocket *app.ChatWebsocketHandler, queryHandler *app.ChatQueryHandler) {
	r.Get("/ws", middlewares.JWTMiddleware(), websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))

	chatRoutes := r.Group("/api/chat", middlewares.JWTMiddleware())
	chatRoutes.Get("/history/:otherId", queryHandler.History)
	chatRoutes.Get("/conversations", queryHandler.Conversations)
}
