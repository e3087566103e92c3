package app

import (
	"study_portal_service/pkg/logger"
	"study_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatQueryHandler HTTP read endpoints over the message log
type ChatQueryHandler struct {
	queryUC *ChatQueryUseCase
}

// NewChatQueryHandler create ChatQueryHandler
func NewChatQueryHandler(queryUC *ChatQueryUseCase) *ChatQueryHandler {
	return &ChatQueryHandler{queryUC: queryUC}
}

// History godoc
// @Summary Pairwise chat history with one counterpart
// @Tags chat
// @Produce json
// @Param otherId path string true "counterpart user id"
// @Success 200 {array} domain.Message
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/chat/history/{otherId} [get]
func (h *ChatQueryHandler) History(c *fiber.Ctx) error {
	viewerID, _ := c.Locals(middlewares.TokenUserID).(string)
	counterpartID := c.Params("otherId")

	messages, err := h.queryUC.GetHistory(c.Context(), viewerID, counterpartID)
	if err != nil {
		logger.Log.Error("history query failed", zap.String("viewerID", viewerID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(messages)
}

// Conversations godoc
// @Summary Inbox: newest message per counterpart
// @Tags chat
// @Produce json
// @Success 200 {array} domain.ConversationSummary
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/chat/conversations [get]
func (h *ChatQueryHandler) Conversations(c *fiber.Ctx) error {
	viewerID, _ := c.Locals(middlewares.TokenUserID).(string)

	summaries, err := h.queryUC.GetInbox(c.Context(), viewerID)
	if err != nil {
		logger.Log.Error("inbox query failed", zap.String("viewerID", viewerID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summaries)
}
