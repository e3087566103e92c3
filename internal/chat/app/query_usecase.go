package app

import (
	"context"

	"study_portal_service/internal/chat/domain"
	"study_portal_service/internal/chat/repository"
)

// historyLimit fixed read window for pairwise history, not pagination
const historyLimit = 100

// ChatQueryUseCase read side of the message log: pairwise history and the
// per-viewer inbox. Pure reads, no presence interaction.
type ChatQueryUseCase struct {
	msgRepo repository.MessageRepository
}

// NewChatQueryUseCase init the query use case
func NewChatQueryUseCase(msgRepo repository.MessageRepository) *ChatQueryUseCase {
	return &ChatQueryUseCase{msgRepo: msgRepo}
}

// GetHistory ordered messages between the viewer and one counterpart,
// ascending by creation time, capped at 100
func (uc *ChatQueryUseCase) GetHistory(ctx context.Context, viewerID, counterpartID string) ([]domain.Message, error) {
	return uc.msgRepo.FindPairHistory(ctx, viewerID, counterpartID, historyLimit)
}

// GetInbox one summary per counterpart the viewer has exchanged messages
// with, newest conversation first
func (uc *ChatQueryUseCase) GetInbox(ctx context.Context, viewerID string) ([]domain.ConversationSummary, error) {
	return uc.msgRepo.AggregateInbox(ctx, viewerID)
}
