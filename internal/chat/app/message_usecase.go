package app

import (
	"context"
	"encoding/json"
	"time"

	"study_portal_service/internal/chat/domain"
	"study_portal_service/internal/chat/repository"
	errprocess "study_portal_service/pkg/err"
	"study_portal_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ChatEventWriter sink for the message event stream, satisfied by
// *kafka.Writer
type ChatEventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// SendMessageUseCase routes one send event: persist, then deliver if the
// recipient is online
type SendMessageUseCase struct {
	msgRepo  repository.MessageRepository
	presence Presence
	events   ChatEventWriter
}

// NewSendMessageUseCase init the message router. events may be nil when no
// event stream is configured.
func NewSendMessageUseCase(
	msgRepo repository.MessageRepository,
	presence Presence,
	events ChatEventWriter,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		msgRepo:  msgRepo,
		presence: presence,
		events:   events,
	}
}

// Execute route a message from the sender to recipientID.
//
// Persistence and live delivery are two independent best-effort steps in
// this order, not a transaction: a failed write is logged and the push still
// happens, an offline recipient is not an error. The built message is
// returned either way for the sender's optimistic echo.
func (uc *SendMessageUseCase) Execute(ctx context.Context, senderID, senderName, recipientID, body, kind string) (*domain.Message, error) {
	if recipientID == "" || body == "" {
		return nil, errprocess.Set("recipientId and body are required")
	}
	if kind == "" {
		kind = domain.KindText
	}

	m := &domain.Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		SenderName:  senderName,
		RecipientID: recipientID,
		Body:        body,
		Kind:        kind,
		CreatedAt:   time.Now().UTC(),
	}

	// 1. durability
	if err := uc.msgRepo.Insert(ctx, m); err != nil {
		logger.Log.Error("persist message failed",
			zap.String("senderID", senderID),
			zap.String("recipientID", recipientID),
			zap.Error(err),
		)
	}

	// 2. event stream for the analytics pipeline, fire and forget
	uc.publishEvent(ctx, m)

	// 3. live delivery
	if sess, ok := uc.presence.Lookup(recipientID); ok {
		push, err := json.Marshal(domain.NewMessageEvent(m))
		if err == nil && sess.Push(push) {
			m.Delivered = true
			if err := uc.msgRepo.MarkDelivered(ctx, m.ID); err != nil {
				logger.Log.Warn("mark delivered failed", zap.String("messageID", m.ID), zap.Error(err))
			}
		} else if err == nil {
			// stalled recipient, drop the connection rather than queue forever
			sess.Close()
		}
	}

	return m, nil
}

func (uc *SendMessageUseCase) publishEvent(ctx context.Context, m *domain.Message) {
	if uc.events == nil {
		return
	}
	value, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := uc.events.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.SenderID),
		Value: value,
	}); err != nil {
		logger.Log.Warn("publish message event failed", zap.String("messageID", m.ID), zap.Error(err))
	}
}
