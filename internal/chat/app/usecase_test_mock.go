package app

import (
	"context"
	"errors"

	"study_portal_service/internal/chat/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert mock append message
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MarkDelivered mock delivered flag update
func (m *MockMessageRepository) MarkDelivered(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindPairHistory mock pairwise history query
func (m *MockMessageRepository) FindPairHistory(ctx context.Context, viewerID, counterpartID string, limit int64) ([]domain.Message, error) {
	args := m.Called(ctx, viewerID, counterpartID, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// AggregateInbox mock inbox aggregation
func (m *MockMessageRepository) AggregateInbox(ctx context.Context, viewerID string) ([]domain.ConversationSummary, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ConversationSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventWriter Mock ChatEventWriter
type MockEventWriter struct {
	mock.Mock
}

// WriteMessages mock kafka publish
func (m *MockEventWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

// fakeConn in-memory SessionConn for session tests. Reads block until a
// frame is queued or the conn is closed.
type fakeConn struct {
	inbound chan []byte
	written chan []byte
	closed  chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan []byte, 16),
		written: make(chan []byte, 16),
		closed:  make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-c.inbound:
		return 1, data, nil
	case <-c.closed:
		return 0, nil, errors.New("connection closed")
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return errors.New("connection closed")
	default:
	}
	select {
	case c.written <- data:
		return nil
	case <-c.closed:
		return errors.New("connection closed")
	}
}

func (c *fakeConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	return nil
}
