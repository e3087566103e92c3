package app

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"study_portal_service/internal/chat/domain"
	"study_portal_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// SessionState connection session lifecycle state
type SessionState int32

const (
	// StateConnecting handshake in progress, credential not verified yet
	StateConnecting SessionState = iota
	// StateAuthenticated registered in the presence table, events accepted
	StateAuthenticated
	// StateClosed terminal, duplicate disconnect signals are ignored
	StateClosed
)

// sendQueueSize bounds the per-connection outbound queue. A full queue means
// a stalled peer and closes the session instead of growing memory.
const sendQueueSize = 64

// SessionConn minimal socket surface of a live connection, satisfied by
// *websocket.Conn and by fakes in tests
type SessionConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// ChatSession owns a single live connection from handshake to disconnect
type ChatSession struct {
	UserID      string
	DisplayName string

	presence  Presence
	conn      SessionConn
	send      chan []byte
	state     int32
	closeOnce sync.Once
	done      chan struct{}
}

// NewChatSession create a session in Connecting state
func NewChatSession(presence Presence, conn SessionConn) *ChatSession {
	return &ChatSession{
		presence: presence,
		conn:     conn,
		send:     make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
	}
}

// State current session state
func (s *ChatSession) State() SessionState {
	return SessionState(atomic.LoadInt32(&s.state))
}

// Authenticate move Connecting to Authenticated with the verified identity.
// Registration happens synchronously before the user-online broadcast, so a
// racing lookup never sees the user online ahead of its online event.
func (s *ChatSession) Authenticate(userID, displayName string) bool {
	if !atomic.CompareAndSwapInt32(&s.state, int32(StateConnecting), int32(StateAuthenticated)) {
		return false
	}
	s.UserID = userID
	s.DisplayName = displayName

	if prev := s.presence.Register(s); prev != nil {
		// duplicate login: the old session is orphaned, not force-closed
		logger.Log.Warn("presence entry replaced by newer connection", zap.String("userID", userID))
	}
	s.presence.Broadcast(marshalEvent(domain.PresenceEvent{
		Event:       string(domain.UserOnline),
		UserID:      userID,
		DisplayName: displayName,
	}))
	return true
}

// Push enqueue one outbound frame without blocking. False means the session
// is closed or its peer has stalled; the caller decides whether to close.
func (s *ChatSession) Push(data []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

// WritePump single writer draining the outbound queue onto the socket.
// Runs in its own goroutine so a slow peer never blocks the read loop.
func (s *ChatSession) WritePump() {
	for {
		select {
		case data := <-s.send:
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Log.Errorf("websocket write error:", err, zap.String("userID", s.UserID))
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// Close terminal transition, idempotent. An authenticated session performs
// the guarded unregister and broadcasts user-offline exactly once.
func (s *ChatSession) Close() {
	s.closeOnce.Do(func() {
		was := SessionState(atomic.SwapInt32(&s.state, int32(StateClosed)))
		close(s.done)
		s.conn.Close()

		if was != StateAuthenticated {
			return
		}
		if !s.presence.Unregister(s) {
			logger.Log.Warn("stale session unregister skipped", zap.String("userID", s.UserID))
		}
		s.presence.Broadcast(marshalEvent(domain.PresenceEvent{
			Event:  string(domain.UserOffline),
			UserID: s.UserID,
		}))
	})
}

// marshalEvent events are fixed structs, marshalling cannot fail
func marshalEvent(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}
