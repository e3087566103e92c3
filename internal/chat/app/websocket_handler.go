package app

import (
	"context"
	"encoding/json"
	"time"

	"study_portal_service/internal/chat/domain"
	"study_portal_service/pkg/logger"
	"study_portal_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// pingInterval idle keepalive period for authenticated connections
const pingInterval = 10 * time.Minute

// ChatWebsocketHandler entry point for authenticated websocket connections
type ChatWebsocketHandler struct {
	presence  Presence
	messageUC *SendMessageUseCase
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(presence Presence, messageUC *SendMessageUseCase) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		presence:  presence,
		messageUC: messageUC,
	}
}

// HandleConnection run one connection session from handshake to disconnect.
// The JWT middleware already verified the credential on the upgrade request,
// so the session authenticates immediately from the verified locals.
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	userID, ok := conn.Locals(middlewares.TokenUserID).(string)
	displayName, _ := conn.Locals(middlewares.TokenUserName).(string)
	if !ok || userID == "" {
		// the middleware rejects these before the upgrade; closing here is a
		// guard for misconfigured routes
		conn.Close()
		return
	}
	logger.Log.Info("websocket connect", zap.String("userID", userID), zap.String("displayName", displayName))

	sess := NewChatSession(h.presence, conn)
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("userID", userID))
		sess.Close()
	}()

	// fiber handles close frames internally; hook them out for logging
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		logger.Log.Debug("received pong", zap.String("userID", userID))
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	if !sess.Authenticate(userID, displayName) {
		return
	}

	go sess.WritePump()

	// periodic ping keeps half-dead peers from lingering
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(time.Second)); err != nil {
					logger.Log.Errorf("ping error:", err)
					return
				}
			case <-sess.done:
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Info("connection closed", zap.String("userID", userID))
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketEvent(ctx, sess, mt, message)
	}
}

func (h *ChatWebsocketHandler) execWebsocketEvent(ctx context.Context, sess *ChatSession, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageEvent(ctx, sess, msg)
	default:
		h.sendError(sess, "unknown message type")
	}
}

func (h *ChatWebsocketHandler) textMessageEvent(ctx context.Context, sess *ChatSession, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Errorf("json unmarshal error:", err, zap.String("userID", sess.UserID))
		h.sendError(sess, "malformed event")
		return
	}

	switch req.Event {
	case string(domain.SendMessage):
		if _, err := h.messageUC.Execute(ctx, sess.UserID, sess.DisplayName, req.RecipientID, req.Body, req.Kind); err != nil {
			h.sendError(sess, err.Error())
		}

	default:
		h.sendError(sess, "unknown event")
	}
}

// sendError queue an error event back to this session's own peer
func (h *ChatWebsocketHandler) sendError(sess *ChatSession, errorMsg string) {
	data := marshalEvent(domain.ErrorEvent{
		Event: string(domain.ErrorEventName),
		Error: errorMsg,
	})
	if !sess.Push(data) {
		sess.Close()
	}
}
