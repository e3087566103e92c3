package domain

import "time"

// Event websocket event name
type Event string

const (
	// SendMessage websocket event send-message, the only inbound event
	SendMessage Event = "send-message"

	// MessageReceived websocket event message-received, pushed to the live recipient
	MessageReceived Event = "message-received"

	// UserOnline websocket event user-online, broadcast on every connect
	UserOnline Event = "user-online"
	// UserOffline websocket event user-offline, broadcast on every disconnect
	UserOffline Event = "user-offline"

	// ErrorEventName websocket event error, sent back on a bad request
	ErrorEventName Event = "error"
)

// WSRequest websocket Request (client to server)
type WSRequest struct {
	Event       string `json:"event"`
	RecipientID string `json:"recipientId"`
	Body        string `json:"body"`
	Kind        string `json:"kind"`
}

// MessageEvent websocket push carrying a full routed message
type MessageEvent struct {
	Event       string    `json:"event"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
	RecipientID string    `json:"recipientId"`
	Body        string    `json:"body"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMessageEvent build the message-received push for m
func NewMessageEvent(m *Message) MessageEvent {
	return MessageEvent{
		Event:       string(MessageReceived),
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		Kind:        m.Kind,
		CreatedAt:   m.CreatedAt,
	}
}

// PresenceEvent websocket broadcast on connect and disconnect
type PresenceEvent struct {
	Event       string `json:"event"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
}

// ErrorEvent websocket response for a malformed or unknown request
type ErrorEvent struct {
	Event string `json:"event"`
	Error string `json:"error"`
}
