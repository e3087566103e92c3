package domain

import "time"

// KindText default message payload kind
const KindText = "text"

// Message is one chat record. It is written exactly once by the message
// router and never mutated afterwards, except for the best-effort delivered
// flag.
type Message struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	SenderID    string    `bson:"sender_id" json:"senderId"`
	SenderName  string    `bson:"sender_name" json:"senderName"`
	RecipientID string    `bson:"recipient_id" json:"recipientId"`
	Body        string    `bson:"body" json:"body"`
	Kind        string    `bson:"kind" json:"kind"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	Delivered   bool      `bson:"delivered" json:"delivered"`
}

// ConversationSummary one inbox row: the newest message exchanged with a
// single counterpart, from the viewer's side
type ConversationSummary struct {
	CounterpartID   string    `bson:"_id" json:"counterpartId"`
	CounterpartName string    `bson:"counterpart_name" json:"counterpartName"`
	LastMessageBody string    `bson:"last_message_body" json:"lastMessageBody"`
	LastMessageTime time.Time `bson:"last_message_time" json:"lastMessageTime"`
}
