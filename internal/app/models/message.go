package models

import "time"

// MessageType represents the type of message
type MessageType string

const (
	MessageTypeText MessageType = "TEXT"
)

// Message defines a chat message from the 'messages' table. A message with a
// partnership id belongs to that partnership's thread; one without is a
// direct user-to-user message. Content is immutable; only is_read flips.
type Message struct {
	ID            int64       `json:"id" db:"id"`
	SenderID      int64       `json:"senderId" db:"sender_id"`
	ReceiverID    int64       `json:"receiverId" db:"receiver_id"`
	PartnershipID *int64      `json:"partnershipId,omitempty" db:"partnership_id"`
	Content       string      `json:"content" db:"content"`
	MessageType   MessageType `json:"messageType" db:"message_type" example:"TEXT"`
	IsRead        bool        `json:"isRead" db:"is_read"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`

	// Related entities
	Sender   *User `json:"sender,omitempty"`
	Receiver *User `json:"receiver,omitempty"`
}
