package models

import "time"

// ConversationType distinguishes the two kinds of inbox entries. Clients must
// key conversations by the (type, id) pair: for PARTNERSHIP conversations the
// id is the partnership id, for DIRECT conversations it is the peer user id.
type ConversationType string

const (
	ConversationTypePartnership ConversationType = "PARTNERSHIP"
	ConversationTypeDirect      ConversationType = "DIRECT"
)

// Conversation is the derived inbox view. It is recomputed on every read and
// never persisted.
type Conversation struct {
	Type           ConversationType   `json:"type" example:"PARTNERSHIP"`
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Status         *PartnershipStatus `json:"status,omitempty"` // nil for direct conversations
	Partner        *User              `json:"partner"`
	PartnerProject *Project           `json:"partnerProject,omitempty"`
	MyProject      *Project           `json:"myProject,omitempty"`
	LastMessage    *Message           `json:"lastMessage"` // nil when no message has been sent yet
	UnreadCount    int                `json:"unreadCount"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
