package dto

// SendMessageRequest posts a message into a partnership thread
type SendMessageRequest struct {
	PartnershipID int64  `json:"partnershipId" binding:"required"`
	Content       string `json:"content" binding:"required"`
	MessageType   string `json:"messageType" binding:"omitempty,oneof=TEXT"`
}

// SendDirectMessageRequest posts a direct user-to-user message
type SendDirectMessageRequest struct {
	ReceiverID  int64  `json:"receiverId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"messageType" binding:"omitempty,oneof=TEXT"`
}

// MarkReadRequest marks a partnership thread read for the caller
type MarkReadRequest struct {
	PartnershipID int64 `json:"partnershipId" binding:"required"`
}

// MarkReadResponse reports how many messages were flipped to read
type MarkReadResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

// UnreadCountResponse carries the caller's total unread message count
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

// MessageStats summarizes the caller's messaging activity
type MessageStats struct {
	MessagesSent        int `json:"messagesSent"`
	MessagesReceived    int `json:"messagesReceived"`
	UnreadMessages      int `json:"unreadMessages"`
	ActiveConversations int `json:"activeConversations"`
	TotalMessages       int `json:"totalMessages"`
}
