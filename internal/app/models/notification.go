package models

import "time"

// NotificationType represents the kind of event a notification describes
type NotificationType string

const (
	NotificationTypePartnershipRequest  NotificationType = "PARTNERSHIP_REQUEST"
	NotificationTypePartnershipAccepted NotificationType = "PARTNERSHIP_ACCEPTED"
	NotificationTypePartnershipRejected NotificationType = "PARTNERSHIP_REJECTED"
	NotificationTypeNewMessage          NotificationType = "NEW_MESSAGE"
	NotificationTypeSystem              NotificationType = "SYSTEM"
)

// Notification defines a row from the 'notifications' table. The partnership
// id is a lookup back-reference only, never an ownership relation.
type Notification struct {
	ID               int64            `json:"id" db:"id"`
	UserID           int64            `json:"userId" db:"user_id"`
	Title            string           `json:"title" db:"title"`
	Content          string           `json:"content" db:"content"`
	NotificationType NotificationType `json:"notificationType" db:"notification_type" example:"PARTNERSHIP_REQUEST"`
	PartnershipID    *int64           `json:"partnershipId,omitempty" db:"partnership_id"`
	IsRead           bool             `json:"isRead" db:"is_read"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
}
