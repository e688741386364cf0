package models

import "time"

// PartnershipStatus represents the lifecycle state of a partnership.
// PENDING is the only non-terminal state; there is no re-open transition.
type PartnershipStatus string

const (
	PartnershipStatusPending  PartnershipStatus = "PENDING"
	PartnershipStatusAccepted PartnershipStatus = "ACCEPTED"
	PartnershipStatusRejected PartnershipStatus = "REJECTED"
)

// PartnershipType classifies what kind of collaboration is being proposed
type PartnershipType string

const (
	PartnershipTypeTechnical   PartnershipType = "TECHNICAL"
	PartnershipTypeMarketing   PartnershipType = "MARKETING"
	PartnershipTypeIntegration PartnershipType = "INTEGRATION"
	PartnershipTypeInvestment  PartnershipType = "INVESTMENT"
	PartnershipTypeAdvisory    PartnershipType = "ADVISORY"
	PartnershipTypeOther       PartnershipType = "OTHER"
)

// Partnership defines the partnership model based on the 'partnerships' table.
// Requester, receiver and the two project references are immutable after
// creation; only status and responded_at change, exactly once.
type Partnership struct {
	ID                 int64             `json:"id" db:"id"`
	RequesterID        int64             `json:"requesterId" db:"requester_id"`
	ReceiverID         int64             `json:"receiverId" db:"receiver_id"`
	RequesterProjectID int64             `json:"requesterProjectId" db:"requester_project_id"`
	ReceiverProjectID  int64             `json:"receiverProjectId" db:"receiver_project_id"`
	PartnershipType    PartnershipType   `json:"partnershipType" db:"partnership_type" example:"INTEGRATION"`
	Title              string            `json:"title" db:"title"`
	Description        string            `json:"description" db:"description"`
	ProposedTerms      *string           `json:"proposedTerms,omitempty" db:"proposed_terms"`
	Status             PartnershipStatus `json:"status" db:"status" example:"PENDING"`
	RespondedAt        *time.Time        `json:"respondedAt,omitempty" db:"responded_at"`
	CreatedAt          time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time         `json:"updatedAt" db:"updated_at"`

	// Related entities
	Requester        *User    `json:"requester,omitempty"`
	Receiver         *User    `json:"receiver,omitempty"`
	RequesterProject *Project `json:"requesterProject,omitempty"`
	ReceiverProject  *Project `json:"receiverProject,omitempty"`
}

// IsParticipant reports whether the given user is one of the two sides.
func (p *Partnership) IsParticipant(userID int64) bool {
	return p.RequesterID == userID || p.ReceiverID == userID
}

// OtherParticipant returns the opposite side of the partnership for a
// participant, or 0 if the user is not a participant.
func (p *Partnership) OtherParticipant(userID int64) int64 {
	switch userID {
	case p.RequesterID:
		return p.ReceiverID
	case p.ReceiverID:
		return p.RequesterID
	}
	return 0
}
