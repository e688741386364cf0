package dto

// CreatePartnershipRequest proposes a collaboration to another user
type CreatePartnershipRequest struct {
	ReceiverID      int64   `json:"receiverId" binding:"required"`
	PartnershipType string  `json:"partnershipType" binding:"required,oneof=TECHNICAL MARKETING INTEGRATION INVESTMENT ADVISORY OTHER"`
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	ProposedTerms   *string `json:"proposedTerms,omitempty"`
}

// RespondPartnershipRequest accepts or rejects a pending partnership
type RespondPartnershipRequest struct {
	Decision string `json:"decision" binding:"required,oneof=ACCEPT REJECT"`
}

// PartnershipStats summarizes a user's partnerships by status
type PartnershipStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}
