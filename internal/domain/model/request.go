package model

import "time"

const (
	RequestTypeHandle = "handle"
	RequestTypeTeam   = "team"

	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Request is a passkey-gated membership request awaiting admin review.
// Handle requests carry Handle/Name/Roll/Batch; team requests carry
// TeamName/TeamHandles.
type Request struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Handle      string     `json:"handle,omitempty"`
	Name        string     `json:"name,omitempty"`
	Roll        string     `json:"roll,omitempty"`
	Batch       string     `json:"batch,omitempty"`
	TeamName    string     `json:"teamName,omitempty"`
	TeamHandles string     `json:"teamHandles,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
