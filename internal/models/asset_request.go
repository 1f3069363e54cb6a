package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset request lifecycle states.
const (
	RequestPending   = "PENDING"
	RequestApproved  = "APPROVED"
	RequestRejected  = "REJECTED"
	RequestCancelled = "CANCELLED"
)

// Request processing actions.
const (
	RequestActionApprove = "APPROVE"
	RequestActionReject  = "REJECT"
)

// AssetRequest is an employee's ask for equipment. Approval does not assign an
// asset by itself; a manager follows up with an explicit assignment.
type AssetRequest struct {
	ID             uuid.UUID `json:"id" db:"id"`
	RequesterID    uuid.UUID `json:"requester_id" db:"requester_id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Description    string    `json:"request_description" db:"request_description"`
	Status         string    `json:"request_status" db:"request_status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
