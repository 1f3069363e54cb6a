package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a mutating request against an organization's resources.
type AuditLog struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Action         string    `json:"action" db:"action"`
	Resource       string    `json:"resource" db:"resource"`
	StatusCode     int       `json:"status_code" db:"status_code"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
