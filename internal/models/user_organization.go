package models

import (
	"time"

	"github.com/google/uuid"
)

// UserOrganization records membership: the authoritative link for "does user X
// act within organization Y", plus the role the user holds there.
type UserOrganization struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Role           string    `json:"role" db:"role"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
