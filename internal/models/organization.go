package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant-scoping root. Deactivation is a soft delete:
// Active flips to false and the row is kept.
type Organization struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// OrganizationDomain maps an email domain (e.g. "@acme.com") to the single
// organization that owns it. Employee self-signup routes through this table.
type OrganizationDomain struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Domain         string    `json:"domain" db:"domain"`
}
