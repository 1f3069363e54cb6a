package models

import (
	"time"

	"github.com/google/uuid"
)

type AssetCategory struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	OrganizationID      uuid.UUID `json:"organization_id" db:"organization_id"`
	Name                string    `json:"name" db:"name"`
	Description         string    `json:"description" db:"description"`
	RelevantInputFields string    `json:"relevant_input_fields" db:"relevant_input_fields"` // opaque category-specific descriptor
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
