package models

import (
	"github.com/google/uuid"
)

// AssetStatus is the fixed, globally shared status enumeration. Rows are
// seeded once; the Name column drives the lifecycle state machine.
type AssetStatus struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Seeded status names.
const (
	StatusAvailable        = "available"
	StatusAssigned         = "assigned"
	StatusUnderMaintenance = "under_maintenance"
	StatusRetired          = "retired"
)
