package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetMaintenance logs work done while an asset is under maintenance.
// CompletedAt is nil while the maintenance spell is still open.
type AssetMaintenance struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	AssetID         uuid.UUID  `json:"asset_id" db:"asset_id"`
	MaintenanceDate time.Time  `json:"maintenance_date" db:"maintenance_date"`
	Description     string     `json:"description" db:"description"`
	CompletedAt     *time.Time `json:"completed_at" db:"completed_at"`
}
