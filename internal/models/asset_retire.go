package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetRetire is the terminal record for an asset. A retired asset accepts no
// further transitions.
type AssetRetire struct {
	ID               uuid.UUID `json:"id" db:"id"`
	AssetID          uuid.UUID `json:"asset_id" db:"asset_id"`
	RetiredOn        time.Time `json:"retired_on" db:"retired_on"`
	RetirementReason string    `json:"retirement_reason" db:"retirement_reason"`
}
