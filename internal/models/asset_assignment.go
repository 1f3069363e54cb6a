package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetAssignment records an asset handed to a user. An assignment is "open"
// until a matching AssetReturn row exists.
type AssetAssignment struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AssetID      uuid.UUID `json:"asset_id" db:"asset_id"`
	AssignedToID uuid.UUID `json:"assigned_to_id" db:"assigned_to_id"`
	AssignedByID uuid.UUID `json:"assigned_by_id" db:"assigned_by_id"`
	AssignedDate time.Time `json:"assigned_date" db:"assigned_date"`
	Notes        string    `json:"notes" db:"notes"`
}

// ReturnCondition values accepted on asset return. Anything other than
// "good" routes the asset to under_maintenance instead of available.
const (
	ReturnConditionGood        = "good"
	ReturnConditionDamaged     = "damaged"
	ReturnConditionNeedsRepair = "needs_repair"
)

// ValidReturnCondition reports whether c is a known return condition.
func ValidReturnCondition(c string) bool {
	switch c {
	case ReturnConditionGood, ReturnConditionDamaged, ReturnConditionNeedsRepair:
		return true
	}
	return false
}

type AssetReturn struct {
	ID                uuid.UUID `json:"id" db:"id"`
	AssetAssignmentID uuid.UUID `json:"asset_assignment_id" db:"asset_assignment_id"`
	ReturnedDate      time.Time `json:"returned_date" db:"returned_date"`
	ReturnCondition   string    `json:"return_condition" db:"return_condition"`
	Notes             string    `json:"notes" db:"notes"`
}
