package models

import (
	"time"

	"github.com/google/uuid"
)

type Asset struct {
	ID                        uuid.UUID  `json:"id" db:"id"`
	OrganizationID            uuid.UUID  `json:"organization_id" db:"organization_id"`
	Name                      string     `json:"name" db:"name"`
	Description               string     `json:"description" db:"description"`
	PurchaseDate              *time.Time `json:"purchase_date" db:"purchase_date"`
	PurchasePrice             *float64   `json:"purchase_price" db:"purchase_price"`
	SerialNumber              string     `json:"serial_number" db:"serial_number"`
	AssetIdentificationNumber *string    `json:"asset_identification_number" db:"asset_identification_number"` // unique system-wide when present
	Manufacturer              string     `json:"manufacturer" db:"manufacturer"`
	Model                     string     `json:"model" db:"model"`
	CategoryRelevantFields    string     `json:"category_relevant_fields_data" db:"category_relevant_fields_data"` // opaque, shaped by the category
	AssetCategoryID           uuid.UUID  `json:"asset_category_id" db:"asset_category_id"`
	AssetTypeID               uuid.UUID  `json:"asset_type_id" db:"asset_type_id"`
	VendorID                  uuid.UUID  `json:"vendor_id" db:"vendor_id"`
	AssetStatusID             uuid.UUID  `json:"asset_status_id" db:"asset_status_id"`
	Status                    string     `json:"status" db:"-"` // joined status name
	ImageObject               *string    `json:"image_object" db:"image_object"`
	CreatedAt                 time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at" db:"updated_at"`
}

// AssetPatch carries partial-update fields for an asset. A nil pointer means
// "leave unchanged"; a pointer to the zero value clears the field.
type AssetPatch struct {
	Name                   *string    `json:"name,omitempty"`
	Description            *string    `json:"description,omitempty"`
	PurchaseDate           *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice          *float64   `json:"purchase_price,omitempty"`
	Manufacturer           *string    `json:"manufacturer,omitempty"`
	Model                  *string    `json:"model,omitempty"`
	CategoryRelevantFields *string    `json:"category_relevant_fields_data,omitempty"`
	AssetCategoryID        *uuid.UUID `json:"asset_category_id,omitempty"`
	AssetTypeID            *uuid.UUID `json:"asset_type_id,omitempty"`
	VendorID               *uuid.UUID `json:"vendor_id,omitempty"`
}
