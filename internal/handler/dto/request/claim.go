package request

import (
	"github.com/google/uuid"
)

type ClaimRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
}

type PickupRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
	// Omitted means the listed weight.
	ActualWeightKg *float64 `json:"actual_weight_kg" binding:"omitempty,gt=0,lte=10000"`
}
