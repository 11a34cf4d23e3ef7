package request

import (
	"save-serve/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type RegisterOrganizationRequest struct {
	Name                   string   `json:"name" binding:"required,max=200"`
	RegistrationNumber     string   `json:"registration_number"`
	Type                   string   `json:"type" binding:"required,oneof=shelter food_bank community_center ngo"`
	Capacity               int      `json:"capacity" binding:"required,min=1,max=100000"`
	ServiceRadiusKm        float64  `json:"service_radius_km" binding:"omitempty,min=1"`
	Latitude               float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude              float64  `json:"longitude" binding:"min=-180,max=180"`
	Address                string   `json:"address" binding:"required"`
	VehicleInfo            string   `json:"vehicle_info"`
	AcceptedFoodTypes      []string `json:"accepted_food_types" binding:"required,min=1"`
	AvailableDays          []int    `json:"available_days" binding:"required,min=1,dive,min=0,max=6"`
	HoursStart             string   `json:"hours_start" binding:"required"`
	HoursEnd               string   `json:"hours_end" binding:"required"`
	VerificationDocFileIDs []string `json:"verification_doc_file_ids"`
}

func (r *RegisterOrganizationRequest) ToCommand() (commands.RegisterOrganizationRequest, error) {
	var cmd commands.RegisterOrganizationRequest
	if err := copier.Copy(&cmd, r); err != nil {
		return commands.RegisterOrganizationRequest{}, err
	}
	return cmd, nil
}

// UpdateOrganizationRequest is a partial update: absent fields keep their
// value. version, when sent, must match the stored one.
type UpdateOrganizationRequest struct {
	ExpectedVersion   *int64   `json:"version" binding:"omitempty,min=1"`
	Name              *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Capacity          *int     `json:"capacity" binding:"omitempty,min=1,max=100000"`
	ServiceRadiusKm   *float64 `json:"service_radius_km" binding:"omitempty,min=1"`
	Latitude          *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude         *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Address           *string  `json:"address" binding:"omitempty,min=1"`
	VehicleInfo       *string  `json:"vehicle_info"`
	AcceptedFoodTypes []string `json:"accepted_food_types" binding:"omitempty,min=1"`
	AvailableDays     []int    `json:"available_days" binding:"omitempty,min=1,dive,min=0,max=6"`
	HoursStart        *string  `json:"hours_start"`
	HoursEnd          *string  `json:"hours_end"`
}

func (r *UpdateOrganizationRequest) ToCommand() (commands.UpdateOrganizationRequest, error) {
	var cmd commands.UpdateOrganizationRequest
	if err := copier.Copy(&cmd, r); err != nil {
		return commands.UpdateOrganizationRequest{}, err
	}
	return cmd, nil
}

type SetVerificationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending verified rejected"`
}

type ResubmitRequest struct {
	VerificationDocFileIDs []string `json:"verification_doc_file_ids" binding:"required,min=1"`
}
