package commands

import (
	"time"

	"github.com/google/uuid"
)

// Kicker wakes the notification dispatcher after a commit that enqueued
// events. It never blocks.
type Kicker interface {
	Kick()
}

type CreateDonationRequest struct {
	Title               string
	Description         string
	FoodTypes           []string
	Portions            int
	WeightKg            float64
	Latitude            float64
	Longitude           float64
	Address             string
	PickupStart         time.Time
	PickupEnd           time.Time
	ImageFileIDs        []string
	SpecialInstructions string
}

type CreateDonationResult struct {
	DonationID uuid.UUID
	// Organizations sent a new_donation notification.
	Notified int
}

type RegisterOrganizationRequest struct {
	Name                   string
	RegistrationNumber     string
	Type                   string
	Capacity               int
	ServiceRadiusKm        float64
	Latitude               float64
	Longitude              float64
	Address                string
	VehicleInfo            string
	AcceptedFoodTypes      []string
	AvailableDays          []int
	HoursStart             string
	HoursEnd               string
	VerificationDocFileIDs []string
}

// UpdateOrganizationRequest changes an organization's matching profile. Nil
// fields keep their current value. Latitude and longitude go together.
type UpdateOrganizationRequest struct {
	// Rejects the update when the stored version differs.
	ExpectedVersion   *int64
	Name              *string
	Capacity          *int
	ServiceRadiusKm   *float64
	Latitude          *float64
	Longitude         *float64
	Address           *string
	VehicleInfo       *string
	AcceptedFoodTypes []string
	AvailableDays     []int
	HoursStart        *string
	HoursEnd          *string
}

type RecordPickupRequest struct {
	DonationID     uuid.UUID
	OrganizationID uuid.UUID
	// Nil falls back to the listed weight.
	ActualWeightKg *float64
}
