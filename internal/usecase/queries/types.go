package queries

import (
	"time"

	"github.com/google/uuid"
)

// DonationView represents read-optimized donation data
type DonationView struct {
	ID                  uuid.UUID  `json:"id"`
	DonorID             uuid.UUID  `json:"donor_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	FoodTypes           []string   `json:"food_types"`
	Portions            int        `json:"portions"`
	WeightKg            float64    `json:"weight_kg"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
	Address             string     `json:"address"`
	PickupStart         time.Time  `json:"pickup_start"`
	PickupEnd           time.Time  `json:"pickup_end"`
	Status              string     `json:"status"`
	ClaimedBy           *uuid.UUID `json:"claimed_by,omitempty"`
	ClaimedAt           *time.Time `json:"claimed_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	ImageFileIDs        []string   `json:"image_file_ids"`
	SpecialInstructions string     `json:"special_instructions"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NearbyDonationView is a donation with its distance from the search point
type NearbyDonationView struct {
	DonationView
	DistanceKm float64 `json:"distance_km"`
}

// OrganizationView represents read-optimized organization data
type OrganizationView struct {
	ID                     uuid.UUID `json:"id"`
	UserID                 uuid.UUID `json:"user_id"`
	Name                   string    `json:"name"`
	RegistrationNumber     string    `json:"registration_number"`
	Type                   string    `json:"type"`
	Capacity               int       `json:"capacity"`
	ServiceRadiusKm        float64   `json:"service_radius_km"`
	Latitude               float64   `json:"latitude"`
	Longitude              float64   `json:"longitude"`
	Address                string    `json:"address"`
	VehicleInfo            string    `json:"vehicle_info"`
	VerificationStatus     string    `json:"verification_status"`
	VerificationDocFileIDs []string  `json:"verification_doc_file_ids"`
	AcceptedFoodTypes      []string  `json:"accepted_food_types"`
	AvailableDays          []int     `json:"available_days"`
	HoursStart             string    `json:"hours_start"`
	HoursEnd               string    `json:"hours_end"`
	TotalPickups           int64     `json:"total_pickups"`
	TotalMeals             int64     `json:"total_meals"`
	TotalWeightKg          float64   `json:"total_weight_kg"`
	LastActiveAt           time.Time `json:"last_active_at"`
	Version                int64     `json:"version"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NearbyOrganizationView is an organization with its distance from the search point
type NearbyOrganizationView struct {
	OrganizationView
	DistanceKm float64 `json:"distance_km"`
}

// OrganizationMatchView is one ranked organization for a donation
type OrganizationMatchView struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Capacity       int       `json:"capacity"`
	DistanceKm     float64   `json:"distance_km"`
	Score          float64   `json:"score"`
}

// DonationMatchView is one ranked donation for an organization
type DonationMatchView struct {
	DonationID  uuid.UUID `json:"donation_id"`
	Title       string    `json:"title"`
	FoodTypes   []string  `json:"food_types"`
	Portions    int       `json:"portions"`
	WeightKg    float64   `json:"weight_kg"`
	PickupStart time.Time `json:"pickup_start"`
	PickupEnd   time.Time `json:"pickup_end"`
	DistanceKm  float64   `json:"distance_km"`
	Score       float64   `json:"score"`
}

// ImpactView is a set of cumulative rescue counters
type ImpactView struct {
	Pickups  int64   `json:"pickups"`
	Meals    int64   `json:"meals"`
	WeightKg float64 `json:"weight_kg"`
	CO2Kg    float64 `json:"co2_kg"`
}

// DonationStatsView summarizes listed donations, estimated from listed weight
type DonationStatsView struct {
	TotalDonations int64   `json:"total_donations"`
	ActiveListings int64   `json:"active_listings"`
	TotalPortions  int64   `json:"total_portions"`
	TotalWeightKg  float64 `json:"total_weight_kg"`
	EstimatedMeals int64   `json:"estimated_meals"`
	EstimatedCO2Kg float64 `json:"estimated_co2_kg"`
}

type OrganizationStatsView struct {
	Total         int64   `json:"total"`
	Verified      int64   `json:"verified"`
	Pending       int64   `json:"pending"`
	TotalPickups  int64   `json:"total_pickups"`
	TotalMeals    int64   `json:"total_meals"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

// ClaimAttemptView is one row of a donation's claim audit log
type ClaimAttemptView struct {
	DonationID     uuid.UUID `json:"donation_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	AttemptedAt    time.Time `json:"attempted_at"`
	Outcome        string    `json:"outcome"`
	Reason         string    `json:"reason,omitempty"`
}

// PointFilter is a search center and radius. A zero radius uses the
// configured default. Zero portion bounds are open.
type PointFilter struct {
	Latitude    float64
	Longitude   float64
	RadiusKm    float64
	FoodTypes   []string
	MinPortions int
	MaxPortions int
	Limit       int
}
