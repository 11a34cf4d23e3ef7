package response

import (
	"save-serve/internal/usecase/queries"
)

type OrganizationMatchResponse struct {
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Capacity       int     `json:"capacity"`
	DistanceKm     float64 `json:"distance_km"`
	Score          float64 `json:"score"`
}

func FromOrganizationMatches(views []*queries.OrganizationMatchView) []*OrganizationMatchResponse {
	return copyList[OrganizationMatchResponse](views)
}

type DonationMatchResponse struct {
	DonationID  string   `json:"donation_id"`
	Title       string   `json:"title"`
	FoodTypes   []string `json:"food_types"`
	Portions    int      `json:"portions"`
	WeightKg    float64  `json:"weight_kg"`
	PickupStart int64    `json:"pickup_start"`
	PickupEnd   int64    `json:"pickup_end"`
	DistanceKm  float64  `json:"distance_km"`
	Score       float64  `json:"score"`
}

func FromDonationMatches(views []*queries.DonationMatchView) []*DonationMatchResponse {
	return copyList[DonationMatchResponse](views)
}
