package response

import (
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/queries"
)

type DonationResponse struct {
	ID                  string   `json:"id"`
	DonorID             string   `json:"donor_id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	FoodTypes           []string `json:"food_types"`
	Portions            int      `json:"portions"`
	WeightKg            float64  `json:"weight_kg"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	Address             string   `json:"address"`
	PickupStart         int64    `json:"pickup_start"`
	PickupEnd           int64    `json:"pickup_end"`
	Status              string   `json:"status"`
	ClaimedBy           *string  `json:"claimed_by,omitempty"`
	ClaimedAt           *int64   `json:"claimed_at,omitempty"`
	CompletedAt         *int64   `json:"completed_at,omitempty"`
	ImageFileIDs        []string `json:"image_file_ids"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
	CreatedAt           int64    `json:"created_at"`
	UpdatedAt           int64    `json:"updated_at"`
}

func FromDonationView(v *queries.DonationView) *DonationResponse {
	return copyInto[DonationResponse](v)
}

type DonationListResponse struct {
	Items      []*DonationResponse `json:"items"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

func FromDonationList(views []*queries.DonationView, next *queries.Cursor) *DonationListResponse {
	res := &DonationListResponse{Items: copyList[DonationResponse](views)}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}

type NearbyDonationResponse struct {
	DonationResponse
	DistanceKm float64 `json:"distance_km"`
}

func FromNearbyDonations(views []*queries.NearbyDonationView) []*NearbyDonationResponse {
	res := make([]*NearbyDonationResponse, len(views))
	for i, v := range views {
		res[i] = &NearbyDonationResponse{
			DonationResponse: *FromDonationView(&v.DonationView),
			DistanceKm:       v.DistanceKm,
		}
	}
	return res
}

type CreateDonationResponse struct {
	Donation *DonationResponse `json:"donation"`
	// Organizations notified about the new listing.
	Notified int `json:"notified"`
}

func FromCreateDonation(v *queries.DonationView, result *commands.CreateDonationResult) *CreateDonationResponse {
	return &CreateDonationResponse{Donation: FromDonationView(v), Notified: result.Notified}
}

type DonationStatsResponse struct {
	TotalDonations int64   `json:"total_donations"`
	ActiveListings int64   `json:"active_listings"`
	TotalPortions  int64   `json:"total_portions"`
	TotalWeightKg  float64 `json:"total_weight_kg"`
	EstimatedMeals int64   `json:"estimated_meals"`
	EstimatedCO2Kg float64 `json:"estimated_co2_kg"`
}

func FromDonationStats(v *queries.DonationStatsView) *DonationStatsResponse {
	return copyInto[DonationStatsResponse](v)
}
