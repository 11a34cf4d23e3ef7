package response

import (
	"save-serve/internal/usecase/queries"
)

type OrganizationResponse struct {
	ID                     string   `json:"id"`
	UserID                 string   `json:"user_id"`
	Name                   string   `json:"name"`
	RegistrationNumber     string   `json:"registration_number,omitempty"`
	Type                   string   `json:"type"`
	Capacity               int      `json:"capacity"`
	ServiceRadiusKm        float64  `json:"service_radius_km"`
	Latitude               float64  `json:"latitude"`
	Longitude              float64  `json:"longitude"`
	Address                string   `json:"address"`
	VehicleInfo            string   `json:"vehicle_info,omitempty"`
	VerificationStatus     string   `json:"verification_status"`
	VerificationDocFileIDs []string `json:"verification_doc_file_ids"`
	AcceptedFoodTypes      []string `json:"accepted_food_types"`
	AvailableDays          []int    `json:"available_days"`
	HoursStart             string   `json:"hours_start"`
	HoursEnd               string   `json:"hours_end"`
	TotalPickups           int64    `json:"total_pickups"`
	TotalMeals             int64    `json:"total_meals"`
	TotalWeightKg          float64  `json:"total_weight_kg"`
	LastActiveAt           int64    `json:"last_active_at"`
	Version                int64    `json:"version"`
	CreatedAt              int64    `json:"created_at"`
	UpdatedAt              int64    `json:"updated_at"`
}

func FromOrganizationView(v *queries.OrganizationView) *OrganizationResponse {
	return copyInto[OrganizationResponse](v)
}

func FromOrganizationList(views []*queries.OrganizationView) []*OrganizationResponse {
	return copyList[OrganizationResponse](views)
}

type NearbyOrganizationResponse struct {
	OrganizationResponse
	DistanceKm float64 `json:"distance_km"`
}

func FromNearbyOrganizations(views []*queries.NearbyOrganizationView) []*NearbyOrganizationResponse {
	res := make([]*NearbyOrganizationResponse, len(views))
	for i, v := range views {
		res[i] = &NearbyOrganizationResponse{
			OrganizationResponse: *FromOrganizationView(&v.OrganizationView),
			DistanceKm:           v.DistanceKm,
		}
	}
	return res
}

type OrganizationStatsResponse struct {
	Total         int64   `json:"total"`
	Verified      int64   `json:"verified"`
	Pending       int64   `json:"pending"`
	TotalPickups  int64   `json:"total_pickups"`
	TotalMeals    int64   `json:"total_meals"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

func FromOrganizationStats(v *queries.OrganizationStatsView) *OrganizationStatsResponse {
	return copyInto[OrganizationStatsResponse](v)
}
