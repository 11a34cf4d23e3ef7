package response

import (
	"save-serve/internal/usecase/queries"
)

type ImpactResponse struct {
	Pickups  int64   `json:"pickups"`
	Meals    int64   `json:"meals"`
	WeightKg float64 `json:"weight_kg"`
	CO2Kg    float64 `json:"co2_kg"`
}

func FromImpactView(v *queries.ImpactView) *ImpactResponse {
	return copyInto[ImpactResponse](v)
}
