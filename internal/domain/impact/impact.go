package impact

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// KgPerMeal is the food weight counted as one rescued meal.
	KgPerMeal = 0.4
	// CO2KgPerKg is the CO2 equivalent avoided per kilogram of food rescued.
	CO2KgPerKg = 3.3
	// MaxWeightKg bounds a single pickup so derived counters cannot overflow.
	MaxWeightKg = 10000.0
)

var ErrInvalidWeight = errors.New("actual weight must be greater than zero and at most 10000 kg")

type Delta struct {
	Meals    int64
	WeightKg float64
	CO2Kg    float64
}

// Compute derives the impact of rescuing weightKg of food.
func Compute(weightKg float64) (Delta, error) {
	if !(weightKg > 0) || weightKg > MaxWeightKg {
		return Delta{}, ErrInvalidWeight
	}
	return Delta{
		Meals:    int64(math.Round(weightKg / KgPerMeal)),
		WeightKg: weightKg,
		CO2Kg:    weightKg * CO2KgPerKg,
	}, nil
}

// Totals are cumulative counters for an organization, a donor or the platform.
type Totals struct {
	Pickups  int64
	Meals    int64
	WeightKg float64
	CO2Kg    float64
}

func (t Totals) Add(d Delta) Totals {
	return Totals{
		Pickups:  t.Pickups + 1,
		Meals:    t.Meals + d.Meals,
		WeightKg: t.WeightKg + d.WeightKg,
		CO2Kg:    t.CO2Kg + d.CO2Kg,
	}
}

// PickupRecord is the row that makes a pickup count exactly once.
type PickupRecord struct {
	DonationID     uuid.UUID
	OrganizationID uuid.UUID
	DonorID        uuid.UUID
	Delta          Delta
	RecordedAt     time.Time
}
