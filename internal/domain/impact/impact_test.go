//go:build unit

package impact_test

import (
	"math"
	"testing"

	"save-serve/internal/domain/impact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		name  string
		kg    float64
		meals int64
		co2   float64
	}{
		{name: "exact meals", kg: 4, meals: 10, co2: 13.2},
		{name: "rounds half up", kg: 1.0, meals: 3, co2: 3.3},
		{name: "rounds down", kg: 0.5, meals: 1, co2: 1.65},
		{name: "less than half a meal", kg: 0.1, meals: 0, co2: 0.33},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := impact.Compute(c.kg)
			require.NoError(t, err)
			assert.Equal(t, c.meals, d.Meals)
			assert.InDelta(t, c.kg, d.WeightKg, 1e-9)
			assert.InDelta(t, c.co2, d.CO2Kg, 1e-9)
		})
	}

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1), impact.MaxWeightKg + 0.001, 1e300} {
		_, err := impact.Compute(bad)
		assert.ErrorIs(t, err, impact.ErrInvalidWeight, "weight %v", bad)
	}
}

func TestCompute_HeaviestPickupKeepsTotalsPositive(t *testing.T) {
	d, err := impact.Compute(impact.MaxWeightKg)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), d.Meals)

	totals := impact.Totals{}.Add(d).Add(d)
	assert.Positive(t, totals.Meals)
	assert.Equal(t, int64(50000), totals.Meals)
}

func TestTotalsAdd(t *testing.T) {
	d, err := impact.Compute(8)
	require.NoError(t, err)

	var totals impact.Totals
	totals = totals.Add(d).Add(d)

	assert.Equal(t, int64(2), totals.Pickups)
	assert.Equal(t, int64(40), totals.Meals)
	assert.InDelta(t, 16, totals.WeightKg, 1e-9)
	assert.InDelta(t, 52.8, totals.CO2Kg, 1e-9)
}
