package donation

import (
	"errors"
	"time"
)

// MinPickupWindow is the shortest window a donor may offer.
const MinPickupWindow = time.Hour

const (
	MaxPortions = 100000
	MaxWeightKg = 10000.0
)

var (
	ErrInvalidPortions    = errors.New("portions must be between 1 and 100000")
	ErrInvalidWeight      = errors.New("weight must be greater than zero and at most 10000 kg")
	ErrInvalidWindow      = errors.New("pickup window end must be after start")
	ErrWindowTooShort     = errors.New("pickup window must be at least one hour")
	ErrWindowStartInPast  = errors.New("pickup window must start in the future")
	ErrInvalidTitle       = errors.New("title is required and must be at most 200 characters")
	ErrNoFoodTypes        = errors.New("at least one food type is required")
	ErrTooManyImages      = errors.New("too many images")
	ErrDescriptionTooLong = errors.New("description must be at most 2000 characters")
)

type Quantity struct {
	portions int
	weightKg float64
}

func NewQuantity(portions int, weightKg float64) (Quantity, error) {
	if portions < 1 || portions > MaxPortions {
		return Quantity{}, ErrInvalidPortions
	}
	if !(weightKg > 0) || weightKg > MaxWeightKg {
		return Quantity{}, ErrInvalidWeight
	}
	return Quantity{portions: portions, weightKg: weightKg}, nil
}

func ReconstructQuantity(portions int, weightKg float64) Quantity {
	return Quantity{portions: portions, weightKg: weightKg}
}

func (q Quantity) Portions() int     { return q.portions }
func (q Quantity) WeightKg() float64 { return q.weightKg }

type PickupWindow struct {
	start time.Time
	end   time.Time
}

// NewPickupWindow validates a window offered at time now. A window of exactly
// one hour is accepted; one millisecond less is rejected.
func NewPickupWindow(start, end, now time.Time) (PickupWindow, error) {
	if !end.After(start) {
		return PickupWindow{}, ErrInvalidWindow
	}
	if end.Sub(start) < MinPickupWindow {
		return PickupWindow{}, ErrWindowTooShort
	}
	if !start.After(now) {
		return PickupWindow{}, ErrWindowStartInPast
	}
	return PickupWindow{start: start.UTC(), end: end.UTC()}, nil
}

func ReconstructPickupWindow(start, end time.Time) PickupWindow {
	return PickupWindow{start: start, end: end}
}

func (w PickupWindow) Start() time.Time        { return w.start }
func (w PickupWindow) End() time.Time          { return w.end }
func (w PickupWindow) Duration() time.Duration { return w.end.Sub(w.start) }

// Ended reports whether now is past the window. The end instant itself is
// still inside the window.
func (w PickupWindow) Ended(now time.Time) bool {
	return now.After(w.end)
}
