package matching

import (
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/organization"
)

type Reason string

const (
	ReasonUnverified Reason = "unverified"
	ReasonCapacity   Reason = "capacity"
	ReasonFoodType   Reason = "food_type"
	ReasonSchedule   Reason = "schedule"
)

type Decision struct {
	Eligible bool
	Reason   Reason
}

func accept() Decision         { return Decision{Eligible: true} }
func reject(r Reason) Decision { return Decision{Reason: r} }

// EligibilityFilter decides whether an organization may receive a donation.
// Rules are evaluated in a fixed order and the first failing rule is reported.
// It performs no I/O and never reads the clock.
type EligibilityFilter struct {
	loc *time.Location
}

// NewEligibilityFilter evaluates opening hours on the wall clock of loc.
func NewEligibilityFilter(loc *time.Location) EligibilityFilter {
	if loc == nil {
		loc = time.UTC
	}
	return EligibilityFilter{loc: loc}
}

func (f EligibilityFilter) Check(d *donation.Donation, o *organization.Organization) Decision {
	if !o.IsVerified() {
		return reject(ReasonUnverified)
	}
	if d.Quantity().Portions() > o.Capacity() {
		return reject(ReasonCapacity)
	}
	if !d.FoodTypes().Intersects(o.Preferences().AcceptedFoodTypes) {
		return reject(ReasonFoodType)
	}
	w := d.Window()
	if !o.Preferences().Availability.Overlaps(w.Start(), w.End(), f.loc) {
		return reject(ReasonSchedule)
	}
	return accept()
}
