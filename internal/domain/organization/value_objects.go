package organization

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	minutesPerDay = 24 * 60

	DefaultServiceRadiusKm = 10.0
	MinServiceRadiusKm     = 1.0
	MinCapacity            = 1
	MaxCapacity            = 100000
)

var (
	ErrInvalidDay       = errors.New("available days must be between 0 (Sunday) and 6 (Saturday)")
	ErrNoAvailableDays  = errors.New("at least one available day is required")
	ErrInvalidClockTime = errors.New("time of day must be HH:MM")
)

// ClockTime is a time of day in minutes after midnight.
type ClockTime int

func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClockTime
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, ErrInvalidClockTime
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidClockTime
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// HourRange is the daily window an organization can collect in. An end at or
// before start wraps past midnight; equal start and end means the whole day.
type HourRange struct {
	Start ClockTime
	End   ClockTime
}

func NewHourRange(start, end string) (HourRange, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return HourRange{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return HourRange{}, err
	}
	return HourRange{Start: s, End: e}, nil
}

func (r HourRange) length() time.Duration {
	mins := int(r.End) - int(r.Start)
	if mins <= 0 {
		mins += minutesPerDay
	}
	return time.Duration(mins) * time.Minute
}

// Availability is a set of weekdays combined with a daily hour range.
type Availability struct {
	days  [7]bool
	hours HourRange
}

func NewAvailability(days []int, hours HourRange) (Availability, error) {
	if len(days) == 0 {
		return Availability{}, ErrNoAvailableDays
	}
	var a Availability
	for _, d := range days {
		if d < 0 || d > 6 {
			return Availability{}, ErrInvalidDay
		}
		a.days[d] = true
	}
	a.hours = hours
	return a, nil
}

func ReconstructAvailability(days []int, hours HourRange) Availability {
	var a Availability
	for _, d := range days {
		if d >= 0 && d <= 6 {
			a.days[d] = true
		}
	}
	a.hours = hours
	return a
}

func (a Availability) Days() []int {
	out := make([]int, 0, 7)
	for d, ok := range a.days {
		if ok {
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

func (a Availability) Hours() HourRange { return a.hours }

func (a Availability) HasDay(d time.Weekday) bool {
	return a.days[int(d)]
}

// Overlaps reports whether [start, end) intersects any opening interval,
// evaluated on the wall clock of loc. Each opening interval begins on an
// available weekday; an interval that wraps midnight belongs to the day it
// starts on.
func (a Availability) Overlaps(start, end time.Time, loc *time.Location) bool {
	if !end.After(start) {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	ls := start.In(loc)
	le := end.In(loc)

	// Opening intervals that start the day before may still be running.
	day := time.Date(ls.Year(), ls.Month(), ls.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	last := time.Date(le.Year(), le.Month(), le.Day(), 0, 0, 0, 0, loc)

	for !day.After(last) {
		if a.HasDay(day.Weekday()) {
			opening := time.Date(day.Year(), day.Month(), day.Day(), 0, int(a.hours.Start), 0, 0, loc)
			closing := opening.Add(a.hours.length())
			if opening.Before(le) && closing.After(ls) {
				return true
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return false
}

// ImpactStats are lifetime counters owned by impact accounting.
type ImpactStats struct {
	TotalPickups  int64
	TotalMeals    int64
	TotalWeightKg float64
}
