package donation

import (
	"errors"
	"sort"
	"strings"
)

type FoodType string

const (
	FoodCooked       FoodType = "cooked"
	FoodPackaged     FoodType = "packaged"
	FoodFreshProduce FoodType = "fresh_produce"
	FoodBakery       FoodType = "bakery"
	FoodDairy        FoodType = "dairy"
)

var ErrInvalidFoodType = errors.New("invalid food type")

func (f FoodType) IsValid() bool {
	switch f {
	case FoodCooked, FoodPackaged, FoodFreshProduce, FoodBakery, FoodDairy:
		return true
	default:
		return false
	}
}

func ParseFoodType(s string) (FoodType, error) {
	f := FoodType(strings.TrimSpace(strings.ToLower(s)))
	if !f.IsValid() {
		return "", ErrInvalidFoodType
	}
	return f, nil
}

// FoodTypes is a sorted set without duplicates.
type FoodTypes []FoodType

func NewFoodTypes(raw []string) (FoodTypes, error) {
	seen := make(map[FoodType]struct{}, len(raw))
	out := make(FoodTypes, 0, len(raw))
	for _, s := range raw {
		f, err := ParseFoodType(s)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (fs FoodTypes) Contains(f FoodType) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func (fs FoodTypes) Intersects(other FoodTypes) bool {
	for _, f := range fs {
		if other.Contains(f) {
			return true
		}
	}
	return false
}

func (fs FoodTypes) Strings() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}

type Status string

const (
	StatusAvailable    Status = "available"
	StatusClaimPending Status = "claim_pending"
	StatusClaimed      Status = "claimed"
	StatusPickedUp     Status = "picked_up"
	StatusCancelled    Status = "cancelled"
	StatusExpired      Status = "expired"
)

var ErrInvalidStatus = errors.New("invalid donation status")

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusAvailable, StatusClaimPending, StatusClaimed, StatusPickedUp, StatusCancelled, StatusExpired:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return s == StatusPickedUp || s == StatusCancelled || s == StatusExpired
}

var transitions = map[Status][]Status{
	StatusAvailable:    {StatusClaimPending, StatusClaimed, StatusCancelled, StatusExpired},
	StatusClaimPending: {StatusClaimed, StatusAvailable, StatusCancelled, StatusExpired},
	StatusClaimed:      {StatusPickedUp, StatusAvailable, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
