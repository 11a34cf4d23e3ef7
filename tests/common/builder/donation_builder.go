//go:build unit || e2e

package builder

import (
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	reqdto "save-serve/internal/handler/dto/request"
	"save-serve/internal/pkg/clock"

	"github.com/google/uuid"
)

// BaseTime is a Monday morning in UTC.
var BaseTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type DonationBuilder struct {
	Now                 time.Time
	DonorID             uuid.UUID
	Title               string
	Description         string
	FoodTypes           []string
	Portions            int
	WeightKg            float64
	Lat                 float64
	Lng                 float64
	Address             string
	Start               time.Time
	End                 time.Time
	ImageFileIDs        []string
	SpecialInstructions string
}

func NewDonationBuilder() *DonationBuilder {
	return &DonationBuilder{
		Now:          BaseTime,
		DonorID:      uuid.New(),
		Title:        "Surplus lunch trays",
		Description:  "Rice and vegetables from today's catering",
		FoodTypes:    []string{"cooked"},
		Portions:     20,
		WeightKg:     8,
		Lat:          -1.2921,
		Lng:          36.8219,
		Address:      "Kenyatta Ave, Nairobi",
		Start:        BaseTime.Add(time.Hour),
		End:          BaseTime.Add(5 * time.Hour),
		ImageFileIDs: []string{"file-1"},
	}
}

func (b *DonationBuilder) With(mutate func(*DonationBuilder)) *DonationBuilder {
	mutate(b)
	return b
}

func (b *DonationBuilder) WithPortions(n int) *DonationBuilder {
	b.Portions = n
	return b
}

func (b *DonationBuilder) WithFoodTypes(types ...string) *DonationBuilder {
	b.FoodTypes = types
	return b
}

func (b *DonationBuilder) WithPoint(lat, lng float64) *DonationBuilder {
	b.Lat, b.Lng = lat, lng
	return b
}

func (b *DonationBuilder) WithWindow(start, end time.Time) *DonationBuilder {
	b.Start, b.End = start, end
	return b
}

func (b *DonationBuilder) Params() (donation.NewParams, error) {
	types, err := donation.NewFoodTypes(b.FoodTypes)
	if err != nil {
		return donation.NewParams{}, err
	}
	qty, err := donation.NewQuantity(b.Portions, b.WeightKg)
	if err != nil {
		return donation.NewParams{}, err
	}
	loc, err := geo.NewLocation(b.Lat, b.Lng, b.Address)
	if err != nil {
		return donation.NewParams{}, err
	}
	window, err := donation.NewPickupWindow(b.Start, b.End, b.Now)
	if err != nil {
		return donation.NewParams{}, err
	}
	return donation.NewParams{
		DonorID:             b.DonorID,
		Title:               b.Title,
		Description:         b.Description,
		FoodTypes:           types,
		Quantity:            qty,
		Location:            loc,
		Window:              window,
		ImageFileIDs:        b.ImageFileIDs,
		SpecialInstructions: b.SpecialInstructions,
	}, nil
}

// Build methods
func (b *DonationBuilder) BuildDomain() (*donation.Donation, error) {
	p, err := b.Params()
	if err != nil {
		return nil, err
	}
	return donation.NewDonation(clock.NewMockClock(b.Now), p)
}

func (b *DonationBuilder) MustBuild() *donation.Donation {
	d, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return d
}

func (b *DonationBuilder) BuildCreateRequestDTO() reqdto.CreateDonationRequest {
	return reqdto.CreateDonationRequest{
		Title:               b.Title,
		Description:         b.Description,
		FoodTypes:           b.FoodTypes,
		Portions:            b.Portions,
		WeightKg:            b.WeightKg,
		Latitude:            b.Lat,
		Longitude:           b.Lng,
		Address:             b.Address,
		PickupStart:         b.Start,
		PickupEnd:           b.End,
		ImageFileIDs:        b.ImageFileIDs,
		SpecialInstructions: b.SpecialInstructions,
	}
}
