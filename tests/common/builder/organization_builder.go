//go:build unit || e2e

package builder

import (
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/organization"
	reqdto "save-serve/internal/handler/dto/request"
	"save-serve/internal/pkg/clock"

	"github.com/google/uuid"
)

type OrganizationBuilder struct {
	Now                time.Time
	UserID             uuid.UUID
	Name               string
	RegistrationNumber string
	Type               string
	Capacity           int
	ServiceRadiusKm    float64
	Lat                float64
	Lng                float64
	Address            string
	AcceptedFoodTypes  []string
	AvailableDays      []int
	HoursStart         string
	HoursEnd           string
	DocFileIDs         []string
	Verified           bool
}

func NewOrganizationBuilder() *OrganizationBuilder {
	return &OrganizationBuilder{
		Now:                BaseTime,
		UserID:             uuid.New(),
		Name:               "Mathare Community Kitchen",
		RegistrationNumber: "NGO-2024-0117",
		Type:               string(organization.TypeCommunityCenter),
		Capacity:           50,
		ServiceRadiusKm:    10,
		Lat:                -1.2833,
		Lng:                36.8167,
		Address:            "Mathare North Rd, Nairobi",
		AcceptedFoodTypes:  []string{"cooked", "bakery"},
		AvailableDays:      []int{0, 1, 2, 3, 4, 5, 6},
		HoursStart:         "08:00",
		HoursEnd:           "20:00",
		DocFileIDs:         []string{"doc-1"},
		Verified:           true,
	}
}

func (b *OrganizationBuilder) With(mutate func(*OrganizationBuilder)) *OrganizationBuilder {
	mutate(b)
	return b
}

func (b *OrganizationBuilder) WithCapacity(n int) *OrganizationBuilder {
	b.Capacity = n
	return b
}

func (b *OrganizationBuilder) WithPoint(lat, lng float64) *OrganizationBuilder {
	b.Lat, b.Lng = lat, lng
	return b
}

func (b *OrganizationBuilder) Unverified() *OrganizationBuilder {
	b.Verified = false
	return b
}

func (b *OrganizationBuilder) Params() (organization.NewParams, error) {
	accepted, err := donation.NewFoodTypes(b.AcceptedFoodTypes)
	if err != nil {
		return organization.NewParams{}, err
	}
	hours, err := organization.NewHourRange(b.HoursStart, b.HoursEnd)
	if err != nil {
		return organization.NewParams{}, err
	}
	avail, err := organization.NewAvailability(b.AvailableDays, hours)
	if err != nil {
		return organization.NewParams{}, err
	}
	loc, err := geo.NewLocation(b.Lat, b.Lng, b.Address)
	if err != nil {
		return organization.NewParams{}, err
	}
	return organization.NewParams{
		UserID:                 b.UserID,
		Name:                   b.Name,
		RegistrationNumber:     b.RegistrationNumber,
		Type:                   organization.Type(b.Type),
		Capacity:               b.Capacity,
		ServiceRadiusKm:        b.ServiceRadiusKm,
		Location:               loc,
		VerificationDocFileIDs: b.DocFileIDs,
		Preferences: organization.Preferences{
			AcceptedFoodTypes: accepted,
			Availability:      avail,
		},
	}, nil
}

// Build methods
func (b *OrganizationBuilder) BuildDomain() (*organization.Organization, error) {
	p, err := b.Params()
	if err != nil {
		return nil, err
	}
	o, err := organization.NewOrganization(clock.NewMockClock(b.Now), p)
	if err != nil {
		return nil, err
	}
	if b.Verified {
		if err := o.SetVerification(organization.VerificationVerified, b.Now); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (b *OrganizationBuilder) MustBuild() *organization.Organization {
	o, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return o
}

func (b *OrganizationBuilder) BuildRegisterRequestDTO() reqdto.RegisterOrganizationRequest {
	return reqdto.RegisterOrganizationRequest{
		Name:                   b.Name,
		RegistrationNumber:     b.RegistrationNumber,
		Type:                   b.Type,
		Capacity:               b.Capacity,
		ServiceRadiusKm:        b.ServiceRadiusKm,
		Latitude:               b.Lat,
		Longitude:              b.Lng,
		Address:                b.Address,
		AcceptedFoodTypes:      b.AcceptedFoodTypes,
		AvailableDays:          b.AvailableDays,
		HoursStart:             b.HoursStart,
		HoursEnd:               b.HoursEnd,
		VerificationDocFileIDs: b.DocFileIDs,
	}
}
