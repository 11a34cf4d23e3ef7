package queries

import (
	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/matching"
	"save-serve/internal/domain/organization"
)

func toDonationView(d *donation.Donation) *DonationView {
	loc := d.Location()
	return &DonationView{
		ID:                  d.ID(),
		DonorID:             d.DonorID(),
		Title:               d.Title(),
		Description:         d.Description(),
		FoodTypes:           d.FoodTypes().Strings(),
		Portions:            d.Quantity().Portions(),
		WeightKg:            d.Quantity().WeightKg(),
		Latitude:            loc.Point.Lat,
		Longitude:           loc.Point.Lng,
		Address:             loc.Address,
		PickupStart:         d.Window().Start(),
		PickupEnd:           d.Window().End(),
		Status:              d.Status().String(),
		ClaimedBy:           d.ClaimedBy(),
		ClaimedAt:           d.ClaimedAt(),
		CompletedAt:         d.CompletedAt(),
		ImageFileIDs:        append([]string{}, d.ImageFileIDs()...),
		SpecialInstructions: d.SpecialInstructions(),
		CreatedAt:           d.CreatedAt(),
		UpdatedAt:           d.UpdatedAt(),
	}
}

func toOrganizationView(o *organization.Organization) *OrganizationView {
	loc := o.Location()
	prefs := o.Preferences()
	hours := prefs.Availability.Hours()
	stats := o.Impact()
	return &OrganizationView{
		ID:                     o.ID(),
		UserID:                 o.UserID(),
		Name:                   o.Name(),
		RegistrationNumber:     o.RegistrationNumber(),
		Type:                   string(o.Type()),
		Capacity:               o.Capacity(),
		ServiceRadiusKm:        o.ServiceRadiusKm(),
		Latitude:               loc.Point.Lat,
		Longitude:              loc.Point.Lng,
		Address:                loc.Address,
		VehicleInfo:            o.VehicleInfo(),
		VerificationStatus:     o.VerificationStatus().String(),
		VerificationDocFileIDs: append([]string{}, o.VerificationDocFileIDs()...),
		AcceptedFoodTypes:      prefs.AcceptedFoodTypes.Strings(),
		AvailableDays:          prefs.Availability.Days(),
		HoursStart:             hours.Start.String(),
		HoursEnd:               hours.End.String(),
		TotalPickups:           stats.TotalPickups,
		TotalMeals:             stats.TotalMeals,
		TotalWeightKg:          stats.TotalWeightKg,
		LastActiveAt:           o.LastActiveAt(),
		Version:                o.Version(),
		CreatedAt:              o.CreatedAt(),
		UpdatedAt:              o.UpdatedAt(),
	}
}

func toOrganizationMatch(c matching.OrganizationCandidate) *OrganizationMatchView {
	return &OrganizationMatchView{
		OrganizationID: c.Organization.ID(),
		Name:           c.Organization.Name(),
		Type:           string(c.Organization.Type()),
		Capacity:       c.Organization.Capacity(),
		DistanceKm:     c.DistanceKm,
		Score:          c.Score,
	}
}

func toDonationMatch(c matching.DonationCandidate) *DonationMatchView {
	d := c.Donation
	return &DonationMatchView{
		DonationID:  d.ID(),
		Title:       d.Title(),
		FoodTypes:   d.FoodTypes().Strings(),
		Portions:    d.Quantity().Portions(),
		WeightKg:    d.Quantity().WeightKg(),
		PickupStart: d.Window().Start(),
		PickupEnd:   d.Window().End(),
		DistanceKm:  c.DistanceKm,
		Score:       c.Score,
	}
}

func toImpactView(t impact.Totals) *ImpactView {
	return &ImpactView{
		Pickups:  t.Pickups,
		Meals:    t.Meals,
		WeightKg: t.WeightKg,
		CO2Kg:    t.CO2Kg,
	}
}

func toClaimAttemptView(a claim.Attempt) *ClaimAttemptView {
	return &ClaimAttemptView{
		DonationID:     a.DonationID,
		OrganizationID: a.OrganizationID,
		AttemptedAt:    a.AttemptedAt,
		Outcome:        string(a.Outcome),
		Reason:         a.Reason,
	}
}
