package converter

import (
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/organization"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const OrganizationColumns = `id, user_id, name, registration_number, org_type, capacity, service_radius_km,
	latitude, longitude, address, vehicle_info, verification_status, verification_doc_file_ids,
	accepted_food_types, available_days, hours_start, hours_end,
	total_pickups, total_meals, total_weight_kg, last_active_at, version, created_at, updated_at`

type organizationRow struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	RegistrationNumber string
	OrgType            string
	Capacity           int32
	ServiceRadiusKm    float64
	Latitude           float64
	Longitude          float64
	Address            string
	VehicleInfo        string
	VerificationStatus string
	DocFileIDs         []string
	AcceptedFoodTypes  []string
	AvailableDays      []int32
	HoursStart         int32
	HoursEnd           int32
	TotalPickups       int64
	TotalMeals         int64
	TotalWeightKg      float64
	LastActiveAt       time.Time
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ScanOrganization(row pgx.Row) (*organization.Organization, error) {
	var r organizationRow
	if err := row.Scan(
		&r.ID, &r.UserID, &r.Name, &r.RegistrationNumber, &r.OrgType, &r.Capacity, &r.ServiceRadiusKm,
		&r.Latitude, &r.Longitude, &r.Address, &r.VehicleInfo, &r.VerificationStatus, &r.DocFileIDs,
		&r.AcceptedFoodTypes, &r.AvailableDays, &r.HoursStart, &r.HoursEnd,
		&r.TotalPickups, &r.TotalMeals, &r.TotalWeightKg, &r.LastActiveAt, &r.Version, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return organizationToDomain(r)
}

func ScanOrganizations(rows pgx.Rows) ([]*organization.Organization, error) {
	defer rows.Close()
	out := make([]*organization.Organization, 0)
	for rows.Next() {
		o, err := ScanOrganization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func organizationToDomain(r organizationRow) (*organization.Organization, error) {
	orgType, err := organization.ParseType(r.OrgType)
	if err != nil {
		return nil, err
	}
	status, err := organization.ParseVerificationStatus(r.VerificationStatus)
	if err != nil {
		return nil, err
	}

	foodTypes := make(donation.FoodTypes, len(r.AcceptedFoodTypes))
	for i, f := range r.AcceptedFoodTypes {
		foodTypes[i] = donation.FoodType(f)
	}
	days := make([]int, len(r.AvailableDays))
	for i, d := range r.AvailableDays {
		days[i] = int(d)
	}
	hours := organization.HourRange{
		Start: organization.ClockTime(r.HoursStart),
		End:   organization.ClockTime(r.HoursEnd),
	}

	return organization.Reconstruct(organization.Snapshot{
		ID:                 r.ID,
		UserID:             r.UserID,
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		Type:               orgType,
		Capacity:           int(r.Capacity),
		ServiceRadiusKm:    r.ServiceRadiusKm,
		Location: geo.Location{
			Point:   geo.Point{Lat: r.Latitude, Lng: r.Longitude},
			Address: r.Address,
		},
		VehicleInfo:            r.VehicleInfo,
		VerificationStatus:     status,
		VerificationDocFileIDs: r.DocFileIDs,
		Preferences: organization.Preferences{
			AcceptedFoodTypes: foodTypes,
			Availability:      organization.ReconstructAvailability(days, hours),
		},
		Impact: organization.ImpactStats{
			TotalPickups:  r.TotalPickups,
			TotalMeals:    r.TotalMeals,
			TotalWeightKg: r.TotalWeightKg,
		},
		LastActiveAt: r.LastActiveAt.UTC(),
		Version:      r.Version,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}), nil
}

// OrganizationArgs returns the column values in OrganizationColumns order.
func OrganizationArgs(o *organization.Organization) []any {
	s := o.Snapshot()
	docs := s.VerificationDocFileIDs
	if docs == nil {
		docs = []string{}
	}
	hours := s.Preferences.Availability.Hours()
	return []any{
		s.ID, s.UserID, s.Name, s.RegistrationNumber, string(s.Type), int32(s.Capacity), s.ServiceRadiusKm,
		s.Location.Point.Lat, s.Location.Point.Lng, s.Location.Address, s.VehicleInfo, s.VerificationStatus.String(), docs,
		s.Preferences.AcceptedFoodTypes.Strings(), Days32(s.Preferences.Availability.Days()), int32(hours.Start), int32(hours.End),
		s.Impact.TotalPickups, s.Impact.TotalMeals, s.Impact.TotalWeightKg, s.LastActiveAt, s.Version, s.CreatedAt, s.UpdatedAt,
	}
}

func Days32(days []int) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}
