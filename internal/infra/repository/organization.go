package repository

import (
	"context"
	"time"

	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/organization"
	"save-serve/internal/infra"
	"save-serve/internal/infra/db"
	"save-serve/internal/infra/repository/converter"
	"save-serve/internal/pkg/pgconv"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrganizationRepository struct {
	db db.DBTX
}

func NewOrganizationRepository(dbtx db.DBTX) *OrganizationRepository {
	return &OrganizationRepository{db: dbtx}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *organization.Organization) error {
	query := `INSERT INTO organizations (` + converter.OrganizationColumns + `) VALUES (` + placeholders(24) + `)`
	if _, err := r.db.Exec(ctx, query, converter.OrganizationArgs(o)...); err != nil {
		return infra.WrapRepoErr("failed to create organization", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	row := r.db.QueryRow(ctx, `SELECT `+converter.OrganizationColumns+` FROM organizations WHERE id = $1`, id)
	o, err := converter.ScanOrganization(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("organization not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find organization", err)
	}
	return o, nil
}

func (r *OrganizationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*organization.Organization, error) {
	if len(ids) == 0 {
		return []*organization.Organization{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+converter.OrganizationColumns+` FROM organizations WHERE id = ANY($1::uuid[])`,
		uuidStrings(ids))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find organizations", err)
	}
	out, err := converter.ScanOrganizations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan organizations", err)
	}
	return out, nil
}

func (r *OrganizationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*organization.Organization, error) {
	row := r.db.QueryRow(ctx, `SELECT `+converter.OrganizationColumns+` FROM organizations WHERE user_id = $1`, userID)
	o, err := converter.ScanOrganization(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("organization not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find organization", err)
	}
	return o, nil
}

// Update writes the profile and verification columns, guarded by the
// previous version. Impact counters and last_active_at are owned by
// AddImpact and TouchActivity.
func (r *OrganizationRepository) Update(ctx context.Context, o *organization.Organization) error {
	s := o.Snapshot()
	hours := s.Preferences.Availability.Hours()
	tag, err := r.db.Exec(ctx, `
		UPDATE organizations SET
			name = $2, capacity = $3, service_radius_km = $4,
			latitude = $5, longitude = $6, address = $7, vehicle_info = $8,
			verification_status = $9, verification_doc_file_ids = $10,
			accepted_food_types = $11, available_days = $12, hours_start = $13, hours_end = $14,
			version = $15, updated_at = $16
		WHERE id = $1 AND version = $17`,
		s.ID, s.Name, int32(s.Capacity), s.ServiceRadiusKm,
		s.Location.Point.Lat, s.Location.Point.Lng, s.Location.Address, s.VehicleInfo,
		s.VerificationStatus.String(), nonNil(s.VerificationDocFileIDs),
		s.Preferences.AcceptedFoodTypes.Strings(), converter.Days32(s.Preferences.Availability.Days()),
		int32(hours.Start), int32(hours.End),
		s.Version, s.UpdatedAt,
		s.Version-1,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update organization", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("organization was modified concurrently", nil, infra.KindConflict)
	}
	return nil
}

// TouchActivity moves last_active_at forward without touching the version,
// so it never conflicts with a profile or verification change.
func (r *OrganizationRepository) TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE organizations SET last_active_at = GREATEST(last_active_at, $2)
		WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record organization activity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrganizationRepository) ListVerified(ctx context.Context) ([]*organization.Organization, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.OrganizationColumns+` FROM organizations
		WHERE verification_status = 'verified'
		ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list verified organizations", err)
	}
	out, err := converter.ScanOrganizations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan organizations", err)
	}
	return out, nil
}

func (r *OrganizationRepository) ListByStatus(ctx context.Context, status organization.VerificationStatus, limit int) ([]*organization.Organization, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.OrganizationColumns+` FROM organizations
		WHERE verification_status = $1
		ORDER BY created_at, id
		LIMIT $2`, status.String(), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list organizations by status", err)
	}
	out, err := converter.ScanOrganizations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan organizations", err)
	}
	return out, nil
}

func (r *OrganizationRepository) AddImpact(ctx context.Context, id uuid.UUID, d impact.Delta, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE organizations SET
			total_pickups = total_pickups + 1,
			total_meals = total_meals + $2,
			total_weight_kg = total_weight_kg + $3,
			last_active_at = $4,
			updated_at = $4
		WHERE id = $1`,
		id, d.Meals, d.WeightKg, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to add organization impact", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrganizationRepository) Stats(ctx context.Context) (shared.OrganizationStats, error) {
	var s shared.OrganizationStats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE verification_status = 'verified'),
			COUNT(*) FILTER (WHERE verification_status = 'pending'),
			COALESCE(SUM(total_pickups), 0),
			COALESCE(SUM(total_meals), 0),
			COALESCE(SUM(total_weight_kg), 0)
		FROM organizations`,
	).Scan(&s.Total, &s.Verified, &s.Pending, &s.TotalPickups, &s.TotalMeals, &s.TotalWeightKg)
	if err != nil {
		return shared.OrganizationStats{}, infra.WrapRepoErr("failed to compute organization stats", err)
	}
	return s, nil
}
