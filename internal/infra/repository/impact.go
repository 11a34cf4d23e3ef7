package repository

import (
	"context"

	"save-serve/internal/domain/impact"
	"save-serve/internal/infra"
	"save-serve/internal/infra/db"
	"save-serve/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ImpactRepository struct {
	db db.DBTX
}

func NewImpactRepository(dbtx db.DBTX) *ImpactRepository {
	return &ImpactRepository{db: dbtx}
}

// InsertPickup reports false when the donation already has a pickup record.
func (r *ImpactRepository) InsertPickup(ctx context.Context, rec impact.PickupRecord) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO processed_pickups
			(donation_id, organization_id, donor_id, meals, weight_kg, co2_kg, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (donation_id) DO NOTHING`,
		rec.DonationID, rec.OrganizationID, rec.DonorID,
		rec.Delta.Meals, rec.Delta.WeightKg, rec.Delta.CO2Kg, rec.RecordedAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record pickup", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ImpactRepository) FindPickup(ctx context.Context, donationID uuid.UUID) (*impact.PickupRecord, error) {
	var rec impact.PickupRecord
	err := r.db.QueryRow(ctx, `
		SELECT donation_id, organization_id, donor_id, meals, weight_kg, co2_kg, recorded_at
		FROM processed_pickups WHERE donation_id = $1`, donationID,
	).Scan(&rec.DonationID, &rec.OrganizationID, &rec.DonorID,
		&rec.Delta.Meals, &rec.Delta.WeightKg, &rec.Delta.CO2Kg, &rec.RecordedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pickup not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pickup", err)
	}
	rec.RecordedAt = rec.RecordedAt.UTC()
	return &rec, nil
}

func (r *ImpactRepository) AddToPlatform(ctx context.Context, d impact.Delta) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO platform_impact (id, total_pickups, total_meals, total_weight_kg, total_co2_kg, updated_at)
		VALUES (1, 1, $1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET
			total_pickups = platform_impact.total_pickups + 1,
			total_meals = platform_impact.total_meals + EXCLUDED.total_meals,
			total_weight_kg = platform_impact.total_weight_kg + EXCLUDED.total_weight_kg,
			total_co2_kg = platform_impact.total_co2_kg + EXCLUDED.total_co2_kg,
			updated_at = now()`,
		d.Meals, d.WeightKg, d.CO2Kg,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to add platform impact", err)
	}
	return nil
}

func (r *ImpactRepository) AddToDonor(ctx context.Context, donorID uuid.UUID, d impact.Delta) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO donor_impact (donor_id, total_pickups, total_meals, total_weight_kg, total_co2_kg, updated_at)
		VALUES ($1, 1, $2, $3, $4, now())
		ON CONFLICT (donor_id) DO UPDATE SET
			total_pickups = donor_impact.total_pickups + 1,
			total_meals = donor_impact.total_meals + EXCLUDED.total_meals,
			total_weight_kg = donor_impact.total_weight_kg + EXCLUDED.total_weight_kg,
			total_co2_kg = donor_impact.total_co2_kg + EXCLUDED.total_co2_kg,
			updated_at = now()`,
		donorID, d.Meals, d.WeightKg, d.CO2Kg,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to add donor impact", err)
	}
	return nil
}

func (r *ImpactRepository) PlatformTotals(ctx context.Context) (impact.Totals, error) {
	var t impact.Totals
	err := r.db.QueryRow(ctx, `
		SELECT total_pickups, total_meals, total_weight_kg, total_co2_kg
		FROM platform_impact WHERE id = 1`,
	).Scan(&t.Pickups, &t.Meals, &t.WeightKg, &t.CO2Kg)
	if err != nil && !pgconv.IsNoRows(err) {
		return impact.Totals{}, infra.WrapRepoErr("failed to read platform impact", err)
	}
	return t, nil
}

// DonorTotals is zero for a donor without completed pickups.
func (r *ImpactRepository) DonorTotals(ctx context.Context, donorID uuid.UUID) (impact.Totals, error) {
	var t impact.Totals
	err := r.db.QueryRow(ctx, `
		SELECT total_pickups, total_meals, total_weight_kg, total_co2_kg
		FROM donor_impact WHERE donor_id = $1`, donorID,
	).Scan(&t.Pickups, &t.Meals, &t.WeightKg, &t.CO2Kg)
	if err != nil && !pgconv.IsNoRows(err) {
		return impact.Totals{}, infra.WrapRepoErr("failed to read donor impact", err)
	}
	return t, nil
}
