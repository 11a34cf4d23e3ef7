package repository

import (
	"context"
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/infra"
	"save-serve/internal/infra/db"
	"save-serve/internal/infra/repository/converter"
	"save-serve/internal/pkg/pgconv"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type DonationRepository struct {
	db db.DBTX
}

func NewDonationRepository(dbtx db.DBTX) *DonationRepository {
	return &DonationRepository{db: dbtx}
}

func (r *DonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	query := `INSERT INTO donations (` + converter.DonationColumns + `) VALUES (` + placeholders(21) + `)`
	if _, err := r.db.Exec(ctx, query, converter.DonationArgs(d)...); err != nil {
		return infra.WrapRepoErr("failed to create donation", err)
	}
	return nil
}

func (r *DonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+converter.DonationColumns+` FROM donations WHERE id = $1`, id)
	d, err := converter.ScanDonation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("donation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find donation", err)
	}
	return d, nil
}

func (r *DonationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*donation.Donation, error) {
	if len(ids) == 0 {
		return []*donation.Donation{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+converter.DonationColumns+` FROM donations WHERE id = ANY($1::uuid[])`,
		uuidStrings(ids))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find donations", err)
	}
	out, err := converter.ScanDonations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan donations", err)
	}
	return out, nil
}

// Update writes every mutable column, guarded by the previous version.
func (r *DonationRepository) Update(ctx context.Context, d *donation.Donation) error {
	s := d.Snapshot()
	tag, err := r.db.Exec(ctx, `
		UPDATE donations SET
			title = $2, description = $3, food_types = $4, portions = $5, weight_kg = $6,
			latitude = $7, longitude = $8, address = $9, pickup_start = $10, pickup_end = $11,
			status = $12, claimed_by = $13, claimed_at = $14, completed_at = $15,
			image_file_ids = $16, special_instructions = $17, version = $18, updated_at = $19
		WHERE id = $1 AND version = $20`,
		s.ID, s.Title, s.Description, s.FoodTypes.Strings(), int32(s.Quantity.Portions()), s.Quantity.WeightKg(),
		s.Location.Point.Lat, s.Location.Point.Lng, s.Location.Address, s.Window.Start(), s.Window.End(),
		s.Status.String(), pgconv.UUIDPtrToPgtype(s.ClaimedBy), pgconv.TimePtrToPgtype(s.ClaimedAt), pgconv.TimePtrToPgtype(s.CompletedAt),
		nonNil(s.ImageFileIDs), s.SpecialInstructions, s.Version, s.UpdatedAt,
		s.Version-1,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update donation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("donation was modified concurrently", nil, infra.KindConflict)
	}
	return nil
}

// ClaimIfAvailable is the compare-and-set every claim goes through. Exactly
// one concurrent caller sees a row affected.
func (r *DonationRepository) ClaimIfAvailable(ctx context.Context, id, orgID uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE donations SET
			status = 'claimed', claimed_by = $2, claimed_at = $3, updated_at = $3, version = version + 1
		WHERE id = $1 AND status = 'available' AND pickup_end >= $3`,
		id, orgID, at,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim donation", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *DonationRepository) ListClaimable(ctx context.Context, now time.Time) ([]*donation.Donation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.DonationColumns+` FROM donations
		WHERE status = 'available' AND pickup_end >= $1
		ORDER BY created_at DESC, id`, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list claimable donations", err)
	}
	out, err := converter.ScanDonations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan donations", err)
	}
	return out, nil
}

func (r *DonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, page shared.Page) ([]*donation.Donation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.DonationColumns+` FROM donations
		WHERE donor_id = $1
		  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3))
		ORDER BY created_at DESC, id DESC
		LIMIT $4`,
		donorID, pgconv.TimePtrToPgtype(page.AfterCreatedAt), page.AfterID, page.Limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list donor donations", err)
	}
	out, err := converter.ScanDonations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan donations", err)
	}
	return out, nil
}

// ListDueForExpiry locks the rows it returns so parallel sweepers split the work.
func (r *DonationRepository) ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.DonationColumns+` FROM donations
		WHERE status IN ('available', 'claim_pending') AND pickup_end < $1
		ORDER BY pickup_end, id
		LIMIT $2
		FOR UPDATE SKIP LOCKED`, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list donations due for expiry", err)
	}
	out, err := converter.ScanDonations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan donations", err)
	}
	return out, nil
}

func (r *DonationRepository) Stats(ctx context.Context, donorID *uuid.UUID) (shared.DonationStats, error) {
	var s shared.DonationStats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'available' AND pickup_end >= now()),
			COALESCE(SUM(portions), 0),
			COALESCE(SUM(weight_kg), 0)
		FROM donations
		WHERE $1::uuid IS NULL OR donor_id = $1`,
		pgconv.UUIDPtrToPgtype(donorID),
	).Scan(&s.TotalDonations, &s.ActiveListings, &s.TotalPortions, &s.TotalWeightKg)
	if err != nil {
		return shared.DonationStats{}, infra.WrapRepoErr("failed to compute donation stats", err)
	}
	return s, nil
}
