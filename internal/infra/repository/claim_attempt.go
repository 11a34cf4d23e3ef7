package repository

import (
	"context"

	"save-serve/internal/domain/claim"
	"save-serve/internal/infra"
	"save-serve/internal/infra/db"

	"github.com/google/uuid"
)

type ClaimAttemptRepository struct {
	db db.DBTX
}

func NewClaimAttemptRepository(dbtx db.DBTX) *ClaimAttemptRepository {
	return &ClaimAttemptRepository{db: dbtx}
}

func (r *ClaimAttemptRepository) Record(ctx context.Context, a claim.Attempt) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO claim_attempts (donation_id, organization_id, outcome, reason, attempted_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.DonationID, a.OrganizationID, string(a.Outcome), a.Reason, a.AttemptedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record claim attempt", err)
	}
	return nil
}

func (r *ClaimAttemptRepository) ListByDonation(ctx context.Context, donationID uuid.UUID) ([]claim.Attempt, error) {
	rows, err := r.db.Query(ctx, `
		SELECT donation_id, organization_id, outcome, reason, attempted_at
		FROM claim_attempts
		WHERE donation_id = $1
		ORDER BY attempted_at, id`, donationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list claim attempts", err)
	}
	defer rows.Close()

	out := make([]claim.Attempt, 0)
	for rows.Next() {
		var (
			a       claim.Attempt
			outcome string
		)
		if err := rows.Scan(&a.DonationID, &a.OrganizationID, &outcome, &a.Reason, &a.AttemptedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan claim attempt", err)
		}
		a.Outcome = claim.Outcome(outcome)
		a.AttemptedAt = a.AttemptedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate claim attempts", err)
	}
	return out, nil
}
