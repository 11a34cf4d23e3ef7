package commands

//go:generate mockgen -source=pickup.go -destination=../../../tests/mock/commands/mock_pickup.go -package=commandsmock

import (
	"context"
	"log/slog"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/notification"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/patch"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type PickupResult struct {
	Delta impact.Delta
	// Replayed is set when the pickup had already been recorded; nothing
	// changed on this call.
	Replayed bool
}

// ImpactAccumulator completes pickups and rolls their impact into the
// organization, donor and platform totals exactly once per donation.
type ImpactAccumulator interface {
	RecordPickup(ctx context.Context, req RecordPickupRequest, actor usecase.Principal) (*PickupResult, error)
}

type impactAccumulator struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	kicker Kicker
	logger *slog.Logger
}

func NewImpactAccumulator(uow shared.UnitOfWork, clk clock.Clock, kicker Kicker, logger *slog.Logger) ImpactAccumulator {
	return &impactAccumulator{uow: uow, clock: clk, kicker: kicker, logger: logger}
}

func (a *impactAccumulator) RecordPickup(ctx context.Context, req RecordPickupRequest, actor usecase.Principal) (*PickupResult, error) {
	now := a.clock.Now()
	var result PickupResult

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = PickupResult{}
		org, err := tx.Organizations().FindByID(ctx, req.OrganizationID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		if !actor.IsAdmin() && org.UserID() != actor.UserID {
			return fail(ErrNotOrganizationMember)
		}
		d, err := tx.Donations().FindByID(ctx, req.DonationID)
		if err != nil {
			return notFound(err, ErrDonationNotFound)
		}

		if d.Status() == donation.StatusPickedUp {
			return a.replay(ctx, tx, d, org.ID(), &result)
		}

		delta, err := impact.Compute(patch.Coalesce(req.ActualWeightKg, d.Quantity().WeightKg()))
		if err != nil {
			return err
		}
		if err := d.CompletePickup(org.ID(), now); err != nil {
			return err
		}

		inserted, err := tx.Impact().InsertPickup(ctx, impact.PickupRecord{
			DonationID:     d.ID(),
			OrganizationID: org.ID(),
			DonorID:        d.DonorID(),
			Delta:          delta,
			RecordedAt:     now,
		})
		if err != nil {
			return err
		}
		if !inserted {
			return a.replay(ctx, tx, d, org.ID(), &result)
		}

		if err := tx.Donations().Update(ctx, d); err != nil {
			return err
		}
		if err := tx.Organizations().AddImpact(ctx, org.ID(), delta, now); err != nil {
			return err
		}
		if err := tx.Impact().AddToPlatform(ctx, delta); err != nil {
			return err
		}
		if err := tx.Impact().AddToDonor(ctx, d.DonorID(), delta); err != nil {
			return err
		}

		ev := notification.NewEvent(notification.TypePickupCompleted, d.DonorID(), map[string]any{
			"donation_id":     d.ID().String(),
			"organization_id": org.ID().String(),
			"meals":           delta.Meals,
			"weight_kg":       delta.WeightKg,
			"co2_kg":          delta.CO2Kg,
		}, now)
		if err := tx.Notifications().Enqueue(ctx, ev, now); err != nil {
			return err
		}
		result.Delta = delta
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	if !result.Replayed {
		a.kicker.Kick()
		a.logger.Info("pickup recorded",
			"donation_id", req.DonationID.String(),
			"organization_id", req.OrganizationID.String(),
			"meals", result.Delta.Meals,
			"weight_kg", result.Delta.WeightKg)
	}
	return &result, nil
}

func (a *impactAccumulator) replay(ctx context.Context, tx shared.Tx, d *donation.Donation, orgID uuid.UUID, result *PickupResult) error {
	rec, err := tx.Impact().FindPickup(ctx, d.ID())
	if err != nil {
		return err
	}
	if rec.OrganizationID != orgID {
		return donation.ErrNotClaimant
	}
	result.Delta = rec.Delta
	result.Replayed = true
	return nil
}
