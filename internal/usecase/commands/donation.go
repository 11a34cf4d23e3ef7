package commands

//go:generate mockgen -source=donation.go -destination=../../../tests/mock/commands/mock_donation.go -package=commandsmock

import (
	"context"
	"log/slog"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/matching"
	"save-serve/internal/domain/notification"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

// At most this many ranked organizations hear about a new donation.
const newDonationFanout = 10

type DonationCommands interface {
	Create(ctx context.Context, req CreateDonationRequest, actor usecase.Principal) (*CreateDonationResult, error)
	Cancel(ctx context.Context, donationID uuid.UUID, actor usecase.Principal) error
	// ExpireDue moves donations whose pickup window has ended to expired and
	// returns how many it changed.
	ExpireDue(ctx context.Context, limit int) (int, error)
}

type donationCommands struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	matcher *matching.Matcher
	locator *locator.Locator
	kicker  Kicker
	logger  *slog.Logger
}

func NewDonationCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	matcher *matching.Matcher,
	loc *locator.Locator,
	kicker Kicker,
	logger *slog.Logger,
) DonationCommands {
	return &donationCommands{uow: uow, clock: clk, matcher: matcher, locator: loc, kicker: kicker, logger: logger}
}

func (c *donationCommands) Create(ctx context.Context, req CreateDonationRequest, actor usecase.Principal) (*CreateDonationResult, error) {
	now := c.clock.Now()
	d, err := buildDonation(req, actor.UserID, c.clock)
	if err != nil {
		return nil, translate(err)
	}

	var notified int
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Donations().Create(ctx, d); err != nil {
			return err
		}

		hits := c.locator.Organizations().Query(d.Location().Point, c.locator.MaxServiceRadiusKm())
		ids := make([]uuid.UUID, len(hits))
		for i, h := range hits {
			ids[i] = h.ID
		}
		orgs, err := tx.Organizations().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		ranked, err := c.matcher.OrganizationsFor(ctx, d, orgs, c.locator.Organizations(), now)
		if err != nil {
			return err
		}
		if len(ranked) > newDonationFanout {
			ranked = ranked[:newDonationFanout]
		}
		for _, cand := range ranked {
			ev := notification.NewEvent(notification.TypeNewDonation, cand.Organization.UserID(), map[string]any{
				"donation_id":     d.ID().String(),
				"organization_id": cand.Organization.ID().String(),
				"title":           d.Title(),
				"distance_km":     cand.DistanceKm,
				"score":           cand.Score,
			}, now)
			if err := tx.Notifications().Enqueue(ctx, ev, now); err != nil {
				return err
			}
		}
		notified = len(ranked)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	c.locator.SyncDonation(d, now)
	if notified > 0 {
		c.kicker.Kick()
	}
	c.logger.Info("donation created",
		"donation_id", d.ID().String(),
		"donor_id", actor.UserID.String(),
		"notified", notified)
	return &CreateDonationResult{DonationID: d.ID(), Notified: notified}, nil
}

func buildDonation(req CreateDonationRequest, donorID uuid.UUID, clk clock.Clock) (*donation.Donation, error) {
	foodTypes, err := donation.NewFoodTypes(req.FoodTypes)
	if err != nil {
		return nil, err
	}
	quantity, err := donation.NewQuantity(req.Portions, req.WeightKg)
	if err != nil {
		return nil, err
	}
	location, err := geo.NewLocation(req.Latitude, req.Longitude, req.Address)
	if err != nil {
		return nil, err
	}
	window, err := donation.NewPickupWindow(req.PickupStart, req.PickupEnd, clk.Now())
	if err != nil {
		return nil, err
	}
	return donation.NewDonation(clk, donation.NewParams{
		DonorID:             donorID,
		Title:               req.Title,
		Description:         req.Description,
		FoodTypes:           foodTypes,
		Quantity:            quantity,
		Location:            location,
		Window:              window,
		ImageFileIDs:        req.ImageFileIDs,
		SpecialInstructions: req.SpecialInstructions,
	})
}

func (c *donationCommands) Cancel(ctx context.Context, donationID uuid.UUID, actor usecase.Principal) error {
	now := c.clock.Now()
	var cancelled *donation.Donation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Donations().FindByID(ctx, donationID)
		if err != nil {
			return notFound(err, ErrDonationNotFound)
		}
		if !actor.IsAdmin() && d.DonorID() != actor.UserID {
			return fail(ErrNotDonationOwner)
		}

		claimant := d.ClaimedBy()
		if err := d.Cancel(d.DonorID(), now); err != nil {
			return err
		}
		if err := tx.Donations().Update(ctx, d); err != nil {
			return err
		}

		if claimant != nil {
			org, err := tx.Organizations().FindByID(ctx, *claimant)
			if err != nil {
				return err
			}
			ev := notification.NewEvent(notification.TypeClaimReleased, org.UserID(), map[string]any{
				"donation_id": d.ID().String(),
				"reason":      "cancelled_by_donor",
			}, now)
			if err := tx.Notifications().Enqueue(ctx, ev, now); err != nil {
				return err
			}
		}
		cancelled = d
		return nil
	})
	if err != nil {
		return translate(err)
	}

	c.locator.SyncDonation(cancelled, now)
	c.kicker.Kick()
	return nil
}

func (c *donationCommands) ExpireDue(ctx context.Context, limit int) (int, error) {
	now := c.clock.Now()
	var expired []*donation.Donation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = expired[:0]
		due, err := tx.Donations().ListDueForExpiry(ctx, now, limit)
		if err != nil {
			return err
		}
		for _, d := range due {
			if err := d.Expire(now); err != nil {
				return err
			}
			if err := tx.Donations().Update(ctx, d); err != nil {
				return err
			}
			ev := notification.NewEvent(notification.TypeDonationExpired, d.DonorID(), map[string]any{
				"donation_id": d.ID().String(),
				"title":       d.Title(),
			}, now)
			if err := tx.Notifications().Enqueue(ctx, ev, now); err != nil {
				return err
			}
			expired = append(expired, d)
		}
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}

	for _, d := range expired {
		c.locator.RemoveDonation(d.ID(), d.Version())
	}
	if len(expired) > 0 {
		c.kicker.Kick()
		c.logger.Info("expired donations", "count", len(expired))
	}
	return len(expired), nil
}
