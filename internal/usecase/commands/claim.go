package commands

//go:generate mockgen -source=claim.go -destination=../../../tests/mock/commands/mock_claim.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/matching"
	"save-serve/internal/domain/notification"
	"save-serve/internal/domain/organization"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

// ClaimArbiter resolves competing claims so that at most one organization
// wins a donation. Losing and refused claims come back as a rejected
// claim.Result, never as an error.
type ClaimArbiter interface {
	Claim(ctx context.Context, donationID, orgID uuid.UUID, actor usecase.Principal) (claim.Result, error)
	Release(ctx context.Context, donationID, orgID uuid.UUID, actor usecase.Principal) error
}

type claimArbiter struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	filter  matching.EligibilityFilter
	locator *locator.Locator
	limiter shared.RateLimiter
	kicker  Kicker
	cfg     config.ClaimConfig
	logger  *slog.Logger
}

func NewClaimArbiter(
	uow shared.UnitOfWork,
	clk clock.Clock,
	matcher *matching.Matcher,
	loc *locator.Locator,
	limiter shared.RateLimiter,
	kicker Kicker,
	cfg config.ClaimConfig,
	logger *slog.Logger,
) ClaimArbiter {
	return &claimArbiter{
		uow:     uow,
		clock:   clk,
		filter:  matcher.Filter(),
		locator: loc,
		limiter: limiter,
		kicker:  kicker,
		cfg:     cfg,
		logger:  logger,
	}
}

func (a *claimArbiter) Claim(ctx context.Context, donationID, orgID uuid.UUID, actor usecase.Principal) (claim.Result, error) {
	if err := ctx.Err(); err != nil {
		return claim.Result{}, failWith(err, ErrClaimTimeout)
	}
	if err := a.checkRate(ctx, orgID); err != nil {
		return claim.Result{}, err
	}
	now := a.clock.Now()

	var (
		result  claim.Result
		expired bool
		started bool
		read    int64
	)
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired, started = false, false
		org, err := tx.Organizations().FindByID(ctx, orgID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		if !actor.IsAdmin() && org.UserID() != actor.UserID {
			return fail(ErrNotOrganizationMember)
		}
		d, err := tx.Donations().FindByID(ctx, donationID)
		if err != nil {
			return notFound(err, ErrDonationNotFound)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		read = d.Version()

		// The caller's deadline covers everything up to here. The conditional
		// update and its audit trail run to completion once started.
		ctx = context.WithoutCancel(ctx)
		started = true

		result = a.precheck(d, org, now)
		if result.Outcome == "" {
			won, err := tx.Donations().ClaimIfAvailable(ctx, d.ID(), org.ID(), now)
			if err != nil {
				return err
			}
			if won {
				result = claim.Accepted(d.ID(), org.ID(), now)
			} else {
				current, err := tx.Donations().FindByID(ctx, d.ID())
				if err != nil {
					return err
				}
				d = current
				result = a.precheck(d, org, now)
				if result.Outcome == "" {
					result = claim.Rejected(d.ID(), org.ID(), claim.ReasonNotAvailable)
				}
			}
		}

		if result.Reason == claim.ReasonExpired && d.IsDueForExpiry(now) {
			if err := a.expire(ctx, tx, d, now); err != nil {
				return err
			}
			expired = true
			read = d.Version()
		}
		if err := a.notify(ctx, tx, result, d, org, now); err != nil {
			return err
		}
		if result.IsAccepted() {
			if err := tx.Organizations().TouchActivity(ctx, org.ID(), now); err != nil {
				return err
			}
		}
		return tx.ClaimAttempts().Record(ctx, claim.AttemptFrom(result, now))
	})
	if err != nil {
		if (!started && ctx.Err() != nil) || isContextErr(err) {
			return claim.Result{}, failWith(err, ErrClaimTimeout)
		}
		return claim.Result{}, translate(err)
	}

	if result.IsAccepted() || expired {
		a.locator.RemoveDonation(donationID, read)
	}
	a.kicker.Kick()
	a.logger.Info("claim resolved",
		"donation_id", donationID.String(),
		"organization_id", orgID.String(),
		"outcome", string(result.Outcome),
		"reason", result.Code())
	return result, nil
}

// precheck returns a rejection, or a zero Result when the conditional update
// should be attempted.
func (a *claimArbiter) precheck(d *donation.Donation, org *organization.Organization, now time.Time) claim.Result {
	switch d.Status() {
	case donation.StatusAvailable:
	case donation.StatusClaimed, donation.StatusClaimPending:
		if d.Window().Ended(now) && d.Status() == donation.StatusClaimPending {
			return claim.Rejected(d.ID(), org.ID(), claim.ReasonExpired)
		}
		return claim.Rejected(d.ID(), org.ID(), claim.ReasonAlreadyClaimed)
	case donation.StatusExpired:
		return claim.Rejected(d.ID(), org.ID(), claim.ReasonExpired)
	default:
		return claim.Rejected(d.ID(), org.ID(), claim.ReasonNotAvailable)
	}
	if d.Window().Ended(now) {
		return claim.Rejected(d.ID(), org.ID(), claim.ReasonExpired)
	}
	if dec := a.filter.Check(d, org); !dec.Eligible {
		return claim.NotEligible(d.ID(), org.ID(), dec.Reason)
	}
	return claim.Result{}
}

func (a *claimArbiter) expire(ctx context.Context, tx shared.Tx, d *donation.Donation, now time.Time) error {
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
	return tx.Notifications().Enqueue(ctx, ev, now)
}

func (a *claimArbiter) notify(ctx context.Context, tx shared.Tx, r claim.Result, d *donation.Donation, org *organization.Organization, now time.Time) error {
	var ev notification.Event
	switch {
	case r.IsAccepted():
		ev = notification.NewEvent(notification.TypeClaimAccepted, d.DonorID(), map[string]any{
			"donation_id":       d.ID().String(),
			"organization_id":   org.ID().String(),
			"organization_name": org.Name(),
			"claimed_at":        now,
		}, now)
	case r.Reason == claim.ReasonAlreadyClaimed:
		ev = notification.NewEvent(notification.TypeClaimRejected, org.UserID(), map[string]any{
			"donation_id": d.ID().String(),
			"reason":      r.Code(),
		}, now)
	default:
		return nil
	}
	return tx.Notifications().Enqueue(ctx, ev, now)
}

// checkRate fails open: a broken limiter never blocks a claim.
func (a *claimArbiter) checkRate(ctx context.Context, orgID uuid.UUID) error {
	if a.limiter == nil || a.cfg.RateLimit <= 0 {
		return nil
	}
	allowed, retryAfter, err := a.limiter.Allow(ctx, "claim:"+orgID.String(), a.cfg.RateLimit, a.cfg.RateLimitWindow)
	if err != nil {
		a.logger.Warn("claim rate limiter unavailable, allowing attempt",
			"organization_id", orgID.String(),
			"error", err.Error())
		return nil
	}
	if !allowed {
		a.logger.Info("claim rate limited",
			"organization_id", orgID.String(),
			"retry_after_ms", retryAfter.Milliseconds())
		return fail(ErrClaimRateLimited)
	}
	return nil
}

func (a *claimArbiter) Release(ctx context.Context, donationID, orgID uuid.UUID, actor usecase.Principal) error {
	now := a.clock.Now()
	var released *donation.Donation
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		org, err := tx.Organizations().FindByID(ctx, orgID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		if !actor.IsAdmin() && org.UserID() != actor.UserID {
			return fail(ErrNotOrganizationMember)
		}
		d, err := tx.Donations().FindByID(ctx, donationID)
		if err != nil {
			return notFound(err, ErrDonationNotFound)
		}
		if err := d.Release(org.ID(), now); err != nil {
			return err
		}
		if err := tx.Donations().Update(ctx, d); err != nil {
			return err
		}
		ev := notification.NewEvent(notification.TypeClaimReleased, d.DonorID(), map[string]any{
			"donation_id":     d.ID().String(),
			"organization_id": org.ID().String(),
			"reason":          "released_by_organization",
		}, now)
		if err := tx.Notifications().Enqueue(ctx, ev, now); err != nil {
			return err
		}
		released = d
		return nil
	})
	if err != nil {
		return translate(err)
	}

	a.locator.SyncDonation(released, now)
	a.kicker.Kick()
	return nil
}
