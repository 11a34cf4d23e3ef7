package queries

//go:generate mockgen -source=match.go -destination=../../../tests/mock/queries/mock_match.go -package=queriesmock

import (
	"context"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/matching"
	"save-serve/internal/domain/organization"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

// MatchQueries ranks candidates in either direction. Ranking has no side
// effects, so a caller that gives up just loses the answer.
type MatchQueries interface {
	OrganizationsForDonation(ctx context.Context, donationID uuid.UUID, actor usecase.Principal, limit int) ([]*OrganizationMatchView, error)
	DonationsForOrganization(ctx context.Context, orgID uuid.UUID, actor usecase.Principal, limit int) ([]*DonationMatchView, error)
}

type matchQueries struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	matcher *matching.Matcher
	locator *locator.Locator
	cfg     config.MatchConfig
}

func NewMatchQueries(uow shared.UnitOfWork, clk clock.Clock, matcher *matching.Matcher, loc *locator.Locator, cfg config.MatchConfig) MatchQueries {
	return &matchQueries{uow: uow, clock: clk, matcher: matcher, locator: loc, cfg: cfg}
}

func (q *matchQueries) OrganizationsForDonation(ctx context.Context, donationID uuid.UUID, actor usecase.Principal, limit int) ([]*OrganizationMatchView, error) {
	var (
		d    *donation.Donation
		orgs []*organization.Organization
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		d, err = tx.Donations().FindByID(ctx, donationID)
		if err != nil {
			return notFound(err, ErrDonationNotFound)
		}
		if !actor.IsAdmin() && d.DonorID() != actor.UserID {
			return fail(ErrDonationAccess)
		}

		hits := q.locator.Organizations().Query(d.Location().Point, q.locator.MaxServiceRadiusKm())
		ids := make([]uuid.UUID, len(hits))
		for i, h := range hits {
			ids[i] = h.ID
		}
		orgs, err = tx.Organizations().FindByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	ranked, err := q.matcher.OrganizationsFor(ctx, d, orgs, q.locator.Organizations(), q.clock.Now())
	if err != nil {
		return nil, translate(err)
	}
	limit = resultLimit(limit, q.cfg.MaxResults)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]*OrganizationMatchView, len(ranked))
	for i, c := range ranked {
		out[i] = toOrganizationMatch(c)
	}
	return out, nil
}

func (q *matchQueries) DonationsForOrganization(ctx context.Context, orgID uuid.UUID, actor usecase.Principal, limit int) ([]*DonationMatchView, error) {
	var (
		org       *organization.Organization
		donations []*donation.Donation
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		org, err = tx.Organizations().FindByID(ctx, orgID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		if !actor.IsAdmin() && org.UserID() != actor.UserID {
			return fail(ErrOrganizationAccess)
		}

		hits := q.locator.Donations().Query(org.Location().Point, org.ServiceRadiusKm())
		ids := make([]uuid.UUID, len(hits))
		for i, h := range hits {
			ids[i] = h.ID
		}
		donations, err = tx.Donations().FindByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	ranked, err := q.matcher.DonationsFor(ctx, org, donations, q.locator.Donations(), q.clock.Now())
	if err != nil {
		return nil, translate(err)
	}
	limit = resultLimit(limit, q.cfg.MaxResults)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]*DonationMatchView, len(ranked))
	for i, c := range ranked {
		out[i] = toDonationMatch(c)
	}
	return out, nil
}
