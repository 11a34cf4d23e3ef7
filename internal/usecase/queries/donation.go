package queries

//go:generate mockgen -source=donation.go -destination=../../../tests/mock/queries/mock_donation.go -package=queriesmock

import (
	"context"
	"math"

	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/impact"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/config"
	"save-serve/internal/pkg/patch"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type DonationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DonationView, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID, actor usecase.Principal, cursor *Cursor, limit int) ([]*DonationView, *Cursor, error)
	// Nearby lists claimable donations around a point, nearest first.
	Nearby(ctx context.Context, filter PointFilter) ([]*NearbyDonationView, error)
	// Stats covers one donor, or the whole platform when donorID is nil.
	Stats(ctx context.Context, donorID *uuid.UUID, actor usecase.Principal) (*DonationStatsView, error)
	ClaimAttempts(ctx context.Context, donationID uuid.UUID, actor usecase.Principal) ([]*ClaimAttemptView, error)
}

type donationQueries struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	locator *locator.Locator
	cfg     config.MatchConfig
}

func NewDonationQueries(uow shared.UnitOfWork, clk clock.Clock, loc *locator.Locator, cfg config.MatchConfig) DonationQueries {
	return &donationQueries{uow: uow, clock: clk, locator: loc, cfg: cfg}
}

func (q *donationQueries) GetByID(ctx context.Context, id uuid.UUID) (*DonationView, error) {
	var view *DonationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Donations().FindByID(ctx, id)
		if err != nil {
			return notFound(err, ErrDonationNotFound)
		}
		view = toDonationView(d)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (q *donationQueries) ListByDonor(ctx context.Context, donorID uuid.UUID, actor usecase.Principal, cursor *Cursor, limit int) ([]*DonationView, *Cursor, error) {
	if !actor.IsAdmin() && actor.UserID != donorID {
		return nil, nil, fail(ErrDonorAccess)
	}
	limit = ValidateLimit(limit)
	page := shared.Page{Limit: limit + 1}
	if cursor != nil && cursor.After != "" {
		lastCreatedAt, lastID, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, failWith(err, ErrInvalidCursor)
		}
		page.AfterCreatedAt = &lastCreatedAt
		page.AfterID = lastID
	}

	var rows []*donation.Donation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rows, err = tx.Donations().ListByDonor(ctx, donorID, page)
		return err
	})
	if err != nil {
		return nil, nil, translate(err)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}
	out := make([]*DonationView, len(rows))
	for i, d := range rows {
		out[i] = toDonationView(d)
	}
	return out, next, nil
}

func (q *donationQueries) Nearby(ctx context.Context, filter PointFilter) ([]*NearbyDonationView, error) {
	center, err := geo.NewPoint(filter.Latitude, filter.Longitude)
	if err != nil {
		return nil, failWith(err, ErrInvalidSearch)
	}
	radius := patch.OrDefault(filter.RadiusKm, q.cfg.NearbyRadiusKm)
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fail(ErrInvalidSearch)
	}
	if filter.MinPortions < 0 || filter.MaxPortions < 0 ||
		(filter.MaxPortions > 0 && filter.MinPortions > filter.MaxPortions) {
		return nil, fail(ErrInvalidSearch)
	}
	var wanted donation.FoodTypes
	if len(filter.FoodTypes) > 0 {
		if wanted, err = donation.NewFoodTypes(filter.FoodTypes); err != nil {
			return nil, translate(err)
		}
	}
	limit := q.resultLimit(filter.Limit)

	hits := q.locator.Donations().Query(center, radius)
	distances := make(map[uuid.UUID]float64, len(hits))
	ids := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
		distances[h.ID] = h.DistanceKm
	}

	var found []*donation.Donation
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Donations().FindByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	byID := make(map[uuid.UUID]*donation.Donation, len(found))
	for _, d := range found {
		byID[d.ID()] = d
	}

	now := q.clock.Now()
	out := make([]*NearbyDonationView, 0, min(len(hits), limit))
	// hits are already nearest first
	for _, h := range hits {
		d, ok := byID[h.ID]
		if !ok || !d.IsClaimable(now) {
			continue
		}
		if wanted != nil && !d.FoodTypes().Intersects(wanted) {
			continue
		}
		if !portionsWithin(d.Quantity().Portions(), filter.MinPortions, filter.MaxPortions) {
			continue
		}
		out = append(out, &NearbyDonationView{DonationView: *toDonationView(d), DistanceKm: distances[h.ID]})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (q *donationQueries) Stats(ctx context.Context, donorID *uuid.UUID, actor usecase.Principal) (*DonationStatsView, error) {
	if donorID != nil && !actor.IsAdmin() && actor.UserID != *donorID {
		return nil, fail(ErrDonorAccess)
	}
	var stats shared.DonationStats
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		stats, err = tx.Donations().Stats(ctx, donorID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return &DonationStatsView{
		TotalDonations: stats.TotalDonations,
		ActiveListings: stats.ActiveListings,
		TotalPortions:  stats.TotalPortions,
		TotalWeightKg:  stats.TotalWeightKg,
		EstimatedMeals: int64(math.Round(stats.TotalWeightKg / impact.KgPerMeal)),
		EstimatedCO2Kg: stats.TotalWeightKg * impact.CO2KgPerKg,
	}, nil
}

// ClaimAttempts is visible to the donor, the organizations involved and admins.
func (q *donationQueries) ClaimAttempts(ctx context.Context, donationID uuid.UUID, actor usecase.Principal) ([]*ClaimAttemptView, error) {
	var out []*ClaimAttemptView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Donations().FindByID(ctx, donationID)
		if err != nil {
			return notFound(err, ErrDonationNotFound)
		}
		attempts, err := tx.ClaimAttempts().ListByDonation(ctx, donationID)
		if err != nil {
			return err
		}

		if !actor.IsAdmin() && d.DonorID() != actor.UserID {
			mine, err := q.ownedOrganizations(ctx, tx, attempts, actor.UserID)
			if err != nil {
				return err
			}
			if len(mine) == 0 {
				return fail(ErrDonationAccess)
			}
			filtered := attempts[:0]
			for _, a := range attempts {
				if mine[a.OrganizationID] {
					filtered = append(filtered, a)
				}
			}
			attempts = filtered
		}

		out = make([]*ClaimAttemptView, len(attempts))
		for i, a := range attempts {
			out[i] = toClaimAttemptView(a)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (q *donationQueries) ownedOrganizations(ctx context.Context, tx shared.Tx, attempts []claim.Attempt, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	ids := make([]uuid.UUID, 0, len(attempts))
	seen := make(map[uuid.UUID]bool, len(attempts))
	for _, a := range attempts {
		if !seen[a.OrganizationID] {
			seen[a.OrganizationID] = true
			ids = append(ids, a.OrganizationID)
		}
	}
	orgs, err := tx.Organizations().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	mine := make(map[uuid.UUID]bool)
	for _, o := range orgs {
		if o.UserID() == userID {
			mine[o.ID()] = true
		}
	}
	return mine, nil
}

func (q *donationQueries) resultLimit(limit int) int {
	return resultLimit(limit, q.cfg.MaxResults)
}

const defaultMaxResults = 100

func resultLimit(limit, ceiling int) int {
	if ceiling <= 0 {
		ceiling = defaultMaxResults
	}
	if limit <= 0 || limit > ceiling {
		return ceiling
	}
	return limit
}

func portionsWithin(n, lo, hi int) bool {
	return (lo == 0 || n >= lo) && (hi == 0 || n <= hi)
}
