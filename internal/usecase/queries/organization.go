package queries

//go:generate mockgen -source=organization.go -destination=../../../tests/mock/queries/mock_organization.go -package=queriesmock

import (
	"context"
	"math"

	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/organization"
	"save-serve/internal/pkg/config"
	"save-serve/internal/pkg/patch"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrganizationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrganizationView, error)
	// GetByUser returns the organization registered by userID.
	GetByUser(ctx context.Context, userID uuid.UUID) (*OrganizationView, error)
	ListPending(ctx context.Context, actor usecase.Principal, limit int) ([]*OrganizationView, error)
	// Nearby lists verified organizations around a point, nearest first.
	Nearby(ctx context.Context, filter PointFilter) ([]*NearbyOrganizationView, error)
	Stats(ctx context.Context, actor usecase.Principal) (*OrganizationStatsView, error)
}

type organizationQueries struct {
	uow     shared.UnitOfWork
	locator *locator.Locator
	cfg     config.MatchConfig
}

func NewOrganizationQueries(uow shared.UnitOfWork, loc *locator.Locator, cfg config.MatchConfig) OrganizationQueries {
	return &organizationQueries{uow: uow, locator: loc, cfg: cfg}
}

func (q *organizationQueries) GetByID(ctx context.Context, id uuid.UUID) (*OrganizationView, error) {
	var view *OrganizationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Organizations().FindByID(ctx, id)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		view = toOrganizationView(o)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (q *organizationQueries) GetByUser(ctx context.Context, userID uuid.UUID) (*OrganizationView, error) {
	var view *OrganizationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Organizations().FindByUserID(ctx, userID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		view = toOrganizationView(o)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

// ListPending returns organizations awaiting verification, oldest first.
func (q *organizationQueries) ListPending(ctx context.Context, actor usecase.Principal, limit int) ([]*OrganizationView, error) {
	if !actor.IsAdmin() {
		return nil, fail(ErrAdminOnly)
	}
	limit = ValidateLimit(limit)

	var orgs []*organization.Organization
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		orgs, err = tx.Organizations().ListByStatus(ctx, organization.VerificationPending, limit)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	out := make([]*OrganizationView, len(orgs))
	for i, o := range orgs {
		out[i] = toOrganizationView(o)
	}
	return out, nil
}

func (q *organizationQueries) Nearby(ctx context.Context, filter PointFilter) ([]*NearbyOrganizationView, error) {
	center, err := geo.NewPoint(filter.Latitude, filter.Longitude)
	if err != nil {
		return nil, failWith(err, ErrInvalidSearch)
	}
	radius := patch.OrDefault(filter.RadiusKm, q.cfg.NearbyOrgRadiusKm)
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fail(ErrInvalidSearch)
	}
	limit := resultLimit(filter.Limit, q.cfg.MaxResults)

	hits := q.locator.Organizations().Query(center, radius)
	ids := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}

	var found []*organization.Organization
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Organizations().FindByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	byID := make(map[uuid.UUID]*organization.Organization, len(found))
	for _, o := range found {
		byID[o.ID()] = o
	}

	out := make([]*NearbyOrganizationView, 0, min(len(hits), limit))
	for _, h := range hits {
		o, ok := byID[h.ID]
		if !ok || !o.IsVerified() {
			continue
		}
		out = append(out, &NearbyOrganizationView{OrganizationView: *toOrganizationView(o), DistanceKm: h.DistanceKm})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (q *organizationQueries) Stats(ctx context.Context, actor usecase.Principal) (*OrganizationStatsView, error) {
	if !actor.IsAdmin() {
		return nil, fail(ErrAdminOnly)
	}
	var stats shared.OrganizationStats
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		stats, err = tx.Organizations().Stats(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return &OrganizationStatsView{
		Total:         stats.Total,
		Verified:      stats.Verified,
		Pending:       stats.Pending,
		TotalPickups:  stats.TotalPickups,
		TotalMeals:    stats.TotalMeals,
		TotalWeightKg: stats.TotalWeightKg,
	}, nil
}
