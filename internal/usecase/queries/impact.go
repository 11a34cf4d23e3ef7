package queries

import (
	"context"

	"save-serve/internal/domain/impact"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type ImpactQueries interface {
	Platform(ctx context.Context) (*ImpactView, error)
	Organization(ctx context.Context, orgID uuid.UUID) (*ImpactView, error)
	Donor(ctx context.Context, donorID uuid.UUID, actor usecase.Principal) (*ImpactView, error)
}

type impactQueries struct {
	uow shared.UnitOfWork
}

func NewImpactQueries(uow shared.UnitOfWork) ImpactQueries {
	return &impactQueries{uow: uow}
}

func (q *impactQueries) Platform(ctx context.Context) (*ImpactView, error) {
	var totals impact.Totals
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		totals, err = tx.Impact().PlatformTotals(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return toImpactView(totals), nil
}

// Organization derives CO2 from the stored weight; organizations keep no
// separate CO2 counter.
func (q *impactQueries) Organization(ctx context.Context, orgID uuid.UUID) (*ImpactView, error) {
	var view *ImpactView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Organizations().FindByID(ctx, orgID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		s := o.Impact()
		view = &ImpactView{
			Pickups:  s.TotalPickups,
			Meals:    s.TotalMeals,
			WeightKg: s.TotalWeightKg,
			CO2Kg:    s.TotalWeightKg * impact.CO2KgPerKg,
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (q *impactQueries) Donor(ctx context.Context, donorID uuid.UUID, actor usecase.Principal) (*ImpactView, error) {
	if !actor.IsAdmin() && actor.UserID != donorID {
		return nil, fail(ErrDonorAccess)
	}
	var totals impact.Totals
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		totals, err = tx.Impact().DonorTotals(ctx, donorID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return toImpactView(totals), nil
}
