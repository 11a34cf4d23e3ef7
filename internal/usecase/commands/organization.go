package commands

//go:generate mockgen -source=organization.go -destination=../../../tests/mock/commands/mock_organization.go -package=commandsmock

import (
	"context"
	"log/slog"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/organization"
	"save-serve/internal/infra"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrganizationCommands interface {
	Register(ctx context.Context, req RegisterOrganizationRequest, actor usecase.Principal) (uuid.UUID, error)
	SetVerification(ctx context.Context, orgID uuid.UUID, status string, actor usecase.Principal) error
	Resubmit(ctx context.Context, orgID uuid.UUID, docFileIDs []string, actor usecase.Principal) error
	// UpdateProfile changes the fields matching reads. Owner or admin only.
	UpdateProfile(ctx context.Context, orgID uuid.UUID, req UpdateOrganizationRequest, actor usecase.Principal) error
}

type organizationCommands struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	locator *locator.Locator
	logger  *slog.Logger
}

func NewOrganizationCommands(uow shared.UnitOfWork, clk clock.Clock, loc *locator.Locator, logger *slog.Logger) OrganizationCommands {
	return &organizationCommands{uow: uow, clock: clk, locator: loc, logger: logger}
}

func (c *organizationCommands) Register(ctx context.Context, req RegisterOrganizationRequest, actor usecase.Principal) (uuid.UUID, error) {
	o, err := buildOrganization(req, actor.UserID, c.clock)
	if err != nil {
		return uuid.Nil, translate(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Organizations().Create(ctx, o)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, failWith(err, ErrAlreadyRegistered)
		}
		return uuid.Nil, translate(err)
	}

	c.logger.Info("organization registered",
		"organization_id", o.ID().String(),
		"user_id", actor.UserID.String())
	return o.ID(), nil
}

func buildOrganization(req RegisterOrganizationRequest, userID uuid.UUID, clk clock.Clock) (*organization.Organization, error) {
	orgType, err := organization.ParseType(req.Type)
	if err != nil {
		return nil, err
	}
	location, err := geo.NewLocation(req.Latitude, req.Longitude, req.Address)
	if err != nil {
		return nil, err
	}
	foodTypes, err := donation.NewFoodTypes(req.AcceptedFoodTypes)
	if err != nil {
		return nil, err
	}
	hours, err := organization.NewHourRange(req.HoursStart, req.HoursEnd)
	if err != nil {
		return nil, err
	}
	availability, err := organization.NewAvailability(req.AvailableDays, hours)
	if err != nil {
		return nil, err
	}
	return organization.NewOrganization(clk, organization.NewParams{
		UserID:                 userID,
		Name:                   req.Name,
		RegistrationNumber:     req.RegistrationNumber,
		Type:                   orgType,
		Capacity:               req.Capacity,
		ServiceRadiusKm:        req.ServiceRadiusKm,
		Location:               location,
		VehicleInfo:            req.VehicleInfo,
		VerificationDocFileIDs: req.VerificationDocFileIDs,
		Preferences: organization.Preferences{
			AcceptedFoodTypes: foodTypes,
			Availability:      availability,
		},
	})
}

func (c *organizationCommands) SetVerification(ctx context.Context, orgID uuid.UUID, status string, actor usecase.Principal) error {
	if !actor.IsAdmin() {
		return fail(ErrAdminOnly)
	}
	next, err := organization.ParseVerificationStatus(status)
	if err != nil {
		return translate(err)
	}

	var updated *organization.Organization
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Organizations().FindByID(ctx, orgID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		if err := o.SetVerification(next, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Organizations().Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return translate(err)
	}

	c.locator.SyncOrganization(updated)
	c.logger.Info("organization verification changed",
		"organization_id", orgID.String(),
		"status", next.String(),
		"admin_id", actor.UserID.String())
	return nil
}

func (c *organizationCommands) Resubmit(ctx context.Context, orgID uuid.UUID, docFileIDs []string, actor usecase.Principal) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Organizations().FindByID(ctx, orgID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		if o.UserID() != actor.UserID {
			return fail(ErrNotOrganizationMember)
		}
		if err := o.Resubmit(docFileIDs, c.clock.Now()); err != nil {
			return err
		}
		return tx.Organizations().Update(ctx, o)
	})
	return translate(err)
}

func (c *organizationCommands) UpdateProfile(ctx context.Context, orgID uuid.UUID, req UpdateOrganizationRequest, actor usecase.Principal) error {
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return fail(ErrPartialCoordinates)
	}

	var updated *organization.Organization
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Organizations().FindByID(ctx, orgID)
		if err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		if !actor.IsAdmin() && o.UserID() != actor.UserID {
			return fail(ErrNotOrganizationMember)
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != o.Version() {
			return fail(ErrStaleVersion)
		}
		u, err := profileUpdate(o, req)
		if err != nil {
			return err
		}
		if err := o.UpdateProfile(u, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Organizations().Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return translate(err)
	}

	c.locator.SyncOrganization(updated)
	c.logger.Info("organization profile updated",
		"organization_id", orgID.String(),
		"version", updated.Version(),
		"user_id", actor.UserID.String())
	return nil
}

// profileUpdate resolves req against the current profile. Location and
// availability are replaced as a whole, so missing parts come from cur.
func profileUpdate(cur *organization.Organization, req UpdateOrganizationRequest) (organization.ProfileUpdate, error) {
	u := organization.ProfileUpdate{
		Name:            req.Name,
		Capacity:        req.Capacity,
		ServiceRadiusKm: req.ServiceRadiusKm,
		VehicleInfo:     req.VehicleInfo,
	}

	if req.Latitude != nil || req.Address != nil {
		loc := cur.Location()
		lat, lng, addr := loc.Point.Lat, loc.Point.Lng, loc.Address
		if req.Latitude != nil {
			lat, lng = *req.Latitude, *req.Longitude
		}
		if req.Address != nil {
			addr = *req.Address
		}
		next, err := geo.NewLocation(lat, lng, addr)
		if err != nil {
			return organization.ProfileUpdate{}, err
		}
		u.Location = &next
	}

	if req.AcceptedFoodTypes != nil {
		foodTypes, err := donation.NewFoodTypes(req.AcceptedFoodTypes)
		if err != nil {
			return organization.ProfileUpdate{}, err
		}
		u.AcceptedFoodTypes = foodTypes
	}

	if req.AvailableDays != nil || req.HoursStart != nil || req.HoursEnd != nil {
		avail := cur.Preferences().Availability
		days, hours := avail.Days(), avail.Hours()
		if req.AvailableDays != nil {
			days = req.AvailableDays
		}
		start, end := hours.Start.String(), hours.End.String()
		if req.HoursStart != nil {
			start = *req.HoursStart
		}
		if req.HoursEnd != nil {
			end = *req.HoursEnd
		}
		nextHours, err := organization.NewHourRange(start, end)
		if err != nil {
			return organization.ProfileUpdate{}, err
		}
		next, err := organization.NewAvailability(days, nextHours)
		if err != nil {
			return organization.ProfileUpdate{}, err
		}
		u.Availability = &next
	}
	return u, nil
}
