package queries

import (
	"context"
	"errors"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/infra"
	"save-serve/internal/pkg/errs"
)

var (
	ErrDonationNotFound     = errs.New("donation not found")
	ErrOrganizationNotFound = errs.New("organization not found")
	ErrDonationAccess       = errs.New("no access to this donation")
	ErrOrganizationAccess   = errs.New("no access to this organization")
	ErrDonorAccess          = errs.New("no access to this donor")
	ErrAdminOnly            = errs.New("administrator role required")
	ErrInvalidCursor        = errs.New("invalid cursor")
	ErrInvalidSearch        = errs.New("invalid search point, radius or portion range")
	ErrRankTimeout          = errs.New("ranking deadline exceeded")
	ErrDatabaseOperation    = errs.New("database operation failed")
)

var categories = map[error]error{
	ErrDonationNotFound:     errs.ErrNotFound,
	ErrOrganizationNotFound: errs.ErrNotFound,
	ErrDonationAccess:       errs.ErrForbidden,
	ErrOrganizationAccess:   errs.ErrForbidden,
	ErrDonorAccess:          errs.ErrForbidden,
	ErrAdminOnly:            errs.ErrForbidden,
	ErrInvalidCursor:        errs.ErrValidation,
	ErrInvalidSearch:        errs.ErrValidation,
	ErrRankTimeout:          errs.ErrTimeout,
	ErrDatabaseOperation:    errs.ErrUnavailable,
}

func fail(sentinel error) error {
	return errs.Mark(sentinel, categories[sentinel])
}

func failWith(cause, sentinel error) error {
	return errs.Mark(errs.WithCause(sentinel, cause), categories[sentinel])
}

// translate marks store and context errors with a category.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, errs.ErrNotFound), errs.Is(err, errs.ErrForbidden),
		errs.Is(err, errs.ErrValidation), errs.Is(err, errs.ErrTimeout),
		errs.Is(err, errs.ErrUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return failWith(err, ErrRankTimeout)
	case errors.Is(err, geo.ErrInvalidCoordinates), errors.Is(err, donation.ErrInvalidFoodType):
		return errs.Mark(err, errs.ErrValidation)
	case infra.IsKind(err, infra.KindDBFailure):
		return failWith(err, ErrDatabaseOperation)
	}
	return err
}

func notFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return failWith(err, sentinel)
	}
	return translate(err)
}
