package commands

import (
	"context"
	"errors"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/organization"
	"save-serve/internal/infra"
	"save-serve/internal/pkg/errs"
)

var (
	ErrDonationNotFound      = errs.New("donation does not exist")
	ErrOrganizationNotFound  = errs.New("organization does not exist")
	ErrNotOrganizationMember = errs.New("caller does not act for this organization")
	ErrNotDonationOwner      = errs.New("caller does not own this donation")
	ErrAdminOnly             = errs.New("administrator role required")
	ErrAlreadyRegistered     = errs.New("user already registered an organization")
	ErrConcurrentUpdate      = errs.New("record changed concurrently, retry")
	ErrStaleVersion          = errs.New("organization changed since it was read")
	ErrPartialCoordinates    = errs.New("latitude and longitude must be given together")
	ErrClaimTimeout          = errs.New("claim deadline passed before the claim started")
	ErrClaimRateLimited      = errs.New("too many claim attempts")
	ErrDatabaseOperation     = errs.New("database operation failed")
)

var categories = map[error]error{
	ErrDonationNotFound:      errs.ErrNotFound,
	ErrOrganizationNotFound:  errs.ErrNotFound,
	ErrNotOrganizationMember: errs.ErrForbidden,
	ErrNotDonationOwner:      errs.ErrForbidden,
	ErrAdminOnly:             errs.ErrForbidden,
	ErrAlreadyRegistered:     errs.ErrConflict,
	ErrConcurrentUpdate:      errs.ErrConflict,
	ErrStaleVersion:          errs.ErrConflict,
	ErrPartialCoordinates:    errs.ErrValidation,
	ErrClaimTimeout:          errs.ErrTimeout,
	ErrClaimRateLimited:      errs.ErrRateLimited,
	ErrDatabaseOperation:     errs.ErrUnavailable,
}

// fail returns sentinel carrying its category.
func fail(sentinel error) error {
	return errs.Mark(sentinel, categories[sentinel])
}

// failWith reports sentinel with its category and keeps cause for logs.
func failWith(cause, sentinel error) error {
	return errs.Mark(errs.WithCause(sentinel, cause), categories[sentinel])
}

var validationErrors = []error{
	donation.ErrInvalidPortions, donation.ErrInvalidWeight, donation.ErrInvalidWindow,
	donation.ErrWindowTooShort, donation.ErrWindowStartInPast, donation.ErrInvalidTitle,
	donation.ErrNoFoodTypes, donation.ErrTooManyImages, donation.ErrDescriptionTooLong,
	donation.ErrInvalidFoodType,
	geo.ErrInvalidCoordinates, geo.ErrMissingAddress,
	organization.ErrInvalidName, organization.ErrInvalidCapacity, organization.ErrInvalidServiceRadius,
	organization.ErrNoAcceptedFoodTypes, organization.ErrInvalidType, organization.ErrInvalidVerificationStatus,
	organization.ErrInvalidDay, organization.ErrNoAvailableDays, organization.ErrInvalidClockTime,
	impact.ErrInvalidWeight,
}

// translate marks domain and repository errors with the category the
// transport layer maps to a status code.
func translate(err error) error {
	if err == nil || categorized(err) {
		return err
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return errs.Mark(err, errs.ErrValidation)
		}
	}
	switch {
	case errors.Is(err, donation.ErrNotDonor):
		return failWith(err, ErrNotDonationOwner)
	case errors.Is(err, donation.ErrNotClaimant):
		return errs.Mark(err, errs.ErrForbidden)
	case errors.Is(err, donation.ErrInvalidTransition),
		errors.Is(err, donation.ErrWindowEnded),
		errors.Is(err, organization.ErrInvalidVerification):
		return errs.Mark(err, errs.ErrConflict)
	case isContextErr(err):
		return errs.Mark(err, errs.ErrTimeout)
	case infra.IsKind(err, infra.KindConflict):
		return failWith(err, ErrConcurrentUpdate)
	case infra.IsKind(err, infra.KindDBFailure):
		return failWith(err, ErrDatabaseOperation)
	}
	return err
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func notFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return failWith(err, sentinel)
	}
	return translate(err)
}

var allCategories = []error{
	errs.ErrNotFound, errs.ErrValidation, errs.ErrForbidden, errs.ErrConflict,
	errs.ErrUnavailable, errs.ErrTimeout, errs.ErrRateLimited,
}

func categorized(err error) bool {
	for _, c := range allCategories {
		if errs.Is(err, c) {
			return true
		}
	}
	return false
}
