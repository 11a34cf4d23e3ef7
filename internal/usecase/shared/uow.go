package shared

import (
	"context"
	"time"

	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/notification"
	"save-serve/internal/domain/organization"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Donations() DonationRepository
	Organizations() OrganizationRepository
	Impact() ImpactRepository
	ClaimAttempts() ClaimAttemptRepository
	Notifications() NotificationRepository
}

type DonationRepository interface {
	Create(ctx context.Context, d *donation.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*donation.Donation, error)
	// Update persists d if the stored version is d.Version()-1.
	Update(ctx context.Context, d *donation.Donation) error
	// ClaimIfAvailable assigns the donation to orgID in a single conditional
	// step. It reports false when the donation was not available or its window
	// had ended at the time of the update.
	ClaimIfAvailable(ctx context.Context, id, orgID uuid.UUID, at time.Time) (bool, error)
	ListClaimable(ctx context.Context, now time.Time) ([]*donation.Donation, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID, page Page) ([]*donation.Donation, error)
	ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error)
	Stats(ctx context.Context, donorID *uuid.UUID) (DonationStats, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, o *organization.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*organization.Organization, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*organization.Organization, error)
	// Update persists o if the stored version is o.Version()-1.
	Update(ctx context.Context, o *organization.Organization) error
	// TouchActivity moves last_active_at forward. It never conflicts with
	// Update.
	TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error
	ListVerified(ctx context.Context) ([]*organization.Organization, error)
	ListByStatus(ctx context.Context, status organization.VerificationStatus, limit int) ([]*organization.Organization, error)
	// AddImpact increments the lifetime counters in place.
	AddImpact(ctx context.Context, id uuid.UUID, d impact.Delta, at time.Time) error
	Stats(ctx context.Context) (OrganizationStats, error)
}

type ImpactRepository interface {
	// InsertPickup reports false when a record for the donation already exists.
	InsertPickup(ctx context.Context, rec impact.PickupRecord) (bool, error)
	FindPickup(ctx context.Context, donationID uuid.UUID) (*impact.PickupRecord, error)
	AddToPlatform(ctx context.Context, d impact.Delta) error
	AddToDonor(ctx context.Context, donorID uuid.UUID, d impact.Delta) error
	PlatformTotals(ctx context.Context) (impact.Totals, error)
	DonorTotals(ctx context.Context, donorID uuid.UUID) (impact.Totals, error)
}

type ClaimAttemptRepository interface {
	Record(ctx context.Context, a claim.Attempt) error
	ListByDonation(ctx context.Context, donationID uuid.UUID) ([]claim.Attempt, error)
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, ev notification.Event, runAt time.Time) error
	// ClaimDue moves up to limit due jobs to processing and returns them.
	// Jobs stuck in processing longer than staleAfter are claimed again.
	ClaimDue(ctx context.Context, now time.Time, limit int, staleAfter time.Duration) ([]NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt time.Time) error
}
