package shared

import (
	"time"

	"save-serve/internal/domain/notification"

	"github.com/google/uuid"
)

// Page is a keyset page ordered by created_at desc, id desc.
type Page struct {
	AfterCreatedAt *time.Time
	AfterID        uuid.UUID
	Limit          int
}

// DonationStats sum listed quantities, not rescued ones.
type DonationStats struct {
	TotalDonations int64
	ActiveListings int64
	TotalPortions  int64
	TotalWeightKg  float64
}

type OrganizationStats struct {
	Total         int64
	Verified      int64
	Pending       int64
	TotalPickups  int64
	TotalMeals    int64
	TotalWeightKg float64
}

const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusSent       = "sent"
)

// NotificationJob is a queued outbox row.
type NotificationJob struct {
	ID       uuid.UUID
	Event    notification.Event
	Attempts int
	Status   string
	RunAt    time.Time
}
