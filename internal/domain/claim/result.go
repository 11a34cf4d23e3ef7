package claim

import (
	"time"

	"save-serve/internal/domain/matching"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// RejectReason explains a lost or refused claim. Rejections are ordinary
// results, not errors.
type RejectReason string

const (
	ReasonAlreadyClaimed RejectReason = "already_claimed"
	ReasonNotAvailable   RejectReason = "not_available"
	ReasonExpired        RejectReason = "expired"
	ReasonNotEligible    RejectReason = "not_eligible"
)

type Result struct {
	Outcome        Outcome
	Reason         RejectReason
	Rule           matching.Reason
	DonationID     uuid.UUID
	OrganizationID uuid.UUID
	ClaimedAt      *time.Time
}

func Accepted(donationID, orgID uuid.UUID, at time.Time) Result {
	return Result{
		Outcome:        OutcomeAccepted,
		DonationID:     donationID,
		OrganizationID: orgID,
		ClaimedAt:      &at,
	}
}

func Rejected(donationID, orgID uuid.UUID, reason RejectReason) Result {
	return Result{
		Outcome:        OutcomeRejected,
		Reason:         reason,
		DonationID:     donationID,
		OrganizationID: orgID,
	}
}

func NotEligible(donationID, orgID uuid.UUID, rule matching.Reason) Result {
	r := Rejected(donationID, orgID, ReasonNotEligible)
	r.Rule = rule
	return r
}

func (r Result) IsAccepted() bool { return r.Outcome == OutcomeAccepted }

// Code is the wire form of the reason, e.g. "not_eligible:capacity".
func (r Result) Code() string {
	if r.Outcome == OutcomeAccepted {
		return ""
	}
	if r.Reason == ReasonNotEligible && r.Rule != "" {
		return string(r.Reason) + ":" + string(r.Rule)
	}
	return string(r.Reason)
}

// Attempt is one row of the append-only claim audit log.
type Attempt struct {
	DonationID     uuid.UUID
	OrganizationID uuid.UUID
	AttemptedAt    time.Time
	Outcome        Outcome
	Reason         string
}

func AttemptFrom(r Result, at time.Time) Attempt {
	return Attempt{
		DonationID:     r.DonationID,
		OrganizationID: r.OrganizationID,
		AttemptedAt:    at,
		Outcome:        r.Outcome,
		Reason:         r.Code(),
	}
}
