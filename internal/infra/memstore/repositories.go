package memstore

import (
	"context"
	"sort"
	"time"

	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/notification"
	"save-serve/internal/domain/organization"
	"save-serve/internal/infra"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxLastErrorLen = 2000

type donationRepo struct{ tx *memTx }

func (r *donationRepo) Create(_ context.Context, d *donation.Donation) error {
	if _, ok := r.tx.st.donations[d.ID()]; ok {
		return infra.WrapRepoErr("donation already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.write().donations[d.ID()] = d.Snapshot()
	return nil
}

func (r *donationRepo) FindByID(_ context.Context, id uuid.UUID) (*donation.Donation, error) {
	s, ok := r.tx.st.donations[id]
	if !ok {
		return nil, infra.WrapRepoErr("donation not found", nil, infra.KindNotFound)
	}
	return donation.Reconstruct(s), nil
}

func (r *donationRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*donation.Donation, error) {
	out := make([]*donation.Donation, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.tx.st.donations[id]; ok {
			out = append(out, donation.Reconstruct(s))
		}
	}
	return out, nil
}

func (r *donationRepo) Update(_ context.Context, d *donation.Donation) error {
	stored, ok := r.tx.st.donations[d.ID()]
	if !ok {
		return infra.WrapRepoErr("donation not found", nil, infra.KindNotFound)
	}
	if stored.Version != d.Version()-1 {
		return infra.WrapRepoErr("donation was modified concurrently", nil, infra.KindConflict)
	}
	r.tx.write().donations[d.ID()] = d.Snapshot()
	return nil
}

// ClaimIfAvailable holds the donation and then claims it without releasing
// the store lock, so claim_pending is never visible to another transaction.
func (r *donationRepo) ClaimIfAvailable(_ context.Context, id, orgID uuid.UUID, at time.Time) (bool, error) {
	s, ok := r.tx.st.donations[id]
	if !ok {
		return false, infra.WrapRepoErr("donation not found", nil, infra.KindNotFound)
	}
	d := donation.Reconstruct(s)
	if err := d.HoldFor(orgID, at); err != nil {
		return false, nil
	}
	if err := d.Claim(orgID, at); err != nil {
		return false, nil
	}
	r.tx.write().donations[id] = d.Snapshot()
	return true, nil
}

func (r *donationRepo) ListClaimable(_ context.Context, now time.Time) ([]*donation.Donation, error) {
	out := r.filter(func(s donation.Snapshot) bool {
		return s.Status == donation.StatusAvailable && !s.Window.Ended(now)
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().After(b.CreatedAt())
		}
		return geo.LessID(a.ID(), b.ID())
	})
	return out, nil
}

func (r *donationRepo) ListByDonor(_ context.Context, donorID uuid.UUID, page shared.Page) ([]*donation.Donation, error) {
	out := r.filter(func(s donation.Snapshot) bool {
		if s.DonorID != donorID {
			return false
		}
		if page.AfterCreatedAt == nil {
			return true
		}
		after := *page.AfterCreatedAt
		return s.CreatedAt.Before(after) ||
			(s.CreatedAt.Equal(after) && geo.LessID(s.ID, page.AfterID))
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().After(b.CreatedAt())
		}
		return geo.LessID(b.ID(), a.ID())
	})
	if page.Limit > 0 && len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, nil
}

func (r *donationRepo) ListDueForExpiry(_ context.Context, now time.Time, limit int) ([]*donation.Donation, error) {
	out := r.filter(func(s donation.Snapshot) bool {
		return (s.Status == donation.StatusAvailable || s.Status == donation.StatusClaimPending) && s.Window.Ended(now)
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Window().End().Equal(b.Window().End()) {
			return a.Window().End().Before(b.Window().End())
		}
		return geo.LessID(a.ID(), b.ID())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *donationRepo) Stats(_ context.Context, donorID *uuid.UUID) (shared.DonationStats, error) {
	now := r.tx.clock.Now()
	var st shared.DonationStats
	for _, s := range r.tx.st.donations {
		if donorID != nil && s.DonorID != *donorID {
			continue
		}
		st.TotalDonations++
		if s.Status == donation.StatusAvailable && !s.Window.Ended(now) {
			st.ActiveListings++
		}
		st.TotalPortions += int64(s.Quantity.Portions())
		st.TotalWeightKg += s.Quantity.WeightKg()
	}
	return st, nil
}

func (r *donationRepo) filter(keep func(donation.Snapshot) bool) []*donation.Donation {
	out := make([]*donation.Donation, 0)
	for _, s := range r.tx.st.donations {
		if keep(s) {
			out = append(out, donation.Reconstruct(s))
		}
	}
	return out
}

type organizationRepo struct{ tx *memTx }

func (r *organizationRepo) Create(_ context.Context, o *organization.Organization) error {
	for _, s := range r.tx.st.organizations {
		if s.UserID == o.UserID() {
			return infra.WrapRepoErr("organization already registered for user", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.write().organizations[o.ID()] = o.Snapshot()
	return nil
}

func (r *organizationRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*organization.Organization, error) {
	for _, s := range r.tx.st.organizations {
		if s.UserID == userID {
			return organization.Reconstruct(s), nil
		}
	}
	return nil, infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
}

func (r *organizationRepo) FindByID(_ context.Context, id uuid.UUID) (*organization.Organization, error) {
	s, ok := r.tx.st.organizations[id]
	if !ok {
		return nil, infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
	}
	return organization.Reconstruct(s), nil
}

func (r *organizationRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*organization.Organization, error) {
	out := make([]*organization.Organization, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.tx.st.organizations[id]; ok {
			out = append(out, organization.Reconstruct(s))
		}
	}
	return out, nil
}

func (r *organizationRepo) Update(_ context.Context, o *organization.Organization) error {
	stored, ok := r.tx.st.organizations[o.ID()]
	if !ok {
		return infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
	}
	if stored.Version != o.Version()-1 {
		return infra.WrapRepoErr("organization was modified concurrently", nil, infra.KindConflict)
	}
	next := o.Snapshot()
	next.Impact = stored.Impact
	next.LastActiveAt = stored.LastActiveAt
	r.tx.write().organizations[o.ID()] = next
	return nil
}

func (r *organizationRepo) TouchActivity(_ context.Context, id uuid.UUID, at time.Time) error {
	s, ok := r.tx.st.organizations[id]
	if !ok {
		return infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
	}
	if at.After(s.LastActiveAt) {
		s.LastActiveAt = at
		r.tx.write().organizations[id] = s
	}
	return nil
}

func (r *organizationRepo) ListVerified(_ context.Context) ([]*organization.Organization, error) {
	out := make([]*organization.Organization, 0)
	for _, s := range r.tx.st.organizations {
		if s.VerificationStatus == organization.VerificationVerified {
			out = append(out, organization.Reconstruct(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return geo.LessID(out[i].ID(), out[j].ID()) })
	return out, nil
}

func (r *organizationRepo) ListByStatus(_ context.Context, status organization.VerificationStatus, limit int) ([]*organization.Organization, error) {
	out := make([]*organization.Organization, 0)
	for _, s := range r.tx.st.organizations {
		if s.VerificationStatus == status {
			out = append(out, organization.Reconstruct(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().Before(b.CreatedAt())
		}
		return geo.LessID(a.ID(), b.ID())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *organizationRepo) AddImpact(_ context.Context, id uuid.UUID, d impact.Delta, at time.Time) error {
	s, ok := r.tx.st.organizations[id]
	if !ok {
		return infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
	}
	s.Impact.TotalPickups++
	s.Impact.TotalMeals += d.Meals
	s.Impact.TotalWeightKg += d.WeightKg
	s.LastActiveAt = at
	s.UpdatedAt = at
	r.tx.write().organizations[id] = s
	return nil
}

func (r *organizationRepo) Stats(_ context.Context) (shared.OrganizationStats, error) {
	var st shared.OrganizationStats
	for _, s := range r.tx.st.organizations {
		st.Total++
		switch s.VerificationStatus {
		case organization.VerificationVerified:
			st.Verified++
		case organization.VerificationPending:
			st.Pending++
		}
		st.TotalPickups += s.Impact.TotalPickups
		st.TotalMeals += s.Impact.TotalMeals
		st.TotalWeightKg += s.Impact.TotalWeightKg
	}
	return st, nil
}

type impactRepo struct{ tx *memTx }

func (r *impactRepo) InsertPickup(_ context.Context, rec impact.PickupRecord) (bool, error) {
	if _, ok := r.tx.st.pickups[rec.DonationID]; ok {
		return false, nil
	}
	r.tx.write().pickups[rec.DonationID] = rec
	return true, nil
}

func (r *impactRepo) FindPickup(_ context.Context, donationID uuid.UUID) (*impact.PickupRecord, error) {
	rec, ok := r.tx.st.pickups[donationID]
	if !ok {
		return nil, infra.WrapRepoErr("pickup not found", nil, infra.KindNotFound)
	}
	return &rec, nil
}

func (r *impactRepo) AddToPlatform(_ context.Context, d impact.Delta) error {
	st := r.tx.write()
	st.platform = st.platform.Add(d)
	return nil
}

func (r *impactRepo) AddToDonor(_ context.Context, donorID uuid.UUID, d impact.Delta) error {
	st := r.tx.write()
	st.donors[donorID] = st.donors[donorID].Add(d)
	return nil
}

func (r *impactRepo) PlatformTotals(_ context.Context) (impact.Totals, error) {
	return r.tx.st.platform, nil
}

func (r *impactRepo) DonorTotals(_ context.Context, donorID uuid.UUID) (impact.Totals, error) {
	return r.tx.st.donors[donorID], nil
}

type claimAttemptRepo struct{ tx *memTx }

func (r *claimAttemptRepo) Record(_ context.Context, a claim.Attempt) error {
	st := r.tx.write()
	st.attempts = append(st.attempts, a)
	return nil
}

func (r *claimAttemptRepo) ListByDonation(_ context.Context, donationID uuid.UUID) ([]claim.Attempt, error) {
	out := make([]claim.Attempt, 0)
	for _, a := range r.tx.st.attempts {
		if a.DonationID == donationID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AttemptedAt.Before(out[j].AttemptedAt) })
	return out, nil
}

type notificationRepo struct{ tx *memTx }

func (r *notificationRepo) Enqueue(_ context.Context, ev notification.Event, runAt time.Time) error {
	r.tx.write().jobs[ev.ID] = jobRow{job: shared.NotificationJob{
		ID:     ev.ID,
		Event:  ev,
		Status: shared.JobStatusQueued,
		RunAt:  runAt,
	}}
	return nil
}

func (r *notificationRepo) ClaimDue(_ context.Context, now time.Time, limit int, staleAfter time.Duration) ([]shared.NotificationJob, error) {
	staleBefore := now.Add(-staleAfter)
	due := make([]jobRow, 0)
	for _, row := range r.tx.st.jobs {
		switch row.job.Status {
		case shared.JobStatusQueued:
			if !row.job.RunAt.After(now) {
				due = append(due, row)
			}
		case shared.JobStatusProcessing:
			if !row.processingStartedAt.After(staleBefore) {
				due = append(due, row)
			}
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].job.RunAt.Equal(due[j].job.RunAt) {
			return due[i].job.RunAt.Before(due[j].job.RunAt)
		}
		return geo.LessID(due[i].job.ID, due[j].job.ID)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	out := make([]shared.NotificationJob, 0, len(due))
	for _, row := range due {
		row.job.Status = shared.JobStatusProcessing
		row.job.Attempts++
		row.processingStartedAt = now
		r.tx.write().jobs[row.job.ID] = row
		out = append(out, row.job)
	}
	return out, nil
}

func (r *notificationRepo) MarkSent(_ context.Context, id uuid.UUID, _ time.Time) error {
	row, ok := r.tx.st.jobs[id]
	if !ok {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	row.job.Status = shared.JobStatusSent
	row.lastError = ""
	r.tx.write().jobs[id] = row
	return nil
}

func (r *notificationRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string, retryAt time.Time) error {
	row, ok := r.tx.st.jobs[id]
	if !ok {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	if len(reason) > maxLastErrorLen {
		reason = reason[:maxLastErrorLen]
	}
	row.job.Status = shared.JobStatusQueued
	row.job.RunAt = retryAt
	row.lastError = reason
	row.processingStartedAt = time.Time{}
	r.tx.write().jobs[id] = row
	return nil
}
