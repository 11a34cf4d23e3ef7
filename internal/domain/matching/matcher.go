package matching

import (
	"context"
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/organization"
)

// Matcher applies the eligibility filter before ranking, in both directions.
type Matcher struct {
	filter EligibilityFilter
	ranker Ranker
}

func NewMatcher(filter EligibilityFilter, ranker Ranker) *Matcher {
	return &Matcher{filter: filter, ranker: ranker}
}

func (m *Matcher) Filter() EligibilityFilter { return m.filter }

func (m *Matcher) OrganizationsFor(
	ctx context.Context,
	d *donation.Donation,
	orgs []*organization.Organization,
	orgLocator Locator,
	now time.Time,
) ([]OrganizationCandidate, error) {
	eligible := make([]*organization.Organization, 0, len(orgs))
	for _, o := range orgs {
		if m.filter.Check(d, o).Eligible {
			eligible = append(eligible, o)
		}
	}
	return m.ranker.RankOrganizations(ctx, d, eligible, orgLocator, now)
}

func (m *Matcher) DonationsFor(
	ctx context.Context,
	o *organization.Organization,
	donations []*donation.Donation,
	donationLocator Locator,
	now time.Time,
) ([]DonationCandidate, error) {
	eligible := make([]*donation.Donation, 0, len(donations))
	for _, d := range donations {
		if !d.IsClaimable(now) {
			continue
		}
		if m.filter.Check(d, o).Eligible {
			eligible = append(eligible, d)
		}
	}
	return m.ranker.RankDonations(ctx, o, eligible, donationLocator, now)
}
