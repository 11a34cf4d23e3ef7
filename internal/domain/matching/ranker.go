package matching

import (
	"context"
	"math"
	"sort"
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/organization"

	"github.com/google/uuid"
)

// Locator resolves the indexed distance from a point to an entity.
type Locator interface {
	Distance(id uuid.UUID, from geo.Point) (float64, bool)
}

type Weights struct {
	Distance float64
	Capacity float64
	Recency  float64
}

func DefaultWeights() Weights {
	return Weights{Distance: 0.6, Capacity: 0.3, Recency: 0.1}
}

type RankerConfig struct {
	Weights Weights
	// Age at which a donation's recency term reaches zero.
	DonationHorizon time.Duration
	// Idle time at which an organization's recency term reaches zero.
	ActivityHorizon time.Duration
}

type OrganizationCandidate struct {
	Organization *organization.Organization
	DistanceKm   float64
	Score        float64
}

type DonationCandidate struct {
	Donation   *donation.Donation
	DistanceKm float64
	Score      float64
}

// Ranker orders candidates by
//
//	score = w1*(1 - d/serviceRadius) + w2*capacityFit + w3*recency
//
// with every term clamped to [0, 1] before weighting. Candidates farther than
// the organization's service radius, or without an indexed location, are
// dropped. Equal scores are ordered by ascending id. Ranker keeps no state
// between calls.
type Ranker struct {
	cfg RankerConfig
}

func NewRanker(cfg RankerConfig) Ranker {
	cfg.Weights.Distance = math.Max(0, cfg.Weights.Distance)
	cfg.Weights.Capacity = math.Max(0, cfg.Weights.Capacity)
	cfg.Weights.Recency = math.Max(0, cfg.Weights.Recency)
	if cfg.DonationHorizon <= 0 {
		cfg.DonationHorizon = 24 * time.Hour
	}
	if cfg.ActivityHorizon <= 0 {
		cfg.ActivityHorizon = 7 * 24 * time.Hour
	}
	return Ranker{cfg: cfg}
}

func (r Ranker) Weights() Weights { return r.cfg.Weights }

// RankOrganizations scores organizations for a donation. orgLocator must
// index organization locations.
func (r Ranker) RankOrganizations(
	ctx context.Context,
	d *donation.Donation,
	orgs []*organization.Organization,
	orgLocator Locator,
	now time.Time,
) ([]OrganizationCandidate, error) {
	out := make([]OrganizationCandidate, 0, len(orgs))
	from := d.Location().Point
	for _, o := range orgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dist, ok := orgLocator.Distance(o.ID(), from)
		if !ok || dist > o.ServiceRadiusKm() {
			continue
		}
		recency := freshness(now.Sub(o.LastActiveAt()), r.cfg.ActivityHorizon)
		out = append(out, OrganizationCandidate{
			Organization: o,
			DistanceKm:   dist,
			Score:        r.score(dist, o, d, recency),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return geo.LessID(out[i].Organization.ID(), out[j].Organization.ID())
	})
	return out, nil
}

// RankDonations scores donations for an organization. donationLocator must
// index donation pickup locations.
func (r Ranker) RankDonations(
	ctx context.Context,
	o *organization.Organization,
	donations []*donation.Donation,
	donationLocator Locator,
	now time.Time,
) ([]DonationCandidate, error) {
	out := make([]DonationCandidate, 0, len(donations))
	from := o.Location().Point
	for _, d := range donations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dist, ok := donationLocator.Distance(d.ID(), from)
		if !ok || dist > o.ServiceRadiusKm() {
			continue
		}
		recency := freshness(now.Sub(d.CreatedAt()), r.cfg.DonationHorizon)
		out = append(out, DonationCandidate{
			Donation:   d,
			DistanceKm: dist,
			Score:      r.score(dist, o, d, recency),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return geo.LessID(out[i].Donation.ID(), out[j].Donation.ID())
	})
	return out, nil
}

func (r Ranker) score(dist float64, o *organization.Organization, d *donation.Donation, recency float64) float64 {
	w := r.cfg.Weights
	proximity := clamp01(1 - dist/o.ServiceRadiusKm())
	fit := clamp01(float64(d.Quantity().Portions()) / float64(o.Capacity()))
	return w.Distance*proximity + w.Capacity*fit + w.Recency*clamp01(recency)
}

func freshness(elapsed, horizon time.Duration) float64 {
	if elapsed <= 0 {
		return 1
	}
	return 1 - float64(elapsed)/float64(horizon)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
