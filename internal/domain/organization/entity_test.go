//go:build unit

package organization_test

import (
	"testing"
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/organization"
	"save-serve/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OrganizationBuilder)
	errIs  error
}

func TestOrganization(t *testing.T) {
	t.Run("registers as pending", func(t *testing.T) {
		actual, err := builder.NewOrganizationBuilder().Unverified().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, organization.VerificationPending, actual.VerificationStatus())
		assert.False(t, actual.IsVerified())
		assert.Equal(t, builder.BaseTime, actual.LastActiveAt())
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, actual.Preferences().Availability.Days())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "zero capacity",
				mutate: func(b *builder.OrganizationBuilder) { b.WithCapacity(0) },
				errIs:  organization.ErrInvalidCapacity,
			},
			{
				name:   "capacity above the int32 range",
				mutate: func(b *builder.OrganizationBuilder) { b.WithCapacity(1 << 31) },
				errIs:  organization.ErrInvalidCapacity,
			},
			{
				name:   "largest capacity",
				mutate: func(b *builder.OrganizationBuilder) { b.WithCapacity(organization.MaxCapacity) },
			},
			{
				name:   "capacity of one",
				mutate: func(b *builder.OrganizationBuilder) { b.WithCapacity(1) },
			},
			{
				name:   "radius below one km",
				mutate: func(b *builder.OrganizationBuilder) { b.ServiceRadiusKm = 0.5 },
				errIs:  organization.ErrInvalidServiceRadius,
			},
			{
				name:   "unknown type",
				mutate: func(b *builder.OrganizationBuilder) { b.Type = "church" },
				errIs:  organization.ErrInvalidType,
			},
			{
				name:   "blank name",
				mutate: func(b *builder.OrganizationBuilder) { b.Name = " " },
				errIs:  organization.ErrInvalidName,
			},
			{
				name:   "no accepted food types",
				mutate: func(b *builder.OrganizationBuilder) { b.AcceptedFoodTypes = nil },
				errIs:  organization.ErrNoAcceptedFoodTypes,
			},
			{
				name:   "no available days",
				mutate: func(b *builder.OrganizationBuilder) { b.AvailableDays = nil },
				errIs:  organization.ErrNoAvailableDays,
			},
			{
				name:   "day out of range",
				mutate: func(b *builder.OrganizationBuilder) { b.AvailableDays = []int{7} },
				errIs:  organization.ErrInvalidDay,
			},
			{
				name:   "malformed hours",
				mutate: func(b *builder.OrganizationBuilder) { b.HoursStart = "8am" },
				errIs:  organization.ErrInvalidClockTime,
			},
			{
				name:   "hour out of range",
				mutate: func(b *builder.OrganizationBuilder) { b.HoursEnd = "24:00" },
				errIs:  organization.ErrInvalidClockTime,
			},
		})
	})

	t.Run("zero radius falls back to the default", func(t *testing.T) {
		o := builder.NewOrganizationBuilder().With(func(b *builder.OrganizationBuilder) {
			b.ServiceRadiusKm = 0
		}).MustBuild()
		assert.Equal(t, organization.DefaultServiceRadiusKm, o.ServiceRadiusKm())
	})
}

func TestVerification(t *testing.T) {
	now := builder.BaseTime.Add(time.Hour)

	cases := []struct {
		name string
		from []organization.VerificationStatus
		to   organization.VerificationStatus
		ok   bool
	}{
		{name: "pending to verified", to: organization.VerificationVerified, ok: true},
		{name: "pending to rejected", to: organization.VerificationRejected, ok: true},
		{name: "pending to pending", to: organization.VerificationPending},
		{
			name: "verified can be revoked",
			from: []organization.VerificationStatus{organization.VerificationVerified},
			to:   organization.VerificationRejected,
			ok:   true,
		},
		{
			name: "verified cannot go back to pending",
			from: []organization.VerificationStatus{organization.VerificationVerified},
			to:   organization.VerificationPending,
		},
		{
			name: "rejected returns to pending",
			from: []organization.VerificationStatus{organization.VerificationRejected},
			to:   organization.VerificationPending,
			ok:   true,
		},
		{
			name: "rejected cannot be verified directly",
			from: []organization.VerificationStatus{organization.VerificationRejected},
			to:   organization.VerificationVerified,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := builder.NewOrganizationBuilder().Unverified().MustBuild()
			for _, s := range c.from {
				require.NoError(t, o.SetVerification(s, now))
			}
			err := o.SetVerification(c.to, now)
			if c.ok {
				require.NoError(t, err)
				assert.Equal(t, c.to, o.VerificationStatus())
				return
			}
			assert.ErrorIs(t, err, organization.ErrInvalidVerification)
		})
	}

	t.Run("resubmission replaces documents", func(t *testing.T) {
		o := builder.NewOrganizationBuilder().Unverified().MustBuild()
		require.NoError(t, o.SetVerification(organization.VerificationRejected, now))
		require.NoError(t, o.Resubmit([]string{"doc-2", "doc-3"}, now))
		assert.Equal(t, organization.VerificationPending, o.VerificationStatus())
		assert.Equal(t, []string{"doc-2", "doc-3"}, o.VerificationDocFileIDs())
	})
}

func TestUpdateProfile(t *testing.T) {
	now := builder.BaseTime.Add(time.Hour)
	ptr := func(n int) *int { return &n }

	t.Run("changes only the given fields and bumps the version", func(t *testing.T) {
		o := builder.NewOrganizationBuilder().MustBuild()
		before := o.Snapshot()
		hours, err := organization.NewHourRange("18:00", "22:00")
		require.NoError(t, err)
		avail, err := organization.NewAvailability([]int{1, 3}, hours)
		require.NoError(t, err)

		require.NoError(t, o.UpdateProfile(organization.ProfileUpdate{
			Capacity:     ptr(75),
			Availability: &avail,
		}, now))

		assert.Equal(t, 75, o.Capacity())
		assert.Equal(t, []int{1, 3}, o.Preferences().Availability.Days())
		assert.Equal(t, before.Name, o.Name())
		assert.Equal(t, before.Preferences.AcceptedFoodTypes, o.Preferences().AcceptedFoodTypes)
		assert.Equal(t, before.VerificationStatus, o.VerificationStatus())
		assert.Equal(t, before.Version+1, o.Version())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("invalid field leaves the organization untouched", func(t *testing.T) {
		o := builder.NewOrganizationBuilder().MustBuild()
		before := o.Snapshot()
		blank := " "

		err := o.UpdateProfile(organization.ProfileUpdate{Capacity: ptr(10), Name: &blank}, now)
		assert.ErrorIs(t, err, organization.ErrInvalidName)
		assert.Equal(t, before, o.Snapshot())

		err = o.UpdateProfile(organization.ProfileUpdate{Capacity: ptr(1 << 31)}, now)
		assert.ErrorIs(t, err, organization.ErrInvalidCapacity)
		assert.Equal(t, before, o.Snapshot())

		err = o.UpdateProfile(organization.ProfileUpdate{AcceptedFoodTypes: donation.FoodTypes{}}, now)
		assert.ErrorIs(t, err, organization.ErrNoAcceptedFoodTypes)
	})

	t.Run("verification changes bump the version", func(t *testing.T) {
		o := builder.NewOrganizationBuilder().Unverified().MustBuild()
		v := o.Version()
		require.NoError(t, o.SetVerification(organization.VerificationVerified, now))
		assert.Equal(t, v+1, o.Version())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewOrganizationBuilder().With(c.mutate).BuildDomain()
			if c.errIs != nil {
				assert.ErrorIs(t, err, c.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, actual)
		})
	}
}
