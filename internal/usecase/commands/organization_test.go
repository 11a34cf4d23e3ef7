//go:build unit

package commands_test

import (
	"testing"

	"save-serve/internal/domain/organization"
	"save-serve/internal/domain/user"
	"save-serve/internal/pkg/errs"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/commands"
	"save-serve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type OrganizationCommandsTestSuite struct {
	storeSuite
	org  *organization.Organization
	cmds commands.OrganizationCommands
}

func TestOrganizationCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrganizationCommandsTestSuite))
}

func (s *OrganizationCommandsTestSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.org = s.seedOrganization(builder.NewOrganizationBuilder())
	s.cmds = commands.NewOrganizationCommands(s.store, s.clock, s.locator, s.logger)
}

func ptr[T any](v T) *T { return &v }

func (s *OrganizationCommandsTestSuite) TestUpdateProfile_Applies() {
	before := s.org.Version()

	err := s.cmds.UpdateProfile(s.ctx, s.org.ID(), commands.UpdateOrganizationRequest{
		ExpectedVersion: ptr(before),
		Capacity:        ptr(120),
		ServiceRadiusKm: ptr(40.0),
		Latitude:        ptr(-1.3000),
		Longitude:       ptr(36.8000),
		HoursEnd:        ptr("22:00"),
	}, memberOf(s.org))

	s.Require().NoError(err)
	got := s.loadOrganization(s.org.ID())
	s.Equal(120, got.Capacity())
	s.InDelta(40.0, got.ServiceRadiusKm(), 1e-9)
	s.Equal(s.org.Name(), got.Name(), "fields left out keep their value")
	s.Equal(s.org.Location().Address, got.Location().Address)
	s.Equal("08:00", got.Preferences().Availability.Hours().Start.String())
	s.Equal("22:00", got.Preferences().Availability.Hours().End.String())
	s.Equal(before+1, got.Version())

	p, ok := s.locator.Organizations().Location(s.org.ID())
	s.Require().True(ok)
	s.InDelta(-1.3000, p.Lat, 1e-9, "index follows the new location")
	s.InDelta(40.0, s.locator.MaxServiceRadiusKm(), 1e-9)
}

func (s *OrganizationCommandsTestSuite) TestUpdateProfile_AdminMayEdit() {
	admin := usecase.Principal{UserID: uuid.New(), Role: user.RoleAdmin}

	err := s.cmds.UpdateProfile(s.ctx, s.org.ID(), commands.UpdateOrganizationRequest{
		Name: ptr("Mathare Kitchen"),
	}, admin)

	s.Require().NoError(err)
	s.Equal("Mathare Kitchen", s.loadOrganization(s.org.ID()).Name())
}

func (s *OrganizationCommandsTestSuite) TestUpdateProfile_Errors() {
	stranger := usecase.Principal{UserID: uuid.New(), Role: user.RoleOrganization}

	tests := []struct {
		name  string
		orgID uuid.UUID
		req   commands.UpdateOrganizationRequest
		actor usecase.Principal
		want  error
	}{
		{
			name:  "caller does not act for the organization",
			orgID: s.org.ID(),
			req:   commands.UpdateOrganizationRequest{Capacity: ptr(10)},
			actor: stranger,
			want:  errs.ErrForbidden,
		},
		{
			name:  "version read before someone else wrote",
			orgID: s.org.ID(),
			req:   commands.UpdateOrganizationRequest{ExpectedVersion: ptr(s.org.Version() - 1), Capacity: ptr(10)},
			actor: memberOf(s.org),
			want:  errs.ErrConflict,
		},
		{
			name:  "latitude without longitude",
			orgID: s.org.ID(),
			req:   commands.UpdateOrganizationRequest{Latitude: ptr(1.0)},
			actor: memberOf(s.org),
			want:  errs.ErrValidation,
		},
		{
			name:  "capacity above the maximum",
			orgID: s.org.ID(),
			req:   commands.UpdateOrganizationRequest{Capacity: ptr(organization.MaxCapacity + 1)},
			actor: memberOf(s.org),
			want:  errs.ErrValidation,
		},
		{
			name:  "closing time is not a clock time",
			orgID: s.org.ID(),
			req:   commands.UpdateOrganizationRequest{HoursEnd: ptr("25:00")},
			actor: memberOf(s.org),
			want:  errs.ErrValidation,
		},
		{
			name:  "unknown organization",
			orgID: uuid.New(),
			req:   commands.UpdateOrganizationRequest{Capacity: ptr(10)},
			actor: memberOf(s.org),
			want:  errs.ErrNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := s.cmds.UpdateProfile(s.ctx, tt.orgID, tt.req, tt.actor)
			s.Require().Error(err)
			s.True(errs.Is(err, tt.want), "got %v", err)
		})
	}

	got := s.loadOrganization(s.org.ID())
	s.Equal(s.org.Version(), got.Version(), "nothing was written")
	s.Equal(s.org.Capacity(), got.Capacity())
}

func (s *OrganizationCommandsTestSuite) TestSetVerification_RevocationLeavesIndex() {
	admin := usecase.Principal{UserID: uuid.New(), Role: user.RoleAdmin}
	s.Require().Equal(1, s.locator.Organizations().Len())

	s.Require().NoError(s.cmds.SetVerification(s.ctx, s.org.ID(), "rejected", admin))

	s.Zero(s.locator.Organizations().Len())
	s.Equal(organization.VerificationRejected, s.loadOrganization(s.org.ID()).VerificationStatus())

	err := s.cmds.SetVerification(s.ctx, s.org.ID(), "verified", memberOf(s.org))
	s.True(errs.Is(err, errs.ErrForbidden))
}
