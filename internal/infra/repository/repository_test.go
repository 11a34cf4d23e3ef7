//go:build unit

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/notification"
	"save-serve/internal/domain/organization"
	"save-serve/internal/infra"
	"save-serve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestClaimIfAvailable(t *testing.T) {
	donationID := uuid.New()
	orgID := uuid.New()
	at := builder.BaseTime

	tests := []struct {
		name      string
		tag       pgconn.CommandTag
		mockError error
		want      bool
		wantError bool
	}{
		{name: "row updated", tag: pgconn.NewCommandTag("UPDATE 1"), want: true},
		{name: "lost the race", tag: pgconn.NewCommandTag("UPDATE 0"), want: false},
		{name: "database error", tag: pgconn.NewCommandTag(""), mockError: assert.AnError, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, mock.MatchedBy(func(q string) bool {
				return strings.Contains(q, "status = 'available'") && strings.Contains(q, "pickup_end >= $3")
			}), []interface{}{donationID, orgID, at}).Return(tt.tag, tt.mockError)

			got, err := NewDonationRepository(db).ClaimIfAvailable(context.Background(), donationID, orgID, at)

			if tt.wantError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			db.AssertExpectations(t)
		})
	}
}

func TestDonationUpdate_VersionGuard(t *testing.T) {
	d := builder.NewDonationBuilder().MustBuild()
	require.NoError(t, d.Cancel(d.DonorID(), builder.BaseTime.Add(time.Minute)))

	t.Run("stale version is a conflict", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", mock.Anything, mock.Anything, mock.MatchedBy(func(args []interface{}) bool {
			return len(args) == 20 && args[19] == d.Version()-1
		})).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := NewDonationRepository(db).Update(context.Background(), d)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		db.AssertExpectations(t)
	})

	t.Run("current version is written", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

		assert.NoError(t, NewDonationRepository(db).Update(context.Background(), d))
	})
}

func TestFindByID_NotFound(t *testing.T) {
	db := new(MockDBTX)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(errRow{err: pgx.ErrNoRows})

	_, err := NewDonationRepository(db).FindByID(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	_, err = NewOrganizationRepository(db).FindByID(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	_, err = NewOrganizationRepository(db).FindByUserID(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestOrganizationUpdate_VersionGuard(t *testing.T) {
	// A verification change made by an admin after this copy was read.
	o := builder.NewOrganizationBuilder().MustBuild()
	require.NoError(t, o.SetVerification(organization.VerificationRejected, builder.BaseTime.Add(time.Minute)))

	t.Run("stale version is a conflict", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", mock.Anything, mock.MatchedBy(func(q string) bool {
			return strings.Contains(q, "WHERE id = $1 AND version = $17")
		}), mock.MatchedBy(func(args []interface{}) bool {
			return len(args) == 17 && args[14] == o.Version() && args[16] == o.Version()-1
		})).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := NewOrganizationRepository(db).Update(context.Background(), o)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		db.AssertExpectations(t)
	})

	t.Run("current version is written", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

		assert.NoError(t, NewOrganizationRepository(db).Update(context.Background(), o))
	})
}

func TestOrganizationTouchActivity(t *testing.T) {
	id := uuid.New()
	at := builder.BaseTime

	t.Run("leaves profile and version alone", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", mock.Anything, mock.MatchedBy(func(q string) bool {
			return strings.Contains(q, "last_active_at = GREATEST(last_active_at, $2)") &&
				!strings.Contains(q, "version") &&
				!strings.Contains(q, "verification_status")
		}), []interface{}{id, at}).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

		require.NoError(t, NewOrganizationRepository(db).TouchActivity(context.Background(), id, at))
		db.AssertExpectations(t)
	})

	t.Run("missing organization", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := NewOrganizationRepository(db).TouchActivity(context.Background(), id, at)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestInsertPickup_Idempotent(t *testing.T) {
	db := new(MockDBTX)
	db.On("Exec", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "ON CONFLICT (donation_id) DO NOTHING")
	}), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 0"), nil)

	inserted, err := NewImpactRepository(db).InsertPickup(context.Background(), pickupRecord())

	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestNotificationMarkFailed_TruncatesReason(t *testing.T) {
	id := uuid.New()
	retryAt := builder.BaseTime.Add(2 * time.Second)
	long := strings.Repeat("x", maxLastErrorLen+50)

	db := new(MockDBTX)
	db.On("Exec", mock.Anything, mock.Anything, mock.MatchedBy(func(args []interface{}) bool {
		reason, ok := args[1].(string)
		return ok && len(reason) == maxLastErrorLen && args[2] == retryAt
	})).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	require.NoError(t, NewNotificationRepository(db).MarkFailed(context.Background(), id, long, retryAt))
	db.AssertExpectations(t)
}

func TestNotificationEnqueue_UsesRoutingKey(t *testing.T) {
	ev := notification.NewEvent(notification.TypeClaimAccepted, uuid.New(), map[string]any{"donation_id": "d1"}, builder.BaseTime)

	db := new(MockDBTX)
	db.On("Exec", mock.Anything, mock.Anything, mock.MatchedBy(func(args []interface{}) bool {
		return args[1] == "claim_accepted" && args[2] == "claim.accepted"
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	require.NoError(t, NewNotificationRepository(db).Enqueue(context.Background(), ev, builder.BaseTime))
	db.AssertExpectations(t)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1", placeholders(1))
	assert.Equal(t, "$1, $2, $3", placeholders(3))
}

func pickupRecord() impact.PickupRecord {
	return impact.PickupRecord{
		DonationID:     uuid.New(),
		OrganizationID: uuid.New(),
		DonorID:        uuid.New(),
		Delta:          impact.Delta{Meals: 10, WeightKg: 4, CO2Kg: 13.2},
		RecordedAt:     builder.BaseTime,
	}
}
