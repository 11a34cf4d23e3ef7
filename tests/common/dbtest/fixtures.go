//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both a pool and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CountRows counts rows of table matching where, e.g. "donation_id = $1".
func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

// DonationStatus reads the stored status of a donation.
func DonationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	require.NoError(t, db.QueryRow(context.Background(),
		"SELECT status FROM donations WHERE id = $1", id).Scan(&status))
	return status
}

// SeedReferenceData restores the singleton platform_impact row.
func SeedReferenceData(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(),
		`INSERT INTO platform_impact (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	return err
}

// schemaTables lists every table the migrations create, children first.
var schemaTables = []string{
	"notification_jobs",
	"claim_attempts",
	"processed_pickups",
	"donor_impact",
	"platform_impact",
	"donations",
	"organizations",
}

// ResetDB empties every domain table and restores the reference rows.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(schemaTables, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return SeedReferenceData(pool)
}
