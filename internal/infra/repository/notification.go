package repository

import (
	"context"
	"encoding/json"
	"time"

	"save-serve/internal/domain/notification"
	"save-serve/internal/infra"
	"save-serve/internal/infra/db"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxLastErrorLen = 2000

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, ev notification.Event, runAt time.Time) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return infra.WrapRepoErr("failed to encode notification payload", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, recipient_id, payload, run_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'queued', $7, $7)`,
		ev.ID, string(ev.Type), ev.Type.RoutingKey(), ev.RecipientID, payload, runAt, ev.OccurredAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification", err)
	}
	return nil
}

// ClaimDue flips due jobs to processing under SKIP LOCKED so concurrent
// dispatchers never pick the same row.
func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int, staleAfter time.Duration) ([]shared.NotificationJob, error) {
	rows, err := r.db.Query(ctx, `
		WITH due AS (
			SELECT id FROM notification_jobs
			WHERE (status = 'queued' AND run_at <= $1)
			   OR (status = 'processing' AND processing_started_at <= $3)
			ORDER BY run_at, id
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		UPDATE notification_jobs j SET
			status = 'processing',
			attempts = j.attempts + 1,
			processing_started_at = $1,
			updated_at = $1
		FROM due
		WHERE j.id = due.id
		RETURNING j.id, j.kind, j.recipient_id, j.payload, j.created_at, j.attempts, j.run_at`,
		now, limit, now.Add(-staleAfter),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	jobs := make([]shared.NotificationJob, 0)
	for rows.Next() {
		var (
			job     shared.NotificationJob
			kind    string
			payload []byte
		)
		if err := rows.Scan(&job.ID, &kind, &job.Event.RecipientID, &payload,
			&job.Event.OccurredAt, &job.Attempts, &job.RunAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		job.Event.ID = job.ID
		job.Event.Type = notification.Type(kind)
		job.Event.OccurredAt = job.Event.OccurredAt.UTC()
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &job.Event.Payload); err != nil {
				return nil, infra.WrapRepoErr("failed to decode notification payload", err)
			}
		}
		job.Status = shared.JobStatusProcessing
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs SET status = 'sent', last_error = NULL, updated_at = $2
		WHERE id = $1`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt time.Time) error {
	if len(reason) > maxLastErrorLen {
		reason = reason[:maxLastErrorLen]
	}
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs SET
			status = 'queued', run_at = $3, last_error = $2, processing_started_at = NULL, updated_at = now()
		WHERE id = $1`, id, reason, retryAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification failed", err)
	}
	return nil
}
