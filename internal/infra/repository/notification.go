package repository

import (
	"context"
	"time"

	"secondhand-market/internal/infra"
	"secondhand-market/internal/infra/db"
	"secondhand-market/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const notificationJobTable = "notification_jobs"

// NotificationRepository persists the notification outbox. Jobs are written
// in the same transaction as the trade mutation and published by the relay
// after commit.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, recipientID, subjectID uuid.UUID, subjectType, message string, runAt time.Time) error {
	q, args, err := qb.Insert(notificationJobTable).
		Columns("id", "recipient_id", "subject_id", "subject_type", "message", "status", "attempts", "run_at", "created_at", "updated_at").
		Values(uuid.New(), recipientID, subjectID, subjectType, message, "pending", 0, runAt, sq.Expr("now()"), sq.Expr("now()")).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification job insert", err)
	}

	if _, err := dbtx.Exec(ctx, q, args...); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimPending locks up to limit due jobs for this relay pass. SKIP LOCKED
// lets multiple relay instances drain the outbox without contention.
func (r *NotificationRepository) ClaimPending(ctx context.Context, dbtx db.DBTX, limit int32) ([]shared.NotificationJob, error) {
	q, args, err := qb.Select("id", "recipient_id", "subject_id", "subject_type", "message", "attempts").
		From(notificationJobTable).
		Where(sq.Eq{"status": "pending"}).
		Where(sq.Expr("run_at <= now()")).
		OrderBy("run_at").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build notification job select", err)
	}

	rows, err := dbtx.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.NotificationJob
	for rows.Next() {
		var job shared.NotificationJob
		if err := rows.Scan(&job.ID, &job.RecipientID, &job.SubjectID, &job.SubjectType, &job.Message, &job.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	q, args, err := qb.Update(notificationJobTable).
		Set("status", "sent").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification job update", err)
	}

	if _, err := dbtx.Exec(ctx, q, args...); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed records a publish failure and reschedules the job, or parks it
// as failed once maxAttempts is exhausted.
func (r *NotificationRepository) MarkFailed(ctx context.Context, dbtx db.DBTX, id uuid.UUID, lastError string, retryAt time.Time, maxAttempts int32) error {
	q, args, err := qb.Update(notificationJobTable).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", lastError).
		Set("run_at", retryAt).
		Set("status", sq.Expr("CASE WHEN attempts + 1 >= ? THEN 'failed' ELSE 'pending' END", maxAttempts)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification job update", err)
	}

	if _, err := dbtx.Exec(ctx, q, args...); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
