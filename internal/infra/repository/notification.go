package repository

import (
	"context"
	"time"

	"hall-booking/internal/infra"
	"hall-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationRepository implements the post-commit dispatcher: it runs
// against the pool, never inside the reservation transaction, so a
// failed enqueue can never roll back a booking.
type NotificationRepository struct {
	db infra.DBTX
}

func NewNotificationRepository(db infra.DBTX) shared.NotificationDispatcher {
	return &NotificationRepository{db: db}
}

const createJobStmt = `
INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at, attempts, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'queued', $5, 0, now(), now())`

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, createJobStmt, uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
