package repository

import (
	"context"
	"time"

	"hall-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdempotencyRepository struct {
	db infra.DBTX
}

func NewIdempotencyRepository(db infra.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

// ON CONFLICT DO NOTHING makes the claim race-safe: of two concurrent
// requests with the same key, exactly one observes inserted=true.
const tryInsertKeyStmt = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'processing', $5, now(), now())
ON CONFLICT (key) DO NOTHING`

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertKeyStmt, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const completeKeyStmt = `
UPDATE idempotency_keys
SET status = 'completed', response_hash = $3, result_booking_id = $4, updated_at = now()
WHERE key = $1 AND user_id = $2`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, responseHash string, resultBookingID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, completeKeyStmt, key, userID, responseHash, resultBookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", pgx.ErrNoRows)
	}
	return nil
}

const deleteExpiredKeysStmt = `
DELETE FROM idempotency_keys
WHERE expires_at <= $1`

// DeleteExpired reclaims keys past their replay horizon.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredKeysStmt, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
