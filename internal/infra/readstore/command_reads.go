package readstore

import (
	"context"

	"hall-booking/internal/domain/hall"
	"hall-booking/internal/infra"
	"hall-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReadsStore serves the write-side snapshots: plain rows, no view
// assembly, looked up either on the pool or inside a transaction
// depending on which DBTX it is built with.
type CommandReadsStore struct {
	db infra.DBTX
}

func NewCommandReads(db infra.DBTX) shared.CommandReads {
	return &CommandReadsStore{db: db}
}

const hallSnapshotQuery = `
SELECT id, branch_id, capacity, status,
       base_price_cents, hourly_rate_cents, price_per_person_cents,
       weekend_multiplier_bp, holiday_multiplier_bp, decoration_price_cents
FROM halls
WHERE id = $1`

func (r *CommandReadsStore) HallByID(ctx context.Context, id uuid.UUID) (*shared.HallSnapshot, error) {
	var (
		snap   shared.HallSnapshot
		status string
		cfg    hall.PriceConfig
	)
	err := r.db.QueryRow(ctx, hallSnapshotQuery, id).Scan(
		&snap.ID, &snap.BranchID, &snap.Capacity, &status,
		&cfg.BasePriceCents, &cfg.HourlyRateCents, &cfg.PricePerPersonCents,
		&cfg.WeekendMultiplierBp, &cfg.HolidayMultiplierBp, &cfg.DecorationPriceCents,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load hall snapshot", err)
	}
	snap.Status = hall.Status(status)
	snap.PriceConfig = cfg

	hours, err := NewHallReadStore(r.db).workingHours(ctx, id)
	if err != nil {
		return nil, err
	}
	snap.WorkingHours = hours
	return &snap, nil
}

const couponByCodeQuery = `
SELECT id, code, amount_off_cents, percent_off, valid_from, valid_to
FROM coupons
WHERE code = $1`

func (r *CommandReadsStore) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	var snap shared.CouponSnapshot
	err := r.db.QueryRow(ctx, couponByCodeQuery, code).Scan(
		&snap.ID, &snap.Code, &snap.AmountOffCents, &snap.PercentOff,
		&snap.ValidFrom, &snap.ValidTo,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load coupon", err)
	}
	return &snap, nil
}

const idempotencyByKeyQuery = `
SELECT key, user_id, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

func (r *CommandReadsStore) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, idempotencyByKeyQuery, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash,
		&rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load idempotency record", err)
	}
	return &rec, nil
}
