package repository

import (
	"context"
	"encoding/json"
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db infra.DBTX
}

func NewBookingRepository(db infra.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const createBookingStmt = `
INSERT INTO bookings (
	id, hall_id, user_id, start_time, duration_hours, end_time,
	persons, status, pricing, add_ons, coupon_code, note,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	pricing, err := json.Marshal(b.Pricing())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode pricing breakdown", err)
	}
	var addOns []byte
	if len(b.AddOns()) > 0 {
		addOns, err = json.Marshal(b.AddOns())
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to encode add-ons", err)
		}
	}

	var note *string
	if !b.Note().IsEmpty() {
		v := b.Note().String()
		note = &v
	}

	_, err = r.db.Exec(ctx, createBookingStmt,
		b.ID(),
		b.HallID(),
		b.UserID(),
		b.Slot().Start(),
		b.Slot().DurationHours(),
		b.Slot().End(),
		b.Persons(),
		b.Status().String(),
		pricing,
		addOns,
		b.CouponCode(),
		note,
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return b.ID(), nil
}

const findBookingForUpdateQuery = `
SELECT id, hall_id, user_id, start_time, duration_hours,
       persons, status, pricing, add_ons, coupon_code, note,
       created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE`

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, findBookingForUpdateQuery, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}
	return b, nil
}

// Locks every blocking row it finds so a concurrent reservation on the
// same window serializes behind this transaction instead of racing it.
const blockingOverlapQuery = `
SELECT id
FROM bookings
WHERE hall_id = $1
  AND status IN ('pending', 'confirmed')
  AND tstzrange(start_time, end_time) && tstzrange($2, $3)
LIMIT 1
FOR UPDATE`

func (r *BookingRepository) HasBlockingOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time) (bool, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, blockingOverlapQuery, hallID, start, end).Scan(&id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, infra.WrapRepoErr("failed to check blocking overlap", err)
	}
	return true, nil
}

const updateBookingStatusStmt = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1`

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingStatusStmt, b.ID(), b.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found for status update", pgx.ErrNoRows)
	}
	return nil
}

const completeElapsedStmt = `
UPDATE bookings
SET status = 'completed', updated_at = now()
WHERE status = 'confirmed' AND end_time <= $1`

func (r *BookingRepository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, completeElapsedStmt, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete elapsed bookings", err)
	}
	return tag.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, hallID, userID  uuid.UUID
		start               time.Time
		durationHours       int
		persons             int
		status              string
		pricingRaw          []byte
		addOnsRaw           []byte
		couponCode, noteVal *string
		createdAt           time.Time
		updatedAt           time.Time
	)
	if err := row.Scan(
		&id, &hallID, &userID, &start, &durationHours,
		&persons, &status, &pricingRaw, &addOnsRaw, &couponCode, &noteVal,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	var pricing booking.Breakdown
	if err := json.Unmarshal(pricingRaw, &pricing); err != nil {
		return nil, err
	}
	var addOns []booking.AddOn
	if len(addOnsRaw) > 0 {
		if err := json.Unmarshal(addOnsRaw, &addOns); err != nil {
			return nil, err
		}
	}
	note := booking.NewNote("")
	if noteVal != nil {
		note = booking.NewNote(*noteVal)
	}

	return booking.ReconstructBooking(
		id, hallID, userID,
		booking.ReconstructTimeSlot(start, durationHours),
		persons,
		booking.Status(status),
		pricing,
		addOns,
		couponCode,
		note,
		createdAt, updatedAt,
	), nil
}
