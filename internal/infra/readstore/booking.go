package readstore

import (
	"context"
	"encoding/json"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/errs"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db infra.DBTX
}

func NewBookingReadStore(db infra.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

// Status is derived at read time: an elapsed confirmed booking reads as
// completed even before the sweep persists the flip.
const findBookingViewQuery = `
SELECT id, hall_id, user_id, start_time, duration_hours, end_time, persons,
       CASE WHEN status = 'confirmed' AND end_time <= now() THEN 'completed' ELSE status END AS status,
       pricing, add_ons, coupon_code, note, created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view       queries.BookingView
		pricingRaw []byte
		addOnsRaw  []byte
	)
	err := r.db.QueryRow(ctx, findBookingViewQuery, id).Scan(
		&view.ID, &view.HallID, &view.UserID,
		&view.StartTime, &view.DurationHours, &view.EndTime, &view.Persons,
		&view.Status,
		&pricingRaw, &addOnsRaw, &view.CouponCode, &view.Note,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errs.Mark(err, queries.ErrBookingNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}

	if err := json.Unmarshal(pricingRaw, &view.Pricing); err != nil {
		return nil, infra.WrapRepoErr("failed to decode pricing breakdown", err)
	}
	if len(addOnsRaw) > 0 {
		var addOns []booking.AddOn
		if err := json.Unmarshal(addOnsRaw, &addOns); err != nil {
			return nil, infra.WrapRepoErr("failed to decode add-ons", err)
		}
		view.AddOns = addOns
	}
	return &view, nil
}

const listBookingsByUserQuery = `
SELECT id, hall_id, start_time, duration_hours, end_time, persons,
       CASE WHEN status = 'confirmed' AND end_time <= now() THEN 'completed' ELSE status END AS status,
       (pricing->>'total_cents')::bigint AS total_cents,
       created_at
FROM bookings
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByUserQuery, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.HallID, &item.StartTime, &item.DurationHours, &item.EndTime,
			&item.Persons, &item.Status, &item.TotalCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list rows", err)
	}
	return items, nil
}
