package readstore

import (
	"context"

	"hall-booking/internal/infra"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type TicketReadStore struct {
	db infra.DBTX
}

func NewTicketReadStore(db infra.DBTX) *TicketReadStore {
	return &TicketReadStore{db: db}
}

const listTicketsByBookingQuery = `
SELECT id, booking_id, token, holder_name, status, valid_from, valid_until, scanned_at, created_at
FROM tickets
WHERE booking_id = $1
ORDER BY created_at, id`

func (r *TicketReadStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.TicketView, error) {
	rows, err := r.db.Query(ctx, listTicketsByBookingQuery, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tickets", err)
	}
	defer rows.Close()

	var views []*queries.TicketView
	for rows.Next() {
		var v queries.TicketView
		if err := rows.Scan(
			&v.ID, &v.BookingID, &v.Token, &v.HolderName, &v.Status,
			&v.ValidFrom, &v.ValidUntil, &v.ScannedAt, &v.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ticket row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ticket rows", err)
	}
	return views, nil
}
