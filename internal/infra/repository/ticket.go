package repository

import (
	"context"
	"time"

	"hall-booking/internal/domain/ticket"
	"hall-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TicketRepository struct {
	db infra.DBTX
}

func NewTicketRepository(db infra.DBTX) *TicketRepository {
	return &TicketRepository{db: db}
}

const createTicketStmt = `
INSERT INTO tickets (
	id, booking_id, token, holder_name, status,
	valid_from, valid_until, scanned_at, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *TicketRepository) CreateBatch(ctx context.Context, tickets []*ticket.Ticket) error {
	for _, t := range tickets {
		_, err := r.db.Exec(ctx, createTicketStmt,
			t.ID(),
			t.BookingID(),
			t.Token(),
			t.HolderName(),
			t.Status().String(),
			t.ValidFrom(),
			t.ValidUntil(),
			t.ScannedAt(),
			t.CreatedAt(),
			t.UpdatedAt(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create ticket", err)
		}
	}
	return nil
}

const findTicketForUpdateQuery = `
SELECT id, booking_id, token, holder_name, status,
       valid_from, valid_until, scanned_at, created_at, updated_at
FROM tickets
WHERE id = $1
FOR UPDATE`

func (r *TicketRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error) {
	var (
		tid, bookingID, token uuid.UUID
		holderName            *string
		status                string
		validFrom, validUntil time.Time
		scannedAt             *time.Time
		createdAt, updatedAt  time.Time
	)
	err := r.db.QueryRow(ctx, findTicketForUpdateQuery, id).Scan(
		&tid, &bookingID, &token, &holderName, &status,
		&validFrom, &validUntil, &scannedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find ticket for update", err)
	}
	return ticket.Reconstruct(
		tid, bookingID, token, holderName,
		ticket.Status(status),
		validFrom, validUntil,
		scannedAt, createdAt, updatedAt,
	), nil
}

const saveTicketStmt = `
UPDATE tickets
SET status = $2, scanned_at = $3, updated_at = now()
WHERE id = $1`

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	tag, err := r.db.Exec(ctx, saveTicketStmt, t.ID(), t.Status().String(), t.ScannedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to save ticket", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("ticket not found for save", pgx.ErrNoRows)
	}
	return nil
}

// Used tickets are historical fact and stay untouched.
const cancelValidByBookingStmt = `
UPDATE tickets
SET status = 'cancelled', updated_at = now()
WHERE booking_id = $1 AND status = 'valid'`

func (r *TicketRepository) CancelValidByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, cancelValidByBookingStmt, bookingID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel tickets", err)
	}
	return tag.RowsAffected(), nil
}
