package shared

import (
	"context"
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/ticket"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Tickets() TicketRepository
	Idempotency() IdempotencyRepository
}

type CommandReads interface {
	HallByID(ctx context.Context, id uuid.UUID) (*HallSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// FindByIDForUpdate locks the booking row for a status transition.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// HasBlockingOverlap re-reads, inside the transaction, whether any
	// pending/confirmed booking intersects [start, end) on the hall.
	HasBlockingOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	// CompleteElapsed flips confirmed bookings whose window has passed.
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

type TicketRepository interface {
	CreateBatch(ctx context.Context, tickets []*ticket.Ticket) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error)
	Save(ctx context.Context, t *ticket.Ticket) error
	// CancelValidByBooking cancels every still-valid ticket of the
	// booking; tickets already used are left untouched.
	CancelValidByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key; inserted=false means another request
	// already holds it and the caller must consult the stored record.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (inserted bool, err error)
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, responseHash string, resultBookingID uuid.UUID) error
	// DeleteExpired reclaims keys past their replay horizon.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// NotificationDispatcher is pool-backed and called after commit: delivery
// is best-effort and must never block or fail a booking outcome.
type NotificationDispatcher interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
