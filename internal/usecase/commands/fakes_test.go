//go:build unit

package commands_test

import (
	"context"
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/ticket"
	"hall-booking/internal/domain/user"
	"hall-booking/internal/usecase/queries"
	"hall-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Hand-rolled fakes for the transaction boundary: gomock cannot carry the
// in-transaction state (created rows, issued tickets) these tests assert on.

type fakeCommandReads struct {
	hall      *shared.HallSnapshot
	hallErr   error
	coupon    *shared.CouponSnapshot
	couponErr error
	idem      *shared.IdempotencyRecord
	idemErr   error
}

func (r *fakeCommandReads) HallByID(context.Context, uuid.UUID) (*shared.HallSnapshot, error) {
	return r.hall, r.hallErr
}

func (r *fakeCommandReads) CouponByCode(context.Context, string) (*shared.CouponSnapshot, error) {
	return r.coupon, r.couponErr
}

func (r *fakeCommandReads) IdempotencyByKey(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.idem, r.idemErr
}

type fakeBookingRepo struct {
	overlap    bool
	overlapErr error
	createErr  error
	created    []*booking.Booking
	byID       *booking.Booking
	findErr    error
	updated    []booking.Status
	completeN  int64
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = append(r.created, b)
	return b.ID(), nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(context.Context, uuid.UUID) (*booking.Booking, error) {
	return r.byID, r.findErr
}

func (r *fakeBookingRepo) HasBlockingOverlap(context.Context, uuid.UUID, time.Time, time.Time) (bool, error) {
	return r.overlap, r.overlapErr
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	r.updated = append(r.updated, b.Status())
	return nil
}

func (r *fakeBookingRepo) CompleteElapsed(context.Context, time.Time) (int64, error) {
	return r.completeN, nil
}

type fakeTicketRepo struct {
	batches    [][]*ticket.Ticket
	byID       *ticket.Ticket
	findErr    error
	saved      []*ticket.Ticket
	saveErr    error
	cancelled  int
	cancelledN int64
}

func (r *fakeTicketRepo) CreateBatch(_ context.Context, tickets []*ticket.Ticket) error {
	r.batches = append(r.batches, tickets)
	return nil
}

func (r *fakeTicketRepo) FindByIDForUpdate(context.Context, uuid.UUID) (*ticket.Ticket, error) {
	return r.byID, r.findErr
}

func (r *fakeTicketRepo) Save(_ context.Context, t *ticket.Ticket) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, t)
	return nil
}

func (r *fakeTicketRepo) CancelValidByBooking(context.Context, uuid.UUID) (int64, error) {
	r.cancelled++
	return r.cancelledN, nil
}

type fakeTxIdempotency struct {
	inserted     bool
	insertErr    error
	completedKey uuid.UUID
	expired      int64
	expireErr    error
	prunedAt     []time.Time
}

func (r *fakeTxIdempotency) TryInsert(context.Context, uuid.UUID, uuid.UUID, string, string, time.Time) (bool, error) {
	return r.inserted, r.insertErr
}

func (r *fakeTxIdempotency) UpdateStatusCompleted(_ context.Context, key, _ uuid.UUID, _ string, _ uuid.UUID) error {
	r.completedKey = key
	return nil
}

func (r *fakeTxIdempotency) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.prunedAt = append(r.prunedAt, now)
	return r.expired, r.expireErr
}

type fakeTx struct {
	bookings *fakeBookingRepo
	tickets  *fakeTicketRepo
	idem     *fakeTxIdempotency
	reads    *fakeCommandReads
}

func (t *fakeTx) Bookings() shared.BookingRepository        { return t.bookings }
func (t *fakeTx) Tickets() shared.TicketRepository          { return t.tickets }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository { return t.idem }

type fakeUoW struct {
	tx    *fakeTx
	reads *fakeCommandReads
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return u.reads }

type fakeDispatcher struct {
	topics []string
}

func (d *fakeDispatcher) CreateJob(_ context.Context, _, topic string, _ []byte, _ time.Time) error {
	d.topics = append(d.topics, topic)
	return nil
}

type fakeDiscountResolver struct {
	amount int64
	err    error
}

func (r *fakeDiscountResolver) Resolve(context.Context, string, int64) (int64, error) {
	return r.amount, r.err
}

type fakeBookingQueries struct {
	systemIDs []uuid.UUID
}

func (q *fakeBookingQueries) GetByID(_ context.Context, _ user.Actor, id uuid.UUID) (*queries.BookingView, error) {
	return &queries.BookingView{ID: id}, nil
}

func (q *fakeBookingQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	q.systemIDs = append(q.systemIDs, id)
	return &queries.BookingView{ID: id}, nil
}

func (q *fakeBookingQueries) ListByUser(context.Context, uuid.UUID, int) ([]*queries.BookingListItem, error) {
	return nil, nil
}

type fakeSlotCache struct {
	invalidated []string
}

func (c *fakeSlotCache) Get(context.Context, uuid.UUID, string) ([]queries.SlotView, bool) {
	return nil, false
}

func (c *fakeSlotCache) Set(context.Context, uuid.UUID, string, []queries.SlotView) {}

func (c *fakeSlotCache) Invalidate(_ context.Context, _ uuid.UUID, dates ...string) {
	c.invalidated = append(c.invalidated, dates...)
}
