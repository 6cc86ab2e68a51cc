package queries

import (
	"context"

	"hall-booking/internal/domain/user"

	"github.com/google/uuid"
)

type TicketReadStore interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*TicketView, error)
}

type TicketQueries interface {
	ListByBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) ([]*TicketView, error)
}

type ticketQueriesImpl struct {
	tickets  TicketReadStore
	bookings BookingReadStore
}

func NewTicketQueries(tickets TicketReadStore, bookings BookingReadStore) TicketQueries {
	return &ticketQueriesImpl{tickets: tickets, bookings: bookings}
}

func (q *ticketQueriesImpl) ListByBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) ([]*TicketView, error) {
	bookingView, err := q.bookings.FindViewByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bookingView.UserID != actor.ID && !actor.IsAdmin() && !actor.IsStaff() {
		return nil, ErrNotAuthorized
	}
	return q.tickets.ListByBooking(ctx, bookingID)
}
