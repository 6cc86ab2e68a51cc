package queries

import (
	"context"

	"hall-booking/internal/domain/user"
	"hall-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotAuthorized   = errs.New("caller may not view this booking")
)

type BookingReadStore interface {
	// FindViewByID returns the booking with its status derived lazily:
	// an elapsed confirmed booking reads as completed.
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses ownership checks (idempotent replay, post-commit reads).
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actor.ID && !actor.IsAdmin() && !actor.IsStaff() {
		return nil, ErrNotAuthorized
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindViewByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.store.ListByUser(ctx, userID, int32(limit))
}
