//go:build unit

package queries_test

import (
	"context"
	"testing"

	"hall-booking/internal/domain/user"
	"hall-booking/internal/usecase/queries"
	"hall-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingStore struct {
	view      *queries.BookingView
	viewErr   error
	items     []*queries.BookingListItem
	lastLimit int32
}

func (s *fakeBookingStore) FindViewByID(context.Context, uuid.UUID) (*queries.BookingView, error) {
	return s.view, s.viewErr
}

func (s *fakeBookingStore) ListByUser(_ context.Context, _ uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	s.lastLimit = limit
	return s.items, nil
}

func TestBookingQueries_GetByID(t *testing.T) {
	view := builder.NewBookingBuilder().BuildView()
	store := &fakeBookingStore{view: view}
	q := queries.NewBookingQueries(store)

	t.Run("owner reads own booking", func(t *testing.T) {
		got, err := q.GetByID(context.Background(), user.Actor{ID: view.UserID, Role: user.RoleUser}, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("staff and admin read any booking", func(t *testing.T) {
		for _, role := range []user.Role{user.RoleStaff, user.RoleAdmin} {
			_, err := q.GetByID(context.Background(), user.Actor{ID: uuid.New(), Role: role}, view.ID)
			assert.NoError(t, err, role)
		}
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), user.Actor{ID: uuid.New(), Role: user.RoleUser}, view.ID)
		assert.ErrorIs(t, err, queries.ErrNotAuthorized)
	})

	t.Run("unknown booking", func(t *testing.T) {
		missing := &fakeBookingStore{viewErr: queries.ErrBookingNotFound}
		_, err := queries.NewBookingQueries(missing).GetByID(context.Background(), user.Actor{ID: uuid.New()}, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestBookingQueries_ListByUser(t *testing.T) {
	store := &fakeBookingStore{}
	q := queries.NewBookingQueries(store)

	cases := []struct {
		name  string
		limit int
		want  int32
	}{
		{name: "explicit limit passes through", limit: 10, want: 10},
		{name: "zero limit falls back to default", limit: 0, want: 50},
		{name: "negative limit falls back to default", limit: -5, want: 50},
		{name: "oversized limit falls back to default", limit: 500, want: 50},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := q.ListByUser(context.Background(), uuid.New(), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.lastLimit)
		})
	}
}

type fakeTicketStore struct {
	tickets []*queries.TicketView
}

func (s *fakeTicketStore) ListByBooking(context.Context, uuid.UUID) ([]*queries.TicketView, error) {
	return s.tickets, nil
}

func TestTicketQueries_ListByBooking(t *testing.T) {
	view := builder.NewBookingBuilder().BuildView()
	tickets := []*queries.TicketView{{ID: uuid.New(), BookingID: view.ID, Status: "valid"}}
	q := queries.NewTicketQueries(&fakeTicketStore{tickets: tickets}, &fakeBookingStore{view: view})

	t.Run("owner lists tickets of own booking", func(t *testing.T) {
		got, err := q.ListByBooking(context.Background(), user.Actor{ID: view.UserID, Role: user.RoleUser}, view.ID)
		require.NoError(t, err)
		assert.Equal(t, tickets, got)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := q.ListByBooking(context.Background(), user.Actor{ID: uuid.New(), Role: user.RoleUser}, view.ID)
		assert.ErrorIs(t, err, queries.ErrNotAuthorized)
	})

	t.Run("unknown booking", func(t *testing.T) {
		missing := queries.NewTicketQueries(&fakeTicketStore{}, &fakeBookingStore{viewErr: queries.ErrBookingNotFound})
		_, err := missing.ListByBooking(context.Background(), user.Actor{ID: uuid.New()}, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}
