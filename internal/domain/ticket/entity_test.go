//go:build unit

package ticket_test

import (
	"testing"
	"time"

	"hall-booking/internal/domain/ticket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	validFrom  = time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	validUntil = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newValidTicket() *ticket.Ticket {
	issued := ticket.IssueBatch(uuid.New(), 1, validFrom, validUntil, validFrom.Add(-24*time.Hour))
	return issued[0]
}

func TestIssueBatch(t *testing.T) {
	bookingID := uuid.New()
	now := validFrom.Add(-24 * time.Hour)

	tickets := ticket.IssueBatch(bookingID, 4, validFrom, validUntil, now)
	require.Len(t, tickets, 4)

	seen := make(map[uuid.UUID]struct{}, len(tickets))
	for _, tk := range tickets {
		assert.Equal(t, bookingID, tk.BookingID())
		assert.Equal(t, ticket.StatusValid, tk.Status())
		assert.Equal(t, validFrom, tk.ValidFrom())
		assert.Equal(t, validUntil, tk.ValidUntil())
		assert.Nil(t, tk.ScannedAt())
		assert.NotEqual(t, uuid.Nil, tk.Token())
		seen[tk.Token()] = struct{}{}
	}
	assert.Len(t, seen, 4, "tokens must be unique within a batch")
}

func TestTicket_MarkUsed(t *testing.T) {
	t.Run("valid ticket inside its window is consumed", func(t *testing.T) {
		tk := newValidTicket()
		now := validFrom.Add(30 * time.Minute)

		require.NoError(t, tk.MarkUsed(now))

		assert.Equal(t, ticket.StatusUsed, tk.Status())
		require.NotNil(t, tk.ScannedAt())
		assert.Equal(t, now, *tk.ScannedAt())
	})

	t.Run("scan at the window edges", func(t *testing.T) {
		tk := newValidTicket()
		assert.NoError(t, tk.MarkUsed(validFrom))

		tk = newValidTicket()
		assert.NoError(t, tk.MarkUsed(validUntil))
	})

	t.Run("scan before the window is rejected without mutating", func(t *testing.T) {
		tk := newValidTicket()

		err := tk.MarkUsed(validFrom.Add(-time.Minute))
		assert.ErrorIs(t, err, ticket.ErrNotYetValid)
		assert.Equal(t, ticket.StatusValid, tk.Status())
		assert.Nil(t, tk.ScannedAt())
	})

	t.Run("early scan does not block admission inside the window", func(t *testing.T) {
		tk := newValidTicket()

		require.ErrorIs(t, tk.MarkUsed(validFrom.Add(-30*time.Minute)), ticket.ErrNotYetValid)

		err := tk.MarkUsed(validFrom.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, ticket.StatusUsed, tk.Status())
		require.NotNil(t, tk.ScannedAt())
	})

	t.Run("scan after the window expires the ticket", func(t *testing.T) {
		tk := newValidTicket()

		err := tk.MarkUsed(validUntil.Add(time.Minute))
		assert.ErrorIs(t, err, ticket.ErrExpired)
		assert.Equal(t, ticket.StatusExpired, tk.Status())
	})

	t.Run("second scan is rejected", func(t *testing.T) {
		tk := newValidTicket()
		now := validFrom.Add(time.Minute)
		require.NoError(t, tk.MarkUsed(now))

		err := tk.MarkUsed(now.Add(time.Minute))
		assert.ErrorIs(t, err, ticket.ErrAlreadyUsed)
		assert.Equal(t, ticket.StatusUsed, tk.Status())
	})

	t.Run("cancelled ticket cannot be used", func(t *testing.T) {
		tk := newValidTicket()
		require.True(t, tk.Cancel())

		err := tk.MarkUsed(validFrom.Add(time.Minute))
		assert.ErrorIs(t, err, ticket.ErrCancelled)
	})

	t.Run("expired ticket stays expired", func(t *testing.T) {
		tk := newValidTicket()
		require.Error(t, tk.MarkUsed(validUntil.Add(time.Hour)))

		err := tk.MarkUsed(validFrom.Add(time.Minute))
		assert.ErrorIs(t, err, ticket.ErrExpired)
	})
}

func TestTicket_Cancel(t *testing.T) {
	t.Run("valid ticket cancels", func(t *testing.T) {
		tk := newValidTicket()

		assert.True(t, tk.Cancel())
		assert.Equal(t, ticket.StatusCancelled, tk.Status())
	})

	t.Run("used ticket is never retroactively cancelled", func(t *testing.T) {
		tk := newValidTicket()
		require.NoError(t, tk.MarkUsed(validFrom.Add(time.Minute)))

		assert.False(t, tk.Cancel())
		assert.Equal(t, ticket.StatusUsed, tk.Status())
	})

	t.Run("re-cancel is a no-op", func(t *testing.T) {
		tk := newValidTicket()
		require.True(t, tk.Cancel())

		assert.False(t, tk.Cancel())
	})
}
