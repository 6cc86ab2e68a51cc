//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"hall-booking/internal/domain/ticket"
	"hall-booking/internal/domain/user"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ticketValidFrom  = time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	ticketValidUntil = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
)

type ticketFixture struct {
	uc      commands.TicketCommands
	tickets *fakeTicketRepo
	clk     *clock.MockClock
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	tx := &fakeTx{
		bookings: &fakeBookingRepo{},
		tickets:  &fakeTicketRepo{},
		idem:     &fakeTxIdempotency{},
		reads:    &fakeCommandReads{},
	}
	clk := clock.NewMockClock(ticketValidFrom.Add(30 * time.Minute))
	return &ticketFixture{
		uc:      commands.NewTicketCommands(&fakeUoW{tx: tx, reads: tx.reads}, clk),
		tickets: tx.tickets,
		clk:     clk,
	}
}

func issuedTicket() *ticket.Ticket {
	return ticket.IssueBatch(uuid.New(), 1, ticketValidFrom, ticketValidUntil, ticketValidFrom.Add(-24*time.Hour))[0]
}

func TestTicketCommands_MarkUsed(t *testing.T) {
	staff := user.Actor{ID: uuid.New(), Role: user.RoleStaff}

	t.Run("staff consumes a valid ticket inside its window", func(t *testing.T) {
		f := newTicketFixture(t)
		tk := issuedTicket()
		f.tickets.byID = tk

		view, err := f.uc.MarkUsed(context.Background(), tk.ID(), staff)
		require.NoError(t, err)

		assert.Equal(t, "used", view.Status)
		require.NotNil(t, view.ScannedAt)
		assert.Equal(t, f.clk.Now(), *view.ScannedAt)
		require.Len(t, f.tickets.saved, 1)
	})

	t.Run("regular users may not scan tickets", func(t *testing.T) {
		f := newTicketFixture(t)

		_, err := f.uc.MarkUsed(context.Background(), uuid.New(), user.Actor{ID: uuid.New(), Role: user.RoleUser})
		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		f := newTicketFixture(t)
		f.tickets.findErr = infra.WrapRepoErr("ticket", pgx.ErrNoRows)

		_, err := f.uc.MarkUsed(context.Background(), uuid.New(), staff)
		assert.ErrorIs(t, err, commands.ErrTicketNotFound)
	})

	t.Run("out-of-window scan expires the ticket and persists it", func(t *testing.T) {
		f := newTicketFixture(t)
		tk := issuedTicket()
		f.tickets.byID = tk
		f.clk.Set(ticketValidUntil.Add(time.Hour))

		_, err := f.uc.MarkUsed(context.Background(), tk.ID(), staff)
		assert.ErrorIs(t, err, commands.ErrTicketExpired)

		require.Len(t, f.tickets.saved, 1, "the expired flip must reach the database")
		assert.Equal(t, ticket.StatusExpired, f.tickets.saved[0].Status())
	})

	t.Run("early scan is rejected and leaves the ticket admissible", func(t *testing.T) {
		f := newTicketFixture(t)
		tk := issuedTicket()
		f.tickets.byID = tk
		f.clk.Set(ticketValidFrom.Add(-30 * time.Minute))

		_, err := f.uc.MarkUsed(context.Background(), tk.ID(), staff)
		assert.ErrorIs(t, err, commands.ErrTicketNotYetValid)
		assert.Empty(t, f.tickets.saved, "a premature scan must not be persisted")
		assert.Equal(t, ticket.StatusValid, tk.Status())

		f.clk.Set(ticketValidFrom.Add(time.Hour))
		view, err := f.uc.MarkUsed(context.Background(), tk.ID(), staff)
		require.NoError(t, err)
		assert.Equal(t, "used", view.Status)
	})

	t.Run("second scan is rejected without another save", func(t *testing.T) {
		f := newTicketFixture(t)
		tk := issuedTicket()
		require.NoError(t, tk.MarkUsed(ticketValidFrom.Add(time.Minute)))
		f.tickets.byID = tk

		_, err := f.uc.MarkUsed(context.Background(), tk.ID(), staff)
		assert.ErrorIs(t, err, commands.ErrTicketAlreadyUsed)
		assert.Empty(t, f.tickets.saved)
	})

	t.Run("cancelled ticket cannot be scanned", func(t *testing.T) {
		f := newTicketFixture(t)
		tk := issuedTicket()
		require.True(t, tk.Cancel())
		f.tickets.byID = tk

		_, err := f.uc.MarkUsed(context.Background(), tk.ID(), staff)
		assert.ErrorIs(t, err, commands.ErrTicketCancelled)
		assert.Empty(t, f.tickets.saved)
	})
}
