package commands

import (
	"context"
	"errors"

	"hall-booking/internal/domain/ticket"
	"hall-booking/internal/domain/user"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/pkg/errs"
	"hall-booking/internal/usecase/queries"
	"hall-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTicketNotFound    = errs.New("ticket not found")
	ErrTicketAlreadyUsed = errs.New("ticket already used")
	ErrTicketExpired     = errs.New("ticket expired")
	ErrTicketNotYetValid = errs.New("ticket not yet valid")
	ErrTicketCancelled   = errs.New("ticket cancelled")
)

type TicketCommands interface {
	MarkUsed(ctx context.Context, ticketID uuid.UUID, actor user.Actor) (*queries.TicketView, error)
}

type ticketUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTicketCommands(uow shared.UnitOfWork, clk clock.Clock) TicketCommands {
	return &ticketUseCaseImpl{uow: uow, clock: clk}
}

// MarkUsed consumes a ticket at the door. The row is locked for the
// duration of the transaction so two scanners racing on the same ticket
// serialize: the first wins, the second sees already-used.
func (uc *ticketUseCaseImpl) MarkUsed(ctx context.Context, ticketID uuid.UUID, actor user.Actor) (*queries.TicketView, error) {
	if !actor.IsAdmin() && !actor.IsStaff() {
		return nil, ErrNotAuthorized
	}

	var view *queries.TicketView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Tickets().FindByIDForUpdate(ctx, ticketID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrTicketNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		scanErr := t.MarkUsed(uc.clock.Now())
		if scanErr == nil || errors.Is(scanErr, ticket.ErrExpired) {
			// An out-of-window scan flips the ticket to expired; persist
			// that state change even though the scan itself is rejected.
			if err := tx.Tickets().Save(ctx, t); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		if scanErr != nil {
			return mapTicketErr(scanErr)
		}

		view = ticketView(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func mapTicketErr(err error) error {
	switch {
	case errors.Is(err, ticket.ErrAlreadyUsed):
		return errs.Mark(err, ErrTicketAlreadyUsed)
	case errors.Is(err, ticket.ErrExpired):
		return errs.Mark(err, ErrTicketExpired)
	case errors.Is(err, ticket.ErrNotYetValid):
		return errs.Mark(err, ErrTicketNotYetValid)
	case errors.Is(err, ticket.ErrCancelled):
		return errs.Mark(err, ErrTicketCancelled)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

func ticketView(t *ticket.Ticket) *queries.TicketView {
	return &queries.TicketView{
		ID:         t.ID(),
		BookingID:  t.BookingID(),
		Token:      t.Token(),
		HolderName: t.HolderName(),
		Status:     t.Status().String(),
		ValidFrom:  t.ValidFrom(),
		ValidUntil: t.ValidUntil(),
		ScannedAt:  t.ScannedAt(),
		CreatedAt:  t.CreatedAt(),
	}
}
