package commands

import (
	"context"
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/user"
	"hall-booking/internal/pkg/errs"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type FreeTicketInput struct {
	UserID        uuid.UUID
	HallID        uuid.UUID
	StartTime     time.Time
	DurationHours int
	Persons       int
	Notes         *string
}

// CreateFreeTicket is the admin path: it skips pricing and payment, forces
// the total to zero, and lands directly in confirmed with tickets issued.
// Slot exclusivity is not waived: the same conflict guard applies.
func (uc *bookingUseCaseImpl) CreateFreeTicket(ctx context.Context, input FreeTicketInput, actor user.Actor) (*queries.BookingView, error) {
	if !actor.IsAdmin() && !actor.IsStaff() {
		return nil, ErrNotAuthorized
	}

	hallEntity, err := uc.loadHall(ctx, input.HallID)
	if err != nil {
		return nil, err
	}

	// Branch scoping: admins target any hall, staff only their own branch.
	if !actor.CanTargetBranch(hallEntity.BranchID()) {
		return nil, ErrNotAuthorized
	}

	slot, err := booking.NewTimeSlot(input.StartTime, input.DurationHours, uc.factory.MaxDurationHours())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	note := booking.NewNote("")
	if input.Notes != nil {
		note = booking.NewNote(*input.Notes)
	}

	bookingEntity, err := uc.factory.CreateFreeBooking(booking.CreateSpec{
		Hall:    hallEntity,
		UserID:  input.UserID,
		Slot:    slot,
		Persons: input.Persons,
		Note:    note,
	})
	if err != nil {
		return nil, mapFactoryErr(err)
	}

	if err := uc.reserve(ctx, bookingEntity, uuid.Nil, actor.ID); err != nil {
		return nil, err
	}

	uc.invalidateSlots(ctx, bookingEntity)
	uc.notify(ctx, "booking_confirmed", bookingEntity.ID())

	return uc.bookingQueries.GetByIDSystem(ctx, bookingEntity.ID())
}
