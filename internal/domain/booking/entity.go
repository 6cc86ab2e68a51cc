package booking

import (
	"errors"
	"time"

	"hall-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition  = errors.New("invalid booking state transition")
	ErrNotBookingOwner    = errors.New("booking is not owned by caller")
	ErrCancelWindowClosed = errors.New("cancellation window has closed")
	ErrInvalidStatus      = errors.New("invalid booking status")
)

type Booking struct {
	id         uuid.UUID
	hallID     uuid.UUID
	userID     uuid.UUID
	slot       TimeSlot
	persons    int
	status     Status
	pricing    Breakdown
	addOns     []AddOn
	couponCode *string
	note       Note
	createdAt  time.Time
	updatedAt  time.Time
}

func ReconstructBooking(
	id, hallID, userID uuid.UUID,
	slot TimeSlot,
	persons int,
	status Status,
	pricing Breakdown,
	addOns []AddOn,
	couponCode *string,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		hallID:     hallID,
		userID:     userID,
		slot:       slot,
		persons:    persons,
		status:     status,
		pricing:    pricing,
		addOns:     addOns,
		couponCode: couponCode,
		note:       note,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Confirm moves a pending booking to confirmed. Confirming an already
// confirmed booking reports changed=false so side effects (ticket
// issuance) stay idempotent.
func (b *Booking) Confirm() (changed bool, err error) {
	switch b.status {
	case StatusConfirmed:
		return false, nil
	case StatusPending:
		b.status = StatusConfirmed
		return true, nil
	default:
		return false, ErrInvalidTransition
	}
}

// Cancel moves a pending or confirmed booking to cancelled. Re-cancelling
// is a no-op; a booking whose window has elapsed is treated as completed
// and can no longer be cancelled.
func (b *Booking) Cancel(now time.Time) (changed bool, err error) {
	switch b.EffectiveStatus(now) {
	case StatusCancelled:
		return false, nil
	case StatusPending, StatusConfirmed:
		b.status = StatusCancelled
		return true, nil
	default:
		return false, ErrInvalidTransition
	}
}

// Complete flips an elapsed confirmed booking to completed (sweep path).
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusConfirmed || now.Before(b.slot.End()) {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	return nil
}

// EffectiveStatus derives completion lazily: a confirmed booking whose
// end time has passed reads as completed even before the sweep runs.
func (b *Booking) EffectiveStatus(now time.Time) Status {
	if b.status == StatusConfirmed && !now.Before(b.slot.End()) {
		return StatusCompleted
	}
	return b.status
}

// CancellableBy enforces the cancellation policy: staff and admins may
// cancel any non-terminal booking; the owner may cancel their own booking
// up to the configured window before the start time.
func (b *Booking) CancellableBy(actor user.Actor, now time.Time, window time.Duration) error {
	if actor.IsAdmin() || actor.IsStaff() {
		return nil
	}
	if actor.ID != b.userID {
		return ErrNotBookingOwner
	}
	if now.Add(window).After(b.slot.Start()) {
		return ErrCancelWindowClosed
	}
	return nil
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) HallID() uuid.UUID   { return b.hallID }
func (b *Booking) UserID() uuid.UUID   { return b.userID }
func (b *Booking) Slot() TimeSlot      { return b.slot }
func (b *Booking) Persons() int        { return b.persons }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) Pricing() Breakdown  { return b.pricing }
func (b *Booking) AddOns() []AddOn     { return b.addOns }
func (b *Booking) CouponCode() *string { return b.couponCode }
func (b *Booking) Note() Note          { return b.note }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
