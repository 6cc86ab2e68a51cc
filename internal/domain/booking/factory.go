package booking

import (
	"errors"

	"hall-booking/internal/domain/hall"
	"hall-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrPastStartTime       = errors.New("start time cannot be in the past")
	ErrCapacityExceeded    = errors.New("persons exceed hall capacity")
	ErrOutsideWorkingHours = errors.New("window is outside the hall's working hours")
)

// Factory is the single place bookings are constructed, so every booking
// carries a consistent derived end time and a pricing breakdown copied
// from the hall's config at reservation time.
type Factory struct {
	clock            clock.Clock
	engine           *PricingEngine
	maxDurationHours int
}

func NewFactory(clk clock.Clock, engine *PricingEngine, maxDurationHours int) *Factory {
	return &Factory{
		clock:            clk,
		engine:           engine,
		maxDurationHours: maxDurationHours,
	}
}

type CreateSpec struct {
	Hall       *hall.Hall
	UserID     uuid.UUID
	Slot       TimeSlot
	Persons    int
	AddOns     []AddOn
	Decoration bool
	CouponCode *string
	Note       Note
}

// CreateBooking builds a priced pending booking. Payment (or an admin
// path) confirms it later.
func (f *Factory) CreateBooking(spec CreateSpec, resolve DiscountFunc) (*Booking, error) {
	if err := f.validate(spec); err != nil {
		return nil, err
	}

	pricing, err := f.engine.Price(
		spec.Hall.PriceConfig(),
		spec.Slot.Start(),
		spec.Slot.DurationHours(),
		spec.Persons,
		spec.AddOns,
		spec.Decoration,
		spec.CouponCode,
		resolve,
	)
	if err != nil {
		return nil, err
	}

	return f.build(spec, StatusPending, pricing), nil
}

// CreateFreeBooking builds a zero-priced booking that is confirmed
// immediately, bypassing pricing and payment. Slot exclusivity is not
// waived; the conflict guard still applies on persist.
func (f *Factory) CreateFreeBooking(spec CreateSpec) (*Booking, error) {
	if err := f.validate(spec); err != nil {
		return nil, err
	}
	spec.AddOns = nil
	spec.CouponCode = nil
	return f.build(spec, StatusConfirmed, ZeroBreakdown()), nil
}

func (f *Factory) validate(spec CreateSpec) error {
	if err := spec.Hall.Bookable(); err != nil {
		return err
	}
	if spec.Persons < 1 {
		return ErrInvalidPersons
	}
	if spec.Persons > spec.Hall.Capacity() {
		return ErrCapacityExceeded
	}
	if spec.Slot.DurationHours() < 1 || spec.Slot.DurationHours() > f.maxDurationHours {
		return ErrInvalidDuration
	}
	if spec.Slot.Start().Before(f.clock.Now()) {
		return ErrPastStartTime
	}
	if !spec.Slot.SameCalendarDay() {
		return ErrOutsideWorkingHours
	}
	day := spec.Hall.WorkingHours().Day(spec.Slot.Start().Weekday())
	startMin, endMin := spec.Slot.MinutesOfDay()
	if !day.IsBookable(startMin, endMin) {
		return ErrOutsideWorkingHours
	}
	return nil
}

func (f *Factory) build(spec CreateSpec, status Status, pricing Breakdown) *Booking {
	now := f.clock.Now()
	return &Booking{
		id:         uuid.New(),
		hallID:     spec.Hall.ID(),
		userID:     spec.UserID,
		slot:       spec.Slot,
		persons:    spec.Persons,
		status:     status,
		pricing:    pricing,
		addOns:     spec.AddOns,
		couponCode: spec.CouponCode,
		note:       spec.Note,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (f *Factory) MaxDurationHours() int {
	return f.maxDurationHours
}
