//go:build unit

package booking_test

import (
	"testing"
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/hall"
	"hall-booking/internal/pkg/clock"
	"hall-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory(t *testing.T) (*booking.Factory, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC))
	engine := booking.NewPricingEngine(booking.NewDateListCalendar(nil))
	return booking.NewFactory(clk, engine, 12), clk
}

func validSpec(t *testing.T, mutate func(*builder.HallBuilder)) booking.CreateSpec {
	t.Helper()
	hb := builder.NewHallBuilder()
	if mutate != nil {
		hb.With(mutate)
	}
	h, err := hb.BuildDomain()
	require.NoError(t, err)

	slot, err := booking.NewTimeSlot(builder.DefaultStart, 2, 12)
	require.NoError(t, err)

	return booking.CreateSpec{
		Hall:    h,
		UserID:  uuid.New(),
		Slot:    slot,
		Persons: 4,
	}
}

func TestFactory_CreateBooking(t *testing.T) {
	t.Run("builds a priced pending booking", func(t *testing.T) {
		factory, clk := newTestFactory(t)
		spec := validSpec(t, nil)

		b, err := factory.CreateBooking(spec, booking.NoDiscount)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, spec.Hall.ID(), b.HallID())
		assert.Equal(t, spec.UserID, b.UserID())
		assert.Equal(t, spec.Slot.Start().Add(2*time.Hour), b.Slot().End())
		assert.Equal(t, clk.Now(), b.CreatedAt())
		// Saturday: (500 + 2*200 + 4*25) * 1.5
		assert.Equal(t, int64(1500), b.Pricing().TotalCents)
	})

	t.Run("hall under maintenance is rejected", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, func(b *builder.HallBuilder) { b.Status = hall.StatusMaintenance })

		_, err := factory.CreateBooking(spec, booking.NoDiscount)
		assert.ErrorIs(t, err, hall.ErrUnderMaintenance)
	})

	t.Run("persons above capacity are rejected", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, func(b *builder.HallBuilder) { b.Capacity = 3 })

		_, err := factory.CreateBooking(spec, booking.NoDiscount)
		assert.ErrorIs(t, err, booking.ErrCapacityExceeded)
	})

	t.Run("zero persons are rejected", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, nil)
		spec.Persons = 0

		_, err := factory.CreateBooking(spec, booking.NoDiscount)
		assert.ErrorIs(t, err, booking.ErrInvalidPersons)
	})

	t.Run("start in the past is rejected", func(t *testing.T) {
		factory, clk := newTestFactory(t)
		spec := validSpec(t, nil)
		clk.Set(spec.Slot.Start().Add(time.Minute))

		_, err := factory.CreateBooking(spec, booking.NoDiscount)
		assert.ErrorIs(t, err, booking.ErrPastStartTime)
	})

	t.Run("window outside working hours is rejected", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		// Hall opens at 08:00; a 07:00 start falls outside.
		spec := validSpec(t, nil)
		early, err := booking.NewTimeSlot(
			time.Date(2030, 6, 1, 7, 0, 0, 0, time.UTC), 2, 12)
		require.NoError(t, err)
		spec.Slot = early

		_, err = factory.CreateBooking(spec, booking.NoDiscount)
		assert.ErrorIs(t, err, booking.ErrOutsideWorkingHours)
	})

	t.Run("window on a closed day is rejected", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, func(b *builder.HallBuilder) {
			b.WorkingHours[time.Saturday] = hall.WorkingDay{Closed: true}
		})

		_, err := factory.CreateBooking(spec, booking.NoDiscount)
		assert.ErrorIs(t, err, booking.ErrOutsideWorkingHours)
	})

	t.Run("window crossing midnight is rejected", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, nil)
		late, err := booking.NewTimeSlot(
			time.Date(2030, 6, 1, 23, 0, 0, 0, time.UTC), 2, 12)
		require.NoError(t, err)
		spec.Slot = late

		_, err = factory.CreateBooking(spec, booking.NoDiscount)
		assert.ErrorIs(t, err, booking.ErrOutsideWorkingHours)
	})
}

func TestFactory_CreateFreeBooking(t *testing.T) {
	t.Run("free booking is confirmed with a zero breakdown", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, nil)

		b, err := factory.CreateFreeBooking(spec)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.ZeroBreakdown(), b.Pricing())
	})

	t.Run("add-ons and coupon are stripped", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, nil)
		spec.AddOns = []booking.AddOn{{Name: "projector", PriceCents: 100, Quantity: 1}}
		code := "SAVE"
		spec.CouponCode = &code

		b, err := factory.CreateFreeBooking(spec)
		require.NoError(t, err)

		assert.Empty(t, b.AddOns())
		assert.Nil(t, b.CouponCode())
	})

	t.Run("slot and capacity validation still applies", func(t *testing.T) {
		factory, _ := newTestFactory(t)
		spec := validSpec(t, func(b *builder.HallBuilder) { b.Capacity = 1 })

		_, err := factory.CreateFreeBooking(spec)
		assert.ErrorIs(t, err, booking.ErrCapacityExceeded)
	})
}
