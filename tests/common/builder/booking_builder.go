//go:build unit || e2e

package builder

import (
	"time"

	"hall-booking/internal/domain/booking"
	reqdto "hall-booking/internal/handler/dto/request"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// A Saturday well in the future so weekend pricing and the past-start
// check behave deterministically.
var DefaultStart = time.Date(2030, time.June, 1, 10, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID            uuid.UUID
	HallID        uuid.UUID
	UserID        uuid.UUID
	StartTime     time.Time
	DurationHours int
	Persons       int
	Status        booking.Status
	Pricing       booking.Breakdown
	AddOns        []booking.AddOn
	CouponCode    *string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:            uuid.New(),
		HallID:        uuid.New(),
		UserID:        uuid.New(),
		StartTime:     DefaultStart,
		DurationHours: 2,
		Persons:       4,
		Status:        booking.StatusPending,
		Pricing:       booking.Breakdown{MultiplierBp: 10000, TotalCents: 1200},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.HallID, b.UserID,
		booking.ReconstructTimeSlot(b.StartTime, b.DurationHours),
		b.Persons,
		b.Status,
		b.Pricing,
		b.AddOns,
		b.CouponCode,
		booking.NewNote(b.Note),
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		HallID:        b.HallID,
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		Persons:       b.Persons,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	end := b.StartTime.Add(time.Duration(b.DurationHours) * time.Hour)
	var note *string
	if b.Note != "" {
		note = &b.Note
	}
	return &queries.BookingView{
		ID:            b.ID,
		HallID:        b.HallID,
		UserID:        b.UserID,
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		EndTime:       end,
		Persons:       b.Persons,
		Status:        b.Status.String(),
		Pricing:       b.Pricing,
		AddOns:        b.AddOns,
		CouponCode:    b.CouponCode,
		Note:          note,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
