package request

import (
	"strings"
	"time"

	"hall-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type AddOnRequest struct {
	Name       string `json:"name" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"min=0"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	HallID        uuid.UUID      `json:"hall_id" binding:"required"`
	StartTime     time.Time      `json:"start_time" binding:"required"`
	DurationHours int            `json:"duration_hours" binding:"required,min=1"`
	Persons       int            `json:"persons" binding:"required,min=1"`
	AddOns        []AddOnRequest `json:"add_ons,omitempty"`
	Decoration    bool           `json:"decoration,omitempty"`
	CouponCode    *string        `json:"coupon_code,omitempty"`
	Note          *string        `json:"note,omitempty"`
}

func (r CreateBookingRequest) GetCouponCode() *string {
	return trimmedPtr(r.CouponCode)
}

func (r CreateBookingRequest) GetNote() *string {
	return trimmedPtr(r.Note)
}

func (r CreateBookingRequest) DomainAddOns() []booking.AddOn {
	if len(r.AddOns) == 0 {
		return nil
	}
	addOns := make([]booking.AddOn, len(r.AddOns))
	for i, a := range r.AddOns {
		addOns[i] = booking.AddOn{Name: a.Name, PriceCents: a.PriceCents, Quantity: a.Quantity}
	}
	return addOns
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type CreateFreeTicketRequest struct {
	UserID        uuid.UUID `json:"user_id" binding:"required"`
	HallID        uuid.UUID `json:"hall_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	DurationHours int       `json:"duration_hours" binding:"required,min=1"`
	Persons       int       `json:"persons" binding:"required,min=1"`
	Notes         *string   `json:"notes,omitempty"`
}

func (r CreateFreeTicketRequest) GetNotes() *string {
	return trimmedPtr(r.Notes)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
