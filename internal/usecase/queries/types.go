package queries

import (
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/hall"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Free  bool      `json:"free"`
}

type BookingView struct {
	ID            uuid.UUID         `json:"id"`
	HallID        uuid.UUID         `json:"hall_id"`
	UserID        uuid.UUID         `json:"user_id"`
	StartTime     time.Time         `json:"start_time"`
	DurationHours int               `json:"duration_hours"`
	EndTime       time.Time         `json:"end_time"`
	Persons       int               `json:"persons"`
	Status        string            `json:"status"`
	Pricing       booking.Breakdown `json:"pricing"`
	AddOns        []booking.AddOn   `json:"add_ons,omitempty"`
	CouponCode    *string           `json:"coupon_code,omitempty"`
	Note          *string           `json:"note,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	HallID        uuid.UUID `json:"hall_id"`
	StartTime     time.Time `json:"start_time"`
	DurationHours int       `json:"duration_hours"`
	EndTime       time.Time `json:"end_time"`
	Persons       int       `json:"persons"`
	Status        string    `json:"status"`
	TotalCents    int64     `json:"total_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

type TicketView struct {
	ID         uuid.UUID  `json:"id"`
	BookingID  uuid.UUID  `json:"booking_id"`
	Token      uuid.UUID  `json:"token"`
	HolderName *string    `json:"holder_name,omitempty"`
	Status     string     `json:"status"`
	ValidFrom  time.Time  `json:"valid_from"`
	ValidUntil time.Time  `json:"valid_until"`
	ScannedAt  *time.Time `json:"scanned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// HallSchedule is what slot resolution needs from the hall read model.
type HallSchedule struct {
	HallID       uuid.UUID
	BranchID     uuid.UUID
	Status       hall.Status
	WorkingHours hall.WorkingHours
}
