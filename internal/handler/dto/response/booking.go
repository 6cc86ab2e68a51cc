package response

import (
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID         `json:"id"`
	HallID        uuid.UUID         `json:"hallId"`
	UserID        uuid.UUID         `json:"userId"`
	StartTime     time.Time         `json:"startTime"`
	DurationHours int               `json:"durationHours"`
	EndTime       time.Time         `json:"endTime"`
	Persons       int               `json:"persons"`
	Status        string            `json:"status"`
	Pricing       booking.Breakdown `json:"pricing"`
	AddOns        []booking.AddOn   `json:"addOns,omitempty"`
	CouponCode    *string           `json:"couponCode,omitempty"`
	Note          *string           `json:"note,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type BookingListResponse struct {
	ID            uuid.UUID `json:"id"`
	HallID        uuid.UUID `json:"hallId"`
	StartTime     time.Time `json:"startTime"`
	DurationHours int       `json:"durationHours"`
	EndTime       time.Time `json:"endTime"`
	Persons       int       `json:"persons"`
	Status        string    `json:"status"`
	TotalCents    int64     `json:"totalCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:            rm.ID,
		HallID:        rm.HallID,
		UserID:        rm.UserID,
		StartTime:     rm.StartTime,
		DurationHours: rm.DurationHours,
		EndTime:       rm.EndTime,
		Persons:       rm.Persons,
		Status:        rm.Status,
		Pricing:       rm.Pricing,
		AddOns:        rm.AddOns,
		CouponCode:    rm.CouponCode,
		Note:          rm.Note,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:            rm.ID,
		HallID:        rm.HallID,
		StartTime:     rm.StartTime,
		DurationHours: rm.DurationHours,
		EndTime:       rm.EndTime,
		Persons:       rm.Persons,
		Status:        rm.Status,
		TotalCents:    rm.TotalCents,
		CreatedAt:     rm.CreatedAt,
	}
}
