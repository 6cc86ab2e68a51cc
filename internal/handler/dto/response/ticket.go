package response

import (
	"time"

	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type TicketResponse struct {
	ID         uuid.UUID  `json:"id"`
	BookingID  uuid.UUID  `json:"bookingId"`
	Token      uuid.UUID  `json:"token"`
	HolderName *string    `json:"holderName,omitempty"`
	Status     string     `json:"status"`
	ValidFrom  time.Time  `json:"validFrom"`
	ValidUntil time.Time  `json:"validUntil"`
	ScannedAt  *time.Time `json:"scannedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func FromTicketView(rm *queries.TicketView) *TicketResponse {
	return &TicketResponse{
		ID:         rm.ID,
		BookingID:  rm.BookingID,
		Token:      rm.Token,
		HolderName: rm.HolderName,
		Status:     rm.Status,
		ValidFrom:  rm.ValidFrom,
		ValidUntil: rm.ValidUntil,
		ScannedAt:  rm.ScannedAt,
		CreatedAt:  rm.CreatedAt,
	}
}

func FromTicketViews(rms []*queries.TicketView) []*TicketResponse {
	out := make([]*TicketResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromTicketView(rm)
	}
	return out
}
