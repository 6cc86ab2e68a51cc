package response

import (
	"time"

	"hall-booking/internal/usecase/queries"
)

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Free  bool      `json:"free"`
}

type SlotListResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

func FromSlotViews(date string, views []queries.SlotView) *SlotListResponse {
	slots := make([]SlotResponse, len(views))
	for i, v := range views {
		slots[i] = SlotResponse{Start: v.Start, End: v.End, Free: v.Free}
	}
	return &SlotListResponse{Date: date, Slots: slots}
}
