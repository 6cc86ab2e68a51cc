package shared

import (
	"time"

	"hall-booking/internal/domain/hall"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type HallSnapshot struct {
	ID           uuid.UUID
	BranchID     uuid.UUID
	Capacity     int
	Status       hall.Status
	PriceConfig  hall.PriceConfig
	WorkingHours hall.WorkingHours
}

type CouponSnapshot struct {
	ID             uuid.UUID
	Code           string
	AmountOffCents *int32
	PercentOff     *float64
	ValidFrom      *time.Time
	ValidTo        *time.Time
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
