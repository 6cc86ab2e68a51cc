//go:build unit || e2e

package builder

import (
	"time"

	"hall-booking/internal/domain/hall"
	"hall-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type HallBuilder struct {
	ID           uuid.UUID
	BranchID     uuid.UUID
	Capacity     int
	Status       hall.Status
	PriceConfig  hall.PriceConfig
	WorkingHours hall.WorkingHours
}

func NewHallBuilder() *HallBuilder {
	perPerson := int64(25)
	decoration := int64(150)
	return &HallBuilder{
		ID:       uuid.New(),
		BranchID: uuid.New(),
		Capacity: 100,
		Status:   hall.StatusAvailable,
		PriceConfig: hall.PriceConfig{
			BasePriceCents:       500,
			HourlyRateCents:      200,
			PricePerPersonCents:  &perPerson,
			WeekendMultiplierBp:  15000,
			HolidayMultiplierBp:  20000,
			DecorationPriceCents: &decoration,
		},
		WorkingHours: openAllWeek(8*60, 22*60),
	}
}

func (b *HallBuilder) With(mutate func(*HallBuilder)) *HallBuilder {
	mutate(b)
	return b
}

func (b *HallBuilder) BuildDomain() (*hall.Hall, error) {
	return hall.NewHall(b.ID, b.BranchID, b.Capacity, b.Status, b.PriceConfig, b.WorkingHours)
}

func (b *HallBuilder) BuildSnapshot() *shared.HallSnapshot {
	return &shared.HallSnapshot{
		ID:           b.ID,
		BranchID:     b.BranchID,
		Capacity:     b.Capacity,
		Status:       b.Status,
		PriceConfig:  b.PriceConfig,
		WorkingHours: b.WorkingHours,
	}
}

func openAllWeek(openMin, closeMin int) hall.WorkingHours {
	hours := make(hall.WorkingHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = hall.WorkingDay{OpenMin: openMin, CloseMin: closeMin}
	}
	return hours
}
