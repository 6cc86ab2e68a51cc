package hall

import (
	"errors"
	"time"
)

var (
	ErrInvalidPriceConfig  = errors.New("invalid price config")
	ErrInvalidWorkingHours = errors.New("invalid working hours")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusReserved:
		return true
	default:
		return false
	}
}

// PriceConfig is owned by the content collaborator and read-only here.
// Amounts are minor units (cents); multipliers are basis points so that
// 10000 means x1.0 and pricing stays in integer arithmetic.
// Optional charges are pointers so "unset" is visible in the type.
type PriceConfig struct {
	BasePriceCents       int64
	HourlyRateCents      int64
	PricePerPersonCents  *int64
	WeekendMultiplierBp  int32
	HolidayMultiplierBp  int32
	DecorationPriceCents *int64
}

func (pc PriceConfig) Validate() error {
	if pc.BasePriceCents < 0 || pc.HourlyRateCents < 0 {
		return ErrInvalidPriceConfig
	}
	if pc.PricePerPersonCents != nil && *pc.PricePerPersonCents < 0 {
		return ErrInvalidPriceConfig
	}
	if pc.DecorationPriceCents != nil && *pc.DecorationPriceCents < 0 {
		return ErrInvalidPriceConfig
	}
	if pc.WeekendMultiplierBp <= 0 || pc.HolidayMultiplierBp <= 0 {
		return ErrInvalidPriceConfig
	}
	return nil
}

// WorkingDay is one weekday's open window in minutes from midnight.
type WorkingDay struct {
	OpenMin  int
	CloseMin int
	Closed   bool
}

// IsBookable reports whether the half-open window [startMin, endMin)
// falls inside the day's open hours.
func (d WorkingDay) IsBookable(startMin, endMin int) bool {
	if d.Closed || d.CloseMin <= d.OpenMin {
		return false
	}
	return startMin >= d.OpenMin && endMin <= d.CloseMin && startMin < endMin
}

type WorkingHours map[time.Weekday]WorkingDay

func (wh WorkingHours) Day(weekday time.Weekday) WorkingDay {
	day, ok := wh[weekday]
	if !ok {
		return WorkingDay{Closed: true}
	}
	return day
}
