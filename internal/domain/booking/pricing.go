package booking

import (
	"time"

	"hall-booking/internal/domain/hall"
)

// Multipliers are basis points: 10000 = x1.0. All amounts are integer
// minor units, so repeated pricing of the same input never drifts.
const multiplierBase = 10000

// HolidayCalendar decides whether a date is a holiday. The holiday check
// takes precedence over the weekend multiplier.
type HolidayCalendar interface {
	IsHoliday(t time.Time) bool
}

// DiscountFunc resolves a coupon code against the payable amount and
// returns the discount in cents. It returns 0 for a missing or invalid
// code; resolution itself happens outside the reservation transaction.
type DiscountFunc func(code string, payableCents int64) int64

func NoDiscount(string, int64) int64 { return 0 }

// Breakdown is the priced result copied verbatim onto the booking row, so
// later edits to the hall's price config never alter historical bookings.
type Breakdown struct {
	BasePriceCents       int64 `json:"base_price_cents"`
	HourlyPriceCents     int64 `json:"hourly_price_cents"`
	PricePerPersonCents  int64 `json:"price_per_person_cents"`
	PersonsPriceCents    int64 `json:"persons_price_cents"`
	DecorationPriceCents int64 `json:"decoration_price_cents"`
	MultiplierBp         int32 `json:"multiplier_bp"`
	AddOnsCents          int64 `json:"add_ons_cents"`
	DiscountCents        int64 `json:"discount_cents"`
	TotalCents           int64 `json:"total_cents"`
}

// ZeroBreakdown is the breakdown of the free-ticket path.
func ZeroBreakdown() Breakdown {
	return Breakdown{MultiplierBp: multiplierBase}
}

type PricingEngine struct {
	holidays HolidayCalendar
}

func NewPricingEngine(holidays HolidayCalendar) *PricingEngine {
	return &PricingEngine{holidays: holidays}
}

// Price computes the deterministic multi-factor price of a booking window.
// Add-ons are added after the multiplier is applied; the discount comes
// last and the total never goes negative.
func (e *PricingEngine) Price(
	cfg hall.PriceConfig,
	start time.Time,
	durationHours, persons int,
	addOns []AddOn,
	decorationRequested bool,
	couponCode *string,
	resolve DiscountFunc,
) (Breakdown, error) {
	if err := cfg.Validate(); err != nil {
		return Breakdown{}, err
	}
	if durationHours < 1 {
		return Breakdown{}, ErrInvalidDuration
	}
	if persons < 1 {
		return Breakdown{}, ErrInvalidPersons
	}

	bd := Breakdown{
		BasePriceCents:   cfg.BasePriceCents,
		HourlyPriceCents: cfg.HourlyRateCents * int64(durationHours),
		MultiplierBp:     e.multiplierFor(start, cfg),
	}

	if cfg.PricePerPersonCents != nil {
		bd.PricePerPersonCents = *cfg.PricePerPersonCents
		bd.PersonsPriceCents = *cfg.PricePerPersonCents * int64(persons)
	}

	if decorationRequested && cfg.DecorationPriceCents != nil {
		bd.DecorationPriceCents = *cfg.DecorationPriceCents
	}

	subtotal := bd.BasePriceCents + bd.HourlyPriceCents + bd.PersonsPriceCents + bd.DecorationPriceCents
	subtotal = subtotal * int64(bd.MultiplierBp) / multiplierBase

	for _, a := range addOns {
		bd.AddOnsCents += a.AmountCents()
	}

	payable := subtotal + bd.AddOnsCents

	if couponCode != nil && *couponCode != "" && resolve != nil {
		discount := resolve(*couponCode, payable)
		if discount < 0 {
			discount = 0
		}
		if discount > payable {
			discount = payable
		}
		bd.DiscountCents = discount
	}

	bd.TotalCents = payable - bd.DiscountCents
	if bd.TotalCents < 0 {
		bd.TotalCents = 0
	}
	return bd, nil
}

func (e *PricingEngine) multiplierFor(start time.Time, cfg hall.PriceConfig) int32 {
	if e.holidays != nil && e.holidays.IsHoliday(start) {
		return cfg.HolidayMultiplierBp
	}
	if isWeekend(start) {
		return cfg.WeekendMultiplierBp
	}
	return multiplierBase
}

func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// DateListCalendar is the default HolidayCalendar, fed from configuration
// with YYYY-MM-DD dates supplied by the content collaborator.
type DateListCalendar struct {
	dates map[string]struct{}
}

func NewDateListCalendar(dates []string) *DateListCalendar {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if d == "" {
			continue
		}
		set[d] = struct{}{}
	}
	return &DateListCalendar{dates: set}
}

func (c *DateListCalendar) IsHoliday(t time.Time) bool {
	_, ok := c.dates[t.Format("2006-01-02")]
	return ok
}
