package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode     = errors.New("coupon code must be 3-20 uppercase letters or digits")
	ErrInvalidDiscount = errors.New("coupon must carry exactly one of fixed amount or percentage")
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// NormalizeCode uppercases and validates a user-supplied coupon code.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !codePattern.MatchString(code) {
		return "", ErrInvalidCode
	}
	return code, nil
}

// Discount is either a fixed amount off in cents or a percentage off the
// payable total. Exactly one side is set.
type Discount struct {
	amountOffCents *int64
	percentOff     *float64
}

func NewDiscount(amountOffCents *int32, percentOff *float64) (Discount, error) {
	switch {
	case amountOffCents != nil && percentOff != nil:
		return Discount{}, ErrInvalidDiscount
	case amountOffCents != nil:
		if *amountOffCents < 0 {
			return Discount{}, ErrInvalidDiscount
		}
		amount := int64(*amountOffCents)
		return Discount{amountOffCents: &amount}, nil
	case percentOff != nil:
		if *percentOff < 0 || *percentOff > 100 {
			return Discount{}, ErrInvalidDiscount
		}
		pct := *percentOff
		return Discount{percentOff: &pct}, nil
	default:
		return Discount{}, ErrInvalidDiscount
	}
}

// AmountOff computes the discount against payableCents, clamped so the
// result never exceeds what is owed. Percentages truncate toward zero.
func (d Discount) AmountOff(payableCents int64) int64 {
	if payableCents <= 0 {
		return 0
	}

	var off int64
	switch {
	case d.percentOff != nil:
		off = int64(float64(payableCents) * *d.percentOff / 100.0)
	case d.amountOffCents != nil:
		off = *d.amountOffCents
	}
	if off > payableCents {
		return payableCents
	}
	return off
}
