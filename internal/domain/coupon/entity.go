package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotYetValid = errors.New("coupon is not yet valid")
	ErrExpired     = errors.New("coupon has expired")
)

// Coupon is a read-only view of a promotion row. The booking flow only
// checks the validity window and computes the amount off; creating and
// managing coupons belongs to a separate admin surface.
type Coupon struct {
	id        uuid.UUID
	code      string
	discount  Discount
	validFrom *time.Time
	validTo   *time.Time
}

func New(
	id uuid.UUID,
	code string,
	amountOffCents *int32,
	percentOff *float64,
	validFrom, validTo *time.Time,
) (*Coupon, error) {
	discount, err := NewDiscount(amountOffCents, percentOff)
	if err != nil {
		return nil, err
	}
	return &Coupon{
		id:        id,
		code:      code,
		discount:  discount,
		validFrom: validFrom,
		validTo:   validTo,
	}, nil
}

// UsableAt reports whether now falls inside the validity window. An open
// end is unrestricted.
func (c *Coupon) UsableAt(now time.Time) error {
	if c.validFrom != nil && now.Before(*c.validFrom) {
		return ErrNotYetValid
	}
	if c.validTo != nil && now.After(*c.validTo) {
		return ErrExpired
	}
	return nil
}

func (c *Coupon) ID() uuid.UUID         { return c.id }
func (c *Coupon) Code() string          { return c.code }
func (c *Coupon) Discount() Discount    { return c.discount }
func (c *Coupon) ValidFrom() *time.Time { return c.validFrom }
func (c *Coupon) ValidTo() *time.Time   { return c.validTo }
