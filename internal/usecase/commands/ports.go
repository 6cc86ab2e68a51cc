package commands

import (
	"context"
)

// DiscountResolver is the coupon collaborator boundary. It returns the
// discount in cents for a code against the payable amount, and
// ErrDiscountInvalid when the code does not resolve. It is always called
// outside the reservation transaction.
type DiscountResolver interface {
	Resolve(ctx context.Context, code string, payableCents int64) (int64, error)
}
