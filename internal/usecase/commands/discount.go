package commands

import (
	"context"

	"hall-booking/internal/domain/coupon"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/pkg/errs"
	"hall-booking/internal/usecase/shared"
)

// couponDiscountResolver resolves coupon codes against the coupons table,
// which is owned by the coupon collaborator and read-only here.
type couponDiscountResolver struct {
	reads shared.CommandReads
	clock clock.Clock
}

func NewCouponDiscountResolver(uow shared.UnitOfWork, clk clock.Clock) DiscountResolver {
	return &couponDiscountResolver{reads: uow.CommandReads(), clock: clk}
}

func (r *couponDiscountResolver) Resolve(ctx context.Context, code string, payableCents int64) (int64, error) {
	normalized, err := coupon.NormalizeCode(code)
	if err != nil {
		return 0, errs.Mark(err, ErrDiscountInvalid)
	}

	snap, err := r.reads.CouponByCode(ctx, normalized)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, ErrDiscountInvalid
		}
		return 0, errs.Mark(err, ErrDiscountInvalid)
	}

	promo, err := coupon.New(snap.ID, snap.Code, snap.AmountOffCents, snap.PercentOff, snap.ValidFrom, snap.ValidTo)
	if err != nil {
		return 0, errs.Mark(err, ErrDiscountInvalid)
	}
	if err := promo.UsableAt(r.clock.Now()); err != nil {
		return 0, errs.Mark(err, ErrDiscountInvalid)
	}

	return promo.Discount().AmountOff(payableCents), nil
}
