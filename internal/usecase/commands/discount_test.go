//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscountResolver(reads *fakeCommandReads, now time.Time) commands.DiscountResolver {
	uow := &fakeUoW{reads: reads}
	return commands.NewCouponDiscountResolver(uow, clock.NewMockClock(now))
}

func TestCouponDiscountResolver_Resolve(t *testing.T) {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fixed-amount coupon", func(t *testing.T) {
		amount := int32(300)
		reads := &fakeCommandReads{coupon: &shared.CouponSnapshot{
			ID:             uuid.New(),
			Code:           "SAVE300",
			AmountOffCents: &amount,
		}}

		discount, err := newDiscountResolver(reads, now).Resolve(context.Background(), "SAVE300", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(300), discount)
	})

	t.Run("fixed-amount coupon never exceeds the payable amount", func(t *testing.T) {
		amount := int32(5000)
		reads := &fakeCommandReads{coupon: &shared.CouponSnapshot{
			ID:             uuid.New(),
			Code:           "BIG",
			AmountOffCents: &amount,
		}}

		discount, err := newDiscountResolver(reads, now).Resolve(context.Background(), "BIG", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), discount)
	})

	t.Run("percentage coupon", func(t *testing.T) {
		percent := 25.0
		reads := &fakeCommandReads{coupon: &shared.CouponSnapshot{
			ID:         uuid.New(),
			Code:       "QUARTER",
			PercentOff: &percent,
		}}

		discount, err := newDiscountResolver(reads, now).Resolve(context.Background(), "QUARTER", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(250), discount)
	})

	t.Run("unknown code", func(t *testing.T) {
		reads := &fakeCommandReads{couponErr: infra.WrapRepoErr("coupon", pgx.ErrNoRows)}

		_, err := newDiscountResolver(reads, now).Resolve(context.Background(), "NOPE", 1000)
		assert.ErrorIs(t, err, commands.ErrDiscountInvalid)
	})

	t.Run("coupon outside its validity window", func(t *testing.T) {
		amount := int32(300)
		expired := now.Add(-time.Hour)
		reads := &fakeCommandReads{coupon: &shared.CouponSnapshot{
			ID:             uuid.New(),
			Code:           "OLD",
			AmountOffCents: &amount,
			ValidTo:        &expired,
		}}

		_, err := newDiscountResolver(reads, now).Resolve(context.Background(), "OLD", 1000)
		assert.ErrorIs(t, err, commands.ErrDiscountInvalid)
	})

	t.Run("coupon not yet valid", func(t *testing.T) {
		amount := int32(300)
		future := now.Add(time.Hour)
		reads := &fakeCommandReads{coupon: &shared.CouponSnapshot{
			ID:             uuid.New(),
			Code:           "SOON",
			AmountOffCents: &amount,
			ValidFrom:      &future,
		}}

		_, err := newDiscountResolver(reads, now).Resolve(context.Background(), "SOON", 1000)
		assert.ErrorIs(t, err, commands.ErrDiscountInvalid)
	})

	t.Run("coupon with both discount kinds is rejected", func(t *testing.T) {
		amount := int32(300)
		percent := 10.0
		reads := &fakeCommandReads{coupon: &shared.CouponSnapshot{
			ID:             uuid.New(),
			Code:           "BROKEN",
			AmountOffCents: &amount,
			PercentOff:     &percent,
		}}

		_, err := newDiscountResolver(reads, now).Resolve(context.Background(), "BROKEN", 1000)
		assert.ErrorIs(t, err, commands.ErrDiscountInvalid)
	})
}
