//go:build unit

package promotion_test

import (
	"testing"

	"booking-checkout/internal/domain/promotion"

	"github.com/stretchr/testify/assert"
)

func TestDiscountAmount(t *testing.T) {
	cases := []struct {
		name  string
		promo promotion.Application
		base  int64
		want  int64
	}{
		{name: "20 percent of 100.00", promo: pct(20), base: 10000, want: 2000},
		{name: "percentage rounds half up", promo: pct(12.5), base: 1004, want: 126},
		{name: "percentage rounds down below half", promo: pct(33), base: 1001, want: 330},
		{name: "100 percent", promo: pct(100), base: 4599, want: 4599},
		{name: "fixed 10 dollars", promo: fixed(10), base: 5000, want: 1000},
		{name: "fixed clamps to base price", promo: fixed(10), base: 500, want: 500},
		{name: "fixed fractional dollars", promo: fixed(10.99), base: 5000, want: 1099},
		{name: "zero base", promo: fixed(10), base: 0, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.promo.DiscountAmount(tc.base))
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		promo promotion.Application
		errIs error
	}{
		{name: "valid percentage", promo: pct(15)},
		{name: "valid fixed", promo: fixed(5)},
		{name: "percentage above 100", promo: pct(101), errIs: promotion.ErrInvalidDiscountPercent},
		{name: "negative percentage", promo: pct(-1), errIs: promotion.ErrInvalidDiscountPercent},
		{name: "negative fixed", promo: fixed(-2), errIs: promotion.ErrInvalidDiscountAmount},
		{
			name:  "unknown type",
			promo: promotion.Application{ID: "p", DiscountType: "bogo", DiscountValue: 1},
			errIs: promotion.ErrInvalidDiscountType,
		},
		{
			name:  "missing id",
			promo: promotion.Application{DiscountType: promotion.DiscountFixed, DiscountValue: 1},
			errIs: promotion.ErrMissingPromotionID,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.promo.Validate()
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func pct(v float64) promotion.Application {
	return promotion.Application{ID: "promo-1", PromoCode: "SAVE", DiscountType: promotion.DiscountPercentage, DiscountValue: v}
}

func fixed(v float64) promotion.Application {
	return promotion.Application{ID: "promo-2", PromoCode: "TENOFF", DiscountType: promotion.DiscountFixed, DiscountValue: v}
}
