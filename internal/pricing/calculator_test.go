package pricing

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdine/orderkit/internal/cart/domain"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func dp(v float64) *decimal.Decimal {
	dec := decimal.NewFromFloat(v)
	return &dec
}

func item(id string, price float64, qty int32) domain.LineItem {
	return domain.LineItem{ItemID: id, UnitPrice: d(price), Quantity: qty}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.LineItem
		cfg   FeeConfig
		promo *domain.PromoCode
		want  Totals
	}{
		{
			name:  "empty cart: all zero",
			items: nil,
			cfg:   FeeConfig{},
			want:  Totals{ItemTotal: d(0), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(0)},
		},
		{
			name:  "merged item, no fees",
			items: []domain.LineItem{item("101", 250, 3)},
			cfg:   FeeConfig{},
			want:  Totals{ItemTotal: d(750), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(750)},
		},
		{
			name:  "flat promo of 100",
			items: []domain.LineItem{item("101", 250, 3)},
			cfg:   FeeConfig{},
			promo: &domain.PromoCode{Code: "FLAT100", DiscountType: domain.DiscountFlat, DiscountValue: d(100)},
			want:  Totals{ItemTotal: d(750), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(100), AmountToBePaid: d(650)},
		},
		{
			name:  "gst with default percentage",
			items: []domain.LineItem{item("a", 200, 1)},
			cfg:   FeeConfig{GSTApplicable: true},
			want:  Totals{ItemTotal: d(200), GSTAmount: d(10), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(210)},
		},
		{
			name:  "gst with custom percentage",
			items: []domain.LineItem{item("a", 200, 1)},
			cfg:   FeeConfig{GSTApplicable: true, GSTPercentage: d(18)},
			want:  Totals{ItemTotal: d(200), GSTAmount: d(36), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(236)},
		},
		{
			name:  "gst inclusive pricing adds nothing",
			items: []domain.LineItem{item("a", 200, 1)},
			cfg:   FeeConfig{GSTApplicable: true, PriceInclusiveOfGST: true},
			want:  Totals{ItemTotal: d(200), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(200)},
		},
		{
			name:  "delivery fee below free threshold",
			items: []domain.LineItem{item("a", 499, 1)},
			cfg:   FeeConfig{ProvideDelivery: true, MinOrderFreeDelivery: dp(500), DeliveryFeeBelowMin: d(40)},
			want:  Totals{ItemTotal: d(499), GSTAmount: d(0), DeliveryAmount: d(40), DiscountAmount: d(0), AmountToBePaid: d(539)},
		},
		{
			name:  "delivery free at exactly the threshold",
			items: []domain.LineItem{item("a", 500, 1)},
			cfg:   FeeConfig{ProvideDelivery: true, MinOrderFreeDelivery: dp(500), DeliveryFeeBelowMin: d(40)},
			want:  Totals{ItemTotal: d(500), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(500)},
		},
		{
			name:  "delivery not offered: no fee regardless",
			items: []domain.LineItem{item("a", 100, 1)},
			cfg:   FeeConfig{MinOrderFreeDelivery: dp(500), DeliveryFeeBelowMin: d(40)},
			want:  Totals{ItemTotal: d(100), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(100)},
		},
		{
			name:  "delivery with no threshold configured always charges",
			items: []domain.LineItem{item("a", 10000, 1)},
			cfg:   FeeConfig{ProvideDelivery: true, DeliveryFeeBelowMin: d(40)},
			want:  Totals{ItemTotal: d(10000), GSTAmount: d(0), DeliveryAmount: d(40), DiscountAmount: d(0), AmountToBePaid: d(10040)},
		},
		{
			name:  "percentage promo",
			items: []domain.LineItem{item("a", 400, 1)},
			cfg:   FeeConfig{},
			promo: &domain.PromoCode{DiscountType: domain.DiscountPercentage, DiscountValue: d(10)},
			want:  Totals{ItemTotal: d(400), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(40), AmountToBePaid: d(360)},
		},
		{
			name:  "percentage promo capped by maxDiscount",
			items: []domain.LineItem{item("a", 400, 1)},
			cfg:   FeeConfig{},
			promo: &domain.PromoCode{DiscountType: domain.DiscountPercentage, DiscountValue: d(50), MaxDiscount: dp(75)},
			want:  Totals{ItemTotal: d(400), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(75), AmountToBePaid: d(325)},
		},
		{
			name:  "200 percent promo clamps to the payable amount",
			items: []domain.LineItem{item("a", 100, 1)},
			cfg:   FeeConfig{GSTApplicable: true, ProvideDelivery: true, DeliveryFeeBelowMin: d(40)},
			promo: &domain.PromoCode{DiscountType: domain.DiscountPercentage, DiscountValue: d(200)},
			want:  Totals{ItemTotal: d(100), GSTAmount: d(5), DeliveryAmount: d(40), DiscountAmount: d(145), AmountToBePaid: d(0)},
		},
		{
			name:  "flat promo larger than order floors at zero",
			items: []domain.LineItem{item("a", 50, 1)},
			cfg:   FeeConfig{},
			promo: &domain.PromoCode{DiscountType: domain.DiscountFlat, DiscountValue: d(500)},
			want:  Totals{ItemTotal: d(50), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(50), AmountToBePaid: d(0)},
		},
		{
			name:  "negative delivery fee misconfiguration clamps to zero",
			items: []domain.LineItem{item("a", 100, 1)},
			cfg:   FeeConfig{ProvideDelivery: true, DeliveryFeeBelowMin: d(-40)},
			want:  Totals{ItemTotal: d(100), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(100)},
		},
		{
			name:  "negative promo value misconfiguration clamps to zero",
			items: []domain.LineItem{item("a", 100, 1)},
			cfg:   FeeConfig{},
			promo: &domain.PromoCode{DiscountType: domain.DiscountFlat, DiscountValue: d(-10)},
			want:  Totals{ItemTotal: d(100), GSTAmount: d(0), DeliveryAmount: d(0), DiscountAmount: d(0), AmountToBePaid: d(100)},
		},
	}

	calc := NewCalculator(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Calculate(tt.items, tt.cfg, tt.promo)
			if diff := cmp.Diff(tt.want, got, decimalComparer); diff != "" {
				t.Fatalf("totals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateIsPure(t *testing.T) {
	items := []domain.LineItem{item("101", 250, 2), item("102", 120, 1)}
	cfg := FeeConfig{GSTApplicable: true, ProvideDelivery: true, MinOrderFreeDelivery: dp(500), DeliveryFeeBelowMin: d(40)}
	promo := &domain.PromoCode{DiscountType: domain.DiscountPercentage, DiscountValue: d(10)}

	calc := NewCalculator(nil)
	first := calc.Calculate(items, cfg, promo)
	for i := 0; i < 10; i++ {
		again := calc.Calculate(items, cfg, promo)
		if diff := cmp.Diff(first, again, decimalComparer); diff != "" {
			t.Fatalf("calculation not deterministic (-first +again):\n%s", diff)
		}
	}
}

// Increasing any single quantity must never decrease the amount to pay.
// Delivery is kept flat here: with a free-delivery threshold the total is
// deliberately non-monotonic at the crossing (see
// TestFreeDeliveryThresholdLowersPayable).
func TestTotalsMonotonicity(t *testing.T) {
	cfg := FeeConfig{
		GSTApplicable:       true,
		GSTPercentage:       d(5),
		ProvideDelivery:     true,
		DeliveryFeeBelowMin: d(40),
	}
	calc := NewCalculator(nil)

	for trial := 0; trial < 50; trial++ {
		items := []domain.LineItem{
			item(gofakeit.UUID(), gofakeit.Price(10, 600), int32(gofakeit.Number(1, 5))),
			item(gofakeit.UUID(), gofakeit.Price(10, 600), int32(gofakeit.Number(1, 5))),
		}
		before := calc.Calculate(items, cfg, nil)

		bumped := make([]domain.LineItem, len(items))
		copy(bumped, items)
		bumped[trial%len(items)].Quantity++

		after := calc.Calculate(bumped, cfg, nil)
		require.Truef(t, after.AmountToBePaid.GreaterThanOrEqual(before.AmountToBePaid),
			"amount decreased after quantity bump: before=%s after=%s items=%+v",
			before.AmountToBePaid, after.AmountToBePaid, items)
	}
}

// Crossing the free-delivery threshold drops the fee, so a quantity bump
// can legitimately lower the amount to pay.
func TestFreeDeliveryThresholdLowersPayable(t *testing.T) {
	cfg := FeeConfig{
		GSTApplicable:        true,
		GSTPercentage:        d(5),
		ProvideDelivery:      true,
		MinOrderFreeDelivery: dp(500),
		DeliveryFeeBelowMin:  d(40),
	}
	calc := NewCalculator(nil)

	before := calc.Calculate([]domain.LineItem{item("101", 49, 10)}, cfg, nil)
	after := calc.Calculate([]domain.LineItem{item("101", 50, 10)}, cfg, nil)

	assert.True(t, before.DeliveryAmount.Equal(d(40)), "got %s", before.DeliveryAmount)
	assert.True(t, after.DeliveryAmount.Equal(d(0)), "got %s", after.DeliveryAmount)
	assert.True(t, before.AmountToBePaid.Equal(d(554.5)), "got %s", before.AmountToBePaid)
	assert.True(t, after.AmountToBePaid.Equal(d(525)), "got %s", after.AmountToBePaid)
	assert.True(t, after.AmountToBePaid.LessThan(before.AmountToBePaid))
}

func TestDiscountNeverExceedsPayable(t *testing.T) {
	calc := NewCalculator(nil)
	promo := &domain.PromoCode{DiscountType: domain.DiscountPercentage, DiscountValue: d(200)}

	for trial := 0; trial < 50; trial++ {
		items := []domain.LineItem{
			item(gofakeit.UUID(), gofakeit.Price(1, 1000), int32(gofakeit.Number(1, 10))),
		}
		cfg := FeeConfig{
			GSTApplicable:       gofakeit.Bool(),
			ProvideDelivery:     gofakeit.Bool(),
			DeliveryFeeBelowMin: d(gofakeit.Price(0, 100)),
		}

		got := calc.Calculate(items, cfg, promo)
		payable := got.ItemTotal.Add(got.GSTAmount).Add(got.DeliveryAmount)
		assert.Truef(t, got.DiscountAmount.LessThanOrEqual(payable),
			"discount %s exceeds payable %s", got.DiscountAmount, payable)
		assert.False(t, got.AmountToBePaid.IsNegative())
	}
}
