// Package pricing turns cart contents and restaurant fee knobs into a
// totals breakdown. Calculation is pure: same inputs, same outputs.
package pricing

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/quickdine/orderkit/internal/cart/domain"
)

// DefaultGSTPercentage applies when a restaurant has GST enabled but no
// custom percentage configured.
var DefaultGSTPercentage = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// FeeConfig is the restaurant-specific knob set controlling tax and
// delivery-fee computation.
type FeeConfig struct {
	GSTApplicable       bool
	PriceInclusiveOfGST bool
	// GSTPercentage of zero means "unset"; DefaultGSTPercentage is used.
	GSTPercentage decimal.Decimal

	ProvideDelivery bool
	// MinOrderFreeDelivery is the item-total threshold at or above which
	// delivery is free. Nil means no threshold is configured.
	MinOrderFreeDelivery *decimal.Decimal
	DeliveryFeeBelowMin  decimal.Decimal
}

// Totals is the calculator's output. Every field is non-negative; any
// negative intermediate is clamped and reported as a config defect.
type Totals struct {
	ItemTotal      decimal.Decimal `json:"itemTotal"`
	GSTAmount      decimal.Decimal `json:"gstAmount"`
	DeliveryAmount decimal.Decimal `json:"deliveryAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	AmountToBePaid decimal.Decimal `json:"amountToBePaid"`
}

type Calculator struct {
	log *slog.Logger
}

func NewCalculator(log *slog.Logger) Calculator {
	return Calculator{log: log}
}

func (c Calculator) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return slog.Default()
}

// Calculate maps (items, fee config, optional promo) to a totals
// breakdown. Extras' price deltas are expected to be folded into each
// item's UnitPrice already; only UnitPrice × Quantity is summed here.
func (c Calculator) Calculate(items []domain.LineItem, cfg FeeConfig, promo *domain.PromoCode) Totals {
	itemTotal := decimal.Zero
	for _, it := range items {
		itemTotal = itemTotal.Add(it.LineTotal())
	}
	itemTotal = c.clamp("itemTotal", itemTotal)

	gst := c.clamp("gstAmount", c.gstAmount(itemTotal, cfg))
	delivery := c.clamp("deliveryAmount", c.deliveryAmount(itemTotal, cfg))

	payable := itemTotal.Add(gst).Add(delivery)

	discount := c.clamp("discountAmount", discountAmount(itemTotal, promo))
	// A discount can never exceed what is owed.
	if discount.GreaterThan(payable) {
		discount = payable
	}

	return Totals{
		ItemTotal:      itemTotal,
		GSTAmount:      gst,
		DeliveryAmount: delivery,
		DiscountAmount: discount,
		AmountToBePaid: c.clamp("amountToBePaid", payable.Sub(discount)),
	}
}

func (c Calculator) gstAmount(itemTotal decimal.Decimal, cfg FeeConfig) decimal.Decimal {
	if !cfg.GSTApplicable || cfg.PriceInclusiveOfGST {
		return decimal.Zero
	}

	pct := cfg.GSTPercentage
	if pct.IsZero() {
		pct = DefaultGSTPercentage
	}
	return itemTotal.Mul(pct).Div(hundred)
}

func (c Calculator) deliveryAmount(itemTotal decimal.Decimal, cfg FeeConfig) decimal.Decimal {
	if !cfg.ProvideDelivery {
		return decimal.Zero
	}
	if cfg.MinOrderFreeDelivery != nil && itemTotal.GreaterThanOrEqual(*cfg.MinOrderFreeDelivery) {
		return decimal.Zero
	}
	return cfg.DeliveryFeeBelowMin
}

func discountAmount(itemTotal decimal.Decimal, promo *domain.PromoCode) decimal.Decimal {
	if promo == nil {
		return decimal.Zero
	}

	if promo.DiscountType == domain.DiscountPercentage {
		discount := itemTotal.Mul(promo.DiscountValue).Div(hundred)
		if promo.MaxDiscount != nil && discount.GreaterThan(*promo.MaxDiscount) {
			discount = *promo.MaxDiscount
		}
		return discount
	}

	return promo.DiscountValue
}

// clamp floors a value at zero. A negative here means the fee config or
// promo terms are broken upstream; it is logged, not surfaced.
func (c Calculator) clamp(field string, v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		c.logger().Warn("negative pricing value clamped to zero",
			slog.String("field", field),
			slog.String("value", v.String()),
		)
		return decimal.Zero
	}
	return v
}
