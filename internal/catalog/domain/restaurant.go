package domain

import (
	"github.com/shopspring/decimal"

	"github.com/quickdine/orderkit/internal/pricing"
)

// Restaurant is the backend's restaurant record reduced to what the
// client core needs: identity plus the fee knobs driving pricing.
type Restaurant struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	RestaurantURL string `json:"restaurantUrl"`

	IsGstApplicable         bool            `json:"isGstApplicable"`
	IsPricingInclusiveOfGST bool            `json:"isPricingInclusiveOfGST"`
	CustomGSTPercentage     decimal.Decimal `json:"customGSTPercentage"`

	ProvideDelivery              bool             `json:"provideDelivery"`
	MinOrderValueForFreeDelivery *decimal.Decimal `json:"minOrderValueForFreeDelivery,omitempty"`
	DeliveryFeeBelowMinValue     decimal.Decimal  `json:"deliveryFeeBelowMinValue"`
}

// FeeConfig converts the record into the pricing calculator's input.
func (r Restaurant) FeeConfig() pricing.FeeConfig {
	return pricing.FeeConfig{
		GSTApplicable:        r.IsGstApplicable,
		PriceInclusiveOfGST:  r.IsPricingInclusiveOfGST,
		GSTPercentage:        r.CustomGSTPercentage,
		ProvideDelivery:      r.ProvideDelivery,
		MinOrderFreeDelivery: r.MinOrderValueForFreeDelivery,
		DeliveryFeeBelowMin:  r.DeliveryFeeBelowMinValue,
	}
}
