package domain

import (
	"github.com/shopspring/decimal"
)

type DishType string

const (
	DishTypeVeg    DishType = "veg"
	DishTypeNonVeg DishType = "nonVeg"
	DishTypeAll    DishType = "all"
)

// Extra is an add-on ingredient selected for a line item. Order is kept
// for display only; identity of the line item is carried by ItemID.
type Extra struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

// LineItem is one distinct orderable entry in a cart. ItemID identifies
// the dish plus its chosen variant and extras; two requests with the same
// ItemID merge into a single line.
type LineItem struct {
	ItemID      string          `json:"itemId"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int32           `json:"quantity"`
	VariantName string          `json:"variantName,omitempty"`
	Extras      []Extra         `json:"extraIngredients,omitempty"`
	DishType    DishType        `json:"dishType,omitempty"`
}

// LineTotal is UnitPrice × Quantity. Extras are already folded into
// UnitPrice when the item enters the cart.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

type PromoCode struct {
	Code          string           `json:"code"`
	DiscountType  DiscountType     `json:"discountType"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
}

// AuxState is a free-form bag of fee figures keyed by the backend's field
// names. Values here are inputs the server computed for us, kept separate
// from locally calculated totals.
type AuxState map[string]decimal.Decimal

const (
	AuxKeyGST      = "gstAmount"
	AuxKeyDelivery = "deliveryAmount"
	AuxKeyDiscount = "discountAmount"
)

// Merge shallow-merges other into a copy of a and returns it.
func (a AuxState) Merge(other AuxState) AuxState {
	merged := make(AuxState, len(a)+len(other))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// CartState is the aggregate owned by the cart engine. Items keeps
// insertion order and holds at most one entry per ItemID. A cart is bound
// to a single restaurant at a time.
type CartState struct {
	RestaurantID string     `json:"restaurantId,omitempty"`
	Items        []LineItem `json:"items"`
	Aux          AuxState   `json:"auxState,omitempty"`
	Promo        *PromoCode `json:"promoCode,omitempty"`
}

func (c CartState) Empty() bool {
	return len(c.Items) == 0
}

// IndexOf returns the position of the line item with the given id, or -1.
func (c CartState) IndexOf(itemID string) int {
	for i, it := range c.Items {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}

// Clone deep-copies the cart so a snapshot can leave the engine's lock.
func (c CartState) Clone() CartState {
	out := CartState{RestaurantID: c.RestaurantID}

	if c.Items != nil {
		out.Items = make([]LineItem, len(c.Items))
		copy(out.Items, c.Items)
		for i, it := range c.Items {
			if it.Extras != nil {
				out.Items[i].Extras = make([]Extra, len(it.Extras))
				copy(out.Items[i].Extras, it.Extras)
			}
		}
	}

	if c.Aux != nil {
		out.Aux = make(AuxState, len(c.Aux))
		for k, v := range c.Aux {
			out.Aux[k] = v
		}
	}

	if c.Promo != nil {
		promo := *c.Promo
		if c.Promo.MaxDiscount != nil {
			max := *c.Promo.MaxDiscount
			promo.MaxDiscount = &max
		}
		out.Promo = &promo
	}

	return out
}
