package domain

import (
	"encoding/json"
	"time"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/pricing"
)

// Quote is a priced snapshot of the cart against fresh restaurant fee
// config and a validated promo, ready to hand to the payment collaborator.
type Quote struct {
	RestaurantID string                `json:"restaurantId"`
	Items        []cartdomain.LineItem `json:"items"`
	Promo        *cartdomain.PromoCode `json:"promoCode,omitempty"`
	Totals       pricing.Totals        `json:"totals"`
}

// OrderRequest is the payload sent to the checkout collaborator.
type OrderRequest struct {
	ClientReference string                `json:"clientReference"`
	RestaurantID    string                `json:"restaurantId"`
	OrderType       string                `json:"orderType"`
	PaymentMethod   string                `json:"paymentMethod"`
	Items           []cartdomain.LineItem `json:"items"`
	Totals          pricing.Totals        `json:"totals"`
	PromoCode       string                `json:"promoCode,omitempty"`
}

// Confirmation is the collaborator's opaque acknowledgement. Raw keeps
// whatever payment payload the backend attached (gateway checksums etc).
type Confirmation struct {
	OrderID   string          `json:"orderId"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}
