package domain

import (
	"time"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/pricing"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Order is a read-only record of a placed order as the backend reports it.
type Order struct {
	ID           string                `json:"_id"`
	RestaurantID string                `json:"restaurantId"`
	Status       string                `json:"status"`
	OrderType    string                `json:"orderType"`
	Items        []cartdomain.LineItem `json:"items"`
	Totals       pricing.Totals        `json:"totals"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}
