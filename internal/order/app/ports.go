package app

import (
	"context"

	"github.com/quickdine/orderkit/internal/order/domain"
)

// OrdersAPI is the backend's order-tracking surface.
type OrdersAPI interface {
	CustomerOrders(ctx context.Context) ([]domain.Order, error)
	ActiveOrders(ctx context.Context) ([]domain.Order, error)
	OrderByID(ctx context.Context, orderID string) (domain.Order, error)
	ChangeOrderStatus(ctx context.Context, orderID, status string) error
}
