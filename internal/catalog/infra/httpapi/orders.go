package httpapi

import (
	"context"
	"net/url"

	checkoutapp "github.com/quickdine/orderkit/internal/checkout/app"
	checkoutdomain "github.com/quickdine/orderkit/internal/checkout/domain"
	orderapp "github.com/quickdine/orderkit/internal/order/app"
	orderdomain "github.com/quickdine/orderkit/internal/order/domain"
)

var (
	_ checkoutapp.PaymentGateway = (*Client)(nil)
	_ orderapp.OrdersAPI         = (*Client)(nil)
)

func (c *Client) ValidateOrder(ctx context.Context, req checkoutdomain.OrderRequest) error {
	return c.post(ctx, pathValidateOrder, req, nil)
}

func (c *Client) PlaceOrder(ctx context.Context, req checkoutdomain.OrderRequest) (checkoutdomain.Confirmation, error) {
	var out checkoutdomain.Confirmation
	if err := c.post(ctx, pathPlaceOrder, req, &out); err != nil {
		return checkoutdomain.Confirmation{}, err
	}
	return out, nil
}

func (c *Client) CustomerOrders(ctx context.Context) ([]orderdomain.Order, error) {
	var out []orderdomain.Order
	if err := c.get(ctx, pathCustomerOrders, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ActiveOrders(ctx context.Context) ([]orderdomain.Order, error) {
	var out []orderdomain.Order
	if err := c.get(ctx, pathActiveOrders, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OrderByID(ctx context.Context, orderID string) (orderdomain.Order, error) {
	var out orderdomain.Order
	q := url.Values{"orderId": {orderID}}
	if err := c.get(ctx, pathOrderByID, q, &out); err != nil {
		return orderdomain.Order{}, err
	}
	return out, nil
}

func (c *Client) ChangeOrderStatus(ctx context.Context, orderID, status string) error {
	body := map[string]string{"orderId": orderID, "status": status}
	return c.post(ctx, pathChangeOrderStatus, body, nil)
}
