package httpapi

import (
	"context"
	"net/url"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/catalog/app"
	"github.com/quickdine/orderkit/internal/catalog/domain"
	menudomain "github.com/quickdine/orderkit/internal/menu/domain"
)

var _ app.CatalogAPI = (*Client)(nil)

func (c *Client) GetRestaurant(ctx context.Context, restaurantURL string) (domain.Restaurant, error) {
	var out domain.Restaurant
	q := url.Values{"restaurant": {restaurantURL}}
	if err := c.get(ctx, pathGetRestaurant, q, &out); err != nil {
		return domain.Restaurant{}, err
	}
	return out, nil
}

func (c *Client) GetRestaurantByID(ctx context.Context, restaurantID string) (domain.Restaurant, error) {
	var out domain.Restaurant
	q := url.Values{"restaurantId": {restaurantID}}
	if err := c.get(ctx, pathGetRestaurantByID, q, &out); err != nil {
		return domain.Restaurant{}, err
	}
	return out, nil
}

func (c *Client) GetMenu(ctx context.Context, restaurantID string) (menudomain.Menu, error) {
	var out menudomain.Menu
	q := url.Values{"restaurantId": {restaurantID}}
	if err := c.get(ctx, pathGetMenu, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPromoCodes(ctx context.Context, restaurantURL string) ([]cartdomain.PromoCode, error) {
	var out []cartdomain.PromoCode
	if err := c.get(ctx, pathGetPromoCodes+"/"+url.PathEscape(restaurantURL), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CheckPromoCode(ctx context.Context, req app.PromoCheckRequest) (app.PromoCheckResult, error) {
	var out app.PromoCheckResult
	if err := c.post(ctx, pathCheckPromoCode, req, &out); err != nil {
		return app.PromoCheckResult{}, err
	}
	return out, nil
}
