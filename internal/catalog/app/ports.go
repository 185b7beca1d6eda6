package app

import (
	"context"

	"github.com/shopspring/decimal"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/catalog/domain"
	menudomain "github.com/quickdine/orderkit/internal/menu/domain"
)

// PromoCheckRequest mirrors the backend's promo validation payload.
type PromoCheckRequest struct {
	PromoCode    string          `json:"promoCode"`
	RestaurantID string          `json:"restaurantId"`
	OrderAmount  decimal.Decimal `json:"orderAmount"`
}

// PromoCheckResult carries the backend's verdict and, when valid, the
// discount terms to apply.
type PromoCheckResult struct {
	Valid   bool                  `json:"valid"`
	Message string                `json:"message,omitempty"`
	Promo   *cartdomain.PromoCode `json:"promo,omitempty"`
}

// CatalogAPI is the remote catalog collaborator: restaurant records,
// categorized menus and promo validation.
type CatalogAPI interface {
	GetRestaurant(ctx context.Context, restaurantURL string) (domain.Restaurant, error)
	GetRestaurantByID(ctx context.Context, restaurantID string) (domain.Restaurant, error)
	GetMenu(ctx context.Context, restaurantID string) (menudomain.Menu, error)
	GetPromoCodes(ctx context.Context, restaurantURL string) ([]cartdomain.PromoCode, error)
	CheckPromoCode(ctx context.Context, req PromoCheckRequest) (PromoCheckResult, error)
}
