package app

import (
	"context"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	catalogapp "github.com/quickdine/orderkit/internal/catalog/app"
	catalogdomain "github.com/quickdine/orderkit/internal/catalog/domain"
	"github.com/quickdine/orderkit/internal/checkout/domain"
)

// Cart is the slice of the cart engine checkout needs: read the current
// state and clear it once an order is confirmed.
type Cart interface {
	State() cartdomain.CartState
	Clear(ctx context.Context)
}

// RestaurantSource supplies fresh fee config at quote time.
type RestaurantSource interface {
	GetRestaurantByID(ctx context.Context, restaurantID string) (catalogdomain.Restaurant, error)
}

// PromoChecker re-validates an applied promo against the backend.
type PromoChecker interface {
	CheckPromoCode(ctx context.Context, req catalogapp.PromoCheckRequest) (catalogapp.PromoCheckResult, error)
}

// PaymentGateway is the opaque checkout collaborator.
type PaymentGateway interface {
	ValidateOrder(ctx context.Context, req domain.OrderRequest) error
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Confirmation, error)
}
