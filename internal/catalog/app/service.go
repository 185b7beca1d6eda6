package app

import (
	"context"
	"errors"
	"strings"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/catalog/domain"
	menudomain "github.com/quickdine/orderkit/internal/menu/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service fronts the remote catalog, validating identifiers before the
// network is touched. Network errors pass through normalized by the
// underlying client; cart state is never affected by a failed call.
type Service struct {
	api CatalogAPI
}

func NewService(api CatalogAPI) *Service {
	return &Service{api: api}
}

func (s *Service) GetRestaurant(ctx context.Context, restaurantURL string) (domain.Restaurant, error) {
	if strings.TrimSpace(restaurantURL) == "" {
		return domain.Restaurant{}, ErrInvalidInput
	}
	return s.api.GetRestaurant(ctx, restaurantURL)
}

func (s *Service) GetRestaurantByID(ctx context.Context, restaurantID string) (domain.Restaurant, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return domain.Restaurant{}, ErrInvalidInput
	}
	return s.api.GetRestaurantByID(ctx, restaurantID)
}

func (s *Service) GetMenu(ctx context.Context, restaurantID string) (menudomain.Menu, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return nil, ErrInvalidInput
	}
	return s.api.GetMenu(ctx, restaurantID)
}

func (s *Service) GetPromoCodes(ctx context.Context, restaurantURL string) ([]cartdomain.PromoCode, error) {
	if strings.TrimSpace(restaurantURL) == "" {
		return nil, ErrInvalidInput
	}
	return s.api.GetPromoCodes(ctx, restaurantURL)
}

func (s *Service) CheckPromoCode(ctx context.Context, req PromoCheckRequest) (PromoCheckResult, error) {
	if strings.TrimSpace(req.PromoCode) == "" || strings.TrimSpace(req.RestaurantID) == "" {
		return PromoCheckResult{}, ErrInvalidInput
	}
	return s.api.CheckPromoCode(ctx, req)
}
