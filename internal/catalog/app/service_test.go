package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/catalog/domain"
	menudomain "github.com/quickdine/orderkit/internal/menu/domain"
)

type fakeAPI struct{}

func (fakeAPI) GetRestaurant(context.Context, string) (domain.Restaurant, error) {
	return domain.Restaurant{}, nil
}
func (fakeAPI) GetRestaurantByID(context.Context, string) (domain.Restaurant, error) {
	return domain.Restaurant{}, nil
}
func (fakeAPI) GetMenu(context.Context, string) (menudomain.Menu, error) { return nil, nil }
func (fakeAPI) GetPromoCodes(context.Context, string) ([]cartdomain.PromoCode, error) {
	return nil, nil
}
func (fakeAPI) CheckPromoCode(context.Context, PromoCheckRequest) (PromoCheckResult, error) {
	return PromoCheckResult{}, nil
}

func TestInputValidation(t *testing.T) {
	svc := NewService(fakeAPI{})
	ctx := context.Background()

	t.Run("blank restaurant url -> invalid", func(t *testing.T) {
		_, err := svc.GetRestaurant(ctx, "  ")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank restaurant id -> invalid", func(t *testing.T) {
		_, err := svc.GetMenu(ctx, "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank promo fields -> invalid", func(t *testing.T) {
		_, err := svc.CheckPromoCode(ctx, PromoCheckRequest{PromoCode: "X", RestaurantID: " "})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("valid input passes through", func(t *testing.T) {
		_, err := svc.GetRestaurant(ctx, "tasty-corner")
		require.NoError(t, err)
	})
}
