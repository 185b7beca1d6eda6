package app

import (
	"context"

	"github.com/quickdine/orderkit/internal/menu/domain"
)

// MenuFetcher is the remote catalog collaborator a menu is loaded from.
type MenuFetcher interface {
	GetMenu(ctx context.Context, restaurantID string) (domain.Menu, error)
}
