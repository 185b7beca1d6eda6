package app

import (
	"context"
	"errors"
	"strings"

	"github.com/quickdine/orderkit/internal/order/domain"
)

var ErrInvalidInput = errors.New("invalid input")

// Service is a thin, validating front over the backend's order surface.
// The backend owns order processing; this only reads and requests
// user-initiated status changes.
type Service struct {
	api OrdersAPI
}

func NewService(api OrdersAPI) *Service {
	return &Service{api: api}
}

func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	return s.api.CustomerOrders(ctx)
}

func (s *Service) ActiveOrders(ctx context.Context) ([]domain.Order, error) {
	return s.api.ActiveOrders(ctx)
}

func (s *Service) Track(ctx context.Context, orderID string) (domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.api.OrderByID(ctx, orderID)
}

func (s *Service) Cancel(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return ErrInvalidInput
	}
	return s.api.ChangeOrderStatus(ctx, orderID, domain.StatusCancelled)
}
