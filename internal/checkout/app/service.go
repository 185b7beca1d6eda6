package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	catalogapp "github.com/quickdine/orderkit/internal/catalog/app"
	catalogdomain "github.com/quickdine/orderkit/internal/catalog/domain"
	"github.com/quickdine/orderkit/internal/checkout/domain"
	"github.com/quickdine/orderkit/internal/pricing"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPromoRejected means the backend no longer honours the applied
	// promo. The cart itself is left untouched.
	ErrPromoRejected = errors.New("promo code rejected")
)

type Service struct {
	cart    Cart
	rests   RestaurantSource
	promos  PromoChecker
	gateway PaymentGateway

	calc pricing.Calculator
	log  *slog.Logger
}

func NewService(cart Cart, rests RestaurantSource, promos PromoChecker, gateway PaymentGateway, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:    cart,
		rests:   rests,
		promos:  promos,
		gateway: gateway,
		calc:    pricing.NewCalculator(log),
		log:     log,
	}
}

// Quote prices the current cart against freshly fetched restaurant fee
// config, revalidating any applied promo. Fetches run concurrently; a
// failure leaves cart state exactly as it was.
func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	state := s.cart.State()
	if state.Empty() {
		return domain.Quote{}, ErrEmptyCart
	}

	itemTotal := decimal.Zero
	for _, it := range state.Items {
		itemTotal = itemTotal.Add(it.LineTotal())
	}

	var (
		restaurant catalogdomain.Restaurant
		promo      = state.Promo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)

	g.Go(func() error {
		r, err := s.rests.GetRestaurantByID(gctx, state.RestaurantID)
		if err != nil {
			return fmt.Errorf("fetch restaurant %s: %w", state.RestaurantID, err)
		}
		restaurant = r
		return nil
	})

	if state.Promo != nil {
		g.Go(func() error {
			res, err := s.promos.CheckPromoCode(gctx, catalogapp.PromoCheckRequest{
				PromoCode:    state.Promo.Code,
				RestaurantID: state.RestaurantID,
				OrderAmount:  itemTotal,
			})
			if err != nil {
				return fmt.Errorf("check promo %s: %w", state.Promo.Code, err)
			}
			if !res.Valid {
				return fmt.Errorf("%w: %s", ErrPromoRejected, res.Message)
			}
			if res.Promo != nil {
				promo = res.Promo
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		RestaurantID: state.RestaurantID,
		Items:        state.Items,
		Promo:        promo,
		Totals:       s.calc.Calculate(state.Items, restaurant.FeeConfig(), promo),
	}, nil
}

type PlaceOrderRequest struct {
	OrderType     string
	PaymentMethod string
}

// PlaceOrder quotes the cart, runs the backend's pre-order validation,
// places the order and clears the cart on confirmation. Any failure
// before confirmation leaves the cart intact for retry.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (domain.Confirmation, error) {
	quote, err := s.Quote(ctx)
	if err != nil {
		return domain.Confirmation{}, err
	}

	order := domain.OrderRequest{
		ClientReference: uuid.NewString(),
		RestaurantID:    quote.RestaurantID,
		OrderType:       req.OrderType,
		PaymentMethod:   req.PaymentMethod,
		Items:           quote.Items,
		Totals:          quote.Totals,
	}
	if quote.Promo != nil {
		order.PromoCode = quote.Promo.Code
	}

	if err := s.gateway.ValidateOrder(ctx, order); err != nil {
		return domain.Confirmation{}, fmt.Errorf("order validation: %w", err)
	}

	conf, err := s.gateway.PlaceOrder(ctx, order)
	if err != nil {
		return domain.Confirmation{}, fmt.Errorf("place order: %w", err)
	}

	s.cart.Clear(ctx)
	s.log.Info("order placed",
		slog.String("orderId", conf.OrderID),
		slog.String("clientRef", order.ClientReference),
	)
	return conf, nil
}
