package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/pricing"
)

// Storage keys, kept identical to the mobile app's AsyncStorage keys so a
// migrated store restores cleanly.
const (
	StoreKeyItems = "cartItem"
	StoreKeyState = "cartState"
)

const persistTimeout = 5 * time.Second

// ErrRestaurantConflict is returned under ScopePolicyReject when an item
// from another restaurant is added to a non-empty cart.
var ErrRestaurantConflict = errors.New("cart is bound to a different restaurant")

// ScopePolicy decides how a cross-restaurant AddItem is handled.
type ScopePolicy string

const (
	// ScopePolicyReject surfaces ErrRestaurantConflict to the caller.
	ScopePolicyReject ScopePolicy = "reject"
	// ScopePolicyReplace clears the cart and starts one for the new restaurant.
	ScopePolicyReplace ScopePolicy = "replace"
)

func ParseScopePolicy(s string) ScopePolicy {
	if s == string(ScopePolicyReplace) {
		return ScopePolicyReplace
	}
	return ScopePolicyReject
}

// persistedState is the auxiliary half of the cart written to the store;
// line items are stored under their own key.
type persistedState struct {
	RestaurantID string            `json:"restaurantId,omitempty"`
	Aux          domain.AuxState   `json:"auxState,omitempty"`
	Promo        *domain.PromoCode `json:"promoCode,omitempty"`
}

type persistRequest struct {
	ctx   context.Context
	state domain.CartState
}

// Service is the cart engine: the sole mutator of the cart state.
// Mutations are serialized by a mutex; in-memory state is authoritative
// for the session and every mutation dispatches a best-effort write of
// the full current state to the store.
type Service struct {
	mu    sync.Mutex
	state domain.CartState
	fees  pricing.FeeConfig

	store  Store
	policy ScopePolicy
	calc   pricing.Calculator
	log    *slog.Logger

	persistCh chan persistRequest
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewService(store Store, policy ScopePolicy, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		store:     store,
		policy:    policy,
		calc:      pricing.NewCalculator(log),
		log:       log,
		persistCh: make(chan persistRequest, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.writer()
	return s
}

// Restore loads persisted cart data once at startup. Missing keys leave
// the cart empty; unreadable data is logged and discarded, never fatal.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, err := s.store.Get(ctx, StoreKeyItems); err == nil {
		var items []domain.LineItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.log.Warn("discarding unreadable cart items", slog.Any("err", err))
		} else {
			s.state.Items = items
		}
	} else if !errors.Is(err, ErrKeyNotFound) {
		return err
	}

	if raw, err := s.store.Get(ctx, StoreKeyState); err == nil {
		var ps persistedState
		if err := json.Unmarshal([]byte(raw), &ps); err != nil {
			s.log.Warn("discarding unreadable cart state", slog.Any("err", err))
		} else {
			s.state.RestaurantID = ps.RestaurantID
			s.state.Aux = ps.Aux
			s.state.Promo = ps.Promo
		}
	} else if !errors.Is(err, ErrKeyNotFound) {
		return err
	}

	return nil
}

// AddItem merges the request into the cart. An existing line with the
// same ItemID has its quantity incremented; otherwise the item is
// appended. Quantity is coerced to at least 1 and extras' price deltas
// are folded into the unit price here, once.
func (s *Service) AddItem(ctx context.Context, restaurantID string, item domain.LineItem) (domain.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.RestaurantID != "" && restaurantID != "" && s.state.RestaurantID != restaurantID && !s.state.Empty() {
		switch s.policy {
		case ScopePolicyReplace:
			s.log.Info("restaurant switch, clearing cart",
				slog.String("from", s.state.RestaurantID),
				slog.String("to", restaurantID),
			)
			s.state = domain.CartState{}
		default:
			return domain.CartState{}, ErrRestaurantConflict
		}
	}
	if restaurantID != "" {
		s.state.RestaurantID = restaurantID
	}

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for _, ex := range item.Extras {
		item.UnitPrice = item.UnitPrice.Add(ex.PriceDelta)
	}
	if item.UnitPrice.IsNegative() {
		s.log.Warn("negative unit price clamped to zero", slog.String("itemId", item.ItemID))
		item.UnitPrice = decimal.Zero
	}

	if i := s.state.IndexOf(item.ItemID); i >= 0 {
		s.state.Items[i].Quantity += item.Quantity
	} else {
		s.state.Items = append(s.state.Items, item)
	}

	s.persistLocked(ctx)
	return s.state.Clone(), nil
}

// RemoveItem deletes the line with the given id. Absence is a no-op, not
// an error; the second return reports whether anything was removed.
func (s *Service) RemoveItem(ctx context.Context, itemID string) (domain.CartState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.IndexOf(itemID)
	if i < 0 {
		return s.state.Clone(), false
	}

	s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
	s.persistLocked(ctx)
	return s.state.Clone(), true
}

// UpdateQuantity sets the quantity directly. A result of zero or less
// removes the item entirely. Unknown ids are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int32) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.IndexOf(itemID)
	if i < 0 {
		return s.state.Clone()
	}

	if quantity <= 0 {
		s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
	} else {
		s.state.Items[i].Quantity = quantity
	}

	s.persistLocked(ctx)
	return s.state.Clone()
}

// Clear empties the cart: items, aux state, promo and restaurant binding.
// Called on checkout success or restaurant switch.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.CartState{}
	s.persistLocked(ctx)
}

// SetAuxState shallow-merges server-derived fee figures into the aux bag.
func (s *Service) SetAuxState(ctx context.Context, partial domain.AuxState) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Aux = s.state.Aux.Merge(partial)
	s.persistLocked(ctx)
	return s.state.Clone()
}

// ApplyPromoCode records a promo on the cart. Validation against the
// backend is the caller's job; the engine only stores the terms.
func (s *Service) ApplyPromoCode(ctx context.Context, promo domain.PromoCode) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Promo = &promo
	s.persistLocked(ctx)
	return s.state.Clone()
}

func (s *Service) ClearPromoCode(ctx context.Context) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Promo = nil
	s.persistLocked(ctx)
	return s.state.Clone()
}

// SetFeeConfig installs the restaurant's tax and delivery knobs used by
// Totals. Set when a restaurant is loaded or switched.
func (s *Service) SetFeeConfig(cfg pricing.FeeConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fees = cfg
}

func (s *Service) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Service) Items() []domain.LineItem {
	return s.State().Items
}

// Totals recomputes the breakdown from the current items, fee config and
// applied promo.
func (s *Service) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calc.Calculate(s.state.Items, s.fees, s.state.Promo)
}

// FeeConfig returns the currently installed restaurant knobs.
func (s *Service) FeeConfig() pricing.FeeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fees
}

// Close flushes any pending write and stops the background writer.
func (s *Service) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

// persistLocked snapshots the current state under the held lock and
// hands it to the single background writer. A snapshot still queued is
// replaced rather than written first: the store only ever moves forward
// to the newest full state, so reordering cannot lose updates. A failed
// write is logged and the in-memory state stays authoritative.
func (s *Service) persistLocked(ctx context.Context) {
	snap := s.state.Clone()
	if snap.Items == nil {
		snap.Items = []domain.LineItem{}
	}

	req := persistRequest{ctx: context.WithoutCancel(ctx), state: snap}
	for {
		select {
		case s.persistCh <- req:
			return
		default:
			// Coalesce: drop the stale queued snapshot.
			select {
			case <-s.persistCh:
			default:
			}
		}
	}
}

func (s *Service) writer() {
	defer close(s.done)
	for {
		select {
		case req := <-s.persistCh:
			s.write(req)
		case <-s.quit:
			select {
			case req := <-s.persistCh:
				s.write(req)
			default:
			}
			return
		}
	}
}

func (s *Service) write(req persistRequest) {
	wctx, cancel := context.WithTimeout(req.ctx, persistTimeout)
	defer cancel()

	items, err := json.Marshal(req.state.Items)
	if err != nil {
		s.log.Error("marshal cart items", slog.Any("err", err))
		return
	}
	if err := s.store.Set(wctx, StoreKeyItems, string(items)); err != nil {
		s.log.Warn("persist cart items failed", slog.Any("err", err))
	}

	state, err := json.Marshal(persistedState{
		RestaurantID: req.state.RestaurantID,
		Aux:          req.state.Aux,
		Promo:        req.state.Promo,
	})
	if err != nil {
		s.log.Error("marshal cart state", slog.Any("err", err))
		return
	}
	if err := s.store.Set(wctx, StoreKeyState, string(state)); err != nil {
		s.log.Warn("persist cart state failed", slog.Any("err", err))
	}
}
