package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/menu/domain"
)

// Service holds the loaded menu snapshot and answers search and filter
// queries over it. Queries never mutate the snapshot; each derives a
// fresh result from the full menu so they compose freely.
type Service struct {
	mu      sync.RWMutex
	menu    domain.Menu
	gen     uint64
	loading bool
	lastErr error

	fetcher MenuFetcher
	log     *slog.Logger
}

func NewService(fetcher MenuFetcher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{fetcher: fetcher, log: log}
}

// Load fetches the menu for a restaurant and installs it wholesale.
// A Load superseded by a newer one discards its response: only the
// latest request generation may install a snapshot.
func (s *Service) Load(ctx context.Context, restaurantID string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	menu, err := s.fetcher.GetMenu(ctx, restaurantID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug("discarding superseded menu fetch",
			slog.String("restaurantId", restaurantID),
			slog.Uint64("gen", gen),
		)
		return nil
	}

	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}

	s.menu = menu
	return nil
}

// Replace installs a snapshot directly, bypassing the fetcher.
func (s *Service) Replace(menu domain.Menu) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.menu = menu
	s.loading = false
	s.lastErr = nil
}

// Menu returns a copy of the current snapshot.
func (s *Service) Menu() domain.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu.Clone()
}

// Status reports the loading/error pair of the last fetch attempt.
func (s *Service) Status() (loading bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading, s.lastErr
}

// SearchDishes matches the query case-insensitively against dish name
// and description. Categories keep their order and contain only matching
// dishes. An empty query returns no results, not the full menu.
func (s *Service) SearchDishes(query string) domain.Menu {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return domain.Menu{}
	}

	return s.prune(func(d domain.Dish) bool {
		return strings.Contains(strings.ToLower(d.DishName), query) ||
			strings.Contains(strings.ToLower(d.Description), query)
	})
}

// FilterDishesByType keeps only dishes of the given type. DishTypeAll
// returns a copy of the full snapshot.
func (s *Service) FilterDishesByType(t cartdomain.DishType) domain.Menu {
	if t == cartdomain.DishTypeAll || t == "" {
		return s.Menu()
	}

	return s.prune(func(d domain.Dish) bool {
		return d.DishType == t
	})
}

// FilterByCategory returns only the named category, or an empty menu.
func (s *Service) FilterByCategory(categoryID string) domain.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cat := range s.menu {
		if cat.CategoryID == categoryID {
			return domain.Menu{cat}.Clone()
		}
	}
	return domain.Menu{}
}

// prune builds a fresh menu of categories whose dishes pass keep,
// dropping categories left empty.
func (s *Service) prune(keep func(domain.Dish) bool) domain.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := domain.Menu{}
	for _, cat := range s.menu {
		var dishes []domain.Dish
		for _, d := range cat.Items {
			if keep(d) {
				dishes = append(dishes, d)
			}
		}
		if len(dishes) > 0 {
			out = append(out, domain.Category{
				CategoryID:   cat.CategoryID,
				CategoryName: cat.CategoryName,
				Items:        dishes,
			})
		}
	}
	return out
}
