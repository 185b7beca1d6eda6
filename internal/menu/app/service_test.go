package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	"github.com/quickdine/orderkit/internal/menu/domain"
	"github.com/quickdine/orderkit/pkg/logger"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

type fakeFetcher struct {
	menu    domain.Menu
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) GetMenu(ctx context.Context, restaurantID string) (domain.Menu, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.menu, f.err
}

func dish(id, name, desc string, t cartdomain.DishType) domain.Dish {
	return domain.Dish{
		ID:          id,
		DishName:    name,
		Description: desc,
		Price:       decimal.NewFromInt(100),
		DishType:    t,
		Available:   true,
	}
}

func sampleMenu() domain.Menu {
	return domain.Menu{
		{
			CategoryID:   "starters",
			CategoryName: "Starters",
			Items: []domain.Dish{
				dish("1", "Paneer Tikka", "smoky cottage cheese", cartdomain.DishTypeVeg),
				dish("2", "Chicken 65", "spicy fried chicken", cartdomain.DishTypeNonVeg),
			},
		},
		{
			CategoryID:   "mains",
			CategoryName: "Mains",
			Items: []domain.Dish{
				dish("3", "Dal Makhani", "slow cooked lentils", cartdomain.DishTypeVeg),
				dish("4", "Butter Chicken", "rich tomato gravy", cartdomain.DishTypeNonVeg),
			},
		},
		{
			CategoryID:   "desserts",
			CategoryName: "Desserts",
			Items: []domain.Dish{
				dish("5", "Gulab Jamun", "served warm", cartdomain.DishTypeVeg),
			},
		},
	}
}

func newLoaded(t *testing.T) *Service {
	t.Helper()
	svc := NewService(&fakeFetcher{menu: sampleMenu()}, logger.Nop())
	require.NoError(t, svc.Load(context.Background(), "r1"))
	return svc
}

func TestSearchDishesEmptyQueryReturnsNothing(t *testing.T) {
	svc := newLoaded(t)

	assert.Empty(t, svc.SearchDishes(""))
	assert.Empty(t, svc.SearchDishes("   "))
}

func TestSearchDishesMatchesNameCaseInsensitive(t *testing.T) {
	svc := newLoaded(t)

	got := svc.SearchDishes("CHICKEN")
	require.Len(t, got, 2)
	assert.Equal(t, "starters", got[0].CategoryID)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "Chicken 65", got[0].Items[0].DishName)
	assert.Equal(t, "mains", got[1].CategoryID)
	require.Len(t, got[1].Items, 1)
	assert.Equal(t, "Butter Chicken", got[1].Items[0].DishName)
}

func TestSearchDishesMatchesDescription(t *testing.T) {
	svc := newLoaded(t)

	got := svc.SearchDishes("lentils")
	require.Len(t, got, 1)
	assert.Equal(t, "Dal Makhani", got[0].Items[0].DishName)
}

func TestSearchDishesNoMatch(t *testing.T) {
	svc := newLoaded(t)
	assert.Empty(t, svc.SearchDishes("sushi"))
}

func TestFilterDishesByType(t *testing.T) {
	svc := newLoaded(t)

	veg := svc.FilterDishesByType(cartdomain.DishTypeVeg)
	require.Len(t, veg, 3)
	for _, cat := range veg {
		for _, d := range cat.Items {
			assert.Equal(t, cartdomain.DishTypeVeg, d.DishType)
		}
	}

	nonVeg := svc.FilterDishesByType(cartdomain.DishTypeNonVeg)
	require.Len(t, nonVeg, 2)
	assert.Equal(t, "Chicken 65", nonVeg[0].Items[0].DishName)
	assert.Equal(t, "Butter Chicken", nonVeg[1].Items[0].DishName)

	all := svc.FilterDishesByType(cartdomain.DishTypeAll)
	if diff := cmp.Diff(sampleMenu(), all, decimalComparer); diff != "" {
		t.Fatalf("all filter changed the menu (-want +got):\n%s", diff)
	}
}

func TestFilterByCategory(t *testing.T) {
	svc := newLoaded(t)

	got := svc.FilterByCategory("mains")
	require.Len(t, got, 1)
	assert.Equal(t, "Mains", got[0].CategoryName)

	assert.Empty(t, svc.FilterByCategory("drinks"))
}

// Search and filter both derive from the full snapshot: running one must
// not change what the other sees.
func TestQueriesAreIndependent(t *testing.T) {
	svc := newLoaded(t)

	before := svc.FilterDishesByType(cartdomain.DishTypeNonVeg)
	_ = svc.SearchDishes("paneer")
	after := svc.FilterDishesByType(cartdomain.DishTypeNonVeg)

	if diff := cmp.Diff(before, after, decimalComparer); diff != "" {
		t.Fatalf("search interfered with filter (-before +after):\n%s", diff)
	}

	// Mutating a result must not leak into the snapshot.
	result := svc.SearchDishes("chicken")
	result[0].Items[0].DishName = "mutated"
	fresh := svc.SearchDishes("chicken")
	assert.Equal(t, "Chicken 65", fresh[0].Items[0].DishName)
}

// Every read path hands out a copy, including the unfiltered ones.
func TestResultsAreSnapshotCopies(t *testing.T) {
	svc := newLoaded(t)

	full := svc.Menu()
	full[0].Items[0].DishName = "mutated"
	assert.Equal(t, sampleMenu()[0].Items[0].DishName, svc.Menu()[0].Items[0].DishName)

	all := svc.FilterDishesByType(cartdomain.DishTypeAll)
	all[0].Items[0].DishName = "mutated"
	if diff := cmp.Diff(sampleMenu(), svc.Menu(), decimalComparer); diff != "" {
		t.Fatalf("all filter result leaked into snapshot (-want +got):\n%s", diff)
	}

	cat := svc.FilterByCategory("mains")
	require.NotEmpty(t, cat)
	cat[0].Items[0].DishName = "mutated"
	if diff := cmp.Diff(sampleMenu(), svc.Menu(), decimalComparer); diff != "" {
		t.Fatalf("category result leaked into snapshot (-want +got):\n%s", diff)
	}
}

func TestLoadError(t *testing.T) {
	fetchErr := errors.New("backend down")
	svc := NewService(&fakeFetcher{err: fetchErr}, logger.Nop())

	require.ErrorIs(t, svc.Load(context.Background(), "r1"), fetchErr)

	loading, lastErr := svc.Status()
	assert.False(t, loading)
	assert.ErrorIs(t, lastErr, fetchErr)
	assert.Empty(t, svc.Menu())
}

// A fetch superseded by a newer one must not overwrite the fresher menu.
func TestSupersededLoadIsDiscarded(t *testing.T) {
	ctx := context.Background()

	stale := &fakeFetcher{
		menu:    domain.Menu{{CategoryID: "stale", CategoryName: "Stale"}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(stale, logger.Nop())

	done := make(chan error, 1)
	go func() {
		done <- svc.Load(ctx, "r1")
	}()
	<-stale.started

	// Newer snapshot installs while the first fetch is still in flight.
	svc.Replace(sampleMenu())

	close(stale.release)
	require.NoError(t, <-done)

	if diff := cmp.Diff(sampleMenu(), svc.Menu(), decimalComparer); diff != "" {
		t.Fatalf("stale fetch overwrote fresh menu (-want +got):\n%s", diff)
	}
}
