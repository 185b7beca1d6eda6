package domain

import (
	"github.com/shopspring/decimal"

	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
)

// Dish is one orderable entry in a restaurant's menu snapshot.
type Dish struct {
	ID          string              `json:"_id"`
	DishName    string              `json:"dishName"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	DishType    cartdomain.DishType `json:"dishType"`
	Available   bool                `json:"available"`
	DishImage   string              `json:"dishImage,omitempty"`
}

// Category groups dishes; within-category order mirrors the backend.
type Category struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Items        []Dish `json:"items"`
}

// Menu is a read-only snapshot of one restaurant's catalog. It is
// replaced wholesale on each fetch and never mutated in place.
type Menu []Category

// Clone deep-copies the menu so callers can mutate the result without
// touching the snapshot it came from.
func (m Menu) Clone() Menu {
	if m == nil {
		return nil
	}
	out := make(Menu, len(m))
	for i, cat := range m {
		cat.Items = append([]Dish(nil), cat.Items...)
		out[i] = cat
	}
	return out
}
