package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	cartapp "github.com/quickdine/orderkit/internal/cart/app"
	cartdomain "github.com/quickdine/orderkit/internal/cart/domain"
	catalogapp "github.com/quickdine/orderkit/internal/catalog/app"
	checkoutapp "github.com/quickdine/orderkit/internal/checkout/app"
	menuapp "github.com/quickdine/orderkit/internal/menu/app"
	menudomain "github.com/quickdine/orderkit/internal/menu/domain"
	orderapp "github.com/quickdine/orderkit/internal/order/app"
	"github.com/quickdine/orderkit/internal/pricing"
	"github.com/quickdine/orderkit/pkg/money"
)

type handlers struct {
	cart     *cartapp.Service
	menu     *menuapp.Service
	catalog  *catalogapp.Service
	checkout *checkoutapp.Service
	orders   *orderapp.Service
	currency string
	log      *slog.Logger
}

func (h *handlers) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /cart", h.getCart)
	mux.HandleFunc("POST /cart/items", h.addItem)
	mux.HandleFunc("PATCH /cart/items/{id}", h.updateQuantity)
	mux.HandleFunc("DELETE /cart/items/{id}", h.removeItem)
	mux.HandleFunc("POST /cart/clear", h.clearCart)
	mux.HandleFunc("POST /cart/aux", h.setAuxState)
	mux.HandleFunc("POST /cart/promo", h.applyPromo)
	mux.HandleFunc("DELETE /cart/promo", h.clearPromo)

	mux.HandleFunc("POST /restaurant/load", h.loadRestaurant)
	mux.HandleFunc("GET /menu", h.getMenu)

	mux.HandleFunc("GET /checkout/quote", h.quote)
	mux.HandleFunc("POST /checkout", h.placeOrder)

	mux.HandleFunc("GET /orders", h.orderHistory)
	mux.HandleFunc("GET /orders/active", h.activeOrders)
	mux.HandleFunc("GET /orders/{id}", h.trackOrder)
	mux.HandleFunc("POST /orders/{id}/cancel", h.cancelOrder)

	return mux
}

type cartResponse struct {
	Cart      cartdomain.CartState `json:"cart"`
	Totals    pricing.Totals       `json:"totals"`
	Formatted string               `json:"formattedTotal"`
}

func (h *handlers) cartResponse() cartResponse {
	totals := h.cart.Totals()
	return cartResponse{
		Cart:      h.cart.State(),
		Totals:    totals,
		Formatted: money.Format(totals.AmountToBePaid, h.currency),
	}
}

func (h *handlers) getCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

type addItemRequest struct {
	RestaurantID string              `json:"restaurantId"`
	Item         cartdomain.LineItem `json:"item"`
}

func (h *handlers) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	if _, err := h.cart.AddItem(r.Context(), req.RestaurantID, req.Item); err != nil {
		h.writeAppError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *handlers) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int32 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	h.cart.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *handlers) removeItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), r.PathValue("id"))
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *handlers) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *handlers) setAuxState(w http.ResponseWriter, r *http.Request) {
	var aux cartdomain.AuxState
	if err := json.NewDecoder(r.Body).Decode(&aux); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	h.cart.SetAuxState(r.Context(), aux)
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *handlers) applyPromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PromoCode string `json:"promoCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	state := h.cart.State()
	res, err := h.catalog.CheckPromoCode(r.Context(), catalogapp.PromoCheckRequest{
		PromoCode:    req.PromoCode,
		RestaurantID: state.RestaurantID,
		OrderAmount:  h.cart.Totals().ItemTotal,
	})
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	if !res.Valid || res.Promo == nil {
		h.writeError(w, http.StatusUnprocessableEntity, "PROMO_REJECTED", res.Message)
		return
	}

	h.cart.ApplyPromoCode(r.Context(), *res.Promo)
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *handlers) clearPromo(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearPromoCode(r.Context())
	h.writeJSON(w, http.StatusOK, h.cartResponse())
}

// loadRestaurant fetches the restaurant record, installs its fee config
// on the cart engine and kicks off a menu load.
func (h *handlers) loadRestaurant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RestaurantURL string `json:"restaurantUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	restaurant, err := h.catalog.GetRestaurant(r.Context(), req.RestaurantURL)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.cart.SetFeeConfig(restaurant.FeeConfig())
	if err := h.menu.Load(r.Context(), restaurant.ID); err != nil {
		h.writeAppError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, restaurant)
}

// getMenu answers search/filter queries over the loaded snapshot. Search
// and type filter each derive from the full menu; combining them here is
// explicit chaining by the caller.
func (h *handlers) getMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	menu := h.menu.Menu()
	if search := q.Get("q"); search != "" {
		menu = h.menu.SearchDishes(search)
	}
	if t := q.Get("type"); t != "" && t != string(cartdomain.DishTypeAll) {
		byType := h.menu.FilterDishesByType(cartdomain.DishType(t))
		menu = intersect(menu, byType)
	}
	if cat := q.Get("category"); cat != "" {
		menu = intersect(menu, h.menu.FilterByCategory(cat))
	}

	h.writeJSON(w, http.StatusOK, menu)
}

// quote refreshes upstream fee config and promo validity before pricing,
// so the client sees what the backend will charge.
func (h *handlers) quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.checkout.Quote(r.Context())
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}

func (h *handlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderType     string `json:"orderType"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return
	}

	conf, err := h.checkout.PlaceOrder(r.Context(), checkoutapp.PlaceOrderRequest{
		OrderType:     req.OrderType,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, conf)
}

func (h *handlers) orderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.History(r.Context())
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *handlers) activeOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ActiveOrders(r.Context())
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *handlers) trackOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Track(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *handlers) cancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Cancel(r.Context(), r.PathValue("id")); err != nil {
		h.writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// intersect keeps dishes of a that also appear in b, preserving a's order.
func intersect(a, b menudomain.Menu) menudomain.Menu {
	ids := make(map[string]struct{})
	for _, cat := range b {
		for _, d := range cat.Items {
			ids[d.ID] = struct{}{}
		}
	}

	out := menudomain.Menu{}
	for _, cat := range a {
		var dishes []menudomain.Dish
		for _, d := range cat.Items {
			if _, ok := ids[d.ID]; ok {
				dishes = append(dishes, d)
			}
		}
		if len(dishes) > 0 {
			cat.Items = dishes
			out = append(out, cat)
		}
	}
	return out
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", slog.Any("err", err))
	}
}

func (h *handlers) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func (h *handlers) writeAppError(w http.ResponseWriter, err error) {
	status, code, message := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", slog.Any("err", err))
	}
	h.writeError(w, status, code, message)
}
