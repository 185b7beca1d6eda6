package main

import (
	"errors"
	"net/http"

	cartapp "github.com/quickdine/orderkit/internal/cart/app"
	catalogapp "github.com/quickdine/orderkit/internal/catalog/app"
	"github.com/quickdine/orderkit/internal/catalog/infra/httpapi"
	checkoutapp "github.com/quickdine/orderkit/internal/checkout/app"
	orderapp "github.com/quickdine/orderkit/internal/order/app"
)

// httpStatusFromErr maps core errors to an HTTP status, a stable machine
// code and a user-presentable message.
func httpStatusFromErr(err error) (int, string, string) {
	switch {
	case errors.Is(err, cartapp.ErrRestaurantConflict):
		return http.StatusConflict, "RESTAURANT_CONFLICT", err.Error()
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART", err.Error()
	case errors.Is(err, checkoutapp.ErrPromoRejected):
		return http.StatusUnprocessableEntity, "PROMO_REJECTED", err.Error()
	case errors.Is(err, catalogapp.ErrInvalidInput), errors.Is(err, orderapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	}

	var backendErr *httpapi.Error
	if errors.As(err, &backendErr) {
		if backendErr.StatusCode >= http.StatusInternalServerError {
			return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", backendErr.Message
		}
		return backendErr.StatusCode, "UPSTREAM_REJECTED", backendErr.Message
	}

	return http.StatusInternalServerError, "INTERNAL", "internal error"
}
