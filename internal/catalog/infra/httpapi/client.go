// Package httpapi is the JSON client for the restaurant backend. It
// normalizes failures into *Error values carrying the human-readable
// message the backend returned; callers decide retry policy.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// v1 endpoint paths, matching the backend contract.
const (
	pathGetRestaurant     = "/v1/restaurant/getRestaurant"
	pathGetRestaurantByID = "/v1/restaurant/getRestaurantById"
	pathGetMenu           = "/v1/restaurant/getRestaurantMenu"
	pathGetPromoCodes     = "/v1/customer/getPromoCodesForRestaurantUrl"
	pathCheckPromoCode    = "/v1/customer/checkIfPromoCodeIsValid"
	pathValidateOrder     = "/v1/orders/validationBeforeOrder"
	pathPlaceOrder        = "/v1/payment/getCheckSum"
	pathCustomerOrders    = "/v1/orders/customerOrder"
	pathActiveOrders      = "/v1/orders/getCustomerActiveOrder"
	pathOrderByID         = "/v1/orders/getOrderwithOrderId"
	pathChangeOrderStatus = "/v1/orders/changeOrderStatusByUser"
)

const defaultTimeout = 15 * time.Second

// Error is a normalized backend failure.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	base string
	hc   *http.Client

	// Token supplies the bearer credential, if any. The credential store
	// itself is outside this package.
	Token func() string
}

func NewClient(baseURL string) *Client {
	return &Client{
		base: baseURL,
		hc:   &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithHTTP injects a custom http.Client, used in tests.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{base: baseURL, hc: hc}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.Token != nil {
		if tok := c.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(body, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response %s: %w", req.URL.Path, err)
	}
	return nil
}

// errorMessage digs the backend's message field out of an error body,
// falling back to the HTTP status text.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(status)
}
