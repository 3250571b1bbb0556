package smm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Canyildiz1386/SultanPanelBot/internal/pkg/httpclient"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// Service is one purchasable catalog entry. Panels are loose with types
// (ids and numbers arrive as strings or numbers depending on the panel),
// so every numeric field decodes through a tolerant wrapper.
type Service struct {
	ID       flexString `json:"service"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Rate     flexNumber `json:"rate"` // Toman per 1000 units
	Min      flexInt    `json:"min"`
	Max      flexInt    `json:"max"`
}

// OrderStatus is the panel's view of a placed order. Absent fields stay
// at their zero values; Status defaults to "Unknown".
type OrderStatus struct {
	StartCount int
	Remains    int
	Charge     decimal.Decimal
	Status     string
	Currency   string
}

// Client talks to the SMM panel API: form-encoded POSTs authenticated by
// a shared key, JSON responses.
type Client struct {
	url  string
	key  string
	http *httpclient.Client
}

func NewClient(url, key string) *Client {
	return &Client{
		url:  strings.TrimSpace(url),
		key:  key,
		http: httpclient.New().WithTimeout(30 * time.Second),
	}
}

// Services fetches the full catalog. An empty catalog is not an error.
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	body, status, err := c.post(ctx, map[string]string{"action": "services"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shop.ErrCatalogUnavailable, err)
	}
	if status >= 500 {
		return nil, fmt.Errorf("%w: panel returned %d", shop.ErrCatalogUnavailable, status)
	}

	var services []Service
	if err := json.Unmarshal(body, &services); err != nil {
		return nil, fmt.Errorf("%w: bad catalog payload: %v", shop.ErrCatalogUnavailable, err)
	}
	return services, nil
}

// AddOrder places an order and returns the panel-issued order id.
func (c *Client) AddOrder(ctx context.Context, serviceID, link string, quantity int) (int64, error) {
	body, _, err := c.post(ctx, map[string]string{
		"action":   "add",
		"service":  serviceID,
		"link":     link,
		"quantity": strconv.Itoa(quantity),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shop.ErrCatalogUnavailable, err)
	}

	var resp struct {
		Order flexInt    `json:"order"`
		Error flexString `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: bad add response: %v", shop.ErrPlacementRejected, err)
	}
	if resp.Order == 0 {
		if resp.Error != "" {
			return 0, fmt.Errorf("%w: %s", shop.ErrPlacementRejected, resp.Error)
		}
		return 0, shop.ErrPlacementRejected
	}
	return int64(resp.Order), nil
}

// GetOrderStatus queries the panel for an order's progress. Missing
// fields default rather than fail.
func (c *Client) GetOrderStatus(ctx context.Context, orderID int64) (*OrderStatus, error) {
	body, _, err := c.post(ctx, map[string]string{
		"action": "status",
		"order":  strconv.FormatInt(orderID, 10),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shop.ErrCatalogUnavailable, err)
	}

	var raw struct {
		StartCount flexNumber `json:"start_count"`
		Remains    flexNumber `json:"remains"`
		Charge     flexNumber `json:"charge"`
		Status     string     `json:"status"`
		Currency   string     `json:"currency"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: bad status payload: %v", shop.ErrCatalogUnavailable, err)
	}

	st := &OrderStatus{
		StartCount: int(raw.StartCount),
		Remains:    int(raw.Remains),
		Charge:     decimal.NewFromFloat(float64(raw.Charge)),
		Status:     raw.Status,
		Currency:   raw.Currency,
	}
	if st.Status == "" {
		st.Status = "Unknown"
	}
	return st, nil
}

func (c *Client) post(ctx context.Context, fields map[string]string) ([]byte, int, error) {
	form := map[string]string{"key": c.key}
	for k, v := range fields {
		form[k] = v
	}
	resp, err := c.http.Raw().R().SetContext(ctx).SetFormData(form).Post(c.url)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body(), resp.StatusCode(), nil
}
