package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Order mirrors the backend order resource, including the display joins the
// backend resolves from the products table.
type Order struct {
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	WarehouseID int64     `json:"warehouse_id"`
	RequestedBy string    `json:"requested_by"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	ForecastID  *int64    `json:"forecast_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProductName string    `json:"product_name,omitempty"`
	ProductSKU  string    `json:"product_sku,omitempty"`
	UnitPrice   *float64  `json:"unit_price,omitempty"`
}

// OrderCreate is the payload for POST /orders.
type OrderCreate struct {
	ProductID   int64  `json:"product_id"`
	Quantity    int    `json:"quantity"`
	WarehouseID int64  `json:"warehouse_id"`
	RequestedBy string `json:"requested_by"`
	Notes       string `json:"notes,omitempty"`
	ForecastID  *int64 `json:"forecast_id,omitempty"`
}

// OrderUpdate is the partial payload for PUT /orders/{id}. Nil fields are
// omitted from the request so the backend only sees actual deltas.
type OrderUpdate struct {
	Status   *string `json:"status,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Empty reports whether the update carries no change at all.
func (u OrderUpdate) Empty() bool {
	return u.Status == nil && u.Quantity == nil && u.Notes == nil
}

// OrderFilter narrows GET /orders. DateFrom/DateTo bound order_date and use
// the backend's YYYY-MM-DD format.
type OrderFilter struct {
	Status      string
	RequestedBy string
	WarehouseID int64
	ProductID   int64
	Type        string
	DateFrom    string
	DateTo      string
	Limit       int
	Offset      int
}

func (f OrderFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.RequestedBy != "" {
		q.Set("requested_by", f.RequestedBy)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}
	if f.WarehouseID > 0 {
		q.Set("warehouse_id", strconv.FormatInt(f.WarehouseID, 10))
	}
	if f.ProductID > 0 {
		q.Set("product_id", strconv.FormatInt(f.ProductID, 10))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// ListOrders fetches orders matching the filter.
func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", filter.query(), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder creates a new order and returns the backend's view of it.
func (c *Client) CreateOrder(ctx context.Context, create OrderCreate) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, create, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies a partial update to an order.
func (c *Client) UpdateOrder(ctx context.Context, orderID int64, update OrderUpdate) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := c.do(ctx, http.MethodPut, path, nil, update, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder soft-cancels an order.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/orders/%d", orderID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
