package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ForecastRow is one inventory forecast entry shaped for display.
type ForecastRow struct {
	ForecastID        int64  `json:"forecast_id"`
	ItemID            string `json:"item_id"`
	ItemName          string `json:"item_name"`
	Stock             int    `json:"stock"`
	Forecast30Days    int    `json:"forecast_30_days"`
	WarehouseID       int64  `json:"warehouse_id"`
	WarehouseName     string `json:"warehouse_name"`
	WarehouseLocation string `json:"warehouse_location"`
	Status            string `json:"status"`
	Action            string `json:"action,omitempty"`
}

// PaginationMeta is the backend's pagination envelope.
type PaginationMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// ForecastPage is the paginated response of GET /inventory/forecast.
type ForecastPage struct {
	Items      []ForecastRow  `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// ForecastFilter narrows GET /inventory/forecast.
type ForecastFilter struct {
	WarehouseID int64
	Status      string
	Limit       int
	Offset      int
	SortBy      string
	SortOrder   string
}

func (f ForecastFilter) query() url.Values {
	q := url.Values{}
	if f.WarehouseID > 0 {
		q.Set("warehouse_id", strconv.FormatInt(f.WarehouseID, 10))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sort_order", f.SortOrder)
	}
	return q
}

// ForecastUpdate is the partial payload for PUT /inventory/forecast/{id}.
type ForecastUpdate struct {
	CurrentStock    *int     `json:"current_stock,omitempty"`
	Forecast30Days  *int     `json:"forecast_30_days,omitempty"`
	ReorderPoint    *int     `json:"reorder_point,omitempty"`
	ReorderQuantity *int     `json:"reorder_quantity,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

// ListForecast fetches forecast rows with pagination metadata.
func (c *Client) ListForecast(ctx context.Context, filter ForecastFilter) (*ForecastPage, error) {
	var page ForecastPage
	if err := c.do(ctx, http.MethodGet, "/inventory/forecast", filter.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateForecast applies a partial update to a forecast entry.
func (c *Client) UpdateForecast(ctx context.Context, forecastID int64, update ForecastUpdate) (*ForecastRow, error) {
	var row ForecastRow
	path := fmt.Sprintf("/inventory/forecast/%d", forecastID)
	if err := c.do(ctx, http.MethodPut, path, nil, update, &row); err != nil {
		return nil, err
	}
	return &row, nil
}
