package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"smartstock/internal/backend"
)

// ListForecast proxies the inventory forecast, filling in display action
// labels when the backend omits them.
func (a *App) ListForecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := backend.ForecastFilter{
		WarehouseID: parseID(q.Get("warehouse_id")),
		Status:      q.Get("status"),
		Limit:       parseIntDefault(q.Get("limit"), 100),
		Offset:      parseIntDefault(q.Get("offset"), 0),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
	}
	page, err := a.Backend.ListForecast(r.Context(), filter)
	if err != nil {
		a.backendError(w, r, err)
		return
	}
	for i := range page.Items {
		if page.Items[i].Action == "" {
			page.Items[i].Action = forecastAction(page.Items[i].Status)
		}
	}
	a.json(w, http.StatusOK, page)
}

// UpdateForecast forwards a partial forecast update.
func (a *App) UpdateForecast(w http.ResponseWriter, r *http.Request) {
	forecastID := parseID(chi.URLParam(r, "id"))
	if forecastID <= 0 {
		a.error(w, http.StatusBadRequest, "invalid forecast id")
		return
	}
	var update backend.ForecastUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	row, err := a.Backend.UpdateForecast(r.Context(), forecastID, update)
	if err != nil {
		a.backendError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, row)
}

var actionLabels = map[string]string{
	"out_of_stock":   "Urgent Reorder",
	"reorder_needed": "Reorder Now",
	"low_stock":      "Monitor",
	"in_stock":       "No Action",
	"resolved":       "Resolved",
}

var titleCaser = cases.Title(language.English)

// forecastAction derives the display label from the stock status. Unknown
// statuses are humanized rather than shown raw.
func forecastAction(status string) string {
	if label, ok := actionLabels[status]; ok {
		return label
	}
	return titleCaser.String(strings.ReplaceAll(status, "_", " "))
}
