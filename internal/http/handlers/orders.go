package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"smartstock/internal/backend"
	"smartstock/internal/orders"
)

// ListOrders proxies GET /orders with the filters the dashboard supports.
func (a *App) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := backend.OrderFilter{
		Status:      q.Get("status"),
		RequestedBy: q.Get("requested_by"),
		WarehouseID: parseID(q.Get("warehouse_id")),
		ProductID:   parseID(q.Get("product_id")),
		Type:        q.Get("type"),
		DateFrom:    q.Get("date_from"),
		DateTo:      q.Get("date_to"),
		Limit:       parseIntDefault(q.Get("limit"), 100),
		Offset:      parseIntDefault(q.Get("offset"), 0),
	}
	list, err := a.Backend.ListOrders(r.Context(), filter)
	if err != nil {
		a.backendError(w, r, err)
		return
	}
	if list == nil {
		list = []backend.Order{}
	}
	a.json(w, http.StatusOK, list)
}

// CreateOrder validates the form fields, prefills requested_by from the
// current user when the caller omits it, and forwards the creation.
func (a *App) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var create backend.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if create.ProductID <= 0 {
		a.fieldError(w, http.StatusUnprocessableEntity, "product_id", "product is required")
		return
	}
	if create.WarehouseID <= 0 {
		a.fieldError(w, http.StatusUnprocessableEntity, "warehouse_id", "warehouse is required")
		return
	}
	if create.Quantity < 1 {
		a.fieldError(w, http.StatusUnprocessableEntity, "quantity", "quantity must be at least 1")
		return
	}
	if strings.TrimSpace(create.RequestedBy) == "" {
		user, err := a.Backend.CurrentUser(r.Context())
		if err != nil {
			a.Logger.Warn().Err(err).Msg("requested_by prefill failed")
			a.fieldError(w, http.StatusUnprocessableEntity, "requested_by", "requested_by is required")
			return
		}
		create.RequestedBy = user.Name()
	}

	order, err := a.Backend.CreateOrder(r.Context(), create)
	if err != nil {
		a.backendError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, order)
}

type orderUpdateRequest struct {
	Status   *string `json:"status"`
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

// UpdateOrder fetches the current order, runs the lifecycle validator, and
// forwards only the fields that actually changed. An edit with no deltas
// returns the current order without touching the backend.
func (a *App) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := parseID(chi.URLParam(r, "id"))
	if orderID <= 0 {
		a.error(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req orderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	current, err := a.Backend.GetOrder(r.Context(), orderID)
	if err != nil {
		a.backendError(w, r, err)
		return
	}

	change := orders.Change{
		CurrentStatus:    orders.Status(current.Status),
		ProposedStatus:   orders.Status(current.Status),
		CurrentQuantity:  current.Quantity,
		ProposedQuantity: current.Quantity,
	}
	if req.Status != nil {
		change.ProposedStatus = orders.Status(*req.Status)
	}
	if req.Quantity != nil {
		change.ProposedQuantity = *req.Quantity
	}

	delta, err := orders.Validate(change)
	if err != nil {
		a.validationError(w, err)
		return
	}

	update := backend.OrderUpdate{}
	if delta.Status != nil {
		status := string(*delta.Status)
		update.Status = &status
	}
	update.Quantity = delta.Quantity
	if req.Notes != nil && *req.Notes != current.Notes {
		update.Notes = req.Notes
	}

	if update.Empty() {
		a.json(w, http.StatusOK, current)
		return
	}

	updated, err := a.Backend.UpdateOrder(r.Context(), orderID, update)
	if err != nil {
		a.backendError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, updated)
}

// CancelOrder forwards the soft-cancel.
func (a *App) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := parseID(chi.URLParam(r, "id"))
	if orderID <= 0 {
		a.error(w, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := a.Backend.CancelOrder(r.Context(), orderID); err != nil {
		a.backendError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// validationError maps lifecycle rule rejections to field-scoped 422s.
func (a *App) validationError(w http.ResponseWriter, err error) {
	var transition *orders.InvalidTransitionError
	var locked *orders.QuantityLockedError
	var quantity *orders.InvalidQuantityError
	switch {
	case errors.As(err, &transition):
		a.fieldError(w, http.StatusUnprocessableEntity, "status", transition.Error())
	case errors.As(err, &locked):
		a.fieldError(w, http.StatusUnprocessableEntity, "quantity", locked.Error())
	case errors.As(err, &quantity):
		a.fieldError(w, http.StatusUnprocessableEntity, "quantity", quantity.Error())
	default:
		a.error(w, http.StatusUnprocessableEntity, err.Error())
	}
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
