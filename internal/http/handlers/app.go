package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"smartstock/internal/backend"
	"smartstock/internal/demoreset"
)

// App bundles the dependencies the dashboard handlers share.
type App struct {
	Backend *backend.Client
	Reset   *demoreset.Controller
	Logger  zerolog.Logger
}

func NewApp(client *backend.Client, reset *demoreset.Controller, logger zerolog.Logger) *App {
	return &App{Backend: client, Reset: reset, Logger: logger}
}

// errorBody is the error envelope the dashboard UI consumes. Field is set
// for validation errors scoped to a single form field.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, errorBody{Error: message})
}

func (a *App) fieldError(w http.ResponseWriter, code int, field, message string) {
	a.json(w, code, errorBody{Error: message, Field: field})
}

// backendError relays a backend failure to the caller: the backend's status
// and detail when it answered, 502 with a generic message when it did not.
func (a *App) backendError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Detail
		if message == "" {
			message = "The inventory service rejected the request."
		}
		a.error(w, apiErr.StatusCode, message)
		return
	}
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("backend call failed")
	a.error(w, http.StatusBadGateway, "The inventory service is unreachable.")
}
