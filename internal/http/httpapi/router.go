package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smartstock/internal/http/handlers"
	"smartstock/internal/infra"
	"smartstock/internal/middleware"
)

// NewRouter wires the dashboard API surface.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(app.Logger),
	)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", app.ListOrders)
		r.Post("/", app.CreateOrder)
		r.Put("/{id}", app.UpdateOrder)
		r.Delete("/{id}", app.CancelOrder)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/forecast", app.ListForecast)
		r.Put("/forecast/{id}", app.UpdateForecast)
	})

	r.Route("/jobs/demo-reset", func(r chi.Router) {
		r.Post("/trigger", app.TriggerDemoReset)
		r.Get("/status", app.DemoResetStatus)
	})

	r.Get("/user/me", app.Me)

	return r
}
