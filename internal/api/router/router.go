package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rimmelzwaan/salon-booking/internal/http/handlers"
	httpmiddleware "github.com/rimmelzwaan/salon-booking/internal/http/middleware"
	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Booking            *handlers.BookingHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.Booking.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public booking wizard API
	r.Route("/booking", func(b chi.Router) {
		b.Get("/catalog", cfg.Booking.Catalog)
		b.Get("/employees", cfg.Booking.AvailableEmployees)
		b.Get("/times", cfg.Booking.AvailableTimes)
		b.Post("/appointments", cfg.Booking.CreateAppointment)
		b.Get("/confirm/{token}", cfg.Booking.Confirm)
	})

	return r
}
