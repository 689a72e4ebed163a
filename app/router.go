package app

import (
	"net/http"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/observability"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/httpx"
	"github.com/Black-And-White-Club/retro-arcade/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// HealthTimestampLayout is ISO-8601 UTC with millisecond precision.
const HealthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHTTPRouter builds the API router with the shared middleware stack and the health
// endpoint. Modules mount their routes on the result.
func NewHTTPRouter(cfg config.HTTPConfig, obs observability.Observability) chi.Router {
	logger := obs.Provider.Logger

	r := chi.NewRouter()

	// Must be set before modules mount subrouters so they inherit them.
	r.NotFound(httpx.RouteNotFound)
	r.MethodNotAllowed(httpx.RouteNotFound)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Registry.HTTPMetrics.Middleware)
	r.Use(httpx.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	if cfg.RateLimit > 0 {
		exempt, bad := httpx.ParsePrefixes(cfg.RateExempt)
		if len(bad) > 0 {
			logger.Warn("Ignoring unparseable rate limit exemptions", attr.Any("entries", bad))
		}
		r.Use(httpx.RateLimitMiddleware(
			httpx.NewClientLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
			httpx.RateLimitOptions{Exempt: exempt},
		))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(HealthTimestampLayout),
		})
	})

	return r
}
