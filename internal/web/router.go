package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/hangulnum/internal/db"
	"github.com/jusunglee/hangulnum/internal/health"
	"github.com/jusunglee/hangulnum/internal/metrics"
	"github.com/jusunglee/hangulnum/internal/ratelimit"
	"github.com/jusunglee/hangulnum/internal/web/handlers"
	"github.com/jusunglee/hangulnum/internal/web/middleware"
)

const maxRequestBytes = 64 << 10

type Config struct {
	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string
	// AdminAPIKey guards history pruning. Empty disables the route.
	AdminAPIKey string
	// RequestsPerMinute is the per-IP limit on conversion routes.
	RequestsPerMinute int
	// TrustProxyHeaders keys clients by X-Real-IP instead of the peer
	// address. Enable only behind a proxy that sets the header.
	TrustProxyHeaders bool
}

type Router struct {
	repo        db.Repository
	log         *slog.Logger
	config      Config
	rateLimiter *ratelimit.Limiter
}

// NewRouter builds the API router. repo may be nil to disable history.
func NewRouter(repo db.Repository, log *slog.Logger, config Config) *Router {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 120
	}
	return &Router{
		repo:        repo,
		log:         log,
		config:      config,
		rateLimiter: ratelimit.New(config.RequestsPerMinute, time.Minute),
	}
}

// PruneRateLimiter forgets idle clients and reports how many remain.
func (r *Router) PruneRateLimiter() {
	r.rateLimiter.Cleanup()
	metrics.RateLimitTrackedKeys.WithLabelValues("web").Set(float64(r.rateLimiter.Len()))
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	convertHandler := handlers.NewConvertHandler(r.repo, r.log)

	convert := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h,
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.rateLimiter),
			middleware.MaxBodyBytes(maxRequestBytes),
		)
	}

	mux.Handle("POST /api/v1/encode", convert(convertHandler.Encode))
	mux.Handle("POST /api/v1/encode/batch", convert(convertHandler.EncodeBatch))
	mux.Handle("POST /api/v1/decode", convert(convertHandler.Decode))

	if r.repo != nil {
		historyHandler := handlers.NewHistoryHandler(r.repo, r.log)

		mux.Handle("GET /api/v1/conversions",
			middleware.Chain(
				http.HandlerFunc(historyHandler.List),
				middleware.PrometheusMetrics(),
				middleware.RequestLogger(r.log),
				middleware.CacheControl("public, s-maxage=5, max-age=0"),
			),
		)

		mux.Handle("GET /api/v1/conversions/{id}",
			middleware.Chain(
				http.HandlerFunc(historyHandler.Get),
				middleware.PrometheusMetrics(),
				middleware.RequestLogger(r.log),
			),
		)

		if r.config.AdminAPIKey != "" {
			mux.Handle("DELETE /api/v1/conversions",
				middleware.Chain(
					http.HandlerFunc(historyHandler.Prune),
					middleware.PrometheusMetrics(),
					middleware.RequestLogger(r.log),
					middleware.APIKeyAuth(r.config.AdminAPIKey),
				),
			)
		}
	}

	mux.Handle("GET /health", middleware.Chain(
		http.HandlerFunc(health.Handler),
		middleware.PrometheusMetrics(),
	))

	return middleware.Chain(mux,
		middleware.CORS(r.config.AllowedOrigins),
		middleware.RealIP(r.config.TrustProxyHeaders),
	)
}
