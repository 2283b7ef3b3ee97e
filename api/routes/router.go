package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ncastellanos/tiendita-backend/api/controllers"
	"github.com/ncastellanos/tiendita-backend/api/middleware"
	"github.com/ncastellanos/tiendita-backend/internal/cart"
	"github.com/ncastellanos/tiendita-backend/internal/catalog"
	"github.com/ncastellanos/tiendita-backend/pkg/config"
	"github.com/ncastellanos/tiendita-backend/pkg/db"
	"github.com/ncastellanos/tiendita-backend/pkg/logger"
	"github.com/ncastellanos/tiendita-backend/pkg/metrics"
	pkgredis "github.com/ncastellanos/tiendita-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. Optional
// dependencies (redis, metrics registry) may be nil.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	RedisPinger    pkgredis.Pinger
	IdempotencyDB  pkgredis.IdempotencyStore
	CatalogService catalog.Service
	CartService    cart.Service
	Registry       *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	logg := deps.Logger
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if deps.Config != nil {
		r.Use(middleware.CORS(deps.Config.App.CORSOrigins))
	}

	toolMetrics := metrics.NewToolCallMetrics(registerer(deps.Registry))

	r.Get("/health", controllers.Health())
	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(logg, readinessPingers(deps)...))

	r.Get("/tools", controllers.ToolsIndex())

	call := controllers.ToolCall(deps.CatalogService, deps.CartService, toolMetrics, logg)
	if deps.IdempotencyDB != nil {
		ttl := defaultTTL(deps.Config)
		r.With(middleware.Idempotency(deps.IdempotencyDB, ttl, logg)).Post("/call", call)
	} else {
		r.Post("/call", call)
	}

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NOT_FOUND"}` + "\n"))
	})

	return r
}

func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func readinessPingers(deps Deps) []db.Pinger {
	pingers := []db.Pinger{}
	if deps.DBPinger != nil {
		pingers = append(pingers, deps.DBPinger)
	}
	if deps.RedisPinger != nil {
		pingers = append(pingers, deps.RedisPinger)
	}
	return pingers
}

func defaultTTL(cfg *config.Config) time.Duration {
	if cfg == nil {
		return 0
	}
	return cfg.Idempotency.TTL
}
