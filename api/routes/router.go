package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storenest/storenest-backend/api/controllers"
	"github.com/storenest/storenest-backend/api/middleware"
	"github.com/storenest/storenest-backend/internal/orders"
	"github.com/storenest/storenest-backend/pkg/config"
	"github.com/storenest/storenest-backend/pkg/db"
	"github.com/storenest/storenest-backend/pkg/enums"
	"github.com/storenest/storenest-backend/pkg/logger"
	"github.com/storenest/storenest-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	ordersService orders.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var idemStore redis.IdempotencyStore
	var redisPinger redis.Pinger
	if redisClient != nil {
		idemStore = redisClient
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbClient, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(ordersService, logg))
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{reference}", controllers.OrderDetail(ordersService, logg))
			r.Post("/{reference}/cancel", controllers.CancelOrder(ordersService, logg))
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.ActorRoleAdmin.String(), logg))
			r.Patch("/{reference}/status", controllers.UpdateOrderStatus(ordersService, logg))
		})
	})

	return r
}
