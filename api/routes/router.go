package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageturne/storefront-backend/api/controllers"
	"github.com/pageturne/storefront-backend/api/middleware"
	cartsvc "github.com/pageturne/storefront-backend/internal/cart"
	"github.com/pageturne/storefront-backend/internal/catalog"
	checkoutsvc "github.com/pageturne/storefront-backend/internal/checkout"
	"github.com/pageturne/storefront-backend/pkg/config"
	"github.com/pageturne/storefront-backend/pkg/db"
	"github.com/pageturne/storefront-backend/pkg/logger"
	"github.com/pageturne/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadyDeps(dbClient, redisClient)))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartToken(logg))
		r.Use(middleware.OptionalAuth(cfg.JWT, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/books", controllers.CatalogList(catalogService, logg))
			r.Get("/books/{slug}", controllers.CatalogDetail(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, catalogService, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/address", controllers.CheckoutAddressStart(checkoutService, logg))
			r.Post("/address", controllers.CheckoutAddressSubmit(checkoutService, logg))
			r.Get("/payment", controllers.CheckoutPaymentStart(checkoutService, logg))
			r.Post("/payment", controllers.CheckoutPaymentSubmit(checkoutService, logg))
			r.Get("/confirmation", controllers.CheckoutConfirmation(checkoutService, logg))
		})
	})

	return r
}
