package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/storefront-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/storefront-backend/api/controllers/orders"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	products "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/stores"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	productService products.Service,
	storeService stores.Service,
	cartService cart.Service,
	cartResolver cartcontrollers.Resolver,
	ordersService orders.Service,
	preferencesService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	deps := []controllers.Dependency{{Name: "db", Pinger: dbP}}
	idempotency := middleware.IdempotencyOptions{
		TTL:        cfg.Catalog.IdempotencyTTL,
		CartCookie: cfg.Catalog.CartCookieName,
	}
	if redisClient != nil {
		deps = append(deps, controllers.Dependency{Name: "redis", Pinger: redisClient})
		idempotency.Store = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps...))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	catalog := cfg.Catalog

	idem := middleware.Idempotency(idempotency, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.CatalogProducts(productService, catalog, logg))
		r.Get("/products/{productId}", controllers.CatalogProductDetail(productService, logg))
		r.Get("/stores", controllers.StoreDirectory(storeService, catalog, logg))
		r.Get("/stores/{storeId}/products", controllers.StoreCatalogProducts(productService, catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartResolver, catalog, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, catalog, logg))
			r.With(idem).Post("/items", cartcontrollers.CartAddItem(cartService, catalog, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(cartService, catalog, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, catalog, logg))
		})

		r.Get("/email-preferences/{token}", controllers.GetEmailPreferences(preferencesService, logg))
		r.Put("/email-preferences/{token}", controllers.UpdateEmailPreferences(preferencesService, logg))
		r.With(idem).Post("/newsletter", controllers.NewsletterSubscribe(preferencesService, logg))

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Auth, logg))

			r.Get("/stores", controllers.DashboardListStores(storeService, catalog, logg))
			r.With(idem).Post("/stores", controllers.DashboardCreateStore(storeService, logg))
			r.Route("/stores/{storeId}", func(r chi.Router) {
				r.Get("/", controllers.DashboardGetStore(storeService, logg))
				r.Patch("/", controllers.DashboardUpdateStore(storeService, logg))
				r.Get("/products", controllers.DashboardProducts(productService, catalog, logg))
				r.Get("/orders", ordercontrollers.StoreOrderList(ordersService, catalog, logg))
				r.Get("/orders/{orderId}", ordercontrollers.StoreOrderDetail(ordersService, logg))
				r.Get("/customers", ordercontrollers.StoreCustomerList(ordersService, catalog, logg))
			})

			r.Get("/purchases", ordercontrollers.PurchaseList(ordersService, catalog, logg))
			r.Get("/purchases/{orderId}", ordercontrollers.PurchaseDetail(ordersService, logg))
		})
	})

	return r
}
