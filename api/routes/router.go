package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sukkarlab/sweetshop-backend/api/controllers"
	"github.com/sukkarlab/sweetshop-backend/api/middleware"
	"github.com/sukkarlab/sweetshop-backend/internal/branches"
	"github.com/sukkarlab/sweetshop-backend/internal/catalog"
	"github.com/sukkarlab/sweetshop-backend/internal/content"
	"github.com/sukkarlab/sweetshop-backend/internal/delivery"
	"github.com/sukkarlab/sweetshop-backend/internal/events"
	"github.com/sukkarlab/sweetshop-backend/internal/options"
	"github.com/sukkarlab/sweetshop-backend/internal/orders"
	"github.com/sukkarlab/sweetshop-backend/internal/pricing"
	"github.com/sukkarlab/sweetshop-backend/internal/staff"
	"github.com/sukkarlab/sweetshop-backend/pkg/config"
	"github.com/sukkarlab/sweetshop-backend/pkg/logger"
	"github.com/sukkarlab/sweetshop-backend/pkg/metrics"
	pkgredis "github.com/sukkarlab/sweetshop-backend/pkg/redis"
)

// Services bundles everything the HTTP layer fronts.
type Services struct {
	Pricing  pricing.Service
	Orders   orders.Service
	Catalog  catalog.Service
	Options  options.Service
	Delivery delivery.Service
	Branches branches.Service
	Events   events.Service
	Content  content.Service
	Staff    staff.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	// A typed nil *Client must not reach the middleware as a non-nil interface.
	var idemStore pkgredis.IdempotencyStore
	loginLimiter := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		idemStore = redisClient
		loginLimiter = middleware.LoginRateLimit(cfg.AuthRateLimit, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, logg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.Menu(svcs.Catalog, logg))
		r.Get("/catalog/categories", controllers.ListCategories(svcs.Catalog, logg))
		r.Get("/catalog/products", controllers.ListProducts(svcs.Catalog, logg))
		r.Get("/products/{productId}", controllers.GetProduct(svcs.Catalog, logg))
		r.Get("/branches", controllers.ListBranches(svcs.Branches, logg))
		r.Get("/events", controllers.ListEvents(svcs.Events, logg))
		r.Get("/pages/{pageKey}", controllers.GetPage(svcs.Content, logg))

		r.Post("/price/calculate", controllers.CalculatePrice(svcs.Pricing, logg))

		r.With(middleware.Idempotency(idemStore, cfg.Orders.IdempotencyTTL, logg)).
			Post("/orders", controllers.CreateOrder(svcs.Orders, logg))

		r.With(loginLimiter).Post("/auth/login", controllers.StaffLogin(svcs.Staff, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.AdminGetOrder(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminListCategories(svcs.Catalog, logg))
			r.Post("/", controllers.AdminCreateCategory(svcs.Catalog, logg))
			r.Put("/{categoryId}", controllers.AdminUpdateCategory(svcs.Catalog, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(svcs.Catalog, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(svcs.Catalog, logg))
			r.Post("/", controllers.AdminCreateProduct(svcs.Catalog, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(svcs.Catalog, logg))
		})

		r.Route("/option-groups", func(r chi.Router) {
			r.Get("/", controllers.AdminListOptionGroups(svcs.Options, logg))
			r.Post("/", controllers.AdminCreateOptionGroup(svcs.Options, logg))
			r.Get("/{groupId}", controllers.AdminGetOptionGroup(svcs.Options, logg))
			r.Put("/{groupId}", controllers.AdminUpdateOptionGroup(svcs.Options, logg))
			r.Delete("/{groupId}", controllers.AdminDeleteOptionGroup(svcs.Options, logg))
			r.Patch("/{groupId}/assign", controllers.AdminAssignOptionGroup(svcs.Options, logg))
			r.Post("/{groupId}/options", controllers.AdminCreateOption(svcs.Options, logg))
		})

		r.Route("/options", func(r chi.Router) {
			r.Put("/{optionId}", controllers.AdminUpdateOption(svcs.Options, logg))
			r.Delete("/{optionId}", controllers.AdminDeleteOption(svcs.Options, logg))
		})

		r.Route("/delivery-zones", func(r chi.Router) {
			r.Get("/", controllers.AdminListZones(svcs.Delivery, logg))
			r.Post("/", controllers.AdminCreateZone(svcs.Delivery, logg))
			r.Put("/{zoneId}", controllers.AdminUpdateZone(svcs.Delivery, logg))
			r.Delete("/{zoneId}", controllers.AdminDeleteZone(svcs.Delivery, logg))
		})

		r.Route("/branches", func(r chi.Router) {
			r.Get("/", controllers.AdminListBranches(svcs.Branches, logg))
			r.Post("/", controllers.AdminCreateBranch(svcs.Branches, logg))
			r.Put("/{branchId}", controllers.AdminUpdateBranch(svcs.Branches, logg))
			r.Delete("/{branchId}", controllers.AdminDeleteBranch(svcs.Branches, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.AdminListEvents(svcs.Events, logg))
			r.Post("/", controllers.AdminCreateEvent(svcs.Events, logg))
			r.Put("/{eventId}", controllers.AdminUpdateEvent(svcs.Events, logg))
			r.Delete("/{eventId}", controllers.AdminDeleteEvent(svcs.Events, logg))
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", controllers.AdminListPages(svcs.Content, logg))
			r.Put("/{pageKey}", controllers.AdminUpsertPage(svcs.Content, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.AdminListStaff(svcs.Staff, logg))
			r.Post("/", controllers.AdminCreateStaff(svcs.Staff, logg))
			r.Patch("/{staffId}/active", controllers.AdminSetStaffActive(svcs.Staff, logg))
		})
	})

	return r
}
