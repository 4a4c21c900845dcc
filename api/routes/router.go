package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glassph/glass-backend/api/controllers"
	"github.com/glassph/glass-backend/api/middleware"
	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/internal/addresses"
	"github.com/glassph/glass-backend/internal/auth"
	"github.com/glassph/glass-backend/internal/dashboard"
	"github.com/glassph/glass-backend/internal/orders"
	"github.com/glassph/glass-backend/internal/products"
	"github.com/glassph/glass-backend/internal/verification"
	"github.com/glassph/glass-backend/pkg/auth/session"
	"github.com/glassph/glass-backend/pkg/config"
	"github.com/glassph/glass-backend/pkg/db"
	"github.com/glassph/glass-backend/pkg/enums"
	"github.com/glassph/glass-backend/pkg/logger"
	"github.com/glassph/glass-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Cfg          *config.Config
	Logg         *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	Sessions     session.SessionChecker
	Auth         auth.Service
	Verification verification.Service
	Products     products.Service
	Addresses    addresses.Service
	Orders       orders.Service
	Dashboard    dashboard.Service
	Activity     activity.Service
	Registry     *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/send-code", controllers.VerificationSendCode(deps.Verification, logg))
		r.Post("/verify-code", controllers.VerificationVerifyCode(deps.Verification, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AdminAuthLogin(deps.Auth, logg))
	})

	// public catalog
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.Products, logg))
		r.Get("/{productId}", controllers.ProductDetail(deps.Products, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(deps.Addresses, logg))
			r.Post("/", controllers.AddressAdd(deps.Addresses, logg))
			r.Post("/{addressId}/activate", controllers.AddressActivate(deps.Addresses, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(deps.Addresses, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(deps.Orders, logg))
			r.Get("/", controllers.OrderListMine(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.ActorRoleAdmin), logg))

		r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(deps.Products, logg))
			r.Post("/", controllers.AdminProductCreate(deps.Products, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(deps.Products, logg))
			r.Post("/{productId}/archive", controllers.AdminProductArchive(deps.Products, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
			r.Get("/pending-count", controllers.AdminOrderPendingCount(deps.Orders, logg))
			r.Get("/logs", controllers.AdminOrderLogs(deps.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
			r.Post("/{orderId}/reject", controllers.AdminOrderReject(deps.Orders, logg))
			r.Patch("/{orderId}/price", controllers.AdminOrderUpdatePrice(deps.Orders, logg))
			r.Delete("/{orderId}", controllers.AdminOrderDelete(deps.Orders, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/recent", controllers.DashboardRecent(deps.Dashboard, logg))
			r.Get("/range", controllers.DashboardRange(deps.Dashboard, logg))
		})

		r.Get("/activity", controllers.AdminRecentActivity(deps.Activity, logg))
	})

	return r
}
