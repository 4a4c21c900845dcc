package main

import (
	"context"
	"net/http"
	"os"

	"github.com/glassph/glass-backend/api/routes"
	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/internal/addresses"
	"github.com/glassph/glass-backend/internal/auth"
	"github.com/glassph/glass-backend/internal/dashboard"
	"github.com/glassph/glass-backend/internal/orders"
	"github.com/glassph/glass-backend/internal/products"
	"github.com/glassph/glass-backend/internal/users"
	"github.com/glassph/glass-backend/internal/verification"
	"github.com/glassph/glass-backend/pkg/auth/session"
	"github.com/glassph/glass-backend/pkg/clock"
	"github.com/glassph/glass-backend/pkg/config"
	"github.com/glassph/glass-backend/pkg/db"
	"github.com/glassph/glass-backend/pkg/logger"
	"github.com/glassph/glass-backend/pkg/metrics"
	"github.com/glassph/glass-backend/pkg/migrate"
	"github.com/glassph/glass-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	clk, err := clock.NewInZone(cfg.App.Timezone)
	if err != nil {
		logg.Error(context.Background(), "failed to load timezone", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	orderMetrics := metrics.NewOrderMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	activityRepo := activity.NewRepository(dbClient.DB())
	addressesRepo := addresses.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	dashboardRepo := dashboard.NewRepository(dbClient.DB())

	activityService, err := activity.NewService(activityRepo, clk)
	requireService(logg, "activity", err)

	verificationService, err := verification.NewService(redisClient, verification.NewLogMailer(logg), cfg.Verification, redis.IsNil)
	requireService(logg, "verification", err)

	authService, err := auth.NewService(usersRepo, activityRepo, verificationService, sessionManager, dbClient, clk, cfg.JWT, cfg.Password)
	requireService(logg, "auth", err)

	productsService, err := products.NewService(productsRepo)
	requireService(logg, "products", err)

	addressesService, err := addresses.NewService(addressesRepo, usersRepo, activityRepo, dbClient, clk)
	requireService(logg, "addresses", err)

	ordersService, err := orders.NewService(ordersRepo, productsRepo, usersRepo, addressesService, activityRepo, dashboardRepo, dbClient, clk, orderMetrics)
	requireService(logg, "orders", err)

	dashboardService, err := dashboard.NewService(dashboardRepo, clk)
	requireService(logg, "dashboard", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
		"tz":   cfg.App.Timezone,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Cfg:          cfg,
			Logg:         logg,
			DB:           dbClient,
			Redis:        redisClient,
			Sessions:     sessionManager,
			Auth:         authService,
			Verification: verificationService,
			Products:     productsService,
			Addresses:    addressesService,
			Orders:       ordersService,
			Dashboard:    dashboardService,
			Activity:     activityService,
			Registry:     registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx := logg.WithField(context.Background(), "service", name)
	logg.Error(ctx, "failed to create service", err)
	os.Exit(1)
}
