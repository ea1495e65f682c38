package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/atlas-retail/atlas-retail/internal/addresses"
	"github.com/atlas-retail/atlas-retail/internal/app"
	"github.com/atlas-retail/atlas-retail/internal/auth"
	"github.com/atlas-retail/atlas-retail/internal/catalog"
	"github.com/atlas-retail/atlas-retail/internal/loyalty"
	"github.com/atlas-retail/atlas-retail/internal/payments"
	"github.com/atlas-retail/atlas-retail/internal/platform/cache"
	"github.com/atlas-retail/atlas-retail/internal/platform/db"
	"github.com/atlas-retail/atlas-retail/internal/procurement"
	"github.com/atlas-retail/atlas-retail/internal/sales"
	"github.com/atlas-retail/atlas-retail/internal/suppliers"
	"github.com/atlas-retail/atlas-retail/internal/users"
	"github.com/atlas-retail/atlas-retail/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	queue, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authMiddleware := auth.Middleware{Tokens: tokens, Logger: logger}

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	authService := auth.NewService(usersRepo)
	authHandler := auth.NewHandler(logger, authService, tokens, cfg.IsProduction())

	suppliersRepo := suppliers.NewRepository(dbpool)
	suppliersService := suppliers.NewService(suppliersRepo)
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)

	addressesRepo := addresses.NewRepository(dbpool)
	addressesService := addresses.NewService(addressesRepo)
	addressesHandler := addresses.NewHandler(logger, addressesService)

	catalogClient := catalog.NewClient(cfg.CatalogURL)

	procurementRepo := procurement.NewRepository(dbpool)
	procurementService := procurement.NewService(procurementRepo, catalogClient, logger)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	paymentsRepo := payments.NewRepository(dbpool)
	paymentsService := payments.NewService(paymentsRepo, procurementService, queue, logger)
	paymentsHandler := payments.NewHandler(logger, paymentsService)

	salesRepo := sales.NewRepository(dbpool)
	salesService := sales.NewService(salesRepo)
	salesHandler := sales.NewHandler(logger, salesService)

	loyaltyClient := loyalty.NewClient(cfg.LoyaltyURL)
	loyaltyCache := loyalty.NewCache(redisClient, cfg.WalletCacheTTL)
	loyaltyService := loyalty.NewService(loyaltyClient, loyaltyCache)
	loyaltyHandler := loyalty.NewHandler(logger, loyaltyService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		UsersHandler:       usersHandler,
		SuppliersHandler:   suppliersHandler,
		AddressesHandler:   addressesHandler,
		ProcurementHandler: procurementHandler,
		PaymentsHandler:    paymentsHandler,
		SalesHandler:       salesHandler,
		LoyaltyHandler:     loyaltyHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
