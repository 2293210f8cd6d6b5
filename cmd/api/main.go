package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/auth"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/config"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/db"
	catalogdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/catalog"
	clientdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
	evaluationdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/evaluation"
	requestdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/request"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/http/handlers"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/observability"
	postgresrepo "github.com/FelipeBaeza/PrestaBancoEntrega/internal/repository/postgres"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/repository/rediscache"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/server"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/ws"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.Env, "prestabanco-api")

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect postgres", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	metrics := observability.NewMetrics()

	clientRepo := postgresrepo.NewClientRepository(pool)
	clientService := clientdomain.NewService(clientRepo)

	var catalogRepo catalogdomain.Repository = postgresrepo.NewCatalogRepository(pool)
	if cfg.RedisAddr != "" {
		rdb := rediscache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		catalogRepo = rediscache.NewCatalogCache(catalogRepo, rdb, cfg.CatalogCacheTTL)
		logger.Info("catalog cache enabled", "addr", cfg.RedisAddr)
	}
	catalogService := catalogdomain.NewService(catalogRepo)

	requestService := requestdomain.NewService(
		postgresrepo.NewRequestRepository(pool),
		clientRepo,
		postgresrepo.NewOutboxRepository(pool),
		metrics,
	)
	evaluationService := evaluationdomain.NewService(
		postgresrepo.NewEvaluationRepository(pool),
		requestService,
		requestService,
		metrics,
	)

	jwtManager := auth.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSigningKey)
	authService := auth.NewService(
		postgresrepo.NewSessionRepository(pool),
		jwtManager,
		clientService,
		cfg.ExecutiveRuts,
		cfg.JWTAccessTTL,
		cfg.JWTRefreshTTL,
	)
	cookieCfg := auth.CookieConfig{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}

	hub := ws.NewHub()
	notifier := ws.NewNotifier(postgresrepo.NewEventsRepository(pool), hub, cfg.WSPollInterval)

	r := server.NewRouter(cfg, logger, server.Dependencies{
		Pinger:            pool,
		AuthHandler:       handlers.NewAuthHandler(authService, cookieCfg, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
		ClientHandler:     handlers.NewClientHandler(clientService),
		CatalogHandler:    handlers.NewCatalogHandler(catalogService),
		RequestHandler:    handlers.NewRequestHandler(requestService, catalogService),
		EvaluationHandler: handlers.NewEvaluationHandler(evaluationService),
		WSHandler:         ws.NewHandler(hub),
		JWTManager:        jwtManager,
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	notifierCtx, notifierCancel := context.WithCancel(context.Background())
	defer notifierCancel()
	go func() {
		if err := notifier.Run(notifierCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("status notifier stopped", "err", err)
		}
	}()

	go func() {
		logger.Info("api server starting", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	notifierCancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
	logger.Info("api server stopped")
}
