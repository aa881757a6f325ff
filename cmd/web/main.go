package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"eduquiz-web/internal/adapter"
	"eduquiz-web/internal/adapter/backendapi"
	"eduquiz-web/internal/cache"
	"eduquiz-web/internal/config"
	"eduquiz-web/internal/database"
	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/logger"
	"eduquiz-web/internal/middleware"
	"eduquiz-web/internal/repository"
	"eduquiz-web/internal/router"
	"eduquiz-web/internal/service"
	"eduquiz-web/internal/validation"
	"eduquiz-web/internal/web"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize session store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}
	defer closeStore()
	appLogger.Info("Session store initialized", zap.String("store", cfg.Session.Store))

	backend, err := backendapi.New(cfg.Backend.BaseURL, appLogger.Named("backend"))
	if err != nil {
		appLogger.Fatal("Failed to create backend client", zap.Error(err))
	}

	views, err := web.NewEngine()
	if err != nil {
		appLogger.Fatal("Failed to load views", zap.Error(err))
	}

	// Initialize services
	validator := validation.NewValidator()
	gate := service.NewAuthGate(store)
	authService := service.NewAuthService(backend, gate, validator)
	quizFlow := service.NewQuizFlow(backend, validator)
	handoff := service.NewHandoffCodec(cfg.Handoff.Secret, cfg.Handoff.TTL)

	app := router.New(router.Deps{
		Views:   views,
		Store:   store,
		Gate:    gate,
		Auth:    authService,
		Flow:    quizFlow,
		Handoff: handoff,
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			MaxAge:     time.Duration(cfg.Session.CookieMaxAge) * time.Second,
			Secure:     cfg.Session.CookieSecure,
		},
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting server",
			zap.String("addr", cfg.Addr()),
			zap.String("env", cfg.Logger.Env),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		return app.Listen(cfg.Addr())
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}

// newSessionStore builds the configured store and a func releasing it.
func newSessionStore(ctx context.Context, cfg *config.Config) (domain.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return adapter.NewRedisSessionStore(client), func() { _ = client.Close() }, nil

	case config.SessionStoreSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if cfg.SQLite.AutoMigrate {
			if err := database.RunMigrations(db.DB); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return repository.NewSQLXSessionRepository(db), func() { _ = db.Close() }, nil

	case config.SessionStoreMemory:
		return adapter.NewMemorySessionStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}
