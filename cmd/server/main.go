package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/api"
	"github.com/nutrigenomics-server/internal/catalog"
	"github.com/nutrigenomics-server/internal/config"
	"github.com/nutrigenomics-server/internal/crypto"
	"github.com/nutrigenomics-server/internal/database"
	"github.com/nutrigenomics-server/internal/domain"
	"github.com/nutrigenomics-server/internal/mealplan"
	"github.com/nutrigenomics-server/internal/service"
	"github.com/nutrigenomics-server/internal/storage"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()

	logger := newLogger(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"storage": cfg.Storage.Driver,
		"cache":   cfg.Cache.Backend,
	}).Info("Starting nutrigenomics server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize storage")
	}
	defer store.Close()

	cache, err := newCache(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize result cache")
	}

	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Key)
	if err != nil {
		logger.WithError(err).Fatal("Invalid encryption key")
	}

	if !configManager.MealPlanEnabled() {
		logger.Warn("No meal plan API key configured; /api/v1/mealplan will return 503")
	}
	planner := mealplan.NewClient(cfg.MealPlan, logger)

	cat := catalog.New()
	server := api.NewServer(api.Deps{
		Config:      cfg,
		Logger:      logger,
		Catalog:     cat,
		Analyzer:    service.NewAnalyzer(cat, logger),
		Synthesizer: service.NewSynthesizer(logger),
		Store:       store,
		Cache:       cache,
		Encryptor:   encryptor,
		Planner:     planner,
	})

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.Output == "stderr" {
		logger.SetOutput(os.Stderr)
	} else {
		logger.SetOutput(os.Stdout)
	}
	return logger
}

// newStore selects the persistence backend. SQLite is the embedded
// default; postgres runs migrations on startup.
func newStore(ctx context.Context, cfg *domain.Config, logger *logrus.Logger) (domain.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		runner, err := database.NewMigrationRunner(database.ConnectionURL(cfg.Database), cfg.Database.MigrationsPath, logger)
		if err != nil {
			return nil, fmt.Errorf("migration runner: %w", err)
		}
		if err := runner.Up(); err != nil {
			runner.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		runner.Close()

		db, err := database.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection: %w", err)
		}
		return storage.NewPostgresStore(db.Pool, logger), nil
	default:
		return storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	}
}

func newCache(ctx context.Context, cfg *domain.Config, logger *logrus.Logger) (domain.ResultCache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return storage.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL, logger)
	default:
		return storage.NewMemoryCache(cfg.Cache.Size)
	}
}
