package common

import (
	"context"
	"log"
	"strings"

	"personal-ledger-go/internal/database"
	"personal-ledger-go/internal/ledger"
	"personal-ledger-go/internal/metrics"
	"personal-ledger-go/internal/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	}
}

type Services struct {
	DbService *database.Service
	Engine    *ledger.Engine
	Query     *ledger.QueryService
	Collector *metrics.Collector
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices wires the database, ledger engine, query service and
// metrics collector from a loaded configuration.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database, cfg.Ledger.MaxAccountsPerOwner)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector()
	engine := ledger.NewEngine(dbService, dbService, ledger.Options{
		RetryAttempts: cfg.Ledger.RetryAttempts,
		Collector:     collector,
	})
	query := ledger.NewQueryService(dbService)

	return &Services{
		DbService: dbService,
		Engine:    engine,
		Query:     query,
		Collector: collector,
	}, nil
}

// InitializeDatabaseOnly initializes just the database service.
// Useful for read-only tools like the balances report.
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	return database.NewService(ctx, cfg.Database, cfg.Ledger.MaxAccountsPerOwner)
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
