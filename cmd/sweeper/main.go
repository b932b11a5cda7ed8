package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/budget"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/ledger"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/recurring"

	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/database"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/logger"
	timeProvider "github.com/cashfolio/cashfolio/internal/infrastructure/adapter/time"
	"github.com/cashfolio/cashfolio/internal/infrastructure/config"

	"golang.org/x/sync/errgroup"
)

// The sweeper is the scheduled half of the system: on every tick it rolls
// expired budget periods forward and bills due recurring templates. Each
// concern runs in its own goroutine per tick; a failing one never blocks the
// others.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer appLogger.Flush()

	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	uow := dbManager.CreateUnitOfWork()
	ledgerService := ledger.NewService(uow, tp, appLogger)
	budgetTracker := budget.NewTracker(uow, tp, appLogger)
	biller := recurring.NewBiller(
		dbManager.CreateSubscriptionRepository(),
		dbManager.CreateRecurringIncomeRepository(),
		dbManager.CreateInvoiceRepository(),
		ledgerService,
		tp,
		appLogger,
	)

	appLogger.Info("Sweeper started", map[string]any{
		"interval":      cfg.Sweep.Interval.String(),
		"batch_timeout": cfg.Sweep.BatchTimeout.String(),
	})

	ticker := time.NewTicker(cfg.Sweep.Interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Run one sweep at startup so a restart never delays overdue work by a
	// full interval.
	runSweep(cfg, budgetTracker, biller, tp, appLogger)

	for {
		select {
		case <-ticker.C:
			runSweep(cfg, budgetTracker, biller, tp, appLogger)
		case <-quit:
			appLogger.Info("Sweeper shutting down", nil)
			return
		}
	}
}

func runSweep(
	cfg *config.Config,
	tracker *budget.Tracker,
	biller *recurring.Biller,
	tp coreport.TimeProvider,
	appLogger coreport.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sweep.BatchTimeout)
	defer cancel()

	now := tp.Now()
	start := time.Now()

	var rolled, billed, recorded int
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := tracker.Sweep(gctx, now)
		rolled = n
		return err
	})
	g.Go(func() error {
		n, err := biller.ProcessDueSubscriptions(gctx, now)
		billed = n
		return err
	})
	g.Go(func() error {
		n, err := biller.ProcessDueIncomes(gctx, now)
		recorded = n
		return err
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Sweep finished with errors", map[string]any{
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	appLogger.Info("Sweep completed", map[string]any{
		"budgets_rolled":       rolled,
		"subscriptions_billed": billed,
		"incomes_recorded":     recorded,
		"duration_ms":          time.Since(start).Milliseconds(),
	})
}
