package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/auth"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/export"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
	"github.com/frahmantamala/budget-tracker/internal/notification"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/internal/transport/rest"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "http",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}
		return runHTTPServer(cfg)
	},
}

func runHTTPServer(cfg *internal.Config) error {
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.L()

	stores, err := openStores(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stores.Close(); cerr != nil {
			log.Error("failed to close storage", "error", cerr)
		}
	}()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	handlers := initializeDependencies(cfg, stores)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, handlers, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// initializeDependencies wires stores, services and handlers together and
// subscribes the budget checker and notifier to the event bus.
func initializeDependencies(cfg *internal.Config, stores *Stores) rest.Handlers {
	log := logger.L()
	base := transport.NewBaseHandler(log)

	bus := events.NewBus(log)

	ledgerService := ledger.NewService(stores.Ledger, bus, log)
	budgetService := budget.NewService(stores.Limits, ledgerService, bus, log)
	notifier := notification.NewNotifier(log)

	bus.Subscribe(ledger.EventExpenseRecorded, budgetService.HandleExpenseRecorded)
	bus.Subscribe(budget.EventThresholdCrossed, notifier.HandleThresholdCrossed)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenTTL,
		cfg.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(stores.Users, tokens, cfg.Security.BCryptCost, log)

	return rest.Handlers{
		Auth:          auth.NewHandler(base, authService),
		Expenses:      ledger.NewHandler(base, ledgerService),
		Reports:       report.NewHandler(base, ledgerService),
		Budgets:       budget.NewHandler(base, budgetService),
		Export:        export.NewHandler(base, ledgerService),
		Notifications: notification.NewHandler(base, notifier),
		Health:        rest.NewHealthHandler(stores.Component, stores.Ping),
	}
}
