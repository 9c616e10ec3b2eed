package cmd

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status]",
	Short: "Run database migrations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) > 0 {
			direction = args[0]
		}

		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}
		return runMigrations(cfg, direction)
	},
}

func runMigrations(cfg *internal.Config, direction string) error {
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.L()

	// each SQL dialect has its own migration directory; BIGSERIAL in
	// particular is parsed but ignored by sqlite
	var dialect, driverName string
	switch cfg.Storage.Driver {
	case internal.StorageDriverPostgres:
		dialect, driverName = "postgres", "pgx"
	case internal.StorageDriverSQLite:
		// mattn/go-sqlite3 is registered by the gorm sqlite driver
		dialect, driverName = "sqlite3", "sqlite3"
	default:
		return fmt.Errorf("migrations are not supported for driver %q", cfg.Storage.Driver)
	}

	db, err := sql.Open(driverName, cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := filepath.Join("db", "migrations", cfg.Storage.Driver)
	switch direction {
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "status":
		err = goose.Status(db, dir)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	log.Info("migrations complete", "direction", direction, "driver", cfg.Storage.Driver)
	return nil
}
