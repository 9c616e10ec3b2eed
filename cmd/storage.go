package cmd

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/auth"
	authgorm "github.com/frahmantamala/budget-tracker/internal/auth/gormstore"
	authmemory "github.com/frahmantamala/budget-tracker/internal/auth/memory"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	budgetgorm "github.com/frahmantamala/budget-tracker/internal/budget/gormstore"
	budgetmemory "github.com/frahmantamala/budget-tracker/internal/budget/memory"
	budgetredis "github.com/frahmantamala/budget-tracker/internal/budget/redisstore"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
	ledgergorm "github.com/frahmantamala/budget-tracker/internal/ledger/gormstore"
	ledgermemory "github.com/frahmantamala/budget-tracker/internal/ledger/memory"
	ledgerredis "github.com/frahmantamala/budget-tracker/internal/ledger/redisstore"
	"github.com/frahmantamala/budget-tracker/internal/transport/rest"
)

// Stores bundles the backend-specific store implementations plus the
// health check for that backend and a close hook for shutdown.
type Stores struct {
	Ledger    ledger.Store
	Limits    budget.LimitStore
	Users     auth.UserStore
	Ping      rest.PingFunc
	Component string
	Close     func() error
}

func openStores(cfg internal.StorageConfig) (*Stores, error) {
	switch cfg.Driver {
	case internal.StorageDriverMemory:
		return &Stores{
			Ledger:    ledgermemory.NewStore(),
			Limits:    budgetmemory.NewStore(),
			Users:     authmemory.NewStore(),
			Component: "memory",
			Close:     func() error { return nil },
		}, nil

	case internal.StorageDriverPostgres:
		// pgx through sqlx so pool limits apply, then the same
		// connection handed to GORM
		sqlxDB, err := sqlx.Connect("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
		sqlxDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)

		gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), gormConfig())
		if err != nil {
			_ = sqlxDB.Close()
			return nil, fmt.Errorf("failed to initialize gorm: %w", err)
		}
		return gormStores(gdb, "postgres", func(ctx context.Context) error {
			return sqlxDB.DB.PingContext(ctx)
		}, sqlxDB.Close), nil

	case internal.StorageDriverSQLite:
		gdb, err := gorm.Open(gormsqlite.Open(cfg.DSN), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite connection: %w", err)
		}
		return gormStores(gdb, "sqlite", func(ctx context.Context) error {
			return sqlDB.PingContext(ctx)
		}, sqlDB.Close), nil

	case internal.StorageDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return &Stores{
			Ledger: ledgerredis.NewStore(client),
			Limits: budgetredis.NewStore(client),
			// identity records are out of the KV collaborator's
			// contract, which is keyed by record id and category
			Users:     authmemory.NewStore(),
			Ping:      func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Component: "redis",
			Close:     client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func gormStores(gdb *gorm.DB, component string, ping rest.PingFunc, closeFn func() error) *Stores {
	return &Stores{
		Ledger:    ledgergorm.NewStore(gdb),
		Limits:    budgetgorm.NewStore(gdb),
		Users:     authgorm.NewStore(gdb),
		Ping:      ping,
		Component: component,
		Close:     closeFn,
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}
}
