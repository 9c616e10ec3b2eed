package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"http_server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

// Storage drivers supported for the ledger and budget-limit stores.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverRedis    = "redis"
)

type StorageConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	RedisAddr    string `mapstructure:"redis_addr"`
	RedisDB      int    `mapstructure:"redis_db"`
}

type SecurityConfig struct {
	AccessTokenSecret  string        `mapstructure:"access_token_secret"`
	RefreshTokenSecret string        `mapstructure:"refresh_token_secret"`
	AccessTokenTTL     time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenTTL    time.Duration `mapstructure:"refresh_token_duration"`
	BCryptCost         int           `mapstructure:"bcrypt_cost"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}
	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}
	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverMemory:
		return nil
	case StorageDriverPostgres, StorageDriverSQLite:
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for driver %q", c.Driver)
		}
		if c.MaxIdleConns > c.MaxOpenConns {
			return errors.New("max_idle_conns cannot be greater than max_open_conns")
		}
		return nil
	case StorageDriverRedis:
		if c.RedisAddr == "" {
			return errors.New("redis_addr is required for driver \"redis\"")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}

func (c *SecurityConfig) Validate() error {
	if len(c.AccessTokenSecret) < 32 {
		return errors.New("access_token_secret must be at least 32 characters")
	}
	if len(c.RefreshTokenSecret) < 32 {
		return errors.New("refresh_token_secret must be at least 32 characters")
	}
	if c.AccessTokenTTL <= 0 || c.AccessTokenTTL > time.Hour {
		return errors.New("access_token_duration must be between 0 and 1h")
	}
	if c.RefreshTokenTTL < time.Hour {
		return errors.New("refresh_token_duration must be at least 1h")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	return nil
}
