package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Connect establishes a connection to the configured database.
// The returned *gorm.DB wraps a pool that is safe for concurrent use.
func Connect(cfg Config) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	dialector, err := dialectorFor(cfg, timeout)
	if err != nil {
		return nil, err
	}

	// Suppress GORM logging, callers log through zap
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 20
	}
	if cfg.Driver == DriverSQLite {
		// A single connection keeps :memory: databases shared across goroutines
		maxOpen = 1
	}
	sqlDB.SetMaxIdleConns(min(10, maxOpen))
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func dialectorFor(cfg Config, timeout int) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return sqlite.Open(cfg.Name), nil
	case DriverMySQL:
		dsn, err := MySQLDSN(cfg, timeout)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		dsn, err := PostgresDSN(cfg, timeout)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	}
}

// MySQLDSN builds the mysql connection string. clientFoundRows is always on,
// so an UPDATE that matches a row reports it as affected even when the values
// are unchanged.
func MySQLDSN(cfg Config, timeout int) (string, error) {
	if cfg.URL != "" {
		dc, err := gomysql.ParseDSN(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		dc.ClientFoundRows = true
		return dc.FormatDSN(), nil
	}

	userInfo := url.UserPassword(cfg.User, cfg.Password).String()
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout), nil
}

// PostgresDSN builds the postgres connection string. A URL without a password
// gets the Supabase key injected as one.
func PostgresDSN(cfg Config, timeout int) (string, error) {
	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return "", fmt.Errorf("invalid database url scheme %q", u.Scheme)
		}
		if _, hasPassword := u.User.Password(); !hasPassword && cfg.Key != "" {
			u.User = url.UserPassword(u.User.Username(), cfg.Key)
		}
		q := u.Query()
		if q.Get("connect_timeout") == "" {
			q.Set("connect_timeout", fmt.Sprint(timeout))
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	password := cfg.Password
	if password == "" {
		password = cfg.Key
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.User, password, cfg.Name, cfg.SSLMode, timeout), nil
}
