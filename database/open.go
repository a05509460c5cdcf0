package database

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Open connects to the configured store and verifies the connection. Any
// error here is fatal for the process.
func Open(ctx context.Context, settings config.DatabaseSettings) (*gorm.DB, error) {
	if settings.URL == "" {
		return nil, config.ErrMissingDatabaseURL
	}

	dialector, err := dialectorFor(settings.Driver, settings.URL, settings.Name)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		stdlog.New(log.Logger.With().Str("component", "gorm").Logger(), "", 0),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", settings.Driver, err)
	}

	if settings.ReplicaURL != "" {
		replica, err := dialectorFor(settings.Driver, settings.ReplicaURL, settings.Name)
		if err != nil {
			return nil, err
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{replica},
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if settings.Driver == "sqlite" {
		// one connection keeps in-memory databases alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", settings.Driver, err)
	}

	return db, nil
}

func dialectorFor(driver, dsn, dbName string) (gorm.Dialector, error) {
	switch driver {
	case "", "postgres":
		return postgres.New(postgres.Config{
			DSN:                  withDatabaseName(dsn, dbName),
			PreferSimpleProtocol: true,
		}), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// withDatabaseName fills in the database name when the postgres DSN has none.
func withDatabaseName(dsn, dbName string) string {
	if dbName == "" {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		if strings.Trim(u.Path, "/") == "" {
			u.Path = "/" + dbName
		}
		return u.String()
	}
	if !strings.Contains(dsn, "dbname=") {
		return strings.TrimSpace(dsn + " dbname=" + dbName)
	}
	return dsn
}
