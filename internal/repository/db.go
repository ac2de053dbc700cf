package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/elisa-a-v/courtlistener/internal/config"
	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/logger"
)

// InitDB initializes the primary database connection and runs migrations
// when enabled.
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := open(cfg, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		logger.Debug("Running AutoMigrate")
		if err := db.AutoMigrate(
			&domain.Court{},
			&domain.Docket{},
			&domain.DocketEntry{},
			&domain.RECAPDocument{},
			&domain.OpinionCluster{},
			&domain.Opinion{},
			&domain.OpinionsCited{},
			&domain.Audio{},
			&domain.DocketAlert{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

// InitReplicaDB opens a connection to the read replica. Returns nil without
// error when no replica is configured, so callers can fall back to the
// primary handle.
func InitReplicaDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.ReplicaDSN()
	if dsn == "" {
		return nil, nil
	}
	return open(cfg, dsn)
}

func open(cfg *config.DatabaseConfig, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "postgres":
		db, err = initPostgres(dsn, gormConfig)
	case "sqlite":
		db, err = initSQLite(dsn, gormConfig)
	default:
		logger.Warn("Unknown database driver %q, defaulting to SQLite", cfg.Driver)
		db, err = initSQLite(dsn, gormConfig)
	}
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initPostgres(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	// PreferSimpleProtocol disables implicit prepared statements, which are
	// incompatible with transaction poolers.
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	return db, nil
}

func initSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if dsn != "" {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	// WAL mode for better concurrency (SQLite specific)
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA foreign_keys=ON")

	return db, nil
}
