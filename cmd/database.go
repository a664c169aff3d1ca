package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/adapters/out/postgres"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects gorm to postgres and sizes the pool.
func OpenDatabase(cfg Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres at %s:%s: %w", cfg.DBHost, cfg.DBPort, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Connected to postgres", "host", cfg.DBHost, "db", cfg.DBName)
	return db, nil
}

// MigrateDatabase creates or updates the schema.
func MigrateDatabase(db *gorm.DB, log *slog.Logger) error {
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Info("Schema migrated", "tables", len(postgres.TableNames()))
	return nil
}
