// Package postgres implements the domain repositories on PostgreSQL via GORM.
// Every uniqueness rule is enforced by a database constraint and every
// conditional insert is a single atomic ON CONFLICT write.
package postgres

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vigiaai/vigia-provision/internal/config"
	"github.com/vigiaai/vigia-provision/internal/domain/models"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// NewDBConnection opens the PostgreSQL connection pool and verifies
// connectivity.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Error(ctx, "Failed to open database connection", err,
			logger.String("host", cfg.Host),
			logger.String("database", cfg.Database),
		)
		return nil, apperrors.ErrInternal("database connection failed").WithCause(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.ErrInternal("database connection failed").WithCause(err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Error(ctx, "Database ping failed", err)
		return nil, apperrors.ErrInternal("database ping failed").WithCause(err)
	}

	log.Info(ctx, "Database connection established",
		logger.String("host", cfg.Host),
		logger.String("database", cfg.Database),
		logger.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return db, nil
}

// AutoMigrate creates or updates the schema for all provisioning tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.NetworkIdentity{},
		&models.Detection{},
	)
}
