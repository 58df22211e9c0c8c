package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pms-be-svc/internal/config"
	"pms-be-svc/internal/models"
)

// Database wraps the GORM database connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new database connection from configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		// TranslateError maps driver errors (e.g. unique violations) onto
		// gorm.ErrDuplicatedKey so workflow code can react to them
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db}, nil
}

// AutoMigrate runs schema migrations for all application models
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.Building{},
		&models.Renter{},
		&models.Apartment{},
		&models.Payment{},
		&models.PaymentConfirmation{},
		&models.MaintenanceRequest{},
		&models.JobLog{},
	)
}

// Close closes the underlying database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
