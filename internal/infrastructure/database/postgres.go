package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vlxsoft/materials-api/internal/config"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		// Registries
		&entity.MaterialCategory{},
		&entity.Unit{},
		&entity.Material{},
		&entity.DensityHistory{},

		// Counterparts
		&entity.Warehouse{},
		&entity.Project{},
		&entity.Customer{},
		&entity.Vehicle{},

		// Ledger
		&entity.Receipt{},
		&entity.ReceiptItem{},
		&entity.TransportRecord{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createReceiptNumberFunction(db); err != nil {
		return fmt.Errorf("failed to create receipt number function: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

// createReceiptNumberFunction installs the per-(prefix, day) counter table and
// the generate_receipt_number function. The counter-row upsert takes a row
// lock, which serializes concurrent number generation without any
// application-level locking; the unique index on receipts.receipt_no backstops
// the guarantee.
func createReceiptNumberFunction(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS receipt_counters (
			prefix   varchar(10) NOT NULL,
			day      date        NOT NULL,
			last_seq integer     NOT NULL DEFAULT 0,
			PRIMARY KEY (prefix, day)
		)`).Error; err != nil {
		return err
	}

	return db.Exec(`
		CREATE OR REPLACE FUNCTION generate_receipt_number(p_prefix text, p_day date)
		RETURNS text AS $$
		DECLARE
			seq integer;
		BEGIN
			INSERT INTO receipt_counters (prefix, day, last_seq)
			VALUES (p_prefix, p_day, 1)
			ON CONFLICT (prefix, day)
			DO UPDATE SET last_seq = receipt_counters.last_seq + 1
			RETURNING last_seq INTO seq;
			RETURN p_prefix || to_char(p_day, 'YYMMDD') || lpad(seq::text, 3, '0');
		END;
		$$ LANGUAGE plpgsql`).Error
}

// SeedDefaultData seeds the lookup tables used by a fresh install
func SeedDefaultData(db *gorm.DB) error {
	logrus.Info("Seeding default data...")

	units := []entity.Unit{
		{Name: "Tấn", ShortCode: "T"},
		{Name: "m³", ShortCode: "m3"},
		{Name: "Kg", ShortCode: "kg"},
	}
	for i := range units {
		var existing entity.Unit
		if err := db.Where("name = ?", units[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&units[i]).Error; err != nil {
				logrus.Warnf("failed to seed unit %s: %v", units[i].Name, err)
			}
		}
	}

	categories := []entity.MaterialCategory{
		{Name: "Cát", Slug: "cat"},
		{Name: "Đá", Slug: "da"},
		{Name: "Xi măng", Slug: "xi-mang"},
	}
	for i := range categories {
		var existing entity.MaterialCategory
		if err := db.Where("name = ?", categories[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&categories[i]).Error; err != nil {
				logrus.Warnf("failed to seed category %s: %v", categories[i].Name, err)
			}
		}
	}

	logrus.Info("Default data seeding completed")
	return nil
}
