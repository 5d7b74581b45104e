package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voyagelab/travel-backend/config"
	"github.com/voyagelab/travel-backend/models"
)

// Connect opens the postgres connection.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate runs the schema migrations. Beyond AutoMigrate it creates the
// constraints the cart upsert depends on:
//
//   - a check that exactly one of package_id/trip_id is set per cart item
//   - partial unique indexes on (user_id, package_id) and (user_id, trip_id),
//     which back the ON CONFLICT increment in the cart repository
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Package{},
		&models.Service{},
		&models.Trip{},
		&models.TripService{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_user_package
			ON cart_items (user_id, package_id) WHERE package_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_user_trip
			ON cart_items (user_id, trip_id) WHERE trip_id IS NOT NULL`,
		`DO $$ BEGIN
			ALTER TABLE cart_items ADD CONSTRAINT chk_cart_items_single_ref
				CHECK ((package_id IS NULL) <> (trip_id IS NULL));
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}
	return nil
}
