package infra

import (
	"fmt"

	"routevendor/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// shift schema.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table, then applies the patches
// AutoMigrate cannot express. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Vendor{},
		&model.WorkDayInformation{},
		&model.DayOperation{},
		&model.ProductInventory{},
		&model.InventoryOperation{},
		&model.InventoryOperationDescription{},
		&model.RouteTransaction{},
		&model.RouteTransactionDescription{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM tags cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Stock never goes negative.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_product_inventories_stock') THEN
		    ALTER TABLE product_inventories
		      ADD CONSTRAINT chk_product_inventories_stock CHECK (stock >= 0);
		  END IF;
		END $$`,
		// One line per (operation, product, price).
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_line_product_price
		    ON inventory_operation_descriptions (id_inventory_operation, id_product, price_at_moment)`,
		// One line per (transaction, inventory record, line type).
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_transaction_line_record_type
		    ON route_transaction_descriptions (id_route_transaction, id_product_inventory, id_transaction_operation_type)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
