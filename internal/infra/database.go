package infra

import (
	"fmt"

	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that
// GORM cannot express (partial indexes, CHECK constraints).
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
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Company{},
		&model.Location{},
		&model.DiningTable{},
		&model.User{},
		&model.MenuCategory{},
		&model.Menu{},
		&model.AddonCategory{},
		&model.Addon{},
		&model.MenuItemIngredient{},
		&model.AddonIngredient{},
		&model.Promotion{},
		&model.Order{},
		&model.OrderAddon{},
		&model.Receipt{},
		&model.Warehouse{},
		&model.WarehouseItem{},
		&model.WarehouseStock{},
		&model.StockMovement{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.WMSCheckResult{},
		&model.Notification{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Sequences behind human-readable document codes (PO-000001, R-000001).
		`CREATE SEQUENCE IF NOT EXISTS purchase_orders_code_seq`,
		`CREATE SEQUENCE IF NOT EXISTS receipts_code_seq`,
		// Stock balances must never go negative; the service layer enforces it
		// with guarded updates, this is the backstop.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_warehouse_stocks_non_negative') THEN
		    ALTER TABLE warehouse_stocks
		      ADD CONSTRAINT chk_warehouse_stocks_non_negative CHECK (quantity >= 0);
		  END IF;
		END $$`,
		// Ledger entries always carry a positive quantity; direction lives in type.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_stock_movements_positive') THEN
		    ALTER TABLE stock_movements
		      ADD CONSTRAINT chk_stock_movements_positive CHECK (quantity > 0);
		  END IF;
		END $$`,
		// Partial index for the unpaid order board query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_orders_active') THEN
		    CREATE INDEX idx_orders_active
		        ON orders (table_id, status)
		        WHERE status IN ('PENDING', 'COOKING', 'COMPLETE');
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
