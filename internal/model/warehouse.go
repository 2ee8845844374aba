package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Warehouse is a physical stock location belonging to a company.
type Warehouse struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WarehouseItem is a stockable ingredient. Quantities for this item anywhere
// in the system are stored in the canonical base unit of UnitCategory
// (gram / millilitre / unit); Unit only records how staff prefer to see it.
type WarehouseItem struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Name         string       `gorm:"not null;index"`
	Unit         Unit         `gorm:"type:varchar(10);not null"`
	UnitCategory UnitCategory `gorm:"type:varchar(10);not null"`
	// Threshold is the reorder point in base units. Stock at or below it is a
	// low-stock signal independent of demand-based shortage.
	Threshold decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WarehouseStock is the running balance for one item in one warehouse.
// It is never written directly: every change goes through a StockMovement and
// the balance must always equal the signed sum of that item's movements.
type WarehouseStock struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_warehouse"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_warehouse"`
	Quantity    decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	UpdatedAt   time.Time

	Item *WarehouseItem `gorm:"foreignKey:ItemID"`
}

// MovementType signs a stock movement: IN adds, OUT subtracts.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// MovementSource records which flow produced a movement.
type MovementSource string

const (
	SourcePurchaseOrder MovementSource = "PURCHASE_ORDER"
	SourceCorrection    MovementSource = "CORRECTION"
	SourceConsumption   MovementSource = "CONSUMPTION"
	SourceManual        MovementSource = "MANUAL"
)

// StockMovement is an immutable ledger entry. Quantity is always positive in
// base units; Type gives the sign. Entries are never updated or deleted —
// corrections append compensating entries.
type StockMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        MovementType    `gorm:"type:varchar(5);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Source      MovementSource  `gorm:"type:varchar(20);not null"`
	// Reference links back to the originating document, e.g. a purchase
	// order code.
	Reference *string
	Note      *string
	CreatedAt time.Time

	Item *WarehouseItem `gorm:"foreignKey:ItemID"`
}

// Signed returns the quantity with the sign implied by Type.
func (m StockMovement) Signed() decimal.Decimal {
	if m.Type == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// Supplier is a procurement counterparty.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Phone     *string
	Email     *string
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
