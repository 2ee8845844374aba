package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POStatus is the purchase order lifecycle state.
// PENDING → RECEIVED | CANCELLED; both terminal, but a RECEIVED order may be
// corrected afterwards without changing status.
type POStatus string

const (
	POPending   POStatus = "PENDING"
	POReceived  POStatus = "RECEIVED"
	POCancelled POStatus = "CANCELLED"
)

// PurchaseOrder is the only procurement path into the stock ledger:
// receiving it emits one IN movement per line and increments balances.
type PurchaseOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Code        string    `gorm:"uniqueIndex;not null"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      POStatus  `gorm:"type:varchar(10);not null;default:'PENDING'"`
	// IsEdited marks a post-receipt correction; the ledger keeps the audit
	// trail via compensating CORRECTION movements.
	IsEdited   bool `gorm:"not null;default:false"`
	ReceivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Supplier  *Supplier           `gorm:"foreignKey:SupplierID"`
	Warehouse *Warehouse          `gorm:"foreignKey:WarehouseID"`
	Items     []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// PurchaseOrderItem is one line of a purchase order. Quantity and UnitPrice
// are stored in the item's canonical base unit; one row per distinct item.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_po_item"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_po_item"`
	Quantity        decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt       time.Time

	Item *WarehouseItem `gorm:"foreignKey:ItemID"`
}
