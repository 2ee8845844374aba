package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the per-line kitchen state. A line moves
// PENDING → COOKING → COMPLETE → PAID; CANCELLED is allowed from any unpaid
// state. Payment may split a multi-quantity line in two (see Order.PaidFrom).
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCooking   OrderStatus = "COOKING"
	OrderComplete  OrderStatus = "COMPLETE"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is one cart line: a menu plus an addon combination at a table.
// Two lines are the same "logical item" when menu and addon set match;
// partial payment splits such a line into a PAID record and a reduced
// remainder rather than mutating history.
type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID   `gorm:"type:uuid;not null;index"`
	TableID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	MenuID    uuid.UUID   `gorm:"type:uuid;not null"`
	Quantity  int         `gorm:"not null"`
	Status    OrderStatus `gorm:"type:varchar(10);not null;default:'PENDING'"`
	// IsFoc lines never contribute to the payable subtotal, whatever the
	// menu price says.
	IsFoc bool `gorm:"not null;default:false"`
	// PromotionID is set when the line was granted by a promotion.
	PromotionID *uuid.UUID `gorm:"type:uuid"`
	// ReceiptID is set at payment time; only PAID lines carry it.
	ReceiptID *uuid.UUID `gorm:"type:uuid;index"`
	// PaidFrom points at the original line this PAID record was split off.
	PaidFrom  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Menu   *Menu        `gorm:"foreignKey:MenuID"`
	Addons []OrderAddon `gorm:"foreignKey:OrderID"`
}

// OrderAddon snapshots one addon choice on an order line. Price is copied at
// order time so later addon edits don't change history.
type OrderAddon struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddonID uuid.UUID       `gorm:"type:uuid;not null"`
	Price   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Addon *Addon `gorm:"foreignKey:AddonID"`
}

// Receipt is the finalized grouping of PAID lines under one generated code,
// with tax and discount snapshotted at payment time.
type Receipt struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TableID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code      string          `gorm:"uniqueIndex;not null"`
	SubTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Tax       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Orders []Order `gorm:"foreignKey:ReceiptID"`
}
