package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuCategory groups menus on the ordering page.
type MenuCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	SortOrder int       `gorm:"not null;default:0"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Menu is a sellable dish.
type Menu struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID
	Name        string          `gorm:"not null;index"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *MenuCategory `gorm:"foreignKey:CategoryID"`
}

// AddonCategory groups addons presented under a menu (e.g. "Spice level").
type AddonCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Required  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Addon is an optional extra attached to a menu via its category.
type Addon struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *AddonCategory `gorm:"foreignKey:CategoryID"`
}

// MenuItemIngredient maps a menu to a warehouse item it consumes.
// Quantity is per order-unit of demand, in the item's canonical base unit.
// A menu with zero mappings is itself a reportable WMS condition, distinct
// from insufficient stock.
type MenuItemIngredient struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_menu_item"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_menu_item"`
	Quantity  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt time.Time

	Menu *Menu          `gorm:"foreignKey:MenuID"`
	Item *WarehouseItem `gorm:"foreignKey:ItemID"`
}

// AddonIngredient maps an addon to the extra warehouse quantity it consumes.
// MenuID optionally scopes the mapping to one menu; nil means the mapping
// applies wherever the addon is sold.
type AddonIngredient struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AddonID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuID        *uuid.UUID      `gorm:"type:uuid;index"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null"`
	ExtraQuantity decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt     time.Time

	Addon *Addon         `gorm:"foreignKey:AddonID"`
	Item  *WarehouseItem `gorm:"foreignKey:ItemID"`
}
