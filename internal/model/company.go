package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant root: every other row carries its CompanyID and all
// queries are scoped by the company claim in the caller's JWT.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location is a restaurant branch.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Address   *string
	// TaxRate and Discount are the defaults snapshotted onto receipts at
	// payment time. TaxRate is a percentage.
	TaxRate   int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DiningTable is a physical table diners order from by scanning its QR code.
// QR generation itself happens outside this service; only the token the code
// encodes lives here.
type DiningTable struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"not null"`
	QRToken    string    `gorm:"uniqueIndex;not null;column:qr_token"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DiningTable) TableName() string { return "dining_tables" }

// User is a staff member with role-based access.
// Role: "waiter" | "manager" | "admin"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Notification is shown on the backoffice bell; created by the availability
// checker when a run finds issues.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(30);not null"` // "wms_check"
	Message   string    `gorm:"not null"`
	ReadAt    *time.Time
	CreatedAt time.Time
}
