package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PurchaseOrderLine is one submitted line item. Quantity and Price are in the
// submitted Unit; the service converts both to the item's canonical base unit
// before persisting.
type PurchaseOrderLine struct {
	ItemID   string          `json:"itemId"   validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Unit     string          `json:"unit"     validate:"required,oneof=G KG ML L VISS LB OZ GAL DOZ UNIT"`
	Price    decimal.Decimal `json:"price"    validate:"required"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID  string              `json:"supplierId"  validate:"required,uuid"`
	WarehouseID string              `json:"warehouseId" validate:"required,uuid"`
	Items       []PurchaseOrderLine `json:"items"       validate:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest replaces supplier, warehouse and lines wholesale.
// Permitted only while the order is PENDING.
type UpdatePurchaseOrderRequest struct {
	SupplierID  string              `json:"supplierId"  validate:"required,uuid"`
	WarehouseID string              `json:"warehouseId" validate:"required,uuid"`
	Items       []PurchaseOrderLine `json:"items"       validate:"required,min=1,dive"`
}

// CorrectPurchaseOrderRequest rewrites the recorded quantities of a RECEIVED
// order; the ledger is settled with compensating movements per item delta.
type CorrectPurchaseOrderRequest struct {
	Items []PurchaseOrderLine `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderFilter is bound from the query string of GET /v1/purchase-orders.
type PurchaseOrderFilter struct {
	Status string `form:"status"` // PENDING | RECEIVED | CANCELLED | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseOrderItemResponse struct {
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Quantity  decimal.Decimal `json:"quantity"` // base units
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	Code        string                      `json:"code"`
	SupplierID  string                      `json:"supplierId"`
	WarehouseID string                      `json:"warehouseId"`
	Status      string                      `json:"status"`
	IsEdited    bool                        `json:"isEdited"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	ReceivedAt  *string                     `json:"receivedAt,omitempty"`
	CreatedAt   string                      `json:"createdAt"`
}

type PurchaseOrderListResponse struct {
	Data  []PurchaseOrderResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
