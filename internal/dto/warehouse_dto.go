package dto

import "github.com/shopspring/decimal"

// ─── Warehouse items ─────────────────────────────────────────────────────────

type CreateWarehouseItemRequest struct {
	Name      string          `json:"name"      validate:"required"`
	Unit      string          `json:"unit"      validate:"required,oneof=G KG ML L VISS LB OZ GAL DOZ UNIT"`
	Threshold decimal.Decimal `json:"threshold" validate:"min=0"`
}

type UpdateWarehouseItemRequest struct {
	Name      string          `json:"name"      validate:"required"`
	Threshold decimal.Decimal `json:"threshold" validate:"min=0"`
}

type WarehouseItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	UnitCategory string          `json:"unitCategory"`
	// Threshold is converted back to the item's display unit.
	Threshold decimal.Decimal `json:"threshold"`
}

// ─── Stock ───────────────────────────────────────────────────────────────────

type StockRowResponse struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"` // display units
}

type WarehouseStockResponse struct {
	WarehouseID string             `json:"warehouseId"`
	Rows        []StockRowResponse `json:"rows"`
}

// AdjustStockRequest records a manual stocktake correction: a signed ledger
// movement with source MANUAL. Quantity is in the submitted Unit.
type AdjustStockRequest struct {
	ItemID      string          `json:"itemId"      validate:"required,uuid"`
	WarehouseID string          `json:"warehouseId" validate:"required,uuid"`
	Type        string          `json:"type"        validate:"required,oneof=IN OUT"`
	Quantity    decimal.Decimal `json:"quantity"    validate:"required"`
	Unit        string          `json:"unit"        validate:"required,oneof=G KG ML L VISS LB OZ GAL DOZ UNIT"`
	Note        *string         `json:"note"`
}

// ─── Movements ───────────────────────────────────────────────────────────────

// StockMovementFilter is bound from the query string of GET /v1/stock-movements.
type StockMovementFilter struct {
	ItemID      string `form:"itemId"      validate:"omitempty,uuid"`
	WarehouseID string `form:"warehouseId" validate:"omitempty,uuid"`
	Source      string `form:"source"`
	Page        int    `form:"page,default=1"    validate:"min=1"`
	Limit       int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockMovementResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"` // base units, always positive
	Source    string          `json:"source"`
	Reference *string         `json:"reference,omitempty"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// ─── Suppliers / warehouses ──────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}

type SupplierResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

type CreateWarehouseRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
}

type WarehouseResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}
