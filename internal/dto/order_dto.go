package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OrderLineRequest is one cart line submitted from the QR ordering page.
type OrderLineRequest struct {
	MenuID   string   `json:"menuId"   validate:"required,uuid"`
	AddonIDs []string `json:"addonIds" validate:"dive,uuid"`
	Quantity int      `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	TableID string             `json:"tableId" validate:"required,uuid"`
	Lines   []OrderLineRequest `json:"lines"   validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COOKING COMPLETE CANCELLED"`
}

// PayLineRequest selects how much of one order line is being paid now.
// Quantity below the line's remaining quantity splits the line.
type PayLineRequest struct {
	OrderID  string `json:"orderId"  validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type PayOrderRequest struct {
	TableID  string           `json:"tableId"  validate:"required,uuid"`
	Lines    []PayLineRequest `json:"lines"    validate:"required,min=1,dive"`
	Discount decimal.Decimal  `json:"discount" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderAddonResponse struct {
	AddonID string          `json:"addonId"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
}

// OrderLineResponse is one line on the order board / payment screen.
// Remaining is quantity not yet paid for the logical item; only lines with
// Remaining > 0 are payable.
type OrderLineResponse struct {
	ID        string               `json:"id"`
	MenuID    string               `json:"menuId"`
	MenuName  string               `json:"menuName"`
	Addons    []OrderAddonResponse `json:"addons"`
	Quantity  int                  `json:"quantity"`
	Remaining int                  `json:"remaining"`
	IsFoc     bool                 `json:"isFoc"`
	Status    string               `json:"status"`
	SubTotal  decimal.Decimal      `json:"subTotal"`
	CreatedAt string               `json:"createdAt"`
}

type TableOrdersResponse struct {
	TableID  string              `json:"tableId"`
	Lines    []OrderLineResponse `json:"lines"`
	SubTotal decimal.Decimal     `json:"subTotal"`
}

type ReceiptResponse struct {
	ID        string              `json:"id"`
	Code      string              `json:"code"`
	TableID   string              `json:"tableId"`
	Lines     []OrderLineResponse `json:"lines"`
	SubTotal  decimal.Decimal     `json:"subTotal"`
	Discount  decimal.Decimal     `json:"discount"`
	Tax       decimal.Decimal     `json:"tax"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt string              `json:"createdAt"`
}

type ReceiptListResponse struct {
	Data  []ReceiptResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ReceiptFilter is bound from the query string of GET /v1/receipts.
type ReceiptFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = today
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}
