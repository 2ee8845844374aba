package dto

import "github.com/shopspring/decimal"

// ─── Menus / addons ──────────────────────────────────────────────────────────

type CreateMenuRequest struct {
	Name        string          `json:"name"  validate:"required"`
	Description *string         `json:"description"`
	CategoryID  *string         `json:"categoryId" validate:"omitempty,uuid"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

type MenuResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	CategoryID  *string         `json:"categoryId,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
}

type CreateAddonRequest struct {
	Name       string          `json:"name"       validate:"required"`
	CategoryID string          `json:"categoryId" validate:"required,uuid"`
	Price      decimal.Decimal `json:"price"      validate:"min=0"`
}

type AddonResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ─── Ingredient mappings ─────────────────────────────────────────────────────

// SetMenuIngredientsRequest replaces a menu's ingredient mappings wholesale.
// Quantities are submitted in Unit and stored in the item's base unit.
type IngredientLine struct {
	ItemID   string          `json:"itemId"   validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Unit     string          `json:"unit"     validate:"required,oneof=G KG ML L VISS LB OZ GAL DOZ UNIT"`
}

type SetMenuIngredientsRequest struct {
	Ingredients []IngredientLine `json:"ingredients" validate:"required,dive"`
}

type SetAddonIngredientsRequest struct {
	// MenuID scopes the mapping to one menu; empty applies globally.
	MenuID      *string          `json:"menuId" validate:"omitempty,uuid"`
	Ingredients []IngredientLine `json:"ingredients" validate:"required,dive"`
}

type IngredientMappingResponse struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Quantity decimal.Decimal `json:"quantity"` // base units
}

// ─── Promotions ──────────────────────────────────────────────────────────────

// PromotionConditionRequest is the tagged variant validated at the boundary.
// kind=time_window requires start/end; kind=day_of_week requires days.
type PromotionConditionRequest struct {
	Kind  string   `json:"kind"  validate:"required,oneof=time_window day_of_week"`
	Start string   `json:"start" validate:"required_if=Kind time_window,omitempty,datetime=15:04"`
	End   string   `json:"end"   validate:"required_if=Kind time_window,omitempty,datetime=15:04"`
	Days  []string `json:"days"  validate:"required_if=Kind day_of_week,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
}

type CreatePromotionRequest struct {
	Name           string                      `json:"name" validate:"required"`
	DiscountAmount decimal.Decimal             `json:"discountAmount" validate:"min=0"`
	FocMenuID      *string                     `json:"focMenuId" validate:"omitempty,uuid"`
	Conditions     []PromotionConditionRequest `json:"conditions" validate:"dive"`
}

type PromotionResponse struct {
	ID             string                      `json:"id"`
	Name           string                      `json:"name"`
	DiscountAmount decimal.Decimal             `json:"discountAmount"`
	FocMenuID      *string                     `json:"focMenuId,omitempty"`
	Conditions     []PromotionConditionRequest `json:"conditions,omitempty"`
	Active         bool                        `json:"active"`
	ActiveNow      bool                        `json:"activeNow"`
}
