package dto

import "github.com/shopspring/decimal"

// ─── Availability checker output ─────────────────────────────────────────────
// The four arrays below are the whole contract of one checker run; the same
// shapes are serialized into the persisted snapshot.

// MenuWithoutIngredients is a menu with zero ingredient mappings.
type MenuWithoutIngredients struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddonRef identifies an unmapped addon inside its menu context.
type AddonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddonsWithoutIngredients groups unmapped addons by the menu they appear
// under. MenuID is empty for addons sold globally.
type AddonsWithoutIngredients struct {
	MenuID   string     `json:"menuId"`
	MenuName string     `json:"menuName"`
	Addons   []AddonRef `json:"addons"`
}

// NotEnoughIngredient is a hard-demand shortage: aggregate required quantity
// across every mapping referencing the item exceeds current stock.
type NotEnoughIngredient struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Required decimal.Decimal `json:"required"`
	Stock    decimal.Decimal `json:"stock"`
	Shortage decimal.Decimal `json:"shortage"`
}

// HitThresholdStock is a reorder signal: stock at or below the configured
// threshold, independent of demand.
type HitThresholdStock struct {
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Threshold decimal.Decimal `json:"threshold"`
	Stock     decimal.Decimal `json:"stock"`
}

// WMSCheckData is the live result returned to interactive callers.
type WMSCheckData struct {
	MenusWithoutIngredients  []MenuWithoutIngredients   `json:"menusWithoutIngredients"`
	AddonsWithoutIngredients []AddonsWithoutIngredients `json:"addonsWithoutIngredients"`
	NotEnoughIngredients     []NotEnoughIngredient      `json:"notEnoughIngredients"`
	HitThresholdStocks       []HitThresholdStock        `json:"hitThresholdStocks"`
}

// IssuesCount is the sum of all four array lengths.
func (d *WMSCheckData) IssuesCount() int {
	return len(d.MenusWithoutIngredients) + len(d.AddonsWithoutIngredients) +
		len(d.NotEnoughIngredients) + len(d.HitThresholdStocks)
}

// CronCheckResponse is returned to the scheduler endpoint.
type CronCheckResponse struct {
	Success             bool   `json:"success"`
	Timestamp           string `json:"timestamp"`
	IssuesCount         int    `json:"issuesCount"`
	NotificationCreated bool   `json:"notificationCreated"`
	Details             struct {
		MenusWithoutIngredients  int `json:"menusWithoutIngredients"`
		AddonsWithoutIngredients int `json:"addonsWithoutIngredients"`
		NotEnoughIngredients     int `json:"notEnoughIngredients"`
		HitThresholdStocks       int `json:"hitThresholdStocks"`
	} `json:"details"`
}
