package repository

import (
	"context"
	"errors"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned by AddStockTx when an OUT delta would push
// a balance below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// WarehouseRepository is the data access contract for warehouses, items,
// balances and the movement ledger. Balance writes only exist in their Tx
// forms: every caller must pair them with a movement insert inside one
// transaction, which is how the ledger invariant is kept.
type WarehouseRepository interface {
	CreateWarehouse(ctx context.Context, w *model.Warehouse) error
	ListWarehouses(ctx context.Context, companyID uuid.UUID) ([]model.Warehouse, error)
	FindWarehouseByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error)

	CreateItem(ctx context.Context, item *model.WarehouseItem) error
	UpdateItem(ctx context.Context, item *model.WarehouseItem) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.WarehouseItem, error)
	FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.WarehouseItem, error)
	ListItems(ctx context.Context, companyID uuid.UUID) ([]model.WarehouseItem, error)

	ListStock(ctx context.Context, warehouseID uuid.UUID) ([]model.WarehouseStock, error)
	ListStockByCompany(ctx context.Context, companyID uuid.UUID) ([]model.WarehouseStock, error)

	// CreateMovementTx appends one immutable ledger entry.
	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error
	// AddStockTx applies a signed delta (base units) to the balance row,
	// creating it on first IN. A delta that would make the balance negative
	// fails with ErrInsufficientStock and writes nothing.
	AddStockTx(tx *gorm.DB, itemID, warehouseID uuid.UUID, delta decimal.Decimal) error

	ListMovements(ctx context.Context, companyID uuid.UUID, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type warehouseRepo struct{ db *gorm.DB }

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository { return &warehouseRepo{db: db} }

func (r *warehouseRepo) DB() *gorm.DB { return r.db }

func (r *warehouseRepo) CreateWarehouse(ctx context.Context, w *model.Warehouse) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *warehouseRepo) ListWarehouses(ctx context.Context, companyID uuid.UUID) ([]model.Warehouse, error) {
	var whs []model.Warehouse
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("name ASC").Find(&whs).Error
	return whs, err
}

func (r *warehouseRepo) FindWarehouseByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).First(&w, id).Error
	return &w, err
}

func (r *warehouseRepo) CreateItem(ctx context.Context, item *model.WarehouseItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *warehouseRepo) UpdateItem(ctx context.Context, item *model.WarehouseItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *warehouseRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.WarehouseItem, error) {
	var item model.WarehouseItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

func (r *warehouseRepo) FindItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.WarehouseItem, error) {
	var items []model.WarehouseItem
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *warehouseRepo) ListItems(ctx context.Context, companyID uuid.UUID) ([]model.WarehouseItem, error) {
	var items []model.WarehouseItem
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("name ASC").Find(&items).Error
	return items, err
}

func (r *warehouseRepo) ListStock(ctx context.Context, warehouseID uuid.UUID) ([]model.WarehouseStock, error) {
	var stocks []model.WarehouseStock
	err := r.db.WithContext(ctx).Preload("Item").
		Where("warehouse_id = ?", warehouseID).Find(&stocks).Error
	return stocks, err
}

func (r *warehouseRepo) ListStockByCompany(ctx context.Context, companyID uuid.UUID) ([]model.WarehouseStock, error) {
	var stocks []model.WarehouseStock
	err := r.db.WithContext(ctx).Preload("Item").
		Joins("JOIN warehouse_items ON warehouse_items.id = warehouse_stocks.item_id").
		Where("warehouse_items.company_id = ?", companyID).
		Find(&stocks).Error
	return stocks, err
}

func (r *warehouseRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *warehouseRepo) AddStockTx(tx *gorm.DB, itemID, warehouseID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsNegative() {
		// Guarded decrement: the WHERE clause is the optimistic check that
		// keeps the balance non-negative under concurrent writers.
		res := tx.Model(&model.WarehouseStock{}).
			Where("item_id = ? AND warehouse_id = ? AND quantity + ? >= 0", itemID, warehouseID, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}
		return nil
	}

	res := tx.Model(&model.WarehouseStock{}).
		Where("item_id = ? AND warehouse_id = ?", itemID, warehouseID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// First movement for this (item, warehouse) pair.
		return tx.Create(&model.WarehouseStock{
			ItemID:      itemID,
			WarehouseID: warehouseID,
			Quantity:    delta,
		}).Error
	}
	return nil
}

func (r *warehouseRepo) ListMovements(ctx context.Context, companyID uuid.UUID, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).Preload("Item").
		Joins("JOIN warehouse_items ON warehouse_items.id = stock_movements.item_id").
		Where("warehouse_items.company_id = ?", companyID)

	if filter.ItemID != "" {
		q = q.Where("stock_movements.item_id = ?", filter.ItemID)
	}
	if filter.WarehouseID != "" {
		q = q.Where("stock_movements.warehouse_id = ?", filter.WarehouseID)
	}
	if filter.Source != "" {
		q = q.Where("stock_movements.source = ?", filter.Source)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movements []model.StockMovement
	err := q.Order("stock_movements.created_at DESC").
		Offset(offset).Limit(filter.Limit).Find(&movements).Error
	return movements, total, err
}
