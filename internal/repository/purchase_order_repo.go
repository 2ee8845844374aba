package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error)

	// UpdateStatusTx flips status only when the row still holds the expected
	// prior status. The conditional WHERE is the optimistic guard that
	// serializes concurrent receive/cancel calls: the loser sees false.
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, from, to model.POStatus) (bool, error)

	UpdateHeaderTx(tx *gorm.DB, id uuid.UUID, supplierID, warehouseID uuid.UUID) error
	SetReceivedAtTx(tx *gorm.DB, id uuid.UUID, at time.Time) error
	ReplaceItemsTx(tx *gorm.DB, poID uuid.UUID, items []model.PurchaseOrderItem) error
	SetEditedTx(tx *gorm.DB, id uuid.UUID) error

	// DeleteTx removes the order and its lines; the caller must hold the
	// PENDING status check.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// NextCode yields the next human-readable order code from a sequence.
	NextCode(ctx context.Context, tx *gorm.DB) (string, error)

	DB() *gorm.DB
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) DB() *gorm.DB { return r.db }

func (r *purchaseOrderRepo) Create(ctx context.Context, tx *gorm.DB, po *model.PurchaseOrder) error {
	return tx.WithContext(ctx).Create(po).Error
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items.Item").Preload("Supplier").Preload("Warehouse").
		First(&po, id).Error
	return &po, err
}

func (r *purchaseOrderRepo) List(ctx context.Context, companyID uuid.UUID, filter dto.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Where("company_id = ?", companyID)

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var orders []model.PurchaseOrder
	err := q.Preload("Items.Item").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).Find(&orders).Error
	return orders, total, err
}

func (r *purchaseOrderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, from, to model.POStatus) (bool, error) {
	res := tx.Model(&model.PurchaseOrder{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *purchaseOrderRepo) UpdateHeaderTx(tx *gorm.DB, id uuid.UUID, supplierID, warehouseID uuid.UUID) error {
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).Updates(map[string]interface{}{
		"supplier_id":  supplierID,
		"warehouse_id": warehouseID,
	}).Error
}

func (r *purchaseOrderRepo) SetReceivedAtTx(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).
		Update("received_at", at).Error
}

func (r *purchaseOrderRepo) ReplaceItemsTx(tx *gorm.DB, poID uuid.UUID, items []model.PurchaseOrderItem) error {
	if err := tx.Where("purchase_order_id = ?", poID).
		Delete(&model.PurchaseOrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].PurchaseOrderID = poID
	}
	return tx.Create(&items).Error
}

func (r *purchaseOrderRepo) SetEditedTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).
		Update("is_edited", true).Error
}

func (r *purchaseOrderRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("purchase_order_id = ?", id).
		Delete(&model.PurchaseOrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.PurchaseOrder{}, id).Error
}

func (r *purchaseOrderRepo) NextCode(ctx context.Context, tx *gorm.DB) (string, error) {
	// PostgreSQL sequence keeps codes unique under concurrent creates.
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('purchase_orders_code_seq')").Scan(&num).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PO-%06d", num), nil
}
