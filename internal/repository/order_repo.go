package repository

import (
	"context"
	"fmt"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, orders []model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// ListActiveByTable returns unpaid, uncancelled lines for a table.
	ListActiveByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error

	// Payment primitives — all run inside the payment transaction.
	MarkPaidTx(tx *gorm.DB, id uuid.UUID, receiptID uuid.UUID) error
	SetQuantityTx(tx *gorm.DB, id uuid.UUID, newQty int) error
	CreateSplitPaidTx(tx *gorm.DB, o *model.Order) error

	CreateReceiptTx(tx *gorm.DB, rec *model.Receipt) error
	NextReceiptCode(ctx context.Context, tx *gorm.DB) (string, error)
	FindReceiptByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	ListReceipts(ctx context.Context, companyID uuid.UUID, filter dto.ReceiptFilter) ([]model.Receipt, int64, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, orders []model.Order) error {
	return tx.Create(&orders).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Menu").Preload("Addons.Addon").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) ListActiveByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Menu").Preload("Addons.Addon").
		Where("table_id = ? AND status IN ?", tableID,
			[]model.OrderStatus{model.OrderPending, model.OrderCooking, model.OrderComplete}).
		Order("created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) MarkPaidTx(tx *gorm.DB, id uuid.UUID, receiptID uuid.UUID) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.OrderPaid,
		"receipt_id": receiptID,
	}).Error
}

func (r *orderRepo) SetQuantityTx(tx *gorm.DB, id uuid.UUID, newQty int) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).
		Update("quantity", newQty).Error
}

func (r *orderRepo) CreateSplitPaidTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) CreateReceiptTx(tx *gorm.DB, rec *model.Receipt) error {
	return tx.Create(rec).Error
}

func (r *orderRepo) NextReceiptCode(ctx context.Context, tx *gorm.DB) (string, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('receipts_code_seq')").Scan(&num).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("R-%06d", num), nil
}

func (r *orderRepo) FindReceiptByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Orders.Menu").Preload("Orders.Addons.Addon").
		First(&rec, id).Error
	return &rec, err
}

func (r *orderRepo) ListReceipts(ctx context.Context, companyID uuid.UUID, filter dto.ReceiptFilter) ([]model.Receipt, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Receipt{}).Where("company_id = ?", companyID)

	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var receipts []model.Receipt
	err := q.Preload("Orders.Menu").Preload("Orders.Addons.Addon").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).Find(&receipts).Error
	return receipts, total, err
}
