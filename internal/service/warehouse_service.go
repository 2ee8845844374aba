package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// WarehouseService covers warehouses, the item catalog, suppliers, the stock
// report and manual ledger adjustments. All quantities cross the boundary in
// the caller's unit and live in base units inside.
type WarehouseService interface {
	CreateWarehouse(ctx context.Context, companyID uuid.UUID, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	ListWarehouses(ctx context.Context, companyID uuid.UUID) ([]dto.WarehouseResponse, error)

	CreateItem(ctx context.Context, companyID uuid.UUID, req dto.CreateWarehouseItemRequest) (*dto.WarehouseItemResponse, error)
	UpdateItem(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateWarehouseItemRequest) (*dto.WarehouseItemResponse, error)
	ListItems(ctx context.Context, companyID uuid.UUID) ([]dto.WarehouseItemResponse, error)

	GetStock(ctx context.Context, companyID, warehouseID uuid.UUID) (*dto.WarehouseStockResponse, error)
	AdjustStock(ctx context.Context, companyID uuid.UUID, req dto.AdjustStockRequest) error
	ListMovements(ctx context.Context, companyID uuid.UUID, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)

	CreateSupplier(ctx context.Context, companyID uuid.UUID, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	ListSuppliers(ctx context.Context, companyID uuid.UUID) ([]dto.SupplierResponse, error)
}

type warehouseService struct {
	repo         repository.WarehouseRepository
	supplierRepo repository.SupplierRepository
}

func NewWarehouseService(repo repository.WarehouseRepository, supplierRepo repository.SupplierRepository) WarehouseService {
	return &warehouseService{repo: repo, supplierRepo: supplierRepo}
}

// ── Warehouses ────────────────────────────────────────────────────────────────

func (s *warehouseService) CreateWarehouse(ctx context.Context, companyID uuid.UUID, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w := &model.Warehouse{
		CompanyID: companyID,
		Name:      req.Name,
		Address:   req.Address,
	}
	if err := s.repo.CreateWarehouse(ctx, w); err != nil {
		return nil, err
	}
	return &dto.WarehouseResponse{ID: w.ID.String(), Name: w.Name, Address: w.Address}, nil
}

func (s *warehouseService) ListWarehouses(ctx context.Context, companyID uuid.UUID) ([]dto.WarehouseResponse, error) {
	whs, err := s.repo.ListWarehouses(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(whs))
	for _, w := range whs {
		out = append(out, dto.WarehouseResponse{ID: w.ID.String(), Name: w.Name, Address: w.Address})
	}
	return out, nil
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (s *warehouseService) CreateItem(ctx context.Context, companyID uuid.UUID, req dto.CreateWarehouseItemRequest) (*dto.WarehouseItemResponse, error) {
	unit := model.Unit(req.Unit)
	cat, err := model.CategoryOf(unit)
	if err != nil {
		return nil, validationf(fmt.Sprintf("unknown unit %q", req.Unit))
	}
	if req.Threshold.IsNegative() {
		return nil, validationf("threshold cannot be negative")
	}
	thresholdBase, err := model.ToBaseUnit(req.Threshold, unit)
	if err != nil {
		return nil, validationf(err.Error())
	}

	item := &model.WarehouseItem{
		CompanyID:    companyID,
		Name:         req.Name,
		Unit:         unit,
		UnitCategory: cat,
		Threshold:    thresholdBase,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

// UpdateItem changes name and threshold. The unit is fixed at creation: every
// stored quantity for the item is denominated in its base unit, so changing
// category would silently rescale history.
func (s *warehouseService) UpdateItem(ctx context.Context, companyID, id uuid.UUID, req dto.UpdateWarehouseItemRequest) (*dto.WarehouseItemResponse, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil || item.CompanyID != companyID {
		return nil, validationf("item not found")
	}
	if req.Threshold.IsNegative() {
		return nil, validationf("threshold cannot be negative")
	}
	thresholdBase, err := model.ToBaseUnit(req.Threshold, item.Unit)
	if err != nil {
		return nil, validationf(err.Error())
	}

	item.Name = req.Name
	item.Threshold = thresholdBase
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *warehouseService) ListItems(ctx context.Context, companyID uuid.UUID) ([]dto.WarehouseItemResponse, error) {
	items, err := s.repo.ListItems(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *itemToResponse(&items[i]))
	}
	return out, nil
}

func itemToResponse(item *model.WarehouseItem) *dto.WarehouseItemResponse {
	threshold, _ := model.FromBaseUnit(item.Threshold, item.Unit)
	return &dto.WarehouseItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Unit:         string(item.Unit),
		UnitCategory: string(item.UnitCategory),
		Threshold:    threshold,
	}
}

// ── Stock ─────────────────────────────────────────────────────────────────────

func (s *warehouseService) GetStock(ctx context.Context, companyID, warehouseID uuid.UUID) (*dto.WarehouseStockResponse, error) {
	warehouse, err := s.repo.FindWarehouseByID(ctx, warehouseID)
	if err != nil || warehouse.CompanyID != companyID {
		return nil, validationf("warehouse not found")
	}
	stocks, err := s.repo.ListStock(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.StockRowResponse, 0, len(stocks))
	for _, st := range stocks {
		name, unit := "", model.UnitUNIT
		if st.Item != nil {
			name, unit = st.Item.Name, st.Item.Unit
		}
		qty, _ := model.FromBaseUnit(st.Quantity, unit)
		rows = append(rows, dto.StockRowResponse{
			ItemID:   st.ItemID.String(),
			ItemName: name,
			Unit:     string(unit),
			Quantity: qty,
		})
	}
	return &dto.WarehouseStockResponse{WarehouseID: warehouseID.String(), Rows: rows}, nil
}

// AdjustStock appends a MANUAL movement and applies it to the balance in one
// transaction. An OUT that would overdraw the balance fails whole.
func (s *warehouseService) AdjustStock(ctx context.Context, companyID uuid.UUID, req dto.AdjustStockRequest) error {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return validationf("invalid itemId")
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return validationf("invalid warehouseId")
	}
	if !req.Quantity.IsPositive() {
		return validationf("quantity must be greater than zero")
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil || item.CompanyID != companyID {
		return validationf("item not found")
	}
	warehouse, err := s.repo.FindWarehouseByID(ctx, warehouseID)
	if err != nil || warehouse.CompanyID != companyID {
		return validationf("warehouse not found")
	}

	unit := model.Unit(req.Unit)
	cat, err := model.CategoryOf(unit)
	if err != nil {
		return validationf(fmt.Sprintf("unknown unit %q", req.Unit))
	}
	if cat != item.UnitCategory {
		return validationf(fmt.Sprintf(
			"unit %s is %s but item %q is measured in %s", req.Unit, cat, item.Name, item.UnitCategory))
	}
	qtyBase, err := model.ToBaseUnit(req.Quantity, unit)
	if err != nil {
		return validationf(err.Error())
	}

	movType := model.MovementType(req.Type)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		mov := &model.StockMovement{
			ItemID:      itemID,
			WarehouseID: warehouseID,
			Type:        movType,
			Quantity:    qtyBase,
			Source:      model.SourceManual,
			Note:        req.Note,
		}
		if err := s.repo.CreateMovementTx(tx, mov); err != nil {
			return err
		}
		return s.repo.AddStockTx(tx, itemID, warehouseID, mov.Signed())
	})
	if errors.Is(txErr, repository.ErrInsufficientStock) {
		return conflictf(fmt.Sprintf("Not enough stock of %q to remove that quantity.", item.Name))
	}
	if txErr != nil {
		return txErr
	}

	log.Info().Str("item", item.Name).Str("type", req.Type).
		Str("quantity", qtyBase.String()).Msg("manual stock adjustment")
	return nil
}

func (s *warehouseService) ListMovements(ctx context.Context, companyID uuid.UUID, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movements, total, err := s.repo.ListMovements(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		name := ""
		if m.Item != nil {
			name = m.Item.Name
		}
		data = append(data, dto.StockMovementResponse{
			ID:        m.ID.String(),
			ItemID:    m.ItemID.String(),
			ItemName:  name,
			Type:      string(m.Type),
			Quantity:  m.Quantity,
			Source:    string(m.Source),
			Reference: m.Reference,
			Note:      m.Note,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.StockMovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (s *warehouseService) CreateSupplier(ctx context.Context, companyID uuid.UUID, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier := &model.Supplier{
		CompanyID: companyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplierToResponse(supplier), nil
}

func (s *warehouseService) ListSuppliers(ctx context.Context, companyID uuid.UUID) ([]dto.SupplierResponse, error) {
	suppliers, err := s.supplierRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func supplierToResponse(s *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}
