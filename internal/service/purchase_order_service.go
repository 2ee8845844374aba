package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PurchaseOrderService interface {
	Create(ctx context.Context, companyID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	// Update replaces a PENDING order wholesale. The bool is false when the
	// submitted payload matches the stored order and nothing was written.
	Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, bool, error)
	Receive(ctx context.Context, companyID, id uuid.UUID) error
	Cancel(ctx context.Context, companyID, id uuid.UUID) error
	Correct(ctx context.Context, companyID, id uuid.UUID, req dto.CorrectPurchaseOrderRequest) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	Get(ctx context.Context, companyID, id uuid.UUID) (*dto.PurchaseOrderResponse, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.PurchaseOrderFilter) (*dto.PurchaseOrderListResponse, error)
}

type purchaseOrderService struct {
	repo          repository.PurchaseOrderRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
}

func NewPurchaseOrderService(
	repo repository.PurchaseOrderRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
) PurchaseOrderService {
	return &purchaseOrderService{
		repo:          repo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
	}
}

// ── Line resolution ───────────────────────────────────────────────────────────

// resolveLines validates submitted lines against the item catalog and converts
// quantity and unit price into each item's canonical base unit. One row per
// distinct item; a repeated itemId is a validation error, not a merge.
func (s *purchaseOrderService) resolveLines(ctx context.Context, companyID uuid.UUID, lines []dto.PurchaseOrderLine) ([]model.PurchaseOrderItem, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, validationf(fmt.Sprintf("invalid itemId %q", line.ItemID))
		}
		if seen[itemID] {
			return nil, validationf(fmt.Sprintf("duplicate item %s: submit one line per item", line.ItemID))
		}
		seen[itemID] = true
		if !line.Quantity.IsPositive() {
			return nil, validationf("quantity must be greater than zero")
		}
		if !line.Price.IsPositive() {
			return nil, validationf("price must be greater than zero")
		}
		ids = append(ids, itemID)
	}

	items, err := s.warehouseRepo.FindItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.WarehouseItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	resolved := make([]model.PurchaseOrderItem, 0, len(lines))
	for _, line := range lines {
		itemID, _ := uuid.Parse(line.ItemID)
		item, ok := byID[itemID]
		if !ok || item.CompanyID != companyID {
			return nil, validationf(fmt.Sprintf("item %s not found", line.ItemID))
		}
		if !item.Active {
			return nil, validationf(fmt.Sprintf("item %q is inactive", item.Name))
		}

		unit := model.Unit(line.Unit)
		cat, err := model.CategoryOf(unit)
		if err != nil {
			return nil, validationf(fmt.Sprintf("unknown unit %q", line.Unit))
		}
		if cat != item.UnitCategory {
			return nil, validationf(fmt.Sprintf(
				"unit %s is %s but item %q is measured in %s", line.Unit, cat, item.Name, item.UnitCategory))
		}

		qtyBase, err := model.ToBaseUnit(line.Quantity, unit)
		if err != nil {
			return nil, validationf(err.Error())
		}
		// Price per submitted unit divided by the base factor is the price per
		// base unit — the same conversion FromBaseUnit does.
		priceBase, err := model.FromBaseUnit(line.Price, unit)
		if err != nil {
			return nil, validationf(err.Error())
		}

		resolved = append(resolved, model.PurchaseOrderItem{
			ItemID:    itemID,
			Quantity:  qtyBase,
			UnitPrice: priceBase,
		})
	}
	return resolved, nil
}

func (s *purchaseOrderService) resolveHeader(ctx context.Context, companyID uuid.UUID, supplierID, warehouseID string) (uuid.UUID, uuid.UUID, error) {
	sid, err := uuid.Parse(supplierID)
	if err != nil {
		return uuid.Nil, uuid.Nil, validationf("invalid supplierId")
	}
	wid, err := uuid.Parse(warehouseID)
	if err != nil {
		return uuid.Nil, uuid.Nil, validationf("invalid warehouseId")
	}
	supplier, err := s.supplierRepo.FindByID(ctx, sid)
	if err != nil || supplier.CompanyID != companyID {
		return uuid.Nil, uuid.Nil, validationf("supplier not found")
	}
	warehouse, err := s.warehouseRepo.FindWarehouseByID(ctx, wid)
	if err != nil || warehouse.CompanyID != companyID {
		return uuid.Nil, uuid.Nil, validationf("warehouse not found")
	}
	return sid, wid, nil
}

// ── Create ────────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Create(ctx context.Context, companyID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplierID, warehouseID, err := s.resolveHeader(ctx, companyID, req.SupplierID, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	items, err := s.resolveLines(ctx, companyID, req.Items)
	if err != nil {
		return nil, err
	}

	var po model.PurchaseOrder
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		code, err := s.repo.NextCode(ctx, tx)
		if err != nil {
			return err
		}
		po = model.PurchaseOrder{
			CompanyID:   companyID,
			Code:        code,
			SupplierID:  supplierID,
			WarehouseID: warehouseID,
			Status:      model.POPending,
			Items:       items,
		}
		return s.repo.Create(ctx, tx, &po)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("code", po.Code).Int("lines", len(items)).Msg("purchase order created")
	return purchaseOrderToResponse(&po), nil
}

// ── Update ────────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Update(ctx context.Context, companyID, id uuid.UUID, req dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, bool, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil || po.CompanyID != companyID {
		return nil, false, validationf("purchase order not found")
	}
	if po.Status != model.POPending {
		return nil, false, conflictf("Only pending purchase orders can be edited.")
	}

	supplierID, warehouseID, err := s.resolveHeader(ctx, companyID, req.SupplierID, req.WarehouseID)
	if err != nil {
		return nil, false, err
	}
	items, err := s.resolveLines(ctx, companyID, req.Items)
	if err != nil {
		return nil, false, err
	}

	if samePurchaseOrder(po, supplierID, warehouseID, items) {
		return purchaseOrderToResponse(po), false, nil
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeaderTx(tx, id, supplierID, warehouseID); err != nil {
			return err
		}
		return s.repo.ReplaceItemsTx(tx, id, items)
	})
	if txErr != nil {
		return nil, false, txErr
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, true, err
	}
	return purchaseOrderToResponse(updated), true, nil
}

// samePurchaseOrder reports whether the resolved payload matches the stored
// order field for field, so a no-op save writes nothing.
func samePurchaseOrder(po *model.PurchaseOrder, supplierID, warehouseID uuid.UUID, items []model.PurchaseOrderItem) bool {
	if po.SupplierID != supplierID || po.WarehouseID != warehouseID {
		return false
	}
	if len(po.Items) != len(items) {
		return false
	}
	existing := make(map[uuid.UUID]model.PurchaseOrderItem, len(po.Items))
	for _, it := range po.Items {
		existing[it.ItemID] = it
	}
	for _, it := range items {
		cur, ok := existing[it.ItemID]
		if !ok || !cur.Quantity.Equal(it.Quantity) || !cur.UnitPrice.Equal(it.UnitPrice) {
			return false
		}
	}
	return true
}

// ── Receive ───────────────────────────────────────────────────────────────────

// Receive flips PENDING → RECEIVED and applies the order to the ledger in one
// transaction: an IN movement plus a balance increment per line. The guarded
// status update serializes concurrent receives; the loser gets a conflict and
// the stock is applied exactly once.
func (s *purchaseOrderService) Receive(ctx context.Context, companyID, id uuid.UUID) error {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil || po.CompanyID != companyID {
		return validationf("purchase order not found")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.UpdateStatusTx(tx, id, model.POPending, model.POReceived)
		if err != nil {
			return err
		}
		if !ok {
			return receiveConflict(po.Status)
		}

		if err := s.repo.SetReceivedAtTx(tx, id, time.Now()); err != nil {
			return err
		}

		ref := po.Code
		for _, line := range po.Items {
			mov := &model.StockMovement{
				ItemID:      line.ItemID,
				WarehouseID: po.WarehouseID,
				Type:        model.MovementIn,
				Quantity:    line.Quantity,
				Source:      model.SourcePurchaseOrder,
				Reference:   &ref,
			}
			if err := s.warehouseRepo.CreateMovementTx(tx, mov); err != nil {
				return err
			}
			if err := s.warehouseRepo.AddStockTx(tx, line.ItemID, po.WarehouseID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	log.Info().Str("code", po.Code).Msg("purchase order received")
	return nil
}

func receiveConflict(status model.POStatus) error {
	switch status {
	case model.POReceived:
		return conflictf("Purchase order has already been received.")
	case model.POCancelled:
		return conflictf("Cannot receive a cancelled purchase order.")
	default:
		// Status moved underneath us between the read and the guarded update.
		return conflictf("Purchase order is no longer pending.")
	}
}

// ── Cancel ────────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Cancel(ctx context.Context, companyID, id uuid.UUID) error {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil || po.CompanyID != companyID {
		return validationf("purchase order not found")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.UpdateStatusTx(tx, id, model.POPending, model.POCancelled)
		if err != nil {
			return err
		}
		if !ok {
			if po.Status == model.POReceived {
				return conflictf("Cannot cancel a received purchase order. Correct it instead.")
			}
			return conflictf("Purchase order has already been cancelled.")
		}
		return nil
	})
}

// ── Correct ───────────────────────────────────────────────────────────────────

// Correct rewrites the recorded lines of a RECEIVED order and settles the
// ledger with compensating CORRECTION movements per item delta. An item
// dropped from the correction gets a full compensating OUT; a new item gets a
// full IN. Zero deltas write no movement. Status stays RECEIVED; the order is
// flagged edited.
func (s *purchaseOrderService) Correct(ctx context.Context, companyID, id uuid.UUID, req dto.CorrectPurchaseOrderRequest) error {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil || po.CompanyID != companyID {
		return validationf("purchase order not found")
	}
	if po.Status != model.POReceived {
		if po.Status == model.POPending {
			return conflictf("Pending purchase orders are edited, not corrected.")
		}
		return conflictf("Cannot correct a cancelled purchase order.")
	}

	items, err := s.resolveLines(ctx, companyID, req.Items)
	if err != nil {
		return err
	}

	previous := make(map[uuid.UUID]model.PurchaseOrderItem, len(po.Items))
	for _, line := range po.Items {
		previous[line.ItemID] = line
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-assert RECEIVED under the transaction; a concurrent correction is
		// fine, but a status change is not.
		ok, err := s.repo.UpdateStatusTx(tx, id, model.POReceived, model.POReceived)
		if err != nil {
			return err
		}
		if !ok {
			return conflictf("Purchase order is no longer received.")
		}

		ref := po.Code
		note := "purchase order correction"

		apply := func(itemID uuid.UUID, deltaBase model.StockMovement) error {
			if err := s.warehouseRepo.CreateMovementTx(tx, &deltaBase); err != nil {
				return err
			}
			return s.warehouseRepo.AddStockTx(tx, itemID, po.WarehouseID, deltaBase.Signed())
		}

		for _, line := range items {
			prev, had := previous[line.ItemID]
			delta := line.Quantity
			if had {
				delta = line.Quantity.Sub(prev.Quantity)
			}
			if delta.IsZero() {
				continue
			}
			movType := model.MovementIn
			if delta.IsNegative() {
				movType = model.MovementOut
			}
			if err := apply(line.ItemID, model.StockMovement{
				ItemID:      line.ItemID,
				WarehouseID: po.WarehouseID,
				Type:        movType,
				Quantity:    delta.Abs(),
				Source:      model.SourceCorrection,
				Reference:   &ref,
				Note:        &note,
			}); err != nil {
				return err
			}
			delete(previous, line.ItemID)
		}

		// Items dropped from the correction: back out their full quantity.
		for itemID, prev := range previous {
			if err := apply(itemID, model.StockMovement{
				ItemID:      itemID,
				WarehouseID: po.WarehouseID,
				Type:        model.MovementOut,
				Quantity:    prev.Quantity,
				Source:      model.SourceCorrection,
				Reference:   &ref,
				Note:        &note,
			}); err != nil {
				return err
			}
		}

		if err := s.repo.ReplaceItemsTx(tx, id, items); err != nil {
			return err
		}
		return s.repo.SetEditedTx(tx, id)
	})
	if txErr != nil {
		return txErr
	}

	log.Info().Str("code", po.Code).Msg("purchase order corrected")
	return nil
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil || po.CompanyID != companyID {
		return validationf("purchase order not found")
	}
	switch po.Status {
	case model.POReceived:
		return conflictf("Cannot delete a received purchase order. Stock has already been updated.")
	case model.POCancelled:
		return conflictf("Cannot delete a cancelled purchase order.")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// The guarded flip doubles as the PENDING check inside the transaction.
		ok, err := s.repo.UpdateStatusTx(tx, id, model.POPending, model.POPending)
		if err != nil {
			return err
		}
		if !ok {
			return conflictf("Purchase order is no longer pending.")
		}
		return s.repo.DeleteTx(tx, id)
	})
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *purchaseOrderService) Get(ctx context.Context, companyID, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil || po.CompanyID != companyID {
		return nil, validationf("purchase order not found")
	}
	return purchaseOrderToResponse(po), nil
}

func (s *purchaseOrderService) List(ctx context.Context, companyID uuid.UUID, filter dto.PurchaseOrderFilter) (*dto.PurchaseOrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *purchaseOrderToResponse(&orders[i]))
	}
	return &dto.PurchaseOrderListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func purchaseOrderToResponse(po *model.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, line := range po.Items {
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		items = append(items, dto.PurchaseOrderItemResponse{
			ItemID:    line.ItemID.String(),
			ItemName:  name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	resp := &dto.PurchaseOrderResponse{
		ID:          po.ID.String(),
		Code:        po.Code,
		SupplierID:  po.SupplierID.String(),
		WarehouseID: po.WarehouseID.String(),
		Status:      string(po.Status),
		IsEdited:    po.IsEdited,
		Items:       items,
		CreatedAt:   po.CreatedAt.Format(time.RFC3339),
	}
	if po.ReceivedAt != nil {
		ts := po.ReceivedAt.Format(time.RFC3339)
		resp.ReceivedAt = &ts
	}
	return resp
}
