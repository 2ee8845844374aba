package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/realtime"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// ResolveTable maps a scanned QR token to its table; the ordering page is
	// the only unauthenticated surface and this is its entry point.
	ResolveTable(ctx context.Context, qrToken string) (*model.DiningTable, error)

	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.TableOrdersResponse, error)
	GetTableOrders(ctx context.Context, tableID uuid.UUID) (*dto.TableOrdersResponse, error)
	UpdateStatus(ctx context.Context, companyID, orderID uuid.UUID, status string) error

	Pay(ctx context.Context, companyID uuid.UUID, req dto.PayOrderRequest) (*dto.ReceiptResponse, error)
	GetReceipt(ctx context.Context, companyID, id uuid.UUID) (*dto.ReceiptResponse, error)
	ListReceipts(ctx context.Context, companyID uuid.UUID, filter dto.ReceiptFilter) (*dto.ReceiptListResponse, error)
}

type orderService struct {
	repo          repository.OrderRepository
	menuRepo      repository.MenuRepository
	userRepo      repository.UserRepository
	promotionRepo repository.PromotionRepository
	publisher     *realtime.Publisher
}

func NewOrderService(
	repo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	userRepo repository.UserRepository,
	promotionRepo repository.PromotionRepository,
	publisher *realtime.Publisher,
) OrderService {
	return &orderService{
		repo:          repo,
		menuRepo:      menuRepo,
		userRepo:      userRepo,
		promotionRepo: promotionRepo,
		publisher:     publisher,
	}
}

// ── Table resolution ──────────────────────────────────────────────────────────

func (s *orderService) ResolveTable(ctx context.Context, qrToken string) (*model.DiningTable, error) {
	table, err := s.userRepo.FindTableByQRToken(ctx, qrToken)
	if err != nil {
		return nil, validationf("table not found")
	}
	return table, nil
}

// companyForTable walks table → location → company.
func (s *orderService) companyForTable(ctx context.Context, table *model.DiningTable) (uuid.UUID, *model.Location, error) {
	location, err := s.userRepo.FindLocationByID(ctx, table.LocationID)
	if err != nil {
		return uuid.Nil, nil, validationf("table has no location")
	}
	return location.CompanyID, location, nil
}

// ── Create ────────────────────────────────────────────────────────────────────

// CreateOrder validates the cart against the catalog and writes one row per
// submitted line. A line whose menu and addon set match an existing PENDING
// line is merged into it instead. Active free-of-charge promotions append a
// zero-priced line once per table.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.TableOrdersResponse, error) {
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return nil, validationf("invalid tableId")
	}
	table, err := s.userRepo.FindTableByID(ctx, tableID)
	if err != nil {
		return nil, validationf("table not found")
	}
	companyID, _, err := s.companyForTable(ctx, table)
	if err != nil {
		return nil, err
	}

	addons, err := s.resolveCatalog(ctx, companyID, req.Lines)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListActiveByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	var newOrders []model.Order
	type mergeTarget struct {
		id  uuid.UUID
		qty int
	}
	var merges []mergeTarget

	for _, line := range req.Lines {
		menuID, _ := uuid.Parse(line.MenuID)
		addonIDs := make([]uuid.UUID, 0, len(line.AddonIDs))
		for _, raw := range line.AddonIDs {
			id, _ := uuid.Parse(raw)
			addonIDs = append(addonIDs, id)
		}

		if target := findMergeable(existing, menuID, addonIDs); target != nil {
			merges = append(merges, mergeTarget{id: target.ID, qty: target.Quantity + line.Quantity})
			target.Quantity += line.Quantity
			continue
		}

		order := model.Order{
			CompanyID: companyID,
			TableID:   tableID,
			MenuID:    menuID,
			Quantity:  line.Quantity,
			Status:    model.OrderPending,
		}
		for _, addonID := range addonIDs {
			order.Addons = append(order.Addons, model.OrderAddon{
				AddonID: addonID,
				Price:   addons[addonID].Price,
			})
		}
		newOrders = append(newOrders, order)
	}

	focOrders, err := s.promotionGrants(ctx, companyID, tableID, existing)
	if err != nil {
		return nil, err
	}
	newOrders = append(newOrders, focOrders...)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, m := range merges {
			if err := s.repo.SetQuantityTx(tx, m.id, m.qty); err != nil {
				return err
			}
		}
		if len(newOrders) == 0 {
			return nil
		}
		return s.repo.CreateTx(tx, newOrders)
	})
	if txErr != nil {
		return nil, txErr
	}

	ids := make([]string, 0, len(newOrders))
	for _, o := range newOrders {
		ids = append(ids, o.ID.String())
	}
	s.publisher.Publish(ctx, companyID, realtime.OrderEvent{
		Type: "order_created", TableID: tableID.String(), OrderIDs: ids,
	})

	return s.GetTableOrders(ctx, tableID)
}

// resolveCatalog checks every referenced menu and addon exists, is active and
// belongs to the company, and returns the addons for price snapshotting.
func (s *orderService) resolveCatalog(ctx context.Context, companyID uuid.UUID, lines []dto.OrderLineRequest) (map[uuid.UUID]model.Addon, error) {
	menuIDs := make([]uuid.UUID, 0, len(lines))
	var addonIDs []uuid.UUID
	for _, line := range lines {
		menuID, err := uuid.Parse(line.MenuID)
		if err != nil {
			return nil, validationf("invalid menuId")
		}
		menuIDs = append(menuIDs, menuID)
		for _, raw := range line.AddonIDs {
			addonID, err := uuid.Parse(raw)
			if err != nil {
				return nil, validationf("invalid addonId")
			}
			addonIDs = append(addonIDs, addonID)
		}
	}

	menuRows, err := s.menuRepo.FindMenusByIDs(ctx, menuIDs)
	if err != nil {
		return nil, err
	}
	menus := make(map[uuid.UUID]model.Menu, len(menuRows))
	for _, m := range menuRows {
		menus[m.ID] = m
	}
	for _, id := range menuIDs {
		m, ok := menus[id]
		if !ok || m.CompanyID != companyID || !m.Active {
			return nil, validationf(fmt.Sprintf("menu %s not available", id))
		}
	}

	addons := make(map[uuid.UUID]model.Addon)
	if len(addonIDs) > 0 {
		addonRows, err := s.menuRepo.FindAddonsByIDs(ctx, addonIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range addonRows {
			addons[a.ID] = a
		}
		for _, id := range addonIDs {
			a, ok := addons[id]
			if !ok || a.CompanyID != companyID || !a.Active {
				return nil, validationf(fmt.Sprintf("addon %s not available", id))
			}
		}
	}
	return addons, nil
}

// findMergeable returns the existing PENDING line with the same menu and addon
// combination, or nil. Promotion-granted lines never merge.
func findMergeable(existing []model.Order, menuID uuid.UUID, addonIDs []uuid.UUID) *model.Order {
	want := addonKey(addonIDs)
	for i := range existing {
		o := &existing[i]
		if o.Status != model.OrderPending || o.IsFoc || o.MenuID != menuID {
			continue
		}
		have := make([]uuid.UUID, 0, len(o.Addons))
		for _, a := range o.Addons {
			have = append(have, a.AddonID)
		}
		if addonKey(have) == want {
			return o
		}
	}
	return nil
}

func addonKey(ids []uuid.UUID) string {
	ss := make([]string, 0, len(ids))
	for _, id := range ids {
		ss = append(ss, id.String())
	}
	sort.Strings(ss)
	return strings.Join(ss, ",")
}

// promotionGrants builds FOC lines for active free-menu promotions the table
// has not been granted yet.
func (s *orderService) promotionGrants(ctx context.Context, companyID, tableID uuid.UUID, existing []model.Order) ([]model.Order, error) {
	promos, err := s.promotionRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	granted := make(map[uuid.UUID]bool)
	for _, o := range existing {
		if o.PromotionID != nil {
			granted[*o.PromotionID] = true
		}
	}

	var orders []model.Order
	for i := range promos {
		p := &promos[i]
		if p.FocMenuID == nil || !p.ActiveAt(now) || granted[p.ID] {
			continue
		}
		promoID := p.ID
		orders = append(orders, model.Order{
			CompanyID:   companyID,
			TableID:     tableID,
			MenuID:      *p.FocMenuID,
			Quantity:    1,
			Status:      model.OrderPending,
			IsFoc:       true,
			PromotionID: &promoID,
		})
	}
	return orders, nil
}

// ── Board / status ────────────────────────────────────────────────────────────

func (s *orderService) GetTableOrders(ctx context.Context, tableID uuid.UUID) (*dto.TableOrdersResponse, error) {
	orders, err := s.repo.ListActiveByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.OrderLineResponse, 0, len(orders))
	subTotal := decimal.Zero
	for i := range orders {
		line := orderToLine(&orders[i])
		subTotal = subTotal.Add(line.SubTotal)
		lines = append(lines, line)
	}
	return &dto.TableOrdersResponse{
		TableID:  tableID.String(),
		Lines:    lines,
		SubTotal: subTotal,
	}, nil
}

// statusTransitions lists the states each unpaid state may move to. PAID is
// only reachable through payment; PAID and CANCELLED are terminal.
var statusTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderPending:  {model.OrderCooking, model.OrderCancelled},
	model.OrderCooking:  {model.OrderPending, model.OrderComplete, model.OrderCancelled},
	model.OrderComplete: {model.OrderCooking, model.OrderCancelled},
}

func (s *orderService) UpdateStatus(ctx context.Context, companyID, orderID uuid.UUID, status string) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil || order.CompanyID != companyID {
		return validationf("order not found")
	}

	next := model.OrderStatus(status)
	allowed := false
	for _, t := range statusTransitions[order.Status] {
		if t == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return conflictf(fmt.Sprintf("Cannot move order from %s to %s.", order.Status, next))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return err
	}
	s.publisher.Publish(ctx, companyID, realtime.OrderEvent{
		Type: "order_status", TableID: order.TableID.String(), OrderIDs: []string{orderID.String()},
	})
	return nil
}

// ── Payment ───────────────────────────────────────────────────────────────────

// Pay settles the selected lines into one receipt:
//
//	subtotal = Σ (menu price + Σ addon prices) × paid qty, FOC lines → 0
//	net      = max(subtotal − discount, 0)
//	total    = net + tax          (tax = location rate % of net)
//
// A line paid below its quantity is split: a new PAID record carries the paid
// quantity and points back via PaidFrom; the original keeps the remainder.
func (s *orderService) Pay(ctx context.Context, companyID uuid.UUID, req dto.PayOrderRequest) (*dto.ReceiptResponse, error) {
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return nil, validationf("invalid tableId")
	}
	table, err := s.userRepo.FindTableByID(ctx, tableID)
	if err != nil {
		return nil, validationf("table not found")
	}
	tableCompany, location, err := s.companyForTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if tableCompany != companyID {
		return nil, validationf("table not found")
	}
	if req.Discount.IsNegative() {
		return nil, validationf("discount cannot be negative")
	}

	active, err := s.repo.ListActiveByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Order, len(active))
	for i := range active {
		byID[active[i].ID] = &active[i]
	}

	type payment struct {
		order *model.Order
		qty   int
	}
	payments := make([]payment, 0, len(req.Lines))
	seen := make(map[uuid.UUID]bool, len(req.Lines))
	subTotal := decimal.Zero

	for _, line := range req.Lines {
		orderID, err := uuid.Parse(line.OrderID)
		if err != nil {
			return nil, validationf("invalid orderId")
		}
		if seen[orderID] {
			return nil, validationf(fmt.Sprintf("duplicate order line %s", line.OrderID))
		}
		seen[orderID] = true
		order, ok := byID[orderID]
		if !ok {
			return nil, validationf(fmt.Sprintf("order %s is not payable", line.OrderID))
		}
		if line.Quantity > order.Quantity {
			return nil, validationf(fmt.Sprintf(
				"order %s has only %d remaining", line.OrderID, order.Quantity))
		}
		subTotal = subTotal.Add(lineSubTotal(order, line.Quantity))
		payments = append(payments, payment{order: order, qty: line.Quantity})
	}

	discount := req.Discount.Add(s.promotionDiscount(ctx, companyID))
	net := subTotal.Sub(discount)
	if net.IsNegative() {
		net = decimal.Zero
	}
	tax := net.Mul(decimal.NewFromInt(int64(location.TaxRate))).
		Div(decimal.NewFromInt(100)).Round(2)
	total := net.Add(tax)

	var receipt model.Receipt
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		code, err := s.repo.NextReceiptCode(ctx, tx)
		if err != nil {
			return err
		}
		receipt = model.Receipt{
			CompanyID: companyID,
			TableID:   tableID,
			Code:      code,
			SubTotal:  subTotal,
			Discount:  discount,
			Tax:       tax,
			Total:     total,
		}
		if err := s.repo.CreateReceiptTx(tx, &receipt); err != nil {
			return err
		}

		for _, p := range payments {
			if p.qty == p.order.Quantity {
				if err := s.repo.MarkPaidTx(tx, p.order.ID, receipt.ID); err != nil {
					return err
				}
				continue
			}

			// Partial payment: split instead of mutating history.
			if err := s.repo.SetQuantityTx(tx, p.order.ID, p.order.Quantity-p.qty); err != nil {
				return err
			}
			paidFrom := p.order.ID
			receiptID := receipt.ID
			split := model.Order{
				CompanyID:   companyID,
				TableID:     tableID,
				MenuID:      p.order.MenuID,
				Quantity:    p.qty,
				Status:      model.OrderPaid,
				IsFoc:       p.order.IsFoc,
				PromotionID: p.order.PromotionID,
				ReceiptID:   &receiptID,
				PaidFrom:    &paidFrom,
			}
			for _, a := range p.order.Addons {
				split.Addons = append(split.Addons, model.OrderAddon{
					AddonID: a.AddonID,
					Price:   a.Price,
				})
			}
			if err := s.repo.CreateSplitPaidTx(tx, &split); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.publisher.Publish(ctx, companyID, realtime.OrderEvent{
		Type: "order_paid", TableID: tableID.String(),
	})
	log.Info().Str("code", receipt.Code).Str("total", total.String()).Msg("receipt created")

	return s.GetReceipt(ctx, companyID, receipt.ID)
}

// promotionDiscount sums the discount amounts of promotions whose conditions
// hold right now. A lookup failure costs the diner nothing but the discount.
func (s *orderService) promotionDiscount(ctx context.Context, companyID uuid.UUID) decimal.Decimal {
	promos, err := s.promotionRepo.List(ctx, companyID)
	if err != nil {
		log.Warn().Err(err).Msg("payment: promotion lookup failed")
		return decimal.Zero
	}
	now := time.Now()
	sum := decimal.Zero
	for i := range promos {
		p := &promos[i]
		if p.FocMenuID == nil && p.DiscountAmount.IsPositive() && p.ActiveAt(now) {
			sum = sum.Add(p.DiscountAmount)
		}
	}
	return sum
}

// ── Receipts ──────────────────────────────────────────────────────────────────

func (s *orderService) GetReceipt(ctx context.Context, companyID, id uuid.UUID) (*dto.ReceiptResponse, error) {
	rec, err := s.repo.FindReceiptByID(ctx, id)
	if err != nil || rec.CompanyID != companyID {
		return nil, validationf("receipt not found")
	}
	return receiptToResponse(rec), nil
}

func (s *orderService) ListReceipts(ctx context.Context, companyID uuid.UUID, filter dto.ReceiptFilter) (*dto.ReceiptListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	receipts, total, err := s.repo.ListReceipts(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		data = append(data, *receiptToResponse(&receipts[i]))
	}
	return &dto.ReceiptListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

// lineSubTotal prices qty units of the line: (menu + addons) × qty, zero for
// free-of-charge lines whatever the menu says.
func lineSubTotal(o *model.Order, qty int) decimal.Decimal {
	if o.IsFoc {
		return decimal.Zero
	}
	unit := decimal.Zero
	if o.Menu != nil {
		unit = o.Menu.Price
	}
	for _, a := range o.Addons {
		unit = unit.Add(a.Price)
	}
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

// orderToLine tolerates missing menu/addon records by rendering empty names.
func orderToLine(o *model.Order) dto.OrderLineResponse {
	menuName := ""
	if o.Menu != nil {
		menuName = o.Menu.Name
	}
	addons := make([]dto.OrderAddonResponse, 0, len(o.Addons))
	for _, a := range o.Addons {
		name := ""
		if a.Addon != nil {
			name = a.Addon.Name
		}
		addons = append(addons, dto.OrderAddonResponse{
			AddonID: a.AddonID.String(),
			Name:    name,
			Price:   a.Price,
		})
	}
	remaining := o.Quantity
	if o.Status == model.OrderPaid || o.Status == model.OrderCancelled {
		remaining = 0
	}
	return dto.OrderLineResponse{
		ID:        o.ID.String(),
		MenuID:    o.MenuID.String(),
		MenuName:  menuName,
		Addons:    addons,
		Quantity:  o.Quantity,
		Remaining: remaining,
		IsFoc:     o.IsFoc,
		Status:    string(o.Status),
		SubTotal:  lineSubTotal(o, o.Quantity),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

func receiptToResponse(rec *model.Receipt) *dto.ReceiptResponse {
	lines := make([]dto.OrderLineResponse, 0, len(rec.Orders))
	for i := range rec.Orders {
		lines = append(lines, orderToLine(&rec.Orders[i]))
	}
	return &dto.ReceiptResponse{
		ID:        rec.ID.String(),
		Code:      rec.Code,
		TableID:   rec.TableID.String(),
		Lines:     lines,
		SubTotal:  rec.SubTotal,
		Discount:  rec.Discount,
		Tax:       rec.Tax,
		Total:     rec.Total,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
}
