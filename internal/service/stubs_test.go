package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Every stub returns nil from DB(), which makes
// the services run their transaction callbacks directly — the unit tests
// exercise business rules, not SQL.

var errNotFound = errors.New("record not found")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Warehouse repository stub ────────────────────────────────────────────────

type stockKey struct{ item, warehouse uuid.UUID }

type stubWarehouseRepo struct {
	warehouses map[uuid.UUID]*model.Warehouse
	items      map[uuid.UUID]*model.WarehouseItem
	stocks     map[stockKey]*model.WarehouseStock
	movements  []model.StockMovement
}

func newStubWarehouseRepo() *stubWarehouseRepo {
	return &stubWarehouseRepo{
		warehouses: make(map[uuid.UUID]*model.Warehouse),
		items:      make(map[uuid.UUID]*model.WarehouseItem),
		stocks:     make(map[stockKey]*model.WarehouseStock),
	}
}

func (r *stubWarehouseRepo) DB() *gorm.DB { return nil }

func (r *stubWarehouseRepo) CreateWarehouse(_ context.Context, w *model.Warehouse) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	w.Active = true
	r.warehouses[w.ID] = w
	return nil
}

func (r *stubWarehouseRepo) ListWarehouses(_ context.Context, companyID uuid.UUID) ([]model.Warehouse, error) {
	var out []model.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID && w.Active {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *stubWarehouseRepo) FindWarehouseByID(_ context.Context, id uuid.UUID) (*model.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, errNotFound
	}
	return w, nil
}

func (r *stubWarehouseRepo) CreateItem(_ context.Context, item *model.WarehouseItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Active = true
	r.items[item.ID] = item
	return nil
}

func (r *stubWarehouseRepo) UpdateItem(_ context.Context, item *model.WarehouseItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubWarehouseRepo) FindItemByID(_ context.Context, id uuid.UUID) (*model.WarehouseItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errNotFound
	}
	return item, nil
}

func (r *stubWarehouseRepo) FindItemsByIDs(_ context.Context, ids []uuid.UUID) ([]model.WarehouseItem, error) {
	var out []model.WarehouseItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubWarehouseRepo) ListItems(_ context.Context, companyID uuid.UUID) ([]model.WarehouseItem, error) {
	var out []model.WarehouseItem
	for _, item := range r.items {
		if item.CompanyID == companyID && item.Active {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubWarehouseRepo) ListStock(_ context.Context, warehouseID uuid.UUID) ([]model.WarehouseStock, error) {
	var out []model.WarehouseStock
	for key, st := range r.stocks {
		if key.warehouse == warehouseID {
			row := *st
			if item, ok := r.items[key.item]; ok {
				row.Item = item
			}
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubWarehouseRepo) ListStockByCompany(_ context.Context, companyID uuid.UUID) ([]model.WarehouseStock, error) {
	var out []model.WarehouseStock
	for key, st := range r.stocks {
		item, ok := r.items[key.item]
		if ok && item.CompanyID == companyID {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r *stubWarehouseRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubWarehouseRepo) AddStockTx(_ *gorm.DB, itemID, warehouseID uuid.UUID, delta decimal.Decimal) error {
	key := stockKey{item: itemID, warehouse: warehouseID}
	st, ok := r.stocks[key]
	if !ok {
		st = &model.WarehouseStock{ID: uuid.New(), ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}
		r.stocks[key] = st
	}
	next := st.Quantity.Add(delta)
	if next.IsNegative() {
		return repository.ErrInsufficientStock
	}
	st.Quantity = next
	return nil
}

func (r *stubWarehouseRepo) ListMovements(_ context.Context, companyID uuid.UUID, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		item, ok := r.items[m.ItemID]
		if !ok || item.CompanyID != companyID {
			continue
		}
		if filter.ItemID != "" && filter.ItemID != m.ItemID.String() {
			continue
		}
		mov := m
		mov.Item = item
		out = append(out, mov)
	}
	return out, int64(len(out)), nil
}

func (r *stubWarehouseRepo) stock(itemID, warehouseID uuid.UUID) decimal.Decimal {
	st, ok := r.stocks[stockKey{item: itemID, warehouse: warehouseID}]
	if !ok {
		return decimal.Zero
	}
	return st.Quantity
}

// ledgerSum is the signed sum of every movement for one item in one warehouse;
// the tests assert it always equals the balance.
func (r *stubWarehouseRepo) ledgerSum(itemID, warehouseID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range r.movements {
		if m.ItemID == itemID && m.WarehouseID == warehouseID {
			sum = sum.Add(m.Signed())
		}
	}
	return sum
}

var _ repository.WarehouseRepository = (*stubWarehouseRepo)(nil)

// ── Purchase order repository stub ───────────────────────────────────────────

type stubPurchaseOrderRepo struct {
	orders map[uuid.UUID]*model.PurchaseOrder
	seq    int
}

func newStubPurchaseOrderRepo() *stubPurchaseOrderRepo {
	return &stubPurchaseOrderRepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
}

func (r *stubPurchaseOrderRepo) DB() *gorm.DB { return nil }

func (r *stubPurchaseOrderRepo) Create(_ context.Context, _ *gorm.DB, po *model.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	for i := range po.Items {
		if po.Items[i].ID == uuid.Nil {
			po.Items[i].ID = uuid.New()
		}
		po.Items[i].PurchaseOrderID = po.ID
	}
	po.CreatedAt = time.Now()
	r.orders[po.ID] = po
	return nil
}

func (r *stubPurchaseOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, errNotFound
	}
	return po, nil
}

func (r *stubPurchaseOrderRepo) List(_ context.Context, companyID uuid.UUID, filter dto.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	var out []model.PurchaseOrder
	for _, po := range r.orders {
		if po.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(po.Status) != filter.Status {
			continue
		}
		out = append(out, *po)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, from, to model.POStatus) (bool, error) {
	po, ok := r.orders[id]
	if !ok || po.Status != from {
		return false, nil
	}
	po.Status = to
	return true, nil
}

func (r *stubPurchaseOrderRepo) UpdateHeaderTx(_ *gorm.DB, id uuid.UUID, supplierID, warehouseID uuid.UUID) error {
	po, ok := r.orders[id]
	if !ok {
		return errNotFound
	}
	po.SupplierID = supplierID
	po.WarehouseID = warehouseID
	return nil
}

func (r *stubPurchaseOrderRepo) SetReceivedAtTx(_ *gorm.DB, id uuid.UUID, at time.Time) error {
	po, ok := r.orders[id]
	if !ok {
		return errNotFound
	}
	po.ReceivedAt = &at
	return nil
}

func (r *stubPurchaseOrderRepo) ReplaceItemsTx(_ *gorm.DB, poID uuid.UUID, items []model.PurchaseOrderItem) error {
	po, ok := r.orders[poID]
	if !ok {
		return errNotFound
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].PurchaseOrderID = poID
	}
	po.Items = items
	return nil
}

func (r *stubPurchaseOrderRepo) SetEditedTx(_ *gorm.DB, id uuid.UUID) error {
	po, ok := r.orders[id]
	if !ok {
		return errNotFound
	}
	po.IsEdited = true
	return nil
}

func (r *stubPurchaseOrderRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *stubPurchaseOrderRepo) NextCode(_ context.Context, _ *gorm.DB) (string, error) {
	r.seq++
	return fmt.Sprintf("PO-%06d", r.seq), nil
}

var _ repository.PurchaseOrderRepository = (*stubPurchaseOrderRepo)(nil)

// ── Supplier repository stub ─────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Active = true
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context, companyID uuid.UUID) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		if s.CompanyID == companyID && s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.suppliers[id]
	if !ok {
		return errNotFound
	}
	s.Active = false
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── Menu repository stub ─────────────────────────────────────────────────────

type stubMenuRepo struct {
	menus            map[uuid.UUID]*model.Menu
	addons           map[uuid.UUID]*model.Addon
	menuCategories   map[uuid.UUID]*model.MenuCategory
	addonCategories  map[uuid.UUID]*model.AddonCategory
	menuIngredients  []model.MenuItemIngredient
	addonIngredients []model.AddonIngredient
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{
		menus:           make(map[uuid.UUID]*model.Menu),
		addons:          make(map[uuid.UUID]*model.Addon),
		menuCategories:  make(map[uuid.UUID]*model.MenuCategory),
		addonCategories: make(map[uuid.UUID]*model.AddonCategory),
	}
}

func (r *stubMenuRepo) DB() *gorm.DB { return nil }

func (r *stubMenuRepo) CreateMenu(_ context.Context, m *model.Menu) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Active = true
	r.menus[m.ID] = m
	return nil
}

func (r *stubMenuRepo) UpdateMenu(_ context.Context, m *model.Menu) error {
	r.menus[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindMenuByID(_ context.Context, id uuid.UUID) (*model.Menu, error) {
	m, ok := r.menus[id]
	if !ok {
		return nil, errNotFound
	}
	return m, nil
}

func (r *stubMenuRepo) FindMenusByIDs(_ context.Context, ids []uuid.UUID) ([]model.Menu, error) {
	var out []model.Menu
	for _, id := range ids {
		if m, ok := r.menus[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) ListMenus(_ context.Context, companyID uuid.UUID) ([]model.Menu, error) {
	var out []model.Menu
	for _, m := range r.menus {
		if m.CompanyID == companyID && m.Active {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubMenuRepo) SoftDeleteMenu(_ context.Context, id uuid.UUID) error {
	m, ok := r.menus[id]
	if !ok {
		return errNotFound
	}
	m.Active = false
	return nil
}

func (r *stubMenuRepo) CreateAddon(_ context.Context, a *model.Addon) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Active = true
	r.addons[a.ID] = a
	return nil
}

func (r *stubMenuRepo) FindAddonsByIDs(_ context.Context, ids []uuid.UUID) ([]model.Addon, error) {
	var out []model.Addon
	for _, id := range ids {
		if a, ok := r.addons[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) ListAddons(_ context.Context, companyID uuid.UUID) ([]model.Addon, error) {
	var out []model.Addon
	for _, a := range r.addons {
		if a.CompanyID == companyID && a.Active {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) SoftDeleteAddon(_ context.Context, id uuid.UUID) error {
	a, ok := r.addons[id]
	if !ok {
		return errNotFound
	}
	a.Active = false
	return nil
}

func (r *stubMenuRepo) CreateMenuCategory(_ context.Context, c *model.MenuCategory) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.menuCategories[c.ID] = c
	return nil
}

func (r *stubMenuRepo) ListMenuCategories(_ context.Context, companyID uuid.UUID) ([]model.MenuCategory, error) {
	var out []model.MenuCategory
	for _, c := range r.menuCategories {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) CreateAddonCategory(_ context.Context, c *model.AddonCategory) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.addonCategories[c.ID] = c
	return nil
}

func (r *stubMenuRepo) ListAddonCategories(_ context.Context, companyID uuid.UUID) ([]model.AddonCategory, error) {
	var out []model.AddonCategory
	for _, c := range r.addonCategories {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) ReplaceMenuIngredients(_ context.Context, menuID uuid.UUID, rows []model.MenuItemIngredient) error {
	kept := r.menuIngredients[:0]
	for _, row := range r.menuIngredients {
		if row.MenuID != menuID {
			kept = append(kept, row)
		}
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].MenuID = menuID
	}
	r.menuIngredients = append(kept, rows...)
	return nil
}

func (r *stubMenuRepo) ListMenuIngredients(_ context.Context, menuID uuid.UUID) ([]model.MenuItemIngredient, error) {
	var out []model.MenuItemIngredient
	for _, row := range r.menuIngredients {
		if row.MenuID == menuID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) ListAllMenuIngredients(_ context.Context, companyID uuid.UUID) ([]model.MenuItemIngredient, error) {
	var out []model.MenuItemIngredient
	for _, row := range r.menuIngredients {
		if m, ok := r.menus[row.MenuID]; ok && m.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) ReplaceAddonIngredients(_ context.Context, addonID uuid.UUID, menuID *uuid.UUID, rows []model.AddonIngredient) error {
	sameScope := func(row model.AddonIngredient) bool {
		if row.AddonID != addonID {
			return false
		}
		if menuID == nil {
			return row.MenuID == nil
		}
		return row.MenuID != nil && *row.MenuID == *menuID
	}
	kept := r.addonIngredients[:0]
	for _, row := range r.addonIngredients {
		if !sameScope(row) {
			kept = append(kept, row)
		}
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].AddonID = addonID
		rows[i].MenuID = menuID
	}
	r.addonIngredients = append(kept, rows...)
	return nil
}

func (r *stubMenuRepo) ListAllAddonIngredients(_ context.Context, companyID uuid.UUID) ([]model.AddonIngredient, error) {
	var out []model.AddonIngredient
	for _, row := range r.addonIngredients {
		if a, ok := r.addons[row.AddonID]; ok && a.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

var _ repository.MenuRepository = (*stubMenuRepo)(nil)

// ── WMS repository stub ──────────────────────────────────────────────────────

type stubWMSRepo struct {
	results       []model.WMSCheckResult
	notifications []model.Notification
	companyIDs    []uuid.UUID
}

func (r *stubWMSRepo) CreateResult(_ context.Context, res *model.WMSCheckResult) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	res.CreatedAt = time.Now()
	r.results = append(r.results, *res)
	return nil
}

func (r *stubWMSRepo) ListResults(_ context.Context, companyID uuid.UUID, _ int) ([]model.WMSCheckResult, error) {
	var out []model.WMSCheckResult
	for _, res := range r.results {
		if res.CompanyID == companyID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *stubWMSRepo) ListCompanyIDs(_ context.Context) ([]uuid.UUID, error) {
	return r.companyIDs, nil
}

func (r *stubWMSRepo) CreateNotification(_ context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *stubWMSRepo) ListNotifications(_ context.Context, companyID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.notifications {
		if n.CompanyID != companyID {
			continue
		}
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *stubWMSRepo) MarkNotificationRead(_ context.Context, id uuid.UUID) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			now := time.Now()
			r.notifications[i].ReadAt = &now
			return nil
		}
	}
	return errNotFound
}

var _ repository.WMSRepository = (*stubWMSRepo)(nil)

// ── Order repository stub ────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	receipts map[uuid.UUID]*model.Receipt
	menus    *stubMenuRepo // for attaching menu/addon records like a preload
	seq      int
	clock    int // monotonic CreatedAt so board ordering is stable
}

func newStubOrderRepo(menus *stubMenuRepo) *stubOrderRepo {
	return &stubOrderRepo{
		orders:   make(map[uuid.UUID]*model.Order),
		receipts: make(map[uuid.UUID]*model.Receipt),
		menus:    menus,
	}
}

func (r *stubOrderRepo) attach(o model.Order) model.Order {
	if r.menus == nil {
		return o
	}
	if m, ok := r.menus.menus[o.MenuID]; ok {
		o.Menu = m
	}
	for i := range o.Addons {
		if a, ok := r.menus.addons[o.Addons[i].AddonID]; ok {
			o.Addons[i].Addon = a
		}
	}
	return o
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) put(o model.Order) *model.Order {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.clock++
	o.CreatedAt = time.Unix(int64(r.clock), 0)
	stored := o
	r.orders[stored.ID] = &stored
	return &stored
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, orders []model.Order) error {
	for i := range orders {
		created := r.put(orders[i])
		orders[i].ID = created.ID
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errNotFound
	}
	out := r.attach(*o)
	return &out, nil
}

func (r *stubOrderRepo) ListActiveByTable(_ context.Context, tableID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.TableID != tableID {
			continue
		}
		switch o.Status {
		case model.OrderPending, model.OrderCooking, model.OrderComplete:
			out = append(out, r.attach(*o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return errNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) MarkPaidTx(_ *gorm.DB, id uuid.UUID, receiptID uuid.UUID) error {
	o, ok := r.orders[id]
	if !ok {
		return errNotFound
	}
	o.Status = model.OrderPaid
	o.ReceiptID = &receiptID
	return nil
}

func (r *stubOrderRepo) SetQuantityTx(_ *gorm.DB, id uuid.UUID, newQty int) error {
	o, ok := r.orders[id]
	if !ok {
		return errNotFound
	}
	o.Quantity = newQty
	return nil
}

func (r *stubOrderRepo) CreateSplitPaidTx(_ *gorm.DB, o *model.Order) error {
	created := r.put(*o)
	o.ID = created.ID
	return nil
}

func (r *stubOrderRepo) CreateReceiptTx(_ *gorm.DB, rec *model.Receipt) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now()
	stored := *rec
	r.receipts[stored.ID] = &stored
	return nil
}

func (r *stubOrderRepo) NextReceiptCode(_ context.Context, _ *gorm.DB) (string, error) {
	r.seq++
	return fmt.Sprintf("R-%06d", r.seq), nil
}

func (r *stubOrderRepo) FindReceiptByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, errNotFound
	}
	out := *rec
	for _, o := range r.orders {
		if o.ReceiptID != nil && *o.ReceiptID == id {
			out.Orders = append(out.Orders, r.attach(*o))
		}
	}
	return &out, nil
}

func (r *stubOrderRepo) ListReceipts(_ context.Context, companyID uuid.UUID, _ dto.ReceiptFilter) ([]model.Receipt, int64, error) {
	var out []model.Receipt
	for _, rec := range r.receipts {
		if rec.CompanyID == companyID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── User repository stub ─────────────────────────────────────────────────────

type stubUserRepo struct {
	users     map[uuid.UUID]*model.User
	tables    map[uuid.UUID]*model.DiningTable
	locations map[uuid.UUID]*model.Location
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:     make(map[uuid.UUID]*model.User),
		tables:    make(map[uuid.UUID]*model.DiningTable),
		locations: make(map[uuid.UUID]*model.Location),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUserRepo) List(_ context.Context, companyID uuid.UUID, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.CompanyID != companyID {
			continue
		}
		if !includeInactive && !u.Active {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) FindTableByQRToken(_ context.Context, token string) (*model.DiningTable, error) {
	for _, t := range r.tables {
		if t.QRToken == token {
			return t, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUserRepo) FindTableByID(_ context.Context, id uuid.UUID) (*model.DiningTable, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, errNotFound
	}
	return t, nil
}

func (r *stubUserRepo) FindLocationByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, errNotFound
	}
	return l, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Promotion repository stub ────────────────────────────────────────────────

type stubPromotionRepo struct {
	promotions map[uuid.UUID]*model.Promotion
}

func newStubPromotionRepo() *stubPromotionRepo {
	return &stubPromotionRepo{promotions: make(map[uuid.UUID]*model.Promotion)}
}

func (r *stubPromotionRepo) Create(_ context.Context, p *model.Promotion) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Active = true
	r.promotions[p.ID] = p
	return nil
}

func (r *stubPromotionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Promotion, error) {
	p, ok := r.promotions[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubPromotionRepo) List(_ context.Context, companyID uuid.UUID) ([]model.Promotion, error) {
	var out []model.Promotion
	for _, p := range r.promotions {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPromotionRepo) Update(_ context.Context, p *model.Promotion) error {
	r.promotions[p.ID] = p
	return nil
}

func (r *stubPromotionRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.promotions[id]
	if !ok {
		return errNotFound
	}
	p.Active = false
	return nil
}

var _ repository.PromotionRepository = (*stubPromotionRepo)(nil)
