package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"
	"github.com/tettoewai/restaurant-pos-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// WMSService is the availability checker: a stateless batch computation over
// the catalog, the ingredient mappings and current stock. Check returns live
// data; RunScheduled additionally persists a snapshot, raises a notification
// and enqueues an alert email — but only when the run found issues.
type WMSService interface {
	Check(ctx context.Context, companyID uuid.UUID) (*dto.WMSCheckData, error)
	RunScheduled(ctx context.Context, companyID uuid.UUID) (*dto.CronCheckResponse, error)
	RunScheduledAll(ctx context.Context) (*dto.CronCheckResponse, error)
	ListResults(ctx context.Context, companyID uuid.UUID, limit int) ([]model.WMSCheckResult, error)

	ListNotifications(ctx context.Context, companyID uuid.UUID, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

type wmsService struct {
	repo          repository.WMSRepository
	menuRepo      repository.MenuRepository
	warehouseRepo repository.WarehouseRepository
	dispatcher    *worker.Dispatcher
}

func NewWMSService(
	repo repository.WMSRepository,
	menuRepo repository.MenuRepository,
	warehouseRepo repository.WarehouseRepository,
	dispatcher *worker.Dispatcher,
) WMSService {
	return &wmsService{
		repo:          repo,
		menuRepo:      menuRepo,
		warehouseRepo: warehouseRepo,
		dispatcher:    dispatcher,
	}
}

// ── Check ─────────────────────────────────────────────────────────────────────

// Check computes the four issue arrays. All aggregation happens in memory
// after a handful of scoped fetches; arrays are sorted by name so repeated
// runs over unchanged data are comparable.
func (s *wmsService) Check(ctx context.Context, companyID uuid.UUID) (*dto.WMSCheckData, error) {
	menus, err := s.menuRepo.ListMenus(ctx, companyID)
	if err != nil {
		return nil, err
	}
	addons, err := s.menuRepo.ListAddons(ctx, companyID)
	if err != nil {
		return nil, err
	}
	menuIngredients, err := s.menuRepo.ListAllMenuIngredients(ctx, companyID)
	if err != nil {
		return nil, err
	}
	addonIngredients, err := s.menuRepo.ListAllAddonIngredients(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items, err := s.warehouseRepo.ListItems(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stocks, err := s.warehouseRepo.ListStockByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	data := &dto.WMSCheckData{
		MenusWithoutIngredients:  []dto.MenuWithoutIngredients{},
		AddonsWithoutIngredients: []dto.AddonsWithoutIngredients{},
		NotEnoughIngredients:     []dto.NotEnoughIngredient{},
		HitThresholdStocks:       []dto.HitThresholdStock{},
	}

	// 1. Menus with zero ingredient mappings.
	mappedMenus := make(map[uuid.UUID]bool)
	for _, row := range menuIngredients {
		mappedMenus[row.MenuID] = true
	}
	for _, m := range menus {
		if !mappedMenus[m.ID] {
			data.MenusWithoutIngredients = append(data.MenusWithoutIngredients,
				dto.MenuWithoutIngredients{ID: m.ID.String(), Name: m.Name})
		}
	}
	sort.Slice(data.MenusWithoutIngredients, func(i, j int) bool {
		return data.MenusWithoutIngredients[i].Name < data.MenusWithoutIngredients[j].Name
	})

	// 2. Addons with zero ingredient mappings, grouped by the menu scope of
	// the mappings they do carry. An addon mapped nowhere — neither globally
	// nor under any menu — lands in the global group (empty menuId).
	data.AddonsWithoutIngredients = unmappedAddons(menus, addons, addonIngredients)

	// 3. Hard-demand shortage: total required quantity across every mapping
	// referencing an item versus current stock, summed over all warehouses.
	// A missing stock row counts as zero.
	stockByItem := make(map[uuid.UUID]decimal.Decimal)
	for _, st := range stocks {
		stockByItem[st.ItemID] = stockByItem[st.ItemID].Add(st.Quantity)
	}

	requiredByItem := make(map[uuid.UUID]decimal.Decimal)
	for _, row := range menuIngredients {
		requiredByItem[row.ItemID] = requiredByItem[row.ItemID].Add(row.Quantity)
	}
	for _, row := range addonIngredients {
		requiredByItem[row.ItemID] = requiredByItem[row.ItemID].Add(row.ExtraQuantity)
	}

	itemsByID := make(map[uuid.UUID]model.WarehouseItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	for itemID, required := range requiredByItem {
		stock := stockByItem[itemID]
		if stock.GreaterThanOrEqual(required) {
			continue
		}
		name := ""
		if item, ok := itemsByID[itemID]; ok {
			name = item.Name
		}
		data.NotEnoughIngredients = append(data.NotEnoughIngredients, dto.NotEnoughIngredient{
			ItemID:   itemID.String(),
			ItemName: name,
			Required: required,
			Stock:    stock,
			Shortage: required.Sub(stock),
		})
	}
	sort.Slice(data.NotEnoughIngredients, func(i, j int) bool {
		return data.NotEnoughIngredients[i].ItemName < data.NotEnoughIngredients[j].ItemName
	})

	// 4. Reorder signal: stock at or below the configured threshold,
	// independent of demand. Items without a threshold never fire.
	for _, item := range items {
		if !item.Threshold.IsPositive() {
			continue
		}
		stock := stockByItem[item.ID]
		if stock.GreaterThan(item.Threshold) {
			continue
		}
		data.HitThresholdStocks = append(data.HitThresholdStocks, dto.HitThresholdStock{
			ItemID:    item.ID.String(),
			ItemName:  item.Name,
			Threshold: item.Threshold,
			Stock:     stock,
		})
	}
	sort.Slice(data.HitThresholdStocks, func(i, j int) bool {
		return data.HitThresholdStocks[i].ItemName < data.HitThresholdStocks[j].ItemName
	})

	return data, nil
}

// unmappedAddons groups addons lacking any ingredient mapping under the menu
// context they appear in. Per-menu scoped mappings define the contexts: an
// addon mapped under menu A but not menu B is reported under B only when B
// has scoped mappings for other addons of the same category.
func unmappedAddons(menus []model.Menu, addons []model.Addon, rows []model.AddonIngredient) []dto.AddonsWithoutIngredients {
	menuName := make(map[uuid.UUID]string, len(menus))
	for _, m := range menus {
		menuName[m.ID] = m.Name
	}

	// Which (addon, scope) pairs are mapped. Global scope is the nil menu.
	globallyMapped := make(map[uuid.UUID]bool)
	mappedUnder := make(map[uuid.UUID]map[uuid.UUID]bool)
	scopedMenus := make(map[uuid.UUID]bool)
	for _, row := range rows {
		if row.MenuID == nil {
			globallyMapped[row.AddonID] = true
			continue
		}
		if mappedUnder[row.AddonID] == nil {
			mappedUnder[row.AddonID] = make(map[uuid.UUID]bool)
		}
		mappedUnder[row.AddonID][*row.MenuID] = true
		scopedMenus[*row.MenuID] = true
	}

	groups := make(map[uuid.UUID][]dto.AddonRef)
	var global []dto.AddonRef
	for _, a := range addons {
		if globallyMapped[a.ID] {
			continue
		}
		if len(mappedUnder[a.ID]) == 0 {
			// Mapped nowhere at all.
			global = append(global, dto.AddonRef{ID: a.ID.String(), Name: a.Name})
			continue
		}
		for menuID := range scopedMenus {
			if !mappedUnder[a.ID][menuID] {
				groups[menuID] = append(groups[menuID], dto.AddonRef{ID: a.ID.String(), Name: a.Name})
			}
		}
	}

	out := make([]dto.AddonsWithoutIngredients, 0, len(groups)+1)
	if len(global) > 0 {
		sortAddonRefs(global)
		out = append(out, dto.AddonsWithoutIngredients{Addons: global})
	}
	for menuID, refs := range groups {
		sortAddonRefs(refs)
		out = append(out, dto.AddonsWithoutIngredients{
			MenuID:   menuID.String(),
			MenuName: menuName[menuID],
			Addons:   refs,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MenuName < out[j].MenuName })
	return out
}

func sortAddonRefs(refs []dto.AddonRef) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
}

// ── Scheduled run ─────────────────────────────────────────────────────────────

// RunScheduled computes the check and, when issues were found, persists the
// snapshot, creates a backoffice notification and enqueues an alert email.
// A clean run writes nothing.
func (s *wmsService) RunScheduled(ctx context.Context, companyID uuid.UUID) (*dto.CronCheckResponse, error) {
	data, err := s.Check(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CronCheckResponse{
		Success:     true,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		IssuesCount: data.IssuesCount(),
	}
	resp.Details.MenusWithoutIngredients = len(data.MenusWithoutIngredients)
	resp.Details.AddonsWithoutIngredients = len(data.AddonsWithoutIngredients)
	resp.Details.NotEnoughIngredients = len(data.NotEnoughIngredients)
	resp.Details.HitThresholdStocks = len(data.HitThresholdStocks)

	if resp.IssuesCount == 0 {
		return resp, nil
	}

	snapshot, err := snapshotFromData(companyID, data)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateResult(ctx, snapshot); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Availability check found %d issue(s): %d menus and %d addon groups without ingredients, %d shortages, %d threshold breaches.",
		resp.IssuesCount,
		resp.Details.MenusWithoutIngredients,
		resp.Details.AddonsWithoutIngredients,
		resp.Details.NotEnoughIngredients,
		resp.Details.HitThresholdStocks)
	notification := &model.Notification{
		CompanyID: companyID,
		Kind:      "wms_check",
		Message:   msg,
	}
	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}
	resp.NotificationCreated = true

	// Alert email is best effort; the snapshot and notification already hold
	// the findings.
	if s.dispatcher != nil {
		job := worker.AlertJobPayload{
			CompanyID: companyID.String(),
			Subject:   fmt.Sprintf("Stock availability: %d issue(s) found", resp.IssuesCount),
			Body:      msg,
		}
		if err := s.dispatcher.EnqueueAlert(ctx, job); err != nil {
			log.Warn().Err(err).Msg("wms: failed to enqueue alert")
		}
	}

	log.Info().Str("company_id", companyID.String()).Int("issues", resp.IssuesCount).
		Msg("availability check recorded issues")
	return resp, nil
}

// RunScheduledAll sweeps every tenant and aggregates the outcome. This backs
// the external scheduler endpoint, which has no company scope of its own.
func (s *wmsService) RunScheduledAll(ctx context.Context) (*dto.CronCheckResponse, error) {
	ids, err := s.repo.ListCompanyIDs(ctx)
	if err != nil {
		return nil, err
	}

	total := &dto.CronCheckResponse{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for _, id := range ids {
		resp, err := s.RunScheduled(ctx, id)
		if err != nil {
			// One broken tenant must not starve the rest of the sweep.
			log.Error().Err(err).Str("company_id", id.String()).Msg("scheduled availability check failed")
			continue
		}
		total.IssuesCount += resp.IssuesCount
		total.NotificationCreated = total.NotificationCreated || resp.NotificationCreated
		total.Details.MenusWithoutIngredients += resp.Details.MenusWithoutIngredients
		total.Details.AddonsWithoutIngredients += resp.Details.AddonsWithoutIngredients
		total.Details.NotEnoughIngredients += resp.Details.NotEnoughIngredients
		total.Details.HitThresholdStocks += resp.Details.HitThresholdStocks
	}
	return total, nil
}

func snapshotFromData(companyID uuid.UUID, data *dto.WMSCheckData) (*model.WMSCheckResult, error) {
	menusJSON, err := json.Marshal(data.MenusWithoutIngredients)
	if err != nil {
		return nil, err
	}
	addonsJSON, err := json.Marshal(data.AddonsWithoutIngredients)
	if err != nil {
		return nil, err
	}
	shortJSON, err := json.Marshal(data.NotEnoughIngredients)
	if err != nil {
		return nil, err
	}
	thresholdJSON, err := json.Marshal(data.HitThresholdStocks)
	if err != nil {
		return nil, err
	}
	return &model.WMSCheckResult{
		CompanyID:                companyID,
		MenusWithoutIngredients:  menusJSON,
		AddonsWithoutIngredients: addonsJSON,
		NotEnoughIngredients:     shortJSON,
		HitThresholdStocks:       thresholdJSON,
		IssuesCount:              data.IssuesCount(),
	}, nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *wmsService) ListResults(ctx context.Context, companyID uuid.UUID, limit int) ([]model.WMSCheckResult, error) {
	return s.repo.ListResults(ctx, companyID, limit)
}

func (s *wmsService) ListNotifications(ctx context.Context, companyID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	return s.repo.ListNotifications(ctx, companyID, unreadOnly)
}

func (s *wmsService) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkNotificationRead(ctx, id)
}
