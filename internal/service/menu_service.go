package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const menuCacheTTL = 5 * time.Minute

// MenuService owns the catalog (menus, addons, categories), the ingredient
// mappings the availability checker reads, and promotions. The menu list is
// the hottest read in the system (every QR scan) and is cached in Redis;
// every catalog write invalidates the company's cache entry.
type MenuService interface {
	CreateMenu(ctx context.Context, companyID uuid.UUID, req dto.CreateMenuRequest) (*dto.MenuResponse, error)
	ListMenus(ctx context.Context, companyID uuid.UUID) ([]dto.MenuResponse, error)
	DeleteMenu(ctx context.Context, companyID, id uuid.UUID) error

	CreateAddon(ctx context.Context, companyID uuid.UUID, req dto.CreateAddonRequest) (*dto.AddonResponse, error)
	ListAddons(ctx context.Context, companyID uuid.UUID) ([]dto.AddonResponse, error)

	CreateMenuCategory(ctx context.Context, companyID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListMenuCategories(ctx context.Context, companyID uuid.UUID) ([]dto.CategoryResponse, error)
	CreateAddonCategory(ctx context.Context, companyID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListAddonCategories(ctx context.Context, companyID uuid.UUID) ([]dto.CategoryResponse, error)

	SetMenuIngredients(ctx context.Context, companyID, menuID uuid.UUID, req dto.SetMenuIngredientsRequest) error
	GetMenuIngredients(ctx context.Context, companyID, menuID uuid.UUID) ([]dto.IngredientMappingResponse, error)
	SetAddonIngredients(ctx context.Context, companyID, addonID uuid.UUID, req dto.SetAddonIngredientsRequest) error

	CreatePromotion(ctx context.Context, companyID uuid.UUID, req dto.CreatePromotionRequest) (*dto.PromotionResponse, error)
	ListPromotions(ctx context.Context, companyID uuid.UUID) ([]dto.PromotionResponse, error)
	DeletePromotion(ctx context.Context, companyID, id uuid.UUID) error
}

type menuService struct {
	repo          repository.MenuRepository
	warehouseRepo repository.WarehouseRepository
	promotionRepo repository.PromotionRepository
	rdb           *redis.Client
}

func NewMenuService(
	repo repository.MenuRepository,
	warehouseRepo repository.WarehouseRepository,
	promotionRepo repository.PromotionRepository,
	rdb *redis.Client,
) MenuService {
	return &menuService{
		repo:          repo,
		warehouseRepo: warehouseRepo,
		promotionRepo: promotionRepo,
		rdb:           rdb,
	}
}

// ── Menus ─────────────────────────────────────────────────────────────────────

func (s *menuService) CreateMenu(ctx context.Context, companyID uuid.UUID, req dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	if !req.Price.IsPositive() {
		return nil, validationf("price must be greater than zero")
	}
	m := &model.Menu{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, validationf("invalid categoryId")
		}
		m.CategoryID = &catID
	}
	if err := s.repo.CreateMenu(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateMenuCache(ctx, companyID)
	return menuToResponse(m), nil
}

func (s *menuService) ListMenus(ctx context.Context, companyID uuid.UUID) ([]dto.MenuResponse, error) {
	cacheKey := menuCacheKey(companyID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var out []dto.MenuResponse
			if json.Unmarshal(cached, &out) == nil {
				return out, nil
			}
		}
	}

	menus, err := s.repo.ListMenus(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuResponse, 0, len(menus))
	for i := range menus {
		out = append(out, *menuToResponse(&menus[i]))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, menuCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("menu cache set failed")
			}
		}
	}
	return out, nil
}

func (s *menuService) DeleteMenu(ctx context.Context, companyID, id uuid.UUID) error {
	m, err := s.repo.FindMenuByID(ctx, id)
	if err != nil || m.CompanyID != companyID {
		return validationf("menu not found")
	}
	if err := s.repo.SoftDeleteMenu(ctx, id); err != nil {
		return err
	}
	s.invalidateMenuCache(ctx, companyID)
	return nil
}

func menuCacheKey(companyID uuid.UUID) string {
	return fmt.Sprintf("cache:menus:%s", companyID)
}

func (s *menuService) invalidateMenuCache(ctx context.Context, companyID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, menuCacheKey(companyID)).Err(); err != nil {
		log.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}

func menuToResponse(m *model.Menu) *dto.MenuResponse {
	resp := &dto.MenuResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Active:      m.Active,
	}
	if m.CategoryID != nil {
		id := m.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// ── Addons ────────────────────────────────────────────────────────────────────

func (s *menuService) CreateAddon(ctx context.Context, companyID uuid.UUID, req dto.CreateAddonRequest) (*dto.AddonResponse, error) {
	catID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, validationf("invalid categoryId")
	}
	if req.Price.IsNegative() {
		return nil, validationf("price cannot be negative")
	}
	a := &model.Addon{
		CompanyID:  companyID,
		CategoryID: catID,
		Name:       req.Name,
		Price:      req.Price,
	}
	if err := s.repo.CreateAddon(ctx, a); err != nil {
		return nil, err
	}
	s.invalidateMenuCache(ctx, companyID)
	return &dto.AddonResponse{
		ID:         a.ID.String(),
		Name:       a.Name,
		CategoryID: a.CategoryID.String(),
		Price:      a.Price,
	}, nil
}

func (s *menuService) ListAddons(ctx context.Context, companyID uuid.UUID) ([]dto.AddonResponse, error) {
	addons, err := s.repo.ListAddons(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddonResponse, 0, len(addons))
	for _, a := range addons {
		out = append(out, dto.AddonResponse{
			ID:         a.ID.String(),
			Name:       a.Name,
			CategoryID: a.CategoryID.String(),
			Price:      a.Price,
		})
	}
	return out, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

func (s *menuService) CreateMenuCategory(ctx context.Context, companyID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.MenuCategory{CompanyID: companyID, Name: req.Name}
	if err := s.repo.CreateMenuCategory(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *menuService) ListMenuCategories(ctx context.Context, companyID uuid.UUID) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.ListMenuCategories(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return out, nil
}

func (s *menuService) CreateAddonCategory(ctx context.Context, companyID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.AddonCategory{CompanyID: companyID, Name: req.Name}
	if err := s.repo.CreateAddonCategory(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *menuService) ListAddonCategories(ctx context.Context, companyID uuid.UUID) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.ListAddonCategories(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return out, nil
}

// ── Ingredient mappings ───────────────────────────────────────────────────────

// resolveIngredientLines converts submitted lines to base-unit mapping rows,
// enforcing unit-category compatibility per item. One row per item.
func (s *menuService) resolveIngredientLines(ctx context.Context, companyID uuid.UUID, lines []dto.IngredientLine) (map[uuid.UUID]model.WarehouseItem, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, validationf("invalid itemId")
		}
		if seen[itemID] {
			return nil, validationf(fmt.Sprintf("duplicate item %s", line.ItemID))
		}
		seen[itemID] = true
		if !line.Quantity.IsPositive() {
			return nil, validationf("quantity must be greater than zero")
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
	for _, line := range lines {
		itemID, _ := uuid.Parse(line.ItemID)
		item, ok := byID[itemID]
		if !ok || item.CompanyID != companyID {
			return nil, validationf(fmt.Sprintf("item %s not found", line.ItemID))
		}
		cat, err := model.CategoryOf(model.Unit(line.Unit))
		if err != nil {
			return nil, validationf(fmt.Sprintf("unknown unit %q", line.Unit))
		}
		if cat != item.UnitCategory {
			return nil, validationf(fmt.Sprintf(
				"unit %s is %s but item %q is measured in %s", line.Unit, cat, item.Name, item.UnitCategory))
		}
	}
	return byID, nil
}

func (s *menuService) SetMenuIngredients(ctx context.Context, companyID, menuID uuid.UUID, req dto.SetMenuIngredientsRequest) error {
	m, err := s.repo.FindMenuByID(ctx, menuID)
	if err != nil || m.CompanyID != companyID {
		return validationf("menu not found")
	}
	if _, err := s.resolveIngredientLines(ctx, companyID, req.Ingredients); err != nil {
		return err
	}

	rows := make([]model.MenuItemIngredient, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		itemID, _ := uuid.Parse(line.ItemID)
		qtyBase, err := model.ToBaseUnit(line.Quantity, model.Unit(line.Unit))
		if err != nil {
			return validationf(err.Error())
		}
		rows = append(rows, model.MenuItemIngredient{ItemID: itemID, Quantity: qtyBase})
	}
	return s.repo.ReplaceMenuIngredients(ctx, menuID, rows)
}

func (s *menuService) GetMenuIngredients(ctx context.Context, companyID, menuID uuid.UUID) ([]dto.IngredientMappingResponse, error) {
	m, err := s.repo.FindMenuByID(ctx, menuID)
	if err != nil || m.CompanyID != companyID {
		return nil, validationf("menu not found")
	}
	rows, err := s.repo.ListMenuIngredients(ctx, menuID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientMappingResponse, 0, len(rows))
	for _, row := range rows {
		name := ""
		if row.Item != nil {
			name = row.Item.Name
		}
		out = append(out, dto.IngredientMappingResponse{
			ItemID:   row.ItemID.String(),
			ItemName: name,
			Quantity: row.Quantity,
		})
	}
	return out, nil
}

func (s *menuService) SetAddonIngredients(ctx context.Context, companyID, addonID uuid.UUID, req dto.SetAddonIngredientsRequest) error {
	addons, err := s.repo.FindAddonsByIDs(ctx, []uuid.UUID{addonID})
	if err != nil || len(addons) == 0 || addons[0].CompanyID != companyID {
		return validationf("addon not found")
	}

	var menuID *uuid.UUID
	if req.MenuID != nil {
		id, err := uuid.Parse(*req.MenuID)
		if err != nil {
			return validationf("invalid menuId")
		}
		m, err := s.repo.FindMenuByID(ctx, id)
		if err != nil || m.CompanyID != companyID {
			return validationf("menu not found")
		}
		menuID = &id
	}

	if _, err := s.resolveIngredientLines(ctx, companyID, req.Ingredients); err != nil {
		return err
	}

	rows := make([]model.AddonIngredient, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		itemID, _ := uuid.Parse(line.ItemID)
		qtyBase, err := model.ToBaseUnit(line.Quantity, model.Unit(line.Unit))
		if err != nil {
			return validationf(err.Error())
		}
		rows = append(rows, model.AddonIngredient{ItemID: itemID, ExtraQuantity: qtyBase})
	}
	return s.repo.ReplaceAddonIngredients(ctx, addonID, menuID, rows)
}

// ── Promotions ────────────────────────────────────────────────────────────────

func (s *menuService) CreatePromotion(ctx context.Context, companyID uuid.UUID, req dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	hasDiscount := req.DiscountAmount.IsPositive()
	hasFoc := req.FocMenuID != nil
	if hasDiscount == hasFoc {
		return nil, validationf("a promotion grants either a discount or a free menu, exactly one")
	}

	p := &model.Promotion{
		CompanyID:      companyID,
		Name:           req.Name,
		DiscountAmount: req.DiscountAmount,
	}
	if hasFoc {
		menuID, err := uuid.Parse(*req.FocMenuID)
		if err != nil {
			return nil, validationf("invalid focMenuId")
		}
		m, err := s.repo.FindMenuByID(ctx, menuID)
		if err != nil || m.CompanyID != companyID {
			return nil, validationf("menu not found")
		}
		p.FocMenuID = &menuID
	}
	if len(req.Conditions) > 0 {
		conds := make([]model.PromotionCondition, 0, len(req.Conditions))
		for _, c := range req.Conditions {
			conds = append(conds, model.PromotionCondition{
				Kind: c.Kind, Start: c.Start, End: c.End, Days: c.Days,
			})
		}
		data, err := json.Marshal(conds)
		if err != nil {
			return nil, err
		}
		p.Conditions = data
	}

	if err := s.promotionRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return promotionToResponse(p), nil
}

func (s *menuService) ListPromotions(ctx context.Context, companyID uuid.UUID) ([]dto.PromotionResponse, error) {
	promos, err := s.promotionRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PromotionResponse, 0, len(promos))
	for i := range promos {
		out = append(out, *promotionToResponse(&promos[i]))
	}
	return out, nil
}

func (s *menuService) DeletePromotion(ctx context.Context, companyID, id uuid.UUID) error {
	p, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil || p.CompanyID != companyID {
		return validationf("promotion not found")
	}
	return s.promotionRepo.SoftDelete(ctx, id)
}

func promotionToResponse(p *model.Promotion) *dto.PromotionResponse {
	resp := &dto.PromotionResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		DiscountAmount: p.DiscountAmount,
		Active:         p.Active,
		ActiveNow:      p.ActiveAt(time.Now()),
	}
	if p.FocMenuID != nil {
		id := p.FocMenuID.String()
		resp.FocMenuID = &id
	}
	if conds, err := p.ParseConditions(); err == nil {
		for _, c := range conds {
			resp.Conditions = append(resp.Conditions, dto.PromotionConditionRequest{
				Kind: c.Kind, Start: c.Start, End: c.End, Days: c.Days,
			})
		}
	}
	return resp
}
