package repository

import (
	"context"

	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuRepository covers the catalog: menus, addons, their categories and the
// ingredient mappings the availability checker reads.
type MenuRepository interface {
	CreateMenu(ctx context.Context, m *model.Menu) error
	UpdateMenu(ctx context.Context, m *model.Menu) error
	FindMenuByID(ctx context.Context, id uuid.UUID) (*model.Menu, error)
	FindMenusByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Menu, error)
	ListMenus(ctx context.Context, companyID uuid.UUID) ([]model.Menu, error)
	SoftDeleteMenu(ctx context.Context, id uuid.UUID) error

	CreateAddon(ctx context.Context, a *model.Addon) error
	FindAddonsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Addon, error)
	ListAddons(ctx context.Context, companyID uuid.UUID) ([]model.Addon, error)
	SoftDeleteAddon(ctx context.Context, id uuid.UUID) error

	CreateMenuCategory(ctx context.Context, c *model.MenuCategory) error
	ListMenuCategories(ctx context.Context, companyID uuid.UUID) ([]model.MenuCategory, error)
	CreateAddonCategory(ctx context.Context, c *model.AddonCategory) error
	ListAddonCategories(ctx context.Context, companyID uuid.UUID) ([]model.AddonCategory, error)

	// Ingredient mappings. Replace semantics: the submitted list is the new
	// truth for that menu/addon scope.
	ReplaceMenuIngredients(ctx context.Context, menuID uuid.UUID, rows []model.MenuItemIngredient) error
	ListMenuIngredients(ctx context.Context, menuID uuid.UUID) ([]model.MenuItemIngredient, error)
	ListAllMenuIngredients(ctx context.Context, companyID uuid.UUID) ([]model.MenuItemIngredient, error)

	ReplaceAddonIngredients(ctx context.Context, addonID uuid.UUID, menuID *uuid.UUID, rows []model.AddonIngredient) error
	ListAllAddonIngredients(ctx context.Context, companyID uuid.UUID) ([]model.AddonIngredient, error)

	DB() *gorm.DB
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) DB() *gorm.DB { return r.db }

func (r *menuRepo) CreateMenu(ctx context.Context, m *model.Menu) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) UpdateMenu(ctx context.Context, m *model.Menu) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) FindMenuByID(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	var m model.Menu
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *menuRepo) FindMenusByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&menus).Error
	return menus, err
}

func (r *menuRepo) ListMenus(ctx context.Context, companyID uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("name ASC").Find(&menus).Error
	return menus, err
}

func (r *menuRepo) SoftDeleteMenu(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Menu{}).Where("id = ?", id).
		Update("active", false).Error
}

func (r *menuRepo) CreateAddon(ctx context.Context, a *model.Addon) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *menuRepo) FindAddonsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Addon, error) {
	var addons []model.Addon
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&addons).Error
	return addons, err
}

func (r *menuRepo) ListAddons(ctx context.Context, companyID uuid.UUID) ([]model.Addon, error) {
	var addons []model.Addon
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("name ASC").Find(&addons).Error
	return addons, err
}

func (r *menuRepo) SoftDeleteAddon(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Addon{}).Where("id = ?", id).
		Update("active", false).Error
}

func (r *menuRepo) CreateMenuCategory(ctx context.Context, c *model.MenuCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *menuRepo) ListMenuCategories(ctx context.Context, companyID uuid.UUID) ([]model.MenuCategory, error) {
	var cats []model.MenuCategory
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("sort_order ASC, name ASC").Find(&cats).Error
	return cats, err
}

func (r *menuRepo) CreateAddonCategory(ctx context.Context, c *model.AddonCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *menuRepo) ListAddonCategories(ctx context.Context, companyID uuid.UUID) ([]model.AddonCategory, error) {
	var cats []model.AddonCategory
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *menuRepo) ReplaceMenuIngredients(ctx context.Context, menuID uuid.UUID, rows []model.MenuItemIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menuID).
			Delete(&model.MenuItemIngredient{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].MenuID = menuID
		}
		return tx.Create(&rows).Error
	})
}

func (r *menuRepo) ListMenuIngredients(ctx context.Context, menuID uuid.UUID) ([]model.MenuItemIngredient, error) {
	var rows []model.MenuItemIngredient
	err := r.db.WithContext(ctx).Preload("Item").
		Where("menu_id = ?", menuID).Find(&rows).Error
	return rows, err
}

func (r *menuRepo) ListAllMenuIngredients(ctx context.Context, companyID uuid.UUID) ([]model.MenuItemIngredient, error) {
	var rows []model.MenuItemIngredient
	err := r.db.WithContext(ctx).Preload("Item").
		Joins("JOIN menus ON menus.id = menu_item_ingredients.menu_id").
		Where("menus.company_id = ?", companyID).
		Find(&rows).Error
	return rows, err
}

func (r *menuRepo) ReplaceAddonIngredients(ctx context.Context, addonID uuid.UUID, menuID *uuid.UUID, rows []model.AddonIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("addon_id = ?", addonID)
		if menuID != nil {
			q = q.Where("menu_id = ?", *menuID)
		} else {
			q = q.Where("menu_id IS NULL")
		}
		if err := q.Delete(&model.AddonIngredient{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].AddonID = addonID
			rows[i].MenuID = menuID
		}
		return tx.Create(&rows).Error
	})
}

func (r *menuRepo) ListAllAddonIngredients(ctx context.Context, companyID uuid.UUID) ([]model.AddonIngredient, error) {
	var rows []model.AddonIngredient
	err := r.db.WithContext(ctx).Preload("Item").
		Joins("JOIN addons ON addons.id = addon_ingredients.addon_id").
		Where("addons.company_id = ?", companyID).
		Find(&rows).Error
	return rows, err
}
