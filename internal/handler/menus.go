package handler

import (
	"net/http"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/middleware"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type MenusHandler struct{ svc service.MenuService }

func NewMenusHandler(svc service.MenuService) *MenusHandler {
	return &MenusHandler{svc: svc}
}

// ── Menus ─────────────────────────────────────────────────────────────────────

func (h *MenusHandler) CreateMenu(c *gin.Context) {
	var req dto.CreateMenuRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateMenu(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ListMenus(c *gin.Context) {
	resp, err := h.svc.ListMenus(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *MenusHandler) DeleteMenu(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.DeleteMenu(c.Request.Context(), middleware.CompanyID(c), id)
	respondAction(c, err, "Menu deleted.")
}

// ── Addons ────────────────────────────────────────────────────────────────────

func (h *MenusHandler) CreateAddon(c *gin.Context) {
	var req dto.CreateAddonRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateAddon(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ListAddons(c *gin.Context) {
	resp, err := h.svc.ListAddons(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Categories ────────────────────────────────────────────────────────────────

func (h *MenusHandler) CreateMenuCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateMenuCategory(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ListMenuCategories(c *gin.Context) {
	resp, err := h.svc.ListMenuCategories(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *MenusHandler) CreateAddonCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateAddonCategory(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ListAddonCategories(c *gin.Context) {
	resp, err := h.svc.ListAddonCategories(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Ingredient mappings ───────────────────────────────────────────────────────

// SetMenuIngredients godoc
// @Summary Replace a menu's ingredient mappings
// @Tags menus
// @Accept json
// @Produce json
// @Param body body dto.SetMenuIngredientsRequest true "Mappings"
// @Success 200 {object} dto.ActionResponse
// @Router /v1/menus/{id}/ingredients [put]
func (h *MenusHandler) SetMenuIngredients(c *gin.Context) {
	menuID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetMenuIngredientsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.SetMenuIngredients(c.Request.Context(), middleware.CompanyID(c), menuID, req)
	respondAction(c, err, "Menu ingredients updated.")
}

func (h *MenusHandler) GetMenuIngredients(c *gin.Context) {
	menuID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetMenuIngredients(c.Request.Context(), middleware.CompanyID(c), menuID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *MenusHandler) SetAddonIngredients(c *gin.Context) {
	addonID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetAddonIngredientsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.SetAddonIngredients(c.Request.Context(), middleware.CompanyID(c), addonID, req)
	respondAction(c, err, "Addon ingredients updated.")
}

// ── Promotions ────────────────────────────────────────────────────────────────

func (h *MenusHandler) CreatePromotion(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePromotion(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ListPromotions(c *gin.Context) {
	resp, err := h.svc.ListPromotions(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *MenusHandler) DeletePromotion(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.DeletePromotion(c.Request.Context(), middleware.CompanyID(c), id)
	respondAction(c, err, "Promotion deleted.")
}
