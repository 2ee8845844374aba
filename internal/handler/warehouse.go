package handler

import (
	"net/http"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/middleware"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type WarehouseHandler struct{ svc service.WarehouseService }

func NewWarehouseHandler(svc service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{svc: svc}
}

// ── Warehouses ────────────────────────────────────────────────────────────────

func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	var req dto.CreateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateWarehouse(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WarehouseHandler) ListWarehouses(c *gin.Context) {
	resp, err := h.svc.ListWarehouses(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (h *WarehouseHandler) CreateItem(c *gin.Context) {
	var req dto.CreateWarehouseItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateItem(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WarehouseHandler) UpdateItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateWarehouseItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehouseHandler) ListItems(c *gin.Context) {
	resp, err := h.svc.ListItems(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Stock ─────────────────────────────────────────────────────────────────────

func (h *WarehouseHandler) GetStock(c *gin.Context) {
	warehouseID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetStock(c.Request.Context(), middleware.CompanyID(c), warehouseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustStock godoc
// @Summary Record a manual stocktake correction
// @Tags warehouse
// @Accept json
// @Produce json
// @Param body body dto.AdjustStockRequest true "Adjustment"
// @Success 200 {object} dto.ActionResponse
// @Failure 409 {object} dto.ActionResponse
// @Router /v1/stock/adjust [post]
func (h *WarehouseHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.AdjustStock(c.Request.Context(), middleware.CompanyID(c), req)
	respondAction(c, err, "Stock adjusted.")
}

func (h *WarehouseHandler) ListMovements(c *gin.Context) {
	var filter dto.StockMovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), middleware.CompanyID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (h *WarehouseHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSupplier(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WarehouseHandler) ListSuppliers(c *gin.Context) {
	resp, err := h.svc.ListSuppliers(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
