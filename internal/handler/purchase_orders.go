package handler

import (
	"net/http"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/middleware"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseOrdersHandler struct{ svc service.PurchaseOrderService }

func NewPurchaseOrdersHandler(svc service.PurchaseOrderService) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{svc: svc}
}

// Create godoc
// @Summary Create a purchase order
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param body body dto.CreatePurchaseOrderRequest true "Order"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} dto.ActionResponse
// @Router /v1/purchase-orders [post]
func (h *PurchaseOrdersHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondAction(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.ActionResponse{
		IsSuccess: true,
		Message:   "Purchase order created.",
		Data:      resp,
	})
}

func (h *PurchaseOrdersHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, changed, err := h.svc.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		respondAction(c, err, "")
		return
	}
	msg := "Purchase order updated."
	if !changed {
		msg = "No changes to apply."
	}
	c.JSON(http.StatusOK, dto.ActionResponse{IsSuccess: true, Message: msg, Data: resp})
}

// Receive godoc
// @Summary Receive a pending purchase order, applying stock
// @Tags purchase-orders
// @Produce json
// @Success 200 {object} dto.ActionResponse
// @Failure 409 {object} dto.ActionResponse
// @Router /v1/purchase-orders/{id}/receive [post]
func (h *PurchaseOrdersHandler) Receive(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.Receive(c.Request.Context(), middleware.CompanyID(c), id)
	respondAction(c, err, "Purchase order received. Stock has been updated.")
}

func (h *PurchaseOrdersHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.Cancel(c.Request.Context(), middleware.CompanyID(c), id)
	respondAction(c, err, "Purchase order cancelled.")
}

func (h *PurchaseOrdersHandler) Correct(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.CorrectPurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.Correct(c.Request.Context(), middleware.CompanyID(c), id, req)
	respondAction(c, err, "Purchase order corrected. Stock has been adjusted.")
}

func (h *PurchaseOrdersHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), middleware.CompanyID(c), id)
	respondAction(c, err, "Purchase order deleted.")
}

func (h *PurchaseOrdersHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) List(c *gin.Context) {
	var filter dto.PurchaseOrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.CompanyID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
