package handler

import (
	"net/http"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/middleware"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// ── Public QR surface ─────────────────────────────────────────────────────────

// ResolveTable godoc
// @Summary Resolve a scanned QR token to its table
// @Tags orders
// @Produce json
// @Param token path string true "QR token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} apierror.APIError
// @Router /public/tables/{token} [get]
func (h *OrdersHandler) ResolveTable(c *gin.Context) {
	table, err := h.svc.ResolveTable(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tableId":   table.ID.String(),
		"tableName": table.Name,
	})
}

// CreateOrder godoc
// @Summary Submit a cart from the QR ordering page
// @Tags orders
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderRequest true "Cart"
// @Success 200 {object} dto.TableOrdersResponse
// @Router /public/orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) GetTableOrders(c *gin.Context) {
	tableID, ok := uuidParam(c, "tableId")
	if !ok {
		return
	}
	resp, err := h.svc.GetTableOrders(c.Request.Context(), tableID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Staff surface ─────────────────────────────────────────────────────────────

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.UpdateStatus(c.Request.Context(), middleware.CompanyID(c), id, req.Status)
	respondAction(c, err, "Order status updated.")
}

// Pay godoc
// @Summary Settle selected order lines into a receipt
// @Tags orders
// @Accept json
// @Produce json
// @Param body body dto.PayOrderRequest true "Lines to pay"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders/pay [post]
func (h *OrdersHandler) Pay(c *gin.Context) {
	var req dto.PayOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pay(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) GetReceipt(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetReceipt(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) ListReceipts(c *gin.Context) {
	var filter dto.ReceiptFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.ListReceipts(c.Request.Context(), middleware.CompanyID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
