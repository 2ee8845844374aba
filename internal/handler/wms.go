package handler

import (
	"net/http"
	"strconv"

	"github.com/tettoewai/restaurant-pos-sub001/internal/middleware"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WMSHandler struct{ svc service.WMSService }

func NewWMSHandler(svc service.WMSService) *WMSHandler {
	return &WMSHandler{svc: svc}
}

// Check godoc
// @Summary Run the availability check interactively
// @Tags wms
// @Produce json
// @Success 200 {object} dto.WMSCheckData
// @Router /v1/wms/check [get]
func (h *WMSHandler) Check(c *gin.Context) {
	data, err := h.svc.Check(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *WMSHandler) ListResults(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	results, err := h.svc.ListResults(c.Request.Context(), middleware.CompanyID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results})
}

func (h *WMSHandler) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.svc.ListNotifications(c.Request.Context(), middleware.CompanyID(c), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func (h *WMSHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.MarkNotificationRead(c.Request.Context(), id)
	respondAction(c, err, "Notification marked as read.")
}

// CronCheck godoc
// @Summary Scheduled availability check, invoked by an external scheduler
// @Description With a companyId query parameter only that tenant is checked;
// @Description otherwise every tenant is swept and the counts are aggregated.
// @Tags wms
// @Produce json
// @Success 200 {object} dto.CronCheckResponse
// @Router /api/cron/wms-check [get]
func (h *WMSHandler) CronCheck(c *gin.Context) {
	if raw := c.Query("companyId"); raw != "" {
		companyID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid companyId"})
			return
		}
		resp, err := h.svc.RunScheduled(c.Request.Context(), companyID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp, err := h.svc.RunScheduledAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
