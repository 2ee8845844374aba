package handler

import (
	"github.com/tettoewai/restaurant-pos-sub001/internal/middleware"
	"github.com/tettoewai/restaurant-pos-sub001/internal/realtime"

	"github.com/gin-gonic/gin"
)

// WSHandler upgrades the staff order board to a websocket fed by order events.
// JWT auth runs before the upgrade, so the company scope comes from claims.
type WSHandler struct{ hub *realtime.Hub }

func NewWSHandler(hub *realtime.Hub) *WSHandler { return &WSHandler{hub: hub} }

func (h *WSHandler) Serve(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request, middleware.CompanyID(c))
}
