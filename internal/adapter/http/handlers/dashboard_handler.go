package handlers

import (
	"log"

	ws "workorder_invoicing/internal/infrastructure/websocket"

	"github.com/gin-gonic/gin"
)

// DashboardHandler upgrades to a websocket that receives a fresh active-work-order
// snapshot after every lifecycle change.

type DashboardHandler struct {
	hub       *ws.Hub
	publisher *ws.DashboardPublisher
}

func NewDashboardHandler(hub *ws.Hub, publisher *ws.DashboardPublisher) *DashboardHandler {
	return &DashboardHandler{hub: hub, publisher: publisher}
}

// Stream godoc
// @Summary      Live dashboard
// @Description  Websocket. The first message is the current snapshot.
// @Tags         work-orders
// @Router       /work-orders/active/stream [get]
func (h *DashboardHandler) Stream(c *gin.Context) {
	greeting, err := h.publisher.Snapshot(c.Request.Context(), "connect")
	if err != nil {
		log.Printf("[dashboard][handler] snapshot failed err=%v", err)
		respondError(c, internalError(err))
		return
	}
	h.hub.Serve(c.Writer, c.Request, greeting)
}
