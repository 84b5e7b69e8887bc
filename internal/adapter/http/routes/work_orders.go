package routes

import (
	"workorder_invoicing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWorkOrders = "/work-orders"
	PathStatuses   = "/statuses"
)

func addWorkOrderRoutes(rg *gin.RouterGroup, h *handlers.WorkOrderHandler, dashboard *handlers.DashboardHandler) {
	wo := rg.Group(PathWorkOrders)
	{
		wo.POST("", h.CreateWorkOrder)
		wo.GET("/active", h.ListActive)
		wo.GET("/active/stream", dashboard.Stream)
		wo.GET("/:id", h.GetWorkOrder)
		wo.POST("/:id/advance", h.AdvanceWorkOrder)
		wo.POST("/:id/cancel", h.CancelWorkOrder)
		wo.POST("/:id/archive", h.ArchiveWorkOrder)
		wo.POST("/:id/invoice", h.IssueInvoice)
	}
}

func addStatusRoutes(rg *gin.RouterGroup, h *handlers.StatusHandler) {
	statuses := rg.Group(PathStatuses)
	{
		statuses.GET("", h.ListStatuses)
		statuses.POST("", h.CreateStatus)
		statuses.GET("/next", h.NextStatus)
		statuses.PUT("/:id", h.UpdateStatus)
	}
}
