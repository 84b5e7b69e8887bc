package routes

import (
	"workorder_invoicing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathAudit = "/audit"

func addAuditRoutes(rg *gin.RouterGroup, h *handlers.AuditHandler) {
	audit := rg.Group(PathAudit)
	{
		audit.GET("", h.Audit)
		audit.GET("/export", h.ExportAudit)
		audit.GET("/summary", h.LifecycleSummary)
		audit.GET("/numbers/:customer_class/:number", h.FindByNumber)
		audit.POST("/counters/:customer_class/resync", h.ResyncCounter)
	}
}
