package routes

import (
	"log"
	"net/http"

	_ "workorder_invoicing/docs"
	request "workorder_invoicing/internal/adapter/http/dto/request"
	"workorder_invoicing/internal/adapter/http/handlers"
	"workorder_invoicing/internal/infrastructure/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	WorkOrders     *handlers.WorkOrderHandler
	Statuses       *handlers.StatusHandler
	Invoices       *handlers.InvoiceHandler
	PaymentMethods *handlers.PaymentMethodHandler
	Payments       *handlers.BillingPaymentHandler
	Audit          *handlers.AuditHandler
	Dashboard      *handlers.DashboardHandler
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(cfg *config.Config, h Handlers) (*gin.Engine, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if err := request.RegisterValidators(); err != nil {
		return nil, err
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	setMiddlewares(router, cfg, limiter.New(memory.NewStore(), rate))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addWorkOrderRoutes(v1, h.WorkOrders, h.Dashboard)
	addStatusRoutes(v1, h.Statuses)
	addBillingRoutes(v1, h.Invoices, h.PaymentMethods, h.Payments)
	addAuditRoutes(v1, h.Audit)

	return router, nil
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, rateLimiter *limiter.Limiter) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(RateLimit(rateLimiter))
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
