package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "talentika/docs"
	"talentika/internal/infrastructure/metrics"
	"talentika/internal/infrastructure/ratelimit"
	"talentika/internal/interfaces/http/handlers"
	"talentika/internal/interfaces/http/middleware"
	"talentika/internal/interfaces/http/routes"
)

// Router owns the gin engine and the dependency container behind it.
type Router struct {
	*Container
}

func NewRouter(c *Container) *Router {
	return &Router{Container: c}
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log.Named("http")))
	r.engine.Use(middleware.Recovery(r.log.Named("recovery")))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.health)
	r.engine.GET("/metrics", gin.WrapH(metrics.Handler(r.registry)))
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api")

	var invoiceLimit gin.HandlerFunc
	if r.rateLimitMiddleware != nil {
		invoiceLimit = r.rateLimitMiddleware.LimitWith("invoice", ratelimit.Limit{
			Requests: r.cfg.RateLimit.InvoiceLimit,
			Window:   time.Duration(r.cfg.RateLimit.InvoiceWindowS) * time.Second,
		}, handlers.RejectInvoice)
	}

	routes.SetupPaymentRoutes(api, &routes.PaymentRouteConfig{
		PaymentHandler:   r.paymentHandler,
		WebhookHandler:   r.webhookHandler,
		AuthMiddleware:   r.authMiddleware,
		InvoiceRateLimit: invoiceLimit,
	})
	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.subscriptionHandler,
		AuthMiddleware:      r.authMiddleware,
	})
	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		AdminHandler:         r.adminHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

func (r *Router) health(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		r.log.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// UseCases exposes the shared application graph, mainly for tests.
func (r *Router) UseCases() *UseCases {
	return r.ucs
}
