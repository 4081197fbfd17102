package routes

import (
	"github.com/gin-gonic/gin"

	"talentika/internal/infrastructure/permission"
	"talentika/internal/interfaces/http/handlers"
	"talentika/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	AdminHandler         *handlers.AdminHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())

	transactions := admin.Group("/transactions")
	{
		read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceTransaction, permission.ActionRead)
		retry := cfg.PermissionMiddleware.RequirePermission(permission.ResourceTransaction, permission.ActionRetry)

		transactions.GET("", read, cfg.AdminHandler.ListTransactions)
		transactions.GET("/:id/events", read, cfg.AdminHandler.ListTransactionEvents)
		transactions.POST("/:id/retry-activation", retry, cfg.AdminHandler.RetryActivation)
	}

	admin.GET("/plans",
		cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlan, permission.ActionRead),
		cfg.AdminHandler.ListPlans,
	)
}
