package routes

import (
	"github.com/gin-gonic/gin"

	"talentika/internal/interfaces/http/handlers"
	"talentika/internal/interfaces/http/middleware"
)

type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	api.GET("/plans", cfg.SubscriptionHandler.ListPlans)

	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.GET("/me", cfg.SubscriptionHandler.GetMySubscription)
	}
}
