package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"talentika/internal/infrastructure/auth"
	"talentika/internal/infrastructure/config"
	"talentika/internal/infrastructure/metrics"
	"talentika/internal/infrastructure/permission"
	"talentika/internal/infrastructure/ratelimit"
	"talentika/internal/interfaces/http/handlers"
	"talentika/internal/interfaces/http/middleware"
	"talentika/internal/interfaces/http/validators"
	"talentika/internal/shared/logger"
)

// Container holds infrastructure, use cases, handlers and middlewares for the HTTP
// server and provides Shutdown for graceful termination.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	registry *prometheus.Registry
	ucs      *UseCases

	paymentHandler      *handlers.PaymentHandler
	webhookHandler      *handlers.WebhookHandler
	subscriptionHandler *handlers.SubscriptionHandler
	adminHandler        *handlers.AdminHandler

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware
}

func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	if err := validators.Register(); err != nil {
		return nil, err
	}

	c := &Container{
		engine:   gin.New(),
		db:       gdb,
		cfg:      cfg,
		log:      log,
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ucs, err := NewUseCases(gdb, cfg, log, metrics.NewPaymentMetrics(c.registry))
	if err != nil {
		return nil, err
	}
	c.ucs = ucs

	enforcer, err := permission.NewEnforcer(gdb, log.Named("permission"))
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	if err := enforcer.EnsureDefaultPolicies(); err != nil {
		return nil, fmt.Errorf("failed to seed default policies: %w", err)
	}

	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	c.authMiddleware = middleware.NewAuthMiddleware(verifier, log.Named("auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log.Named("permission"))

	if cfg.RateLimit.Enabled {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := c.redis.Ping(pingCtx).Err(); err != nil {
			log.Warnw("redis unreachable, rate limiting fails open until it recovers", "error", err, "address", cfg.Redis.GetAddr())
		}
		cancel()
		c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(ratelimit.NewRedisRateLimiter(c.redis), log.Named("ratelimit"))
	}

	c.paymentHandler = handlers.NewPaymentHandler(ucs.CreateInvoice, ucs.GetTransaction, log.Named("payment_handler"))
	c.webhookHandler = handlers.NewWebhookHandler(ucs.HandleWebhook, log.Named("webhook_handler"))
	c.subscriptionHandler = handlers.NewSubscriptionHandler(ucs.GetSubscription, ucs.ListPlans, log.Named("subscription_handler"))
	c.adminHandler = handlers.NewAdminHandler(ucs.ListTransactions, ucs.RetryActivation, ucs.ListPlans, log.Named("admin_handler"))

	if cfg.Payment.CallbackToken == "" {
		log.Warnw("payment.callback_token is empty, mock webhook callers are not authenticated")
	}

	return c, nil
}

func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
