package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kazihub-inc/kazihub/internal/infrastructure/config"
	"github.com/kazihub-inc/kazihub/internal/interfaces/http/handlers"
	"github.com/kazihub-inc/kazihub/internal/interfaces/http/middleware"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

// Router wires handlers and middleware onto the gin engine.
type Router struct {
	engine *gin.Engine
	logger logger.Interface

	authMiddleware   *middleware.AuthMiddleware
	entitlementGuard *middleware.EntitlementGuard

	healthHandler      *handlers.HealthHandler
	planHandler        *handlers.PlanHandler
	entitlementHandler *handlers.EntitlementHandler
	checkoutHandler    *handlers.CheckoutHandler
}

func NewRouter(
	authMiddleware *middleware.AuthMiddleware,
	entitlementGuard *middleware.EntitlementGuard,
	planHandler *handlers.PlanHandler,
	entitlementHandler *handlers.EntitlementHandler,
	checkoutHandler *handlers.CheckoutHandler,
	log logger.Interface,
) *Router {
	return &Router{
		engine:             gin.New(),
		logger:             log,
		authMiddleware:     authMiddleware,
		entitlementGuard:   entitlementGuard,
		healthHandler:      handlers.NewHealthHandler(),
		planHandler:        planHandler,
		entitlementHandler: entitlementHandler,
		checkoutHandler:    checkoutHandler,
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/version", r.healthHandler.Version)

	r.setupPlanRoutes()
	r.setupEntitlementRoutes()
	r.setupCheckoutRoutes()
	r.setupPremiumRoutes()
}

func (r *Router) setupPlanRoutes() {
	plans := r.engine.Group("/plans")
	{
		plans.GET("", r.planHandler.ListPlans)
		plans.GET("/cycle-preference", r.authMiddleware.RequireAuth(), r.planHandler.GetCyclePreference)
		plans.PUT("/cycle-preference", r.authMiddleware.RequireAuth(), r.planHandler.SetCyclePreference)
	}
}

func (r *Router) setupEntitlementRoutes() {
	entitlements := r.engine.Group("/entitlements")
	entitlements.Use(r.authMiddleware.RequireAuth())
	{
		entitlements.GET("/access", r.entitlementHandler.GetAccess)
		entitlements.GET("", r.entitlementHandler.ListHistory)
		entitlements.POST("/trial", r.entitlementHandler.StartTrial)
		entitlements.DELETE("/active", r.entitlementHandler.CancelActive)
	}
}

func (r *Router) setupCheckoutRoutes() {
	checkouts := r.engine.Group("/checkouts")
	checkouts.Use(r.authMiddleware.RequireAuth())
	{
		checkouts.POST("", r.checkoutHandler.Begin)
		checkouts.GET("/:sid", r.checkoutHandler.Get)
		checkouts.PUT("/:sid/method", r.checkoutHandler.SelectMethod)
		checkouts.PUT("/:sid/details", r.checkoutHandler.SubmitDetails)
		checkouts.POST("/:sid/confirm", r.checkoutHandler.Confirm)
		checkouts.POST("/:sid/retry", r.checkoutHandler.Retry)
		checkouts.DELETE("/:sid", r.checkoutHandler.Abandon)
	}
}

// setupPremiumRoutes mounts routes behind the entitlement guard. Marketplace
// features register their premium surfaces under this group.
func (r *Router) setupPremiumRoutes() {
	premium := r.engine.Group("/premium")
	premium.Use(r.authMiddleware.RequireAuth(), r.entitlementGuard.RequireEntitlement("premium tools"))
	{
		premium.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{"premium": true})
		})
	}
}
