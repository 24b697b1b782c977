// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/link-financer/backend/internal/integration/entrypoint/controller"
	"github.com/link-financer/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	transactionController  *controller.TransactionController
	dashboardController    *controller.DashboardController
	aggregationController  *controller.AggregationController
	aggregationRateLimiter *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	dashboardController *controller.DashboardController,
	aggregationController *controller.AggregationController,
	aggregationRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		transactionController:  transactionController,
		dashboardController:    dashboardController,
		aggregationController:  aggregationController,
		aggregationRateLimiter: aggregationRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
// Route groups are only mounted when their controller was wired.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.dashboardController != nil {
			dashboard := v1.Group("/dashboard")
			{
				dashboard.GET("/monthly-chart", r.dashboardController.GetMonthlyChart)
				dashboard.GET("/monthly-chart/export", r.dashboardController.ExportMonthlyChart)
				dashboard.GET("/category-breakdown", r.dashboardController.GetCategoryBreakdown)
				dashboard.GET("/data-range", r.dashboardController.GetDataRange)
			}
		}

		if r.aggregationController != nil {
			aggregations := v1.Group("/aggregations")
			if r.aggregationRateLimiter != nil {
				aggregations.Use(r.aggregationRateLimiter.Middleware())
			}
			{
				aggregations.POST("/monthly", r.aggregationController.AggregateMonthly)
			}
		}
	}
}
