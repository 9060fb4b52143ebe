package router

import (
	"github.com/gin-gonic/gin"

	"claimlens/internal/config"
	"claimlens/internal/handler"
	"claimlens/internal/middleware"
	"claimlens/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	fileH *handler.FileHandler,
	evalH *handler.EvaluationHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Policy document library
	policies := protected.Group("/policies")
	policies.POST("/upload", fileH.Upload)
	policies.GET("", fileH.List)
	policies.GET("/:id", fileH.GetByID)
	policies.DELETE("/:id", fileH.Delete)

	// Claim evaluations
	evaluations := protected.Group("/evaluations")
	evaluations.POST("", evalH.Evaluate)
	evaluations.GET("", evalH.List)
	evaluations.GET("/export/csv", evalH.ExportCSV)
	evaluations.GET("/export/xlsx", evalH.ExportXLSX)
	evaluations.GET("/:id", evalH.GetByID)
	evaluations.DELETE("/:id", evalH.Delete)

	return r
}
