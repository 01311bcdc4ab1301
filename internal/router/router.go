package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gstdesk/internal/auth"
	"gstdesk/internal/config"
	"gstdesk/internal/handler"
	"gstdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware. verifier
// may be nil when JWT authentication is disabled.
func Setup(
	cfg *config.Config,
	log *logrus.Logger,
	verifier auth.TokenVerifier,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	if cfg.JWT.Enabled && verifier != nil {
		invoices.Use(middleware.AuthMiddleware(verifier))
		invoices.Use(middleware.BusinessGuard())
	}
	invoices.POST("/preview", invoiceH.Preview)
	invoices.POST("/render", invoiceH.Render)
	invoices.POST("/submit", invoiceH.Submit)
	invoices.POST("/export", invoiceH.Export)

	return r
}
