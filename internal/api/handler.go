package api

import (
	"net/http"
	"time"

	"sales-service/internal/service"
	"sales-service/internal/store"
	"sales-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	salesService    *service.SalesService
	metadataService *service.MetadataService
	rows            store.Counter
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewHandler creates a new HTTP handler. rows backs the readiness probe.
func NewHandler(
	salesService *service.SalesService,
	metadataService *service.MetadataService,
	rows store.Counter,
) *Handler {
	return &Handler{
		salesService:    salesService,
		metadataService: metadataService,
		rows:            rows,
		validate:        newValidator(),
		logger:          util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine, allowOrigins []string) {
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(corsMiddleware(allowOrigins))
	router.Use(gzipMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(requestLogger(h.logger))

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/sales", h.listSales)
		api.GET("/sales/export", h.exportSales)
		api.GET("/metadata", h.getMetadata)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready once the dataset can be read
func (h *Handler) readinessCheck(c *gin.Context) {
	n, err := h.rows.Count(c.Request.Context())
	if err != nil {
		h.logger.Warn("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"time":   time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"rows":   n,
		"time":   time.Now().Unix(),
	})
}
