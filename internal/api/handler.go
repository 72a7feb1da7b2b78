package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pos-service/internal/apperrors"
	"pos-service/internal/service"
	"pos-service/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	purchaseService *service.PurchaseService
}

// NewHandler creates a new HTTP handler
func NewHandler(purchaseService *service.PurchaseService) *Handler {
	return &Handler{
		purchaseService: purchaseService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())
	// The register frontend runs on a separate origin.
	router.Use(cors.Default())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/product/:code", h.getProduct)
	router.POST("/purchase", h.recordPurchase)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// getProduct handles product lookup by public code
func (h *Handler) getProduct(c *gin.Context) {
	code := c.Param("code")

	product, err := h.purchaseService.GetProduct(c.Request.Context(), code)
	if err != nil {
		status := http.StatusInternalServerError
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": gin.H{
			"code":  product.Code,
			"name":  product.Name,
			"price": product.Price,
		},
	})
}

// recordPurchase handles purchase recording
func (h *Handler) recordPurchase(c *gin.Context) {
	var req service.PurchaseRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.purchaseService.RecordPurchase(c.Request.Context(), &req)
	if err != nil {
		c.JSON(purchaseErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// purchaseErrorStatus maps the error taxonomy to HTTP status codes. An
// unknown product code during a purchase is a caller mistake, so it maps to
// 400 rather than 404.
func purchaseErrorStatus(err error) int {
	var validation *apperrors.ValidationError
	var notFound *apperrors.NotFoundError
	switch {
	case errors.As(err, &validation), errors.As(err, &notFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
