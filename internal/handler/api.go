package handler

import (
	"context"
	"net/http"

	"sentinel-dashboard/internal/feed"
	"sentinel-dashboard/internal/metrics"
	"sentinel-dashboard/internal/models"
	"sentinel-dashboard/internal/stats"
	"sentinel-dashboard/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests
type Handler struct {
	controller   *feed.Controller
	store        *store.Store
	seriesWindow int
	logger       *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(controller *feed.Controller, st *store.Store, seriesWindow int, logger *zap.Logger) *Handler {
	return &Handler{
		controller:   controller,
		store:        st,
		seriesWindow: seriesWindow,
		logger:       logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// Feed endpoints
		api.POST("/messages", h.SubmitMessage)
		api.POST("/simulate", h.RunSimulation)

		// Dashboard data
		api.GET("/messages", h.GetMessages)
		api.GET("/stats", h.GetStats)
	}

	// Health check
	r.GET("/health", h.HealthCheck)

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// SubmitMessage injects a single message into the stream. The response
// carries the pending record; its analysis arrives asynchronously.
func (h *Handler) SubmitMessage(c *gin.Context) {
	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.controller.Submit(req.Author, req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text must not be blank"})
		return
	}

	c.JSON(http.StatusAccepted, msg)
}

// RunSimulation starts the staggered batch submission in the background.
func (h *Handler) RunSimulation(c *gin.Context) {
	go h.controller.RunBatch(context.Background(), nil)

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "started",
		"count":   len(feed.SampleMessages),
		"message": "Batch simulation started. Poll /api/v1/messages for results",
	})
}

// GetMessages returns the full message snapshot in submission order.
func (h *Handler) GetMessages(c *gin.Context) {
	messages := h.store.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

// GetStats returns the dashboard aggregates for the current snapshot.
func (h *Handler) GetStats(c *gin.Context) {
	overview := stats.Compute(h.store.Snapshot(), h.seriesWindow)

	c.JSON(http.StatusOK, overview)
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sentinel-dashboard",
		"version": "1.0.0",
	})
}
