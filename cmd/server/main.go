package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sentinel-dashboard/internal/classifier"
	"sentinel-dashboard/internal/config"
	"sentinel-dashboard/internal/feed"
	"sentinel-dashboard/internal/handler"
	"sentinel-dashboard/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting Sentinel Dashboard...")

	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Select classifier: configured Gemini, or the offline synthetic mode.
	// Offline is a valid operating mode, not an error.
	var cls classifier.Classifier

	offline := cfg.Classifier.Offline
	if !offline && cfg.Gemini.APIKey == "" {
		logger.Warn("No Gemini API key configured, falling back to offline mode")
		offline = true
	}

	if offline {
		cls = classifier.NewOfflineClient(cfg.EmulatedLatency(), logger)
		logger.Info("Offline classifier initialized (synthetic analysis)")
	} else {
		geminiClient, err := classifier.NewGeminiClient(context.Background(), classifier.GeminiConfig{
			APIKey:    cfg.Gemini.APIKey,
			ModelName: cfg.Gemini.ModelName,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini classifier", zap.Error(err))
		}
		defer geminiClient.Close()
		cls = geminiClient
	}

	// Initialize message store and feed controller
	messageStore := store.New(logger)
	controller := feed.New(cls, messageStore, cfg.StaggerDelay(), logger)

	// Initialize HTTP handler
	apiHandler := handler.NewHandler(controller, messageStore, cfg.Feed.SeriesWindow, logger)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register routes
	apiHandler.RegisterRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Sentinel Dashboard is running",
		zap.String("port", cfg.Server.Port),
		zap.String("classifier", cls.Name()))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight classifications resolve before exiting.
	controller.Wait()

	logger.Info("Server exited")
}
