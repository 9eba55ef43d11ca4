package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"gagyebu/internal/cache"
	"gagyebu/internal/config"
	"gagyebu/internal/credentials"
	"gagyebu/internal/database"
	"gagyebu/internal/gdrive"
	"gagyebu/internal/handlers"
	"gagyebu/internal/ingest"
	"gagyebu/internal/logger"
	"gagyebu/internal/middleware"
	"gagyebu/internal/services"
	"gagyebu/internal/temporal"
	"gagyebu/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Household
	times := temporal.NewResolver(appConfig.Location)
	directory := credentials.NewDirectory(appConfig.Members)
	for _, m := range directory.Members() {
		log.Infow("household member configured", "role", m.Role, "email", m.Email)
	}

	// Initialize services
	db := dbManager.DB()
	spendingService := services.NewSpendingService(db)
	syncRunService := services.NewSyncRunService(db)
	timeline := cache.New(spendingService.QueryAll)

	syncService := services.NewSyncService(services.SyncDeps{
		Directory: directory,
		Resolver:  credentials.NewResolver(appConfig.GoogleClientID, appConfig.GoogleClientSecret),
		Drive: func(ctx context.Context, client *http.Client) (gdrive.API, error) {
			return gdrive.NewClient(ctx, client, appConfig.DriveRequestTimeout)
		},
		Normalizer:  ingest.NewNormalizer(times, directory),
		Spendings:   spendingService,
		Runs:        syncRunService,
		Invalidator: timeline,
	}, services.SyncOptions{
		FolderName: appConfig.DriveFolderName,
		FilePrefix: appConfig.SourceFilePrefix,
		ScratchDir: appConfig.ScratchDir,
		Timeout:    appConfig.SyncTimeout,
	})

	// Initialize handlers
	syncHandler := handlers.NewSyncHandler(syncService, syncRunService)
	spendingHandler := handlers.NewSpendingHandler(spendingService, times)
	statsHandler := handlers.NewStatsHandler(timeline, times)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Sync-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Scheduled sync, authorized by shared key
	scheduled := v1.Group("/scheduled")
	scheduled.Use(middleware.SyncKeyMiddleware(appConfig.SyncAPIKey))
	scheduled.POST("/sync", syncHandler.SyncHousehold)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware([]byte(appConfig.JWTSecret), directory))

	// Sync routes
	sync := protected.Group("/sync")
	sync.POST("", syncHandler.SyncHousehold)
	sync.POST("/me", syncHandler.SyncMine)
	sync.GET("/runs", syncHandler.ListRuns)
	sync.GET("/runs/latest", syncHandler.LatestRun)

	// Spending routes
	spendings := protected.Group("/spendings")
	spendings.GET("", spendingHandler.ListSpendings)
	spendings.GET("/categories", spendingHandler.ListCategories)
	spendings.GET("/:id", spendingHandler.GetSpending)

	// Stats routes
	stats := protected.Group("/stats")
	stats.GET("/summary", statsHandler.Summary)
	stats.GET("/monthly", statsHandler.Monthly)
	stats.GET("/categories/monthly", statsHandler.CategoryMonthly)
	stats.GET("/distribution", statsHandler.Distribution)

	log.Infof("Starting gagyebu server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
