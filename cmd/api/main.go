package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fundsync/internal/config"
	"fundsync/internal/database"
	"fundsync/internal/handlers"
	"fundsync/internal/logger"
	"fundsync/internal/middleware"
	"fundsync/internal/pipeline"
	"fundsync/internal/services"
	"fundsync/internal/validator"

	_ "fundsync/internal/docs" // Import swagger docs
)

// @title           fundsync API
// @version         1.0
// @description     fundsync mirrors the MUFAP fund catalog: AMCs, categories, funds and monthly market caps.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Pipeline API key.

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

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	catalogService := services.NewCatalogService(db)
	syncer := pipeline.NewSyncer(db, pipeline.NewSourceClient(appConfig), pipeline.ConfigFrom(appConfig))

	router := newRouter(catalogService, syncer, appConfig.PipelineAPIKey)

	if appConfig.PipelineAPIKey == "" {
		log.Warn("PIPELINE_API_KEY is not set; pipeline endpoints are disabled")
	}
	log.Infof("Starting fundsync API server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// newRouter wires the catalog and pipeline routes onto a fresh gin engine.
func newRouter(catalogService services.CatalogServicer, runner handlers.SyncRunner, pipelineAPIKey string) *gin.Engine {
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	pipelineHandler := handlers.NewPipelineHandler(runner)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.GET("/amcs", catalogHandler.ListAMCs)
	v1.GET("/categories", catalogHandler.ListCategories)

	funds := v1.Group("/funds")
	funds.GET("", catalogHandler.ListFunds)
	funds.GET("/:slug", catalogHandler.GetFund)
	funds.GET("/:slug/market-caps", catalogHandler.GetFundMarketCaps)

	// Pipeline trigger, for schedulers that prefer HTTP over running cmd/sync
	pipelineRoutes := v1.Group("/pipeline")
	pipelineRoutes.Use(middleware.PipelineAuthMiddleware(pipelineAPIKey))
	pipelineRoutes.POST("/sync", pipelineHandler.TriggerSync)

	return router
}
