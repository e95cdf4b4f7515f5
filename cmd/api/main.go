package main

import (
	"log"

	_ "marketplace/api/swagger" // swagger docs
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/handler"
	"marketplace/internal/repository"
	"marketplace/internal/service"
	"marketplace/internal/websocket"
	"marketplace/pkg/cache"
	"marketplace/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Marketplace Tax API
// @version         1.0
// @description     Tax calculation engine and tax configuration API for the marketplace platform.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg := config.Load()
	logger.InitLogger(cfg.Stage, cfg.LogLevel)

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		logger.Log.Fatal("Database connection failed", zap.Error(err))
	}
	logger.Log.Info("Connected to PostgreSQL successfully")

	// Set up WebSocket Hub for tax change notifications
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Shared read cache for group resolution lookups
	resolutionCache := cache.NewMemory()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	definitionRepo := repository.NewTaxDefinitionRepository(db)
	groupRepo := repository.NewTaxGroupRepository(db, resolutionCache, cfg.Engine.GroupCacheTTL)
	rateRepo := repository.NewTaxRateRepository(db)
	assignmentRepo := repository.NewTaxAssignmentRepository(db, resolutionCache, cfg.Engine.GroupCacheTTL)
	auditRepo := repository.NewAuditRepository(db)

	taxService := service.NewTaxService(groupRepo, assignmentRepo, rateRepo, cfg.Engine)
	definitionService := service.NewTaxDefinitionService(definitionRepo, auditRepo, txManager, wsHub)
	groupService := service.NewTaxGroupService(groupRepo, rateRepo, assignmentRepo, definitionRepo, auditRepo, txManager, resolutionCache, wsHub)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	taxHandler := handler.NewTaxHandler(taxService)
	definitionHandler := handler.NewTaxDefinitionHandler(definitionService)
	groupHandler := handler.NewTaxGroupHandler(groupService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Actor"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for tax configuration change events
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	taxHandler.RegisterRoutes(router.Group(""))
	definitionHandler.RegisterRoutes(router.Group(""))
	groupHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	logger.Log.Info("Server listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed", zap.Error(err))
	}
}
