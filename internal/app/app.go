package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ulp_backend/internal/config"
	"ulp_backend/internal/handlers"
	"ulp_backend/internal/logger"
	"ulp_backend/internal/middleware"
	"ulp_backend/internal/models"
	"ulp_backend/internal/repositories"
	"ulp_backend/internal/routes"
	"ulp_backend/internal/services"
	"ulp_backend/internal/telemetry"
	"ulp_backend/internal/tracking"
	"ulp_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter, collector := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))

	errCh := make(chan error, 1)
	go func() {
		errCh <- ginRouter.Run(address)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		collector.Close()
		logger.Fatal("Server startup error", "error", err)
	case sig := <-quit:
		logger.Info("Shutting down, draining event queue...", "signal", sig.String())
		// Коллектор дописывает все, что уже в очереди
		collector.Close()
	}
}

// AutoMigrate создает/обновляет таблицы лидов, событий и логов
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Lead{},
		&models.Event{},
		&models.Log{},
	)
}

// SetupRouter собирает весь граф приложения: репозитории, фоновый
// коллектор событий, сервисы, хэндлеры и маршруты. Возвращает коллектор,
// чтобы вызывающий мог дождаться дренажа очереди при остановке.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *telemetry.Collector) {
	serviceContainer, collector := InitializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, serviceContainer.AuthService)

	return ginRouter, collector
}

func InitializeServices(cfg *config.Config, gormDB *gorm.DB) (*services.ServiceContainer, *telemetry.Collector) {
	// --- Инициализация репозиториев ---
	leadRepo := repositories.NewLeadRepository(gormDB)
	eventRepo := repositories.NewEventRepository(gormDB)
	logRepo := repositories.NewLogRepository(gormDB)

	// --- Фоновый коллектор телеметрии ---
	geoClient := tracking.NewGeoClient(cfg.Tracking.GeoEndpoint, time.Duration(cfg.Tracking.GeoTimeoutSec)*time.Second)
	collector := telemetry.NewCollector(eventRepo, geoClient, cfg.Tracking.QueueSize)

	// --- Инициализация сервисов ---
	logService := services.NewLogService(logRepo)
	leadService := services.NewLeadService(leadRepo, logService)
	eventService := services.NewEventService(eventRepo, collector)
	authService := services.NewAuthService(cfg, logService)

	return &services.ServiceContainer{
		AuthService:  authService,
		LeadService:  leadService,
		EventService: eventService,
		LogService:   logService,
	}, collector
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:  handlers.NewAuthHandler(baseHandler, services.AuthService),
		LeadHandler:  handlers.NewLeadHandler(baseHandler, services.LeadService),
		EventHandler: handlers.NewEventHandler(baseHandler, services.EventService),
		LogHandler:   handlers.NewLogHandler(baseHandler, services.LogService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RestrictedHostMiddleware(cfg))
	return router
}
