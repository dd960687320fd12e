package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-duty-scheduler/config"
	deliveryHttp "hospital-duty-scheduler/internal/delivery/http"
	"hospital-duty-scheduler/internal/delivery/http/handler"
	"hospital-duty-scheduler/internal/delivery/http/middleware"
	"hospital-duty-scheduler/internal/domain/entity"
	"hospital-duty-scheduler/internal/infrastructure/cache"
	"hospital-duty-scheduler/internal/infrastructure/database"
	"hospital-duty-scheduler/internal/repository"
	"hospital-duty-scheduler/internal/scheduler"
	"hospital-duty-scheduler/internal/service"
	"hospital-duty-scheduler/internal/usecase"
	"hospital-duty-scheduler/pkg/jwt"
	"hospital-duty-scheduler/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database migrated successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	server, authUsecase := initializeServer(cfg, db, redisClient)
	app.Server = server

	if err := seed(db, cfg, authUsecase); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *usecase.AuthUsecase) {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Repositories
	userRepo := repository.NewUserRepository()
	staffRepo := repository.NewStaffRepository()
	qualificationRepo := repository.NewQualificationRepository()
	staffQualRepo := repository.NewStaffQualificationRepository()
	roomRepo := repository.NewRoomRepository()
	dutyTypeRepo := repository.NewDutyTypeRepository()
	dutySlotRepo := repository.NewDutySlotRepository()
	assignmentRepo := repository.NewAssignmentRepository()
	scheduleRunRepo := repository.NewScheduleRunRepository()

	// Services
	engine := scheduler.NewEngine(log)
	runLock := service.NewRunLockService(redisClient, log, cfg.Scheduler.RunLockTTL)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient)
	staffUsecase := usecase.NewStaffUsecase(db, log, staffRepo)
	qualificationUsecase := usecase.NewQualificationUsecase(db, log, qualificationRepo, staffQualRepo, staffRepo, roomRepo)
	rosterUsecase := usecase.NewRosterUsecase(db, log, roomRepo, dutyTypeRepo, dutySlotRepo, assignmentRepo, staffRepo, qualificationRepo, staffQualRepo)
	matrixUsecase := usecase.NewMatrixUsecase(db, log, cfg.Scheduler, staffRepo, roomRepo, qualificationRepo, staffQualRepo)
	schedulingUsecase := usecase.NewSchedulingUsecase(db, log, cfg.Scheduler, engine, runLock,
		dutySlotRepo, dutyTypeRepo, staffRepo, roomRepo, qualificationRepo, staffQualRepo, assignmentRepo, scheduleRunRepo)
	analyticsUsecase := usecase.NewAnalyticsUsecase(db, log, cfg.Scheduler, staffRepo, assignmentRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	staffHandler := handler.NewStaffHandler(staffUsecase, qualificationUsecase, customValidator)
	qualificationHandler := handler.NewQualificationHandler(qualificationUsecase, customValidator)
	rosterHandler := handler.NewRosterHandler(rosterUsecase, customValidator)
	matrixHandler := handler.NewMatrixHandler(matrixUsecase)
	schedulingHandler := handler.NewSchedulingHandler(schedulingUsecase, customValidator)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.Scheduler.RateLimitPerSec)
	cacheMiddleware := middleware.NewCacheMiddleware(cfg.Scheduler.MatrixCacheTTL)

	router := deliveryHttp.NewRouter(
		authHandler, staffHandler, qualificationHandler, rosterHandler,
		matrixHandler, schedulingHandler, analyticsHandler,
		authMiddleware, corsMiddleware, rateLimitMiddleware, cacheMiddleware,
	)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, authUsecase
}

// seed populates reference data an empty deployment needs: the duty type
// catalog and the first admin account.
func seed(db *gorm.DB, cfg *config.Config, authUsecase *usecase.AuthUsecase) error {
	dutyTypes := []entity.DutyType{
		{Code: "DAY", Name: "Day duty", Category: entity.DutyTypeCategoryDay},
		{Code: "EVENING", Name: "Evening duty", Category: entity.DutyTypeCategoryEvening},
		{Code: "NIGHT", Name: "Night duty", Category: entity.DutyTypeCategoryNight},
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&dutyTypes).Error
	if err != nil {
		return fmt.Errorf("seed duty types: %w", err)
	}

	return authUsecase.EnsureAdmin(context.Background(), cfg.Scheduler.AdminEmail, cfg.Scheduler.AdminPassword)
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
