package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-appointment/config"
	deliveryHttp "clinic-appointment/internal/delivery/http"
	"clinic-appointment/internal/delivery/http/handler"
	"clinic-appointment/internal/delivery/http/middleware"
	"clinic-appointment/internal/infrastructure/cache"
	"clinic-appointment/internal/infrastructure/database"
	"clinic-appointment/internal/infrastructure/docstore"
	"clinic-appointment/internal/infrastructure/logger"
	"clinic-appointment/internal/infrastructure/migration"
	"clinic-appointment/internal/repository"
	"clinic-appointment/internal/service"
	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/jwt"
	"clinic-appointment/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	MongoClient *mongo.Client
	Server      *http.Server

	// AuthUsecase is exposed for the admin bootstrap command.
	AuthUsecase usecase.AuthUsecase
}

// Load reads the configuration and builds the logger it describes.
func Load(configPath string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Log, cfg.App.Env)
	log.Info("Configuration loaded successfully")
	return cfg, log, nil
}

// NewMigrator prepares schema migrations without opening the other stores.
func NewMigrator(configPath string) (*migration.Migrator, *logrus.Logger, error) {
	cfg, log, err := Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	m, err := migration.New(cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	return m, log, nil
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	cfg, log, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log}

	if cfg.DB.AutoMigrate {
		m, err := migration.New(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		err = m.Up()
		m.Close()
		if err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	mongoClient, err := docstore.NewMongoClient(cfg.Mongo)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	app.MongoClient = mongoClient

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()
	visitColl, err := docstore.VisitRecordCollection(ctx, mongoClient, cfg.Mongo)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.initializeServer(visitColl)

	return app, nil
}

// initializeServer wires every layer and creates the HTTP server
func (app *App) initializeServer(visitColl *mongo.Collection) {
	cfg, log, db := app.Config, app.Log, app.DB

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Repositories
	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	doctorProfileRepo := repository.NewDoctorProfileRepository(db)
	patientProfileRepo := repository.NewPatientProfileRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	visitRecordRepo := repository.NewVisitRecordRepository(visitColl)

	// Services
	tokenStore := service.NewTokenStore(app.RedisClient)
	auditService := service.NewAuditService(log, auditLogRepo)
	availabilityCache := service.NewAvailabilityCache(app.RedisClient, log, cfg.Booking.CacheTTL)
	availabilityService := service.NewAvailabilityService(log, scheduleRepo, doctorProfileRepo, appointmentRepo,
		availabilityCache, cfg.Booking.SlotDuration, cfg.App.Location(), time.Now)
	bookingMetrics := service.NewBookingMetrics(registry)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(transactor, log, userRepo, doctorProfileRepo, patientProfileRepo, jwtService, tokenStore, auditService, availabilityService.Now)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(transactor, log, userRepo, doctorProfileRepo, branchRepo, availabilityService, tokenStore, auditService)
	scheduleUsecase := usecase.NewDoctorScheduleUsecase(log, scheduleRepo, doctorProfileRepo, availabilityService, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, availabilityService, cfg.Booking.DefaultRangeDays, cfg.Booking.MaxRangeDays)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, doctorProfileRepo, availabilityService, auditService, bookingMetrics)
	visitRecordUsecase := usecase.NewVisitRecordUsecase(log, visitRecordRepo, appointmentRepo, auditService, time.Now)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(transactor, log, userRepo, patientProfileRepo, auditService)
	branchUsecase := usecase.NewBranchUsecase(log, branchRepo, doctorProfileRepo, auditService)
	app.AuthUsecase = authUsecase

	router := deliveryHttp.NewRouter(
		registry,
		handler.NewAuthHandler(log, authUsecase, customValidator),
		handler.NewDoctorHandler(log, doctorProfileUsecase, customValidator),
		handler.NewAvailabilityHandler(log, availabilityUsecase),
		handler.NewDoctorScheduleHandler(log, scheduleUsecase, customValidator),
		handler.NewAppointmentHandler(log, appointmentUsecase, customValidator),
		handler.NewVisitRecordHandler(log, visitRecordUsecase, customValidator),
		handler.NewAuditLogHandler(log, auditLogUsecase),
		handler.NewPatientHandler(log, patientProfileUsecase, customValidator),
		handler.NewBranchHandler(log, branchUsecase, customValidator),
		middleware.NewAuthMiddleware(log, jwtService, tokenStore),
		middleware.NewCORSMiddleware(""),
		middleware.NewLoggingMiddleware(log),
		middleware.NewMetricsMiddleware(registry),
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, mongo)
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

	if app.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.MongoClient.Disconnect(ctx); err != nil {
			app.Log.Warnf("Failed to disconnect MongoDB: %v", err)
		}
	}
}
