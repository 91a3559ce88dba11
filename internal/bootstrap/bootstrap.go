package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akash/placementhub/internal/app/controllers"
	"github.com/akash/placementhub/internal/app/migrations"
	"github.com/akash/placementhub/internal/app/placement"
	"github.com/akash/placementhub/internal/app/repositories"
	"github.com/akash/placementhub/internal/app/routes"
	"github.com/akash/placementhub/internal/app/services"
	"github.com/akash/placementhub/internal/config"
	"github.com/akash/placementhub/internal/db"
	"github.com/akash/placementhub/internal/middleware"
	"github.com/akash/placementhub/internal/pkg/auth"
	"github.com/akash/placementhub/internal/pkg/helpers"
	"github.com/akash/placementhub/internal/pkg/logger"
	"github.com/akash/placementhub/internal/pkg/push"
	"github.com/akash/placementhub/internal/pkg/validation"
	"github.com/akash/placementhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *services.AuthService
	StudentService         *services.StudentService
	CompanyService         *services.CompanyService
	DriveService           *services.DriveService
	ApplicationService     *services.ApplicationService
	NotificationService    *services.NotificationService
	SettingsService        *services.SettingsService
	AuthController         *controllers.AuthController
	StudentController      *controllers.StudentController
	CompanyController      *controllers.CompanyController
	DriveController        *controllers.DriveController
	ApplicationController  *controllers.ApplicationController
	NotificationController *controllers.NotificationController
	SettingsController     *controllers.SettingsController
	AuthMiddleware         *middleware.AuthMiddleware
	Repos                  *repositories.Repositories
	JWTService             *auth.JWTService
	PushDispatcher         push.Dispatcher
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr, cfg.Seed.DemoData); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AdminTokenExp:   helpers.ParseDuration(cfg.JWT.AdminTokenExpiration, 12*time.Hour),
		StudentTokenExp: helpers.ParseDuration(cfg.JWT.StudentTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.PushDispatcher = push.NewDispatcher(cfg.Push)
	if cfg.Push.Enabled {
		lgr.Info().Str("endpoint", cfg.Push.Endpoint).Msg("Push delivery enabled")
	} else {
		lgr.Info().Msg("Push delivery disabled, notifications are stored only")
	}

	deps.NotificationService = services.NewNotificationService(
		deps.Repos.NotificationRepository,
		deps.Repos.DeviceTokenRepository,
		deps.Repos.StudentRepository,
		deps.Repos.ApplicationRepository,
		deps.PushDispatcher,
		lgr,
	)

	deps.AuthService = services.NewAuthService(
		deps.Repos.AdminRepository,
		deps.Repos.StudentRepository,
		deps.JWTService,
		lgr,
	)
	deps.StudentService = services.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.CompanyService = services.NewCompanyService(deps.Repos.CompanyRepository, lgr)
	deps.DriveService = services.NewDriveService(
		deps.Repos.DriveRepository,
		deps.Repos.StudentRepository,
		deps.NotificationService,
		lgr,
	)
	deps.ApplicationService = services.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.DriveRepository,
		deps.Repos.StudentRepository,
		placement.NewEngine(),
		deps.NotificationService,
		lgr,
	)
	deps.SettingsService = services.NewSettingsService(deps.Repos.SettingsRepository, lgr)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = controllers.NewAuthController(deps.AuthService, deps.StudentService)
	deps.StudentController = controllers.NewStudentController(deps.StudentService)
	deps.CompanyController = controllers.NewCompanyController(deps.CompanyService)
	deps.DriveController = controllers.NewDriveController(deps.DriveService)
	deps.ApplicationController = controllers.NewApplicationController(deps.ApplicationService)
	deps.NotificationController = controllers.NewNotificationController(deps.NotificationService)
	deps.SettingsController = controllers.NewSettingsController(deps.SettingsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	validation.RegisterCustomValidators()

	router := gin.Default()
	router.Use(middleware.Metrics())

	routes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CompanyController,
		deps.DriveController,
		deps.ApplicationController,
		deps.NotificationController,
		deps.SettingsController,
		deps.AuthMiddleware,
	)

	return router
}
