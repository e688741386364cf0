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

	appControllers "github.com/synqit/synqit/internal/app/controllers"
	appMigrations "github.com/synqit/synqit/internal/app/migrations"
	appRepos "github.com/synqit/synqit/internal/app/repositories"
	appRoutes "github.com/synqit/synqit/internal/app/routes"
	appServices "github.com/synqit/synqit/internal/app/services"
	"github.com/synqit/synqit/internal/config"
	"github.com/synqit/synqit/internal/db"
	appMiddleware "github.com/synqit/synqit/internal/middleware"
	pkgAuth "github.com/synqit/synqit/internal/pkg/auth"
	"github.com/synqit/synqit/internal/pkg/logger"
	"github.com/synqit/synqit/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	ProjectService         appServices.ProjectService
	PartnershipService     appServices.PartnershipService
	MessageService         appServices.MessageService
	NotificationService    appServices.NotificationService
	AuthController         *appControllers.AuthController
	ProjectController      *appControllers.ProjectController
	PartnershipController  *appControllers.PartnershipController
	MessageController      *appControllers.MessageController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
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
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  config.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: config.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.ProjectService = appServices.NewProjectService(
		deps.Repos.ProjectRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.PartnershipService = appServices.NewPartnershipService(
		deps.Repos.PartnershipRepository,
		deps.Repos.UserRepository,
		deps.Repos.ProjectRepository,
		deps.Repos.NotificationRepository,
		db.NewTransactor(dbPool),
		lgr,
	)
	deps.MessageService = appServices.NewMessageService(
		deps.Repos.MessageRepository,
		deps.Repos.PartnershipRepository,
		deps.Repos.UserRepository,
		deps.Repos.ProjectRepository,
		deps.Repos.NotificationRepository,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ProjectController = appControllers.NewProjectController(deps.ProjectService, lgr)
	deps.PartnershipController = appControllers.NewPartnershipController(deps.PartnershipService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService, lgr)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProjectController,
		deps.PartnershipController,
		deps.MessageController,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	return router
}
