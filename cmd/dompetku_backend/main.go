package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/dompetku/dompetku_backend/internal/adapters/vision"
	"github.com/dompetku/dompetku_backend/internal/core/services"
	"github.com/dompetku/dompetku_backend/internal/handlers"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/platform/config"
	pgsqlrepo "github.com/dompetku/dompetku_backend/internal/repositories/database/pgsql"
	"github.com/dompetku/dompetku_backend/internal/utils"
	"github.com/dompetku/dompetku_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Dompetku Backend API
// @version 1.0
// @description Personal finance backend with receipt scanning.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	r := gin.New()

	// Global middleware (logging, recovery, metrics, analytics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(),
		middleware.PosthogMiddleware(posthogClient),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories, the vision extractor and the service layer
	repos := pgsqlrepo.NewRepositoryProvider(dbPool)
	extractor := vision.NewClient(cfg)
	serviceContainer := services.NewServiceContainer(cfg, repos, extractor)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// corsConfig allows the frontend origin. Credentials are needed so the
// browser sends the refresh token cookie on /auth/refresh.
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if cfg.FrontendBaseURL != "" {
		c.AllowOrigins = []string{cfg.FrontendBaseURL}
	} else {
		c.AllowAllOrigins = true
	}
	c.AllowCredentials = !c.AllowAllOrigins
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	return c
}

// runMigrations applies all pending "up" migrations from the migrations
// directory. It opens a temporary database/sql connection via the pgx stdlib
// driver so golang-migrate stays compatible with the main pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
