package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/foodtrack/internal/config"
	"github.com/localnerve/foodtrack/internal/database"
	"github.com/localnerve/foodtrack/internal/handlers"
	"github.com/localnerve/foodtrack/internal/middleware"
	"github.com/localnerve/foodtrack/internal/services"
	"github.com/localnerve/foodtrack/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/localnerve/foodtrack/docs/api" // Swagger docs
)

// @title FoodTrack API
// @version 1.0.0
// @description Nutrition tracking service: users, diary ledger and a shared food catalog
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/foodtrack
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server stopped")
}

// run serves until shutdown. Resources opened here are released before it returns.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	st := store.New(db)
	sessions := services.NewSessionService(cfg.JWTSecret, cfg.JWTTTL, st)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.CORS(cfg.CORSAllowOrigins))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("foodtrack")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api", middleware.VersionMiddleware())

	handlers.RegisterRoutes(api, handlers.Handlers{
		Users: &handlers.UserHandler{
			Credentials: services.NewCredentialService(st, cfg.BcryptCost, cfg.EmailUnique),
			Sessions:    sessions,
		},
		Diary:   &handlers.DiaryHandler{Diary: services.NewDiaryService(st)},
		Catalog: &handlers.CatalogHandler{Catalog: services.NewCatalogService(st)},
		Health:  &handlers.HealthHandler{Config: cfg, DB: db},
	}, sessions)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	go func() {
		<-c
		log.Info().Msg("Gracefully shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	port := cfg.Port
	log.Info().Str("port", port).Bool("emailUnique", cfg.EmailUnique).Dur("jwtTTL", cfg.JWTTTL).Str("corsOrigins", cfg.CORSAllowOrigins).Msg("Starting server")
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
