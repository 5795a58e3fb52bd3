package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/routesafe/backend/internal/delivery/http"
	"github.com/routesafe/backend/internal/domain"
	"github.com/routesafe/backend/internal/repository"
	"github.com/routesafe/backend/internal/repository/file"
	"github.com/routesafe/backend/internal/repository/postgres"
	"github.com/routesafe/backend/internal/repository/sqlite"
	"github.com/routesafe/backend/internal/service"
	"github.com/routesafe/backend/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Load the accident dataset once, before the server listens. The
	// store is read-only afterwards, so request handling needs no locks.
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	records, report, err := loadRecords(ctx, cfg)
	cancel()
	if err != nil {
		// Never fatal: an empty dataset still serves well-formed responses.
		log.Printf("Warning: could not load accident data: %v", err)
		log.Println("Serving with an empty dataset")
		records, report = nil, domain.LoadReport{Source: "empty"}
	}
	log.Printf("Loaded %d accident records from %s (%d rows read, %d dropped without coordinates)",
		report.RowsKept, report.Source, report.RowsRead, report.DroppedNoCoords)

	st := store.New(records, report)

	// Dependency Injection: Services
	routeSvc := service.NewRouteService(st, cfg.MaxDistanceKm)
	statsSvc := service.NewStatsService(st)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "RouteSafe API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, routeSvc, statsSvc, st)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL   string
	SQLitePath    string
	DataPath      string
	MaxDistanceKm float64
	Port          string
	Env           string
}

func loadConfig() *Config {
	maxDistance := service.DefaultMaxDistanceKm
	if raw := getEnv("MAX_DISTANCE_KM", ""); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			maxDistance = parsed
		} else {
			log.Printf("Ignoring invalid MAX_DISTANCE_KM=%q", raw)
		}
	}

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", ""),
		DataPath:      getEnv("DATA_PATH", "accidentdata.csv"),
		MaxDistanceKm: maxDistance,
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("GO_ENV", "development"),
	}
}

// loadRecords tries the configured sources in order: Postgres, SQLite,
// then the file export. A failed source logs and falls through to the
// next, ending at the empty fallback.
func loadRecords(ctx context.Context, cfg *Config) ([]domain.AccidentRecord, domain.LoadReport, error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: could not connect to database: %v", err)
		} else {
			defer pool.Close()
			records, report, err := postgres.NewSource(pool).Load(ctx)
			if err == nil {
				return records, report, nil
			}
			log.Printf("Warning: postgres load failed: %v", err)
		}
	}

	if cfg.SQLitePath != "" {
		records, report, err := sqlite.NewSource(cfg.SQLitePath).Load(ctx)
		if err == nil {
			return records, report, nil
		}
		log.Printf("Warning: sqlite load failed: %v", err)
	}

	if cfg.DataPath != "" {
		records, report, err := file.NewSource(cfg.DataPath).Load(ctx)
		if err == nil {
			return records, report, nil
		}
		log.Printf("Warning: file load failed: %v", err)
	}

	return repository.NewEmpty().Load(ctx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
