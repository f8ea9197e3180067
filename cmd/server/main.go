package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/calloway/larder/internal/config"
	"github.com/calloway/larder/internal/database"
	"github.com/calloway/larder/internal/events"
	"github.com/calloway/larder/internal/handlers"
	"github.com/calloway/larder/internal/middleware"
	"github.com/calloway/larder/internal/services"
	"github.com/calloway/larder/internal/undo"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Undo ledger: Redis when configured, otherwise in-memory
	var undoStore undo.Store
	if cfg.RedisURL != "" {
		redisStore, err := undo.NewRedisStore(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		undoStore = redisStore
		log.Println("Undo ledger backed by Redis")
	} else {
		undoStore = undo.NewMemoryStore()
	}
	ledger := undo.NewLedger(undoStore)

	// Purchase-history recorder
	recorder := events.NewRecorder(db)
	defer recorder.Close()

	// Scan services (optional; pantry scanning is off without S3)
	var storageService *services.StorageService
	var ocrService *services.OCRService
	if cfg.ScansEnabled() {
		storageService, err = services.NewStorageService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage service: %v", err)
			storageService = nil
		} else {
			if err := storageService.EnsureBucket(context.Background()); err != nil {
				log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
			}

			if cfg.OCREnabled {
				ocrService, err = services.NewOCRService()
				if err != nil {
					log.Printf("Warning: Failed to initialize OCR service: %v", err)
					ocrService = nil
				}
			}
			log.Println("Pantry scanning service initialized")

			// Clear out expired scans on startup
			go func() {
				cleanupCtx := context.Background()
				keys, err := db.CleanupExpiredScans(cleanupCtx)
				if err != nil {
					log.Printf("Warning: Failed to cleanup expired scans: %v", err)
					return
				}
				if len(keys) > 0 {
					log.Printf("Cleaned up %d expired scan(s) from database", len(keys))
					if err := storageService.DeleteMultiple(cleanupCtx, keys); err != nil {
						log.Printf("Warning: Failed to delete some scan images: %v", err)
					}
				}
			}()
		}
	} else {
		log.Println("S3 not configured, pantry scanning disabled")
	}
	if ocrService != nil {
		defer ocrService.Close()
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, ledger, recorder, storageService, ocrService)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)

	// Pantry routes
	pantry := api.Group("/pantry", middleware.AuthRequired(cfg))
	pantry.Get("/", h.GetPantryItems)
	pantry.Post("/", h.CreatePantryItem)
	pantry.Post("/bulk-add", h.BulkAddPantryItems)
	pantry.Get("/expiring", h.GetExpiringItems)
	pantry.Get("/:id", h.GetPantryItem)
	pantry.Put("/:id", h.UpdatePantryItem)
	pantry.Delete("/:id", h.DeletePantryItem)

	// Recipe routes
	recipes := api.Group("/recipes", middleware.AuthRequired(cfg))
	recipes.Get("/", h.GetRecipes)
	recipes.Post("/", h.CreateRecipe)
	recipes.Post("/import", h.ImportRecipe)
	recipes.Get("/matches", h.GetRecipeMatches)
	recipes.Post("/cook/undo", h.UndoCook)
	recipes.Get("/:id", h.GetRecipe)
	recipes.Put("/:id", h.UpdateRecipe)
	recipes.Delete("/:id", h.DeleteRecipe)
	recipes.Post("/:id/cook", h.CookRecipe)

	// Grocery list generation
	grocery := api.Group("/grocery", middleware.AuthRequired(cfg))
	grocery.Post("/generate", h.GenerateGroceryList)

	// Reorder predictions
	api.Get("/predictions", middleware.AuthRequired(cfg), h.GetPredictions)

	// Scan routes
	scans := api.Group("/scans", middleware.AuthRequired(cfg))
	scans.Post("/upload", h.UploadScan)
	scans.Get("/", h.GetScans)
	scans.Get("/:id", h.GetScan)
	scans.Post("/:id/confirm", h.ConfirmScan)
	scans.Delete("/:id", h.DeleteScan)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
