package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/skill-matcher/internal/config"
	"alfredoptarigan/skill-matcher/internal/handlers"
	"alfredoptarigan/skill-matcher/internal/repositories"
	"alfredoptarigan/skill-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Load the canonical skill list
	skills, err := services.LoadSkills(cfg.Skills)
	if err != nil {
		log.Fatalf("❌ Failed to load skill list: %v", err)
	}
	log.Printf("✅ Loaded %d canonical skills\n", len(skills))

	// Initialize the embedding provider
	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedder: %v", err)
	}
	log.Printf("✅ Embedding provider '%s' initialized\n", cfg.Embedding.Provider)

	// Build the candidate store
	ctx := context.Background()
	store, err := services.BuildSkillStore(ctx, skills, embedder, cfg.Embedding.Concurrency)
	if err != nil {
		log.Fatalf("❌ Failed to build skill store: %v", err)
	}
	holder := services.NewStoreHolder(store)
	log.Println("✅ Skill store built successfully")

	// Initialize the query log repository
	var logRepo repositories.QueryLogRepository
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		logRepo = repositories.NewQueryLogRepository(db)
		log.Println("✅ Database-backed query log initialized")
	} else {
		logRepo = repositories.NewMemoryQueryLogRepository()
		log.Println("✅ In-memory query log initialized")
	}

	recorder := services.NewQueryRecorder(logRepo)

	// Initialize the optional qdrant skill index
	var skillIndex services.SkillIndexService
	if cfg.Qdrant.Enabled {
		skillIndex, err = services.NewSkillIndexService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			cfg.Embedding.Dimension,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := skillIndex.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}

		if err := skillIndex.SyncStore(ctx, store); err != nil {
			log.Fatalf("❌ Failed to sync skills to Qdrant: %v", err)
		}
		log.Println("✅ Qdrant skill index initialized")
	}

	// Initialize the matcher
	profile := services.ParseProfile(cfg.Match.Profile)
	matcher := services.NewMatcherService(holder, embedder, recorder, profile)
	log.Printf("✅ Matcher initialized (profile: %s)\n", profile)

	// Start the skill list refresher for file-backed sources
	var refresher services.Refresher
	if cfg.Skills.Source != "" && cfg.Skills.RefreshInterval > 0 {
		refresher = services.NewRefresher(
			holder,
			embedder,
			skillIndex,
			cfg.Skills,
			cfg.Embedding.Concurrency,
		)
		refresher.Start(ctx)
	}

	// Initialize Handlers
	matchHandler := handlers.NewMatchHandler(matcher)
	skillsHandler := handlers.NewSkillsHandler(holder, embedder, skillIndex)
	queriesHandler := handlers.NewQueriesHandler(logRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Skill Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/match-skill", matchHandler.HandleMatch)
	api.Get("/skills", skillsHandler.HandleList)
	api.Get("/skills/similar", skillsHandler.HandleSimilar)
	api.Get("/queries", queriesHandler.HandleList)
	api.Get("/queries/:id", queriesHandler.HandleGetQuery)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Skill Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/match-skill",
				"GET /api/v1/skills",
				"GET /api/v1/queries",
				"GET /api/v1/queries/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if refresher != nil {
			refresher.Stop()
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func buildEmbedder(cfg *config.Config) (services.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "gemini":
		embedder, err := services.NewGeminiEmbedder(cfg.Embedding.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return services.NewRetryEmbedder(embedder, cfg.Embedding.RetryMaxAttempts), nil
	case "openai":
		embedder, err := services.NewOpenAIEmbedder(
			cfg.Embedding.OpenAIHost,
			cfg.Embedding.OpenAIToken,
			cfg.Embedding.OpenAIModel,
		)
		if err != nil {
			return nil, err
		}
		return services.NewRetryEmbedder(embedder, cfg.Embedding.RetryMaxAttempts), nil
	default:
		return services.NewLocalEmbedder(cfg.Embedding.Dimension), nil
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
