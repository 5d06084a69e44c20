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

	"zepth/tender-evaluator/internal/config"
	"zepth/tender-evaluator/internal/handlers"
	"zepth/tender-evaluator/internal/middleware"
	"zepth/tender-evaluator/internal/repositories"
	"zepth/tender-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	projectRepo := repositories.NewProjectRepository(db)
	tenderRepo := repositories.NewTenderRepository(db)
	bidderRepo := repositories.NewBidderRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	userRepo := repositories.NewUserRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	authService := services.NewAuthService(cfg.JWT.Secret, cfg.JWT.TTL)
	workflowService := services.NewWorkflowService(cfg.Workflow.URL, cfg.Workflow.APIKey, cfg.Workflow.Timeout)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		evalRepo,
		bidderRepo,
		tenderRepo,
		geminiService,
		qdrantService,
		pdfParser,
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize worker
	worker := services.NewWorker(
		evalRepo,
		evaluatorService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectRepo)
	tenderHandler := handlers.NewTenderHandler(
		tenderRepo,
		projectRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	bidderHandler := handlers.NewBidderHandler(
		bidderRepo,
		tenderRepo,
		evalRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	evaluationHandler := handlers.NewEvaluationHandler(
		evalRepo,
		bidderRepo,
		tenderRepo,
		evaluatorService,
		worker,
	)
	comparisonHandler := handlers.NewComparisonHandler(tenderRepo, bidderRepo)
	authHandler := handlers.NewAuthHandler(userRepo, authService)
	itemHandler := handlers.NewItemHandler(itemRepo)
	chatHandler := handlers.NewChatHandler(workflowService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Tender Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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

	// Auth
	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)
	api.Get("/profile", middleware.Protected(authService), authHandler.HandleProfile)

	// Items (authenticated)
	items := api.Group("/items", middleware.Protected(authService))
	items.Post("/", itemHandler.HandleCreate)
	items.Get("/", itemHandler.HandleList)
	items.Get("/:id", itemHandler.HandleGet)
	items.Put("/:id", itemHandler.HandleUpdate)
	items.Delete("/:id", itemHandler.HandleDelete)

	// Projects
	api.Post("/projects", projectHandler.HandleCreate)
	api.Get("/projects", projectHandler.HandleList)
	api.Get("/projects/:id", projectHandler.HandleGet)

	// Tenders
	api.Post("/projects/:id/tenders", tenderHandler.HandleCreate)
	api.Get("/tenders/:id", tenderHandler.HandleGet)
	api.Post("/tenders/:id/categories", tenderHandler.HandleAddCategory)
	api.Get("/tenders/:id/categories", tenderHandler.HandleListCategories)
	api.Get("/tenders/:id/weight-summary", tenderHandler.HandleWeightSummary)
	api.Put("/tenders/:id/scoring-matrix", tenderHandler.HandleUpdateScoringMatrix)
	api.Post("/tenders/:id/documents", tenderHandler.HandleUploadDocument)
	api.Get("/tenders/:id/documents", tenderHandler.HandleListDocuments)
	api.Delete("/tenders/:id/documents/:docId", tenderHandler.HandleRemoveDocument)
	api.Get("/tenders/:id/comparison", comparisonHandler.HandleComparison)

	// Bidders
	api.Post("/tenders/:id/bidders", bidderHandler.HandleCreate)
	api.Get("/bidders/:id", bidderHandler.HandleGet)
	api.Post("/bidders/:id/documents", bidderHandler.HandleUploadDocument)
	api.Delete("/bidders/:id/documents/:docId", bidderHandler.HandleRemoveDocument)
	api.Get("/bidders/:id/progress", bidderHandler.HandleProgress)

	// Evaluation
	api.Post("/bidders/:id/evaluate/:categoryId", evaluationHandler.HandleEvaluate)
	api.Get("/evaluations/:jobId", evaluationHandler.HandleGetJob)
	api.Post("/bidders/:id/finalize", evaluationHandler.HandleFinalize)
	api.Get("/bidders/:id/evaluation", evaluationHandler.HandleGetEvaluation)

	// Chat proxy
	api.Post("/chat", chatHandler.HandleChat)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Tender Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/projects",
				"POST /api/v1/projects/:id/tenders",
				"POST /api/v1/tenders/:id/bidders",
				"POST /api/v1/bidders/:id/evaluate/:categoryId",
				"GET /api/v1/tenders/:id/comparison",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
