package main

import (
	"fmt"
	"log"

	"claimlens/internal/config"
	"claimlens/internal/evaluator"
	"claimlens/internal/handler"
	"claimlens/internal/ingest"
	"claimlens/internal/port"
	"claimlens/internal/reasoner"
	"claimlens/internal/reasoner/anthropic"
	"claimlens/internal/reasoner/openai"
	"claimlens/internal/repository/postgres"
	"claimlens/internal/router"
	"claimlens/internal/service"
	s3storage "claimlens/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	fileRepo := postgres.NewPolicyFileRepo(db)
	evalRepo := postgres.NewEvaluationRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Register reasoner providers and build the evaluation pipeline
	reasoner.RegisterProvider("openai", func(c *config.ReasonerConfig) (port.Reasoner, error) {
		return openai.NewClient(c), nil
	})
	reasoner.RegisterProvider("anthropic", func(c *config.ReasonerConfig) (port.Reasoner, error) {
		return anthropic.NewClient(c), nil
	})

	r, err := reasoner.New(&cfg.Reasoner)
	if err != nil {
		return fmt.Errorf("failed to initialize reasoner: %w", err)
	}
	pipeline := evaluator.NewPipeline(
		ingest.NewIngestor(),
		r,
		evaluator.Validator{Strict: cfg.Evaluator.StrictDecision},
	)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT, cfg.Auth)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	evalSvc := service.NewEvaluationService(pipeline, evalRepo, fileSvc, &cfg.Reasoner)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	fileH := handler.NewFileHandler(fileSvc)
	evalH := handler.NewEvaluationHandler(evalSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	engine := router.Setup(cfg, authSvc, authH, fileH, evalH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := engine.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
