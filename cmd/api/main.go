package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-assistant/config"
	_ "inventory-assistant/docs" // Swagger docs
	"inventory-assistant/internal/analytics"
	"inventory-assistant/internal/analytics/orchestrator"
	"inventory-assistant/internal/analytics/tools"
	chatUC "inventory-assistant/internal/chat/usecase"
	"inventory-assistant/internal/extraction"
	"inventory-assistant/internal/httpserver"
	"inventory-assistant/internal/intent"
	"inventory-assistant/internal/middleware"
	"inventory-assistant/internal/model"
	"inventory-assistant/internal/query"
	"inventory-assistant/internal/store"
	"inventory-assistant/internal/synthesis"
	"inventory-assistant/internal/workflow"
	"inventory-assistant/pkg/llmprovider"
	"inventory-assistant/pkg/log"
	"inventory-assistant/pkg/mongodb"
)

// @title       Inventory Assistant API
// @description Conversational assistant for small shop inventory: products, bills, suppliers, customers, and sales analytics.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Inventory Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)
	logger.Infof(ctx, "LLM chain ready with %d provider(s)", len(providers))

	// 4. Store
	dataAPI := mongodb.NewClient(mongodb.Config{
		BaseURL:    cfg.MongoDB.BaseURL,
		APIKey:     cfg.MongoDB.APIKey,
		DataSource: cfg.MongoDB.DataSource,
		Database:   cfg.MongoDB.Database,
	})
	executor := store.NewExecutor(dataAPI, logger)

	// 5. Workflow
	extractor := extraction.New(manager)

	registry := analytics.NewRegistry()
	registry.Register(tools.NewSalesTool(executor, logger, time.Now))
	registry.Register(tools.NewProfitTool(executor, logger, time.Now))
	registry.Register(tools.NewTrendTool(executor, logger, time.Now))
	registry.Register(tools.NewPerformanceTool(executor, logger))

	builders := map[model.Intent]query.Builder{
		model.IntentProducts:  query.NewProductsBuilder(extractor, logger),
		model.IntentSuppliers: query.NewSuppliersBuilder(extractor, logger),
		model.IntentBills:     query.NewBillsBuilder(extractor, logger),
		model.IntentCustomers: query.NewCustomersBuilder(extractor, logger),
	}

	graph := workflow.New(
		intent.NewClassifier(extractor, logger),
		builders,
		executor,
		orchestrator.New(manager, registry, logger),
		synthesis.New(manager, logger),
		synthesis.NewChitchat(manager, logger),
		logger,
		time.Now,
	)

	// 6. Chat use case
	uc := chatUC.New(graph, logger, cfg.Chat.SessionCapacity, parseDuration(cfg.Chat.SessionTTL, 30*time.Minute))

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatUseCase: uc,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.Chat.RequestsPerMinute,
			Burst:             cfg.Chat.Burst,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
