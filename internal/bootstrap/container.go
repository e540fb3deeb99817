package bootstrap

import (
	"log"
	"os"
	"time"

	"next-action-be/internal/config"
	"next-action-be/internal/controller"
	"next-action-be/internal/pkg/logger"
	"next-action-be/internal/repository/memory"
	"next-action-be/internal/service"
	"next-action-be/pkg/dataset"
	"next-action-be/pkg/llm/factory"
	"next-action-be/pkg/ranking"
	"next-action-be/pkg/ranking/xgb"
	"next-action-be/pkg/rerank"
	"next-action-be/pkg/specsource"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	RecommendController controller.IRecommendController
	HealthController    controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Model & Data
	policy := xgb.UnseenAsMissing
	if cfg.Recommender.StrictCategories {
		policy = xgb.UnseenError
	}
	ranker, err := xgb.Load(cfg.Recommender.ModelPath, policy)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load ranker model: %v", err)
	}
	log.Printf("[INFO] Ranker model loaded: %d known actions", len(ranker.Actions()))

	baseline, err := dataset.Load(cfg.Recommender.DatasetPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load event dataset: %v", err)
	}
	log.Printf("[INFO] Event dataset loaded: %d events", len(baseline))

	eventRepo := memory.NewEventLogRepository(baseline)

	// 4. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenRouterBaseURL,
		cfg.Ai.OpenRouterAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Pipeline Components
	stdLogger := log.New(os.Stderr, "", log.LstdFlags)
	describer := specsource.NewDescriber(llmProvider, cfg.Recommender.DescriptionCacheDir, stdLogger)
	engine := ranking.NewEngine(ranker.Actions(), ranker)
	orchestrator := rerank.NewOrchestrator(llmProvider, stdLogger)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Recommender.CommitTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Recommender.CommitTopic, eventRepo)

	recommendService := service.NewRecommendService(
		describer,
		engine,
		orchestrator,
		eventRepo,
		publisherService,
		cfg.Recommender.CommitEvents,
		cfg.Recommender.DefaultK,
		time.Duration(cfg.Ai.RequestTimeoutSec)*time.Second,
		sysLogger,
	)

	// 7. Controllers
	recommendController := controller.NewRecommendController(recommendService)
	healthController := controller.NewHealthController(len(ranker.Actions()), eventRepo.Len)

	return &Container{
		RecommendController: recommendController,
		HealthController:    healthController,
		ConsumerService:     consumerService,
	}
}
