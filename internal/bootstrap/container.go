package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"ai-videobrain-be/internal/config"
	"ai-videobrain-be/internal/controller"
	"ai-videobrain-be/internal/handler"
	"ai-videobrain-be/internal/pkg/logger"
	"ai-videobrain-be/internal/repository/memory"
	"ai-videobrain-be/internal/repository/unitofwork"
	"ai-videobrain-be/internal/service"
	"ai-videobrain-be/internal/websocket"
	"ai-videobrain-be/pkg/brain/contextbuilder"
	"ai-videobrain-be/pkg/brain/intent"
	"ai-videobrain-be/pkg/brain/mediaplan"
	"ai-videobrain-be/pkg/brain/orchestrator"
	"ai-videobrain-be/pkg/components"
	"ai-videobrain-be/pkg/embedding"
	"ai-videobrain-be/pkg/llm/factory"
	"ai-videobrain-be/pkg/mediasource"
	"ai-videobrain-be/pkg/pageanalyzer"

	pktNats "ai-videobrain-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BrainController controller.IBrainController
	MediaController controller.IMediaController
	SceneController controller.ISceneController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Keys.OpenAI,
		cfg.Ai.RequestTimeout,
		cfg.Ai.MaxRetries,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(cfg.Keys.AssetEmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.AssetEmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	// 4. Decision Engine
	brainLogger := log.New(os.Stdout, "brain ", log.LstdFlags)

	var pageAnalyzer contextbuilder.PageAnalyzer
	if cfg.Brain.PageAnalyzerBaseURL != "" {
		pageAnalyzer = pageanalyzer.NewCachedAnalyzer(
			pageanalyzer.NewHTTPAnalyzer(cfg.Brain.PageAnalyzerBaseURL, 20*time.Second),
			rdb,
			brainLogger,
		)
	}

	var sourceAnalyzer orchestrator.SourceAnalyzer
	if cfg.Brain.SourceAnalyzerBaseURL != "" {
		sourceAnalyzer = mediasource.NewHTTPAnalyzer(cfg.Brain.SourceAnalyzerBaseURL, 30*time.Second)
	}

	var componentResolver orchestrator.ComponentResolver
	if cfg.Brain.ComponentLookupBaseURL != "" {
		componentResolver = components.NewHTTPResolver(cfg.Brain.ComponentLookupBaseURL, 10*time.Second)
	}

	contextBuilder := contextbuilder.NewBuilder(
		&sceneReader{uowFactory: uowFactory},
		&assetReader{uowFactory: uowFactory},
		pageAnalyzer,
		&analysisSink{uowFactory: uowFactory, logger: sysLogger},
		brainLogger,
	)
	intentAnalyzer := intent.NewAnalyzer(llmProvider, brainLogger)
	mediaResolver := mediaplan.NewResolver(brainLogger)

	orch := orchestrator.New(
		contextBuilder,
		intentAnalyzer,
		mediaResolver,
		sourceAnalyzer,
		componentResolver,
		brainLogger,
	)

	// 5. Services
	brainService := service.NewBrainService(uowFactory, sessionRepo, orch, wsHub, natsPub, sysLogger, cfg.Brain)
	mediaService := service.NewMediaService(uowFactory, publisherService, embeddingProvider, sysLogger)
	sceneService := service.NewSceneService(uowFactory)

	// 6. Controllers
	return &Container{
		BrainController: controller.NewBrainController(brainService),
		MediaController: controller.NewMediaController(mediaService),
		SceneController: controller.NewSceneController(sceneService),
		ConsumerService: consumerService,
		ProgressHandler: handler.NewProgressHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "openai" {
		return cfg.Ai.OpenAIBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}
