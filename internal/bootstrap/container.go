package bootstrap

import (
	"context"
	"log"

	"adv-assistant-be/internal/config"
	"adv-assistant-be/internal/controller"
	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/internal/service"
	"adv-assistant-be/pkg/embedding"
	"adv-assistant-be/pkg/index"
	"adv-assistant-be/pkg/intent"
	"adv-assistant-be/pkg/language"
	"adv-assistant-be/pkg/llm/factory"
	"adv-assistant-be/pkg/orchestrator"
	"adv-assistant-be/pkg/response"
	"adv-assistant-be/pkg/session"
	"adv-assistant-be/pkg/voice"
	"adv-assistant-be/pkg/voice/whisper"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	ClassifierController controller.IClassifierController
	HistoryController    controller.IHistoryController
	VoiceController      controller.IVoiceController
	DocumentController   controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// Loggers exposed for the admin log route
	SysLogger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := logger.NewIsolatedLogger(cfg.App.PipelineLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Session Store
	var store session.Store
	if cfg.Assistant.SessionStore == "memory" {
		store = session.NewMemoryStore()
		log.Println("[INFO] Using Session Store: MEMORY")
	} else {
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
		store = session.NewRedisStore(rdb)
		log.Println("[INFO] Using Session Store: REDIS")
	}

	// 4. AI Providers
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.DeepseekAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)

	var translator language.Translator
	if cfg.Assistant.TranslateAPIURL != "" {
		translator = language.NewHTTPTranslator(cfg.Assistant.TranslateAPIURL)
		log.Println("[INFO] Translation enabled")
	}

	var transcriber voice.Transcriber
	if cfg.Assistant.WhisperAPIURL != "" {
		transcriber = whisper.NewClient(cfg.Assistant.WhisperAPIURL, cfg.Assistant.WhisperModel)
		log.Println("[INFO] Voice transcription enabled")
	}

	// 5. Pipeline
	normalizer := language.NewNormalizer(translator, pipelineLogger)
	classifier := intent.NewClassifier(llmProvider, normalizer, pipelineLogger)

	platformHandler := response.NewPlatformHandler(llmProvider, cfg.Assistant.PlatformDocPath, pipelineLogger)
	generalHandler := response.NewGeneralHandler(llmProvider, pipelineLogger)
	router := response.NewRouter(platformHandler, generalHandler, pipelineLogger)

	orch := orchestrator.New(store, normalizer, classifier, router, pipelineLogger)

	// 6. Document Indexing
	memoryIndex := index.NewMemoryIndex()
	publisherService := service.NewPublisherService(cfg.Assistant.IndexTopic, pubSub)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Assistant.IndexTopic,
		embeddingProvider,
		memoryIndex,
	)

	// 7. Controllers
	return &Container{
		ChatController:       controller.NewChatController(orch, cfg.Assistant.DefaultSessionID, cfg.Ai.LLMProvider, cfg.Ai.LLMModel),
		ClassifierController: controller.NewClassifierController(classifier, store, cfg.Assistant.DefaultSessionID, sysLogger),
		HistoryController:    controller.NewHistoryController(store, cfg.Assistant.DefaultSessionID, sysLogger),
		VoiceController:      controller.NewVoiceController(transcriber, orch, cfg.Assistant.DefaultSessionID),
		DocumentController:   controller.NewDocumentController(publisherService, embeddingProvider, memoryIndex),

		IndexerService: indexerService,
		SysLogger:      sysLogger,
	}
}
