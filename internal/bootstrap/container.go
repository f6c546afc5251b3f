package bootstrap

import (
	"context"
	"log"
	"time"

	"rag-postgres-be/internal/config"
	"rag-postgres-be/internal/controller"
	"rag-postgres-be/internal/pkg/logger"
	"rag-postgres-be/internal/repository/contract"
	"rag-postgres-be/internal/repository/implementation"
	"rag-postgres-be/internal/repository/memory"
	"rag-postgres-be/internal/repository/rediscache"
	"rag-postgres-be/internal/service"
	"rag-postgres-be/pkg/embedding"
	"rag-postgres-be/pkg/llm/factory"

	pktNats "rag-postgres-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const searchAuditTopic = "search.performed"

const hotCacheTTL = 30 * time.Minute

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	SearchController   controller.ISearchController
	StatsController    controller.IStatsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS is optional; without it events stay in-process only.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	hotCache := newHotCache(cfg)

	// 5. Repositories
	documentRepo := implementation.NewDocumentRepository(db)
	cacheRepo := implementation.NewEmbeddingCacheRepository(db)
	historyRepo := implementation.NewSearchHistoryRepository(db)

	// 6. Services
	embeddingService := service.NewEmbeddingService(
		embeddingProvider,
		cacheRepo,
		hotCache,
		sysLogger,
		cfg.Rag.CacheEnabled,
	)

	publisherService := service.NewPublisherService(pubSub, searchAuditTopic)
	consumerService := service.NewConsumerService(pubSub, searchAuditTopic, historyRepo, sysLogger)

	ingestionService := service.NewIngestionService(
		documentRepo,
		embeddingService,
		natsPub,
		sysLogger,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
		cfg.Rag.IngestBatchSize,
	)

	retrievalService := service.NewRetrievalService(
		documentRepo,
		embeddingService,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Rag.DefaultTopK,
	)

	queryService := service.NewQueryService(retrievalService, llmProvider, cfg.Rag.MaxAnswerTokens)
	statsService := service.NewStatsService(documentRepo, cacheRepo, historyRepo)

	// 7. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(ingestionService),
		SearchController:   controller.NewSearchController(retrievalService, queryService),
		StatsController:    controller.NewStatsController(statsService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}

// newHotCache selects the degrade-path embedding cache tier. The persistent
// cache stays authoritative; this tier only answers when Postgres cannot.
func newHotCache(cfg *config.Config) contract.HotEmbeddingCache {
	switch cfg.Rag.HotCacheBackend {
	case "redis":
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
		return rediscache.NewEmbeddingHotCache(rdb, hotCacheTTL)
	case "memory":
		return memory.NewEmbeddingHotCache(hotCacheTTL)
	default:
		return nil
	}
}
