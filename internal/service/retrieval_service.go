package service

import (
	"context"
	"encoding/json"
	"time"

	"rag-postgres-be/internal/dto"
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"
	"rag-postgres-be/internal/pkg/logger"
	"rag-postgres-be/internal/repository/contract"
	"rag-postgres-be/pkg/events"
	pktNats "rag-postgres-be/pkg/nats"
)

type IRetrievalService interface {
	// Search returns at most topK chunks ranked by descending similarity to
	// the query, optionally restricted to chunks whose metadata structurally
	// contains metadataFilter. Every call appends one search-history record.
	Search(ctx context.Context, query string, topK int, metadataFilter map[string]interface{}) ([]*entity.ScoredChunk, error)
}

type retrievalService struct {
	documentRepo     contract.DocumentRepository
	embeddingService IEmbeddingService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
	defaultTopK      int
}

func NewRetrievalService(
	documentRepo contract.DocumentRepository,
	embeddingService IEmbeddingService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	defaultTopK int,
) IRetrievalService {
	return &retrievalService{
		documentRepo:     documentRepo,
		embeddingService: embeddingService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
		defaultTopK:      defaultTopK,
	}
}

func (s *retrievalService) Search(ctx context.Context, query string, topK int, metadataFilter map[string]interface{}) ([]*entity.ScoredChunk, error) {
	if topK <= 0 {
		topK = s.defaultTopK
	}

	start := time.Now()

	queryEmbedding, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := s.documentRepo.SearchSimilar(ctx, queryEmbedding, topK, metadataFilter)
	if err != nil {
		return nil, apperrors.New(apperrors.KindStoreUnavailable, "similarity search", err)
	}

	elapsedMs := int(time.Since(start).Milliseconds())

	// The audit write is deferred so it cannot delay the response. Its
	// failure is logged by the consumer and never masks the search result.
	s.recordSearch(ctx, query, queryEmbedding, len(results), elapsedMs)

	return results, nil
}

func (s *retrievalService) recordSearch(ctx context.Context, query string, queryEmbedding []float32, resultsCount, elapsedMs int) {
	payload, err := json.Marshal(dto.SearchLoggedMessage{
		Query:          query,
		QueryEmbedding: queryEmbedding,
		ResultsCount:   resultsCount,
		ResponseTimeMs: elapsedMs,
	})
	if err != nil {
		s.logger.Error("retrieval", "failed to marshal search audit message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("retrieval", "failed to enqueue search audit write", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.SearchPerformed(query, resultsCount, int64(elapsedMs))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("retrieval", "failed to publish search event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
