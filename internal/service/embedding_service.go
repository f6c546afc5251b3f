package service

import (
	"context"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"
	"rag-postgres-be/internal/pkg/logger"
	"rag-postgres-be/internal/repository/contract"
	"rag-postgres-be/pkg/embedding"
)

// IEmbeddingService is the embedding pipeline: cache first, model on miss.
type IEmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type embeddingService struct {
	provider     embedding.EmbeddingProvider
	cacheRepo    contract.EmbeddingCacheRepository
	hotCache     contract.HotEmbeddingCache
	logger       logger.ILogger
	cacheEnabled bool
}

func NewEmbeddingService(
	provider embedding.EmbeddingProvider,
	cacheRepo contract.EmbeddingCacheRepository,
	hotCache contract.HotEmbeddingCache,
	sysLogger logger.ILogger,
	cacheEnabled bool,
) IEmbeddingService {
	return &embeddingService{
		provider:     provider,
		cacheRepo:    cacheRepo,
		hotCache:     hotCache,
		logger:       sysLogger,
		cacheEnabled: cacheEnabled,
	}
}

// Embed returns the vector for text, consulting the persistent cache before
// invoking the model. Two concurrent misses for the same text may both reach
// the model; the store below is an idempotent upsert, so the race costs one
// duplicate computation and nothing else. No lock spans the miss window.
func (s *embeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if !s.cacheEnabled || s.cacheRepo == nil {
		return s.generate(text)
	}

	textHash := embedding.HashText(text)

	cached, err := s.cacheRepo.Lookup(ctx, textHash)
	if err != nil {
		// Cache trouble never fails the caller; fall through to the model.
		degraded := apperrors.New(apperrors.KindCacheDegraded, "cache lookup", err)
		s.logger.Warn("embedding", "cache lookup degraded, computing directly", map[string]interface{}{
			"error": degraded.Error(),
		})
		if s.hotCache != nil {
			if vec, found := s.hotCache.Get(ctx, textHash); found {
				return vec, nil
			}
		}
	} else if cached != nil {
		if s.hotCache != nil {
			s.hotCache.Set(ctx, textHash, cached)
		}
		return cached, nil
	}

	values, genErr := s.generate(text)
	if genErr != nil {
		return nil, genErr
	}

	if storeErr := s.cacheRepo.Store(ctx, &entity.CacheEntry{
		TextHash:  textHash,
		Text:      text,
		Embedding: values,
	}); storeErr != nil {
		degraded := apperrors.New(apperrors.KindCacheDegraded, "cache store", storeErr)
		s.logger.Warn("embedding", "cache store failed, result not cached", map[string]interface{}{
			"error": degraded.Error(),
		})
	}

	if s.hotCache != nil {
		s.hotCache.Set(ctx, textHash, values)
	}
	return values, nil
}

func (s *embeddingService) generate(text string) ([]float32, error) {
	res, err := s.provider.Generate(text, embedding.TaskSemanticSimilarity)
	if err != nil {
		return nil, apperrors.New(apperrors.KindEmbeddingCapability, "generate embedding", err)
	}
	return res.Embedding.Values, nil
}
