package service

import (
	"context"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"
	"rag-postgres-be/internal/repository/contract"
)

type IStatsService interface {
	// GetStats snapshots the corpus size, the audit-log volume with its mean
	// latency, and the embedding cache population.
	GetStats(ctx context.Context) (*entity.Stats, error)
}

type statsService struct {
	documentRepo contract.DocumentRepository
	cacheRepo    contract.EmbeddingCacheRepository
	historyRepo  contract.SearchHistoryRepository
}

func NewStatsService(
	documentRepo contract.DocumentRepository,
	cacheRepo contract.EmbeddingCacheRepository,
	historyRepo contract.SearchHistoryRepository,
) IStatsService {
	return &statsService{
		documentRepo: documentRepo,
		cacheRepo:    cacheRepo,
		historyRepo:  historyRepo,
	}
}

func (s *statsService) GetStats(ctx context.Context) (*entity.Stats, error) {
	totalDocuments, err := s.documentRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.New(apperrors.KindStoreUnavailable, "count documents", err)
	}

	totalSearches, err := s.historyRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.New(apperrors.KindStoreUnavailable, "count searches", err)
	}

	avgResponseTime, err := s.historyRepo.AvgResponseTimeMs(ctx)
	if err != nil {
		return nil, apperrors.New(apperrors.KindStoreUnavailable, "average search latency", err)
	}

	cachedEmbeddings, err := s.cacheRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.New(apperrors.KindStoreUnavailable, "count cached embeddings", err)
	}

	return &entity.Stats{
		TotalDocuments:    totalDocuments,
		TotalSearches:     totalSearches,
		AvgResponseTimeMs: avgResponseTime,
		CachedEmbeddings:  cachedEmbeddings,
	}, nil
}
