package mapper

import (
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type SearchHistoryMapper struct{}

func NewSearchHistoryMapper() *SearchHistoryMapper {
	return &SearchHistoryMapper{}
}

func (m *SearchHistoryMapper) ToEntity(s *model.SearchHistory) *entity.SearchRecord {
	if s == nil {
		return nil
	}
	return &entity.SearchRecord{
		Query:          s.Query,
		QueryEmbedding: s.QueryEmbedding.Slice(),
		ResultsCount:   s.ResultsCount,
		ResponseTimeMs: s.ResponseTimeMs,
		CreatedAt:      s.CreatedAt,
	}
}

func (m *SearchHistoryMapper) ToModel(s *entity.SearchRecord) *model.SearchHistory {
	if s == nil {
		return nil
	}
	return &model.SearchHistory{
		Query:          s.Query,
		QueryEmbedding: pgvector.NewVector(s.QueryEmbedding),
		ResultsCount:   s.ResultsCount,
		ResponseTimeMs: s.ResponseTimeMs,
		CreatedAt:      s.CreatedAt,
	}
}
