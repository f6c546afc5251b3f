package mapper

import (
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EmbeddingCacheMapper struct{}

func NewEmbeddingCacheMapper() *EmbeddingCacheMapper {
	return &EmbeddingCacheMapper{}
}

func (m *EmbeddingCacheMapper) ToEntity(e *model.EmbeddingCacheEntry) *entity.CacheEntry {
	if e == nil {
		return nil
	}
	return &entity.CacheEntry{
		TextHash:     e.TextHash,
		Text:         e.Text,
		Embedding:    e.Embedding.Slice(),
		HitCount:     e.HitCount,
		LastAccessed: e.LastAccessed,
	}
}

func (m *EmbeddingCacheMapper) ToModel(e *entity.CacheEntry) *model.EmbeddingCacheEntry {
	if e == nil {
		return nil
	}
	return &model.EmbeddingCacheEntry{
		TextHash:     e.TextHash,
		Text:         e.Text,
		Embedding:    pgvector.NewVector(e.Embedding),
		HitCount:     e.HitCount,
		LastAccessed: e.LastAccessed,
	}
}
