package mapper

import (
	"encoding/json"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.Chunk {
	if c == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(c.Metadata) > 0 {
		// Metadata was written by us as a JSON object; a decode failure would
		// mean store corruption, in which case we surface the chunk without it.
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &entity.Chunk{
		Id:        c.Id,
		Content:   c.Content,
		Embedding: c.Embedding.Slice(),
		Metadata:  metadata,
		CreatedAt: c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.Chunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	var metadata datatypes.JSON
	if c.Metadata != nil {
		if raw, err := json.Marshal(c.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.DocumentChunk{
		Id:        c.Id,
		Content:   c.Content,
		Embedding: pgvector.NewVector(c.Embedding),
		Metadata:  metadata,
		CreatedAt: c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.Chunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
