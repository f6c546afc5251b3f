package implementation

import (
	"context"
	"encoding/json"
	"fmt"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/mapper"
	"rag-postgres-be/internal/model"
	"rag-postgres-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return fmt.Errorf("bulk insert chunks: %w", err)
	}

	// Propagate store-assigned IDs back to the entities
	for i, m := range models {
		chunks[i].Id = m.Id
		chunks[i].CreatedAt = m.CreatedAt
	}
	return nil
}

func (r *DocumentRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, metadataFilter map[string]interface{}) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) recovers the similarity.
	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("documents").
		Select("documents.*, 1 - (embedding <=> ?) as similarity", queryVector)

	if metadataFilter != nil {
		filterJSON, err := json.Marshal(metadataFilter)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata filter: %w", err)
		}
		// Structural containment: every key/value pair in the filter must be
		// present and equal in the row's metadata.
		query = query.Where("metadata @> ?", datatypes.JSON(filterJSON))
	}

	// Order by the raw distance expression, not the similarity alias, so the
	// ivfflat index on the embedding column can serve the scan.
	err := query.
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?",
			Vars: []interface{}{queryVector},
		}}).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.DocumentChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}
