package implementation

import (
	"context"
	"fmt"
	"time"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/mapper"
	"rag-postgres-be/internal/model"
	"rag-postgres-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmbeddingCacheRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingCacheMapper
}

func NewEmbeddingCacheRepository(db *gorm.DB) contract.EmbeddingCacheRepository {
	return &EmbeddingCacheRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingCacheMapper(),
	}
}

// Lookup bumps the hit counter and returns the embedding in one round trip.
// The UPDATE doubles as the existence check: zero rows affected means miss.
func (r *EmbeddingCacheRepositoryImpl) Lookup(ctx context.Context, textHash string) ([]float32, error) {
	var row struct {
		Embedding pgvector.Vector
	}

	result := r.db.WithContext(ctx).Raw(`
		UPDATE embedding_cache
		SET hit_count = hit_count + 1,
		    last_accessed = CURRENT_TIMESTAMP
		WHERE text_hash = ?
		RETURNING embedding
	`, textHash).Scan(&row)

	if result.Error != nil {
		return nil, fmt.Errorf("cache lookup: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return row.Embedding.Slice(), nil
}

// Store is an idempotent upsert keyed by text_hash. Concurrent duplicate
// stores for the same text are expected (two simultaneous cache misses); the
// conflict branch only refreshes the audit columns and never touches the
// stored embedding.
func (r *EmbeddingCacheRepositoryImpl) Store(ctx context.Context, entry *entity.CacheEntry) error {
	m := r.mapper.ToModel(entry)
	if m.LastAccessed.IsZero() {
		m.LastAccessed = time.Now()
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "text_hash"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"hit_count":     gorm.Expr("embedding_cache.hit_count + 1"),
			"last_accessed": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

func (r *EmbeddingCacheRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EmbeddingCacheEntry{}).Count(&count).Error
	return count, err
}
