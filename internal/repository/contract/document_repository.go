package contract

import (
	"context"

	"rag-postgres-be/internal/entity"
)

type DocumentRepository interface {
	// CreateBulk persists all chunks in a single multi-row insert. The write
	// is atomic: either every chunk in the slice lands or none do.
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error

	// SearchSimilar ranks stored chunks by ascending cosine distance to the
	// query embedding. A non-nil metadataFilter restricts candidates to rows
	// whose metadata structurally contains the filter.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, metadataFilter map[string]interface{}) ([]*entity.ScoredChunk, error)

	Count(ctx context.Context) (int64, error)
}
