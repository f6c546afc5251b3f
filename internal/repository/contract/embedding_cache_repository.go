package contract

import (
	"context"

	"rag-postgres-be/internal/entity"
)

type EmbeddingCacheRepository interface {
	// Lookup returns the cached embedding for textHash, or nil when absent.
	// A found entry has its hit counter and access timestamp bumped in the
	// same statement.
	Lookup(ctx context.Context, textHash string) ([]float32, error)

	// Store upserts the entry keyed by its text hash. On conflict only the
	// hit counter and access timestamp change; the stored embedding is never
	// overwritten, so repeated stores stay deterministic.
	Store(ctx context.Context, entry *entity.CacheEntry) error

	Count(ctx context.Context) (int64, error)
}
