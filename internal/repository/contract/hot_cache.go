package contract

import "context"

// HotEmbeddingCache is a best-effort front tier for embedding vectors keyed
// by text hash. It exists so embedding lookups can survive a Postgres outage;
// the persistent cache stays authoritative for hit accounting. Both methods
// are fire-and-forget: failures are swallowed by implementations.
type HotEmbeddingCache interface {
	Get(ctx context.Context, textHash string) ([]float32, bool)
	Set(ctx context.Context, textHash string, embedding []float32)
}
