package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"rag-postgres-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// EmbeddingHotCache shares the hot tier across processes through Redis.
// All operations are best-effort; Redis being down just means every lookup
// falls through to the persistent cache.
type EmbeddingHotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEmbeddingHotCache(client *redis.Client, ttl time.Duration) contract.HotEmbeddingCache {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &EmbeddingHotCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *EmbeddingHotCache) Get(ctx context.Context, textHash string) ([]float32, bool) {
	raw, err := r.client.Get(ctx, key(textHash)).Bytes()
	if err != nil {
		return nil, false
	}
	var embedding []float32
	if err := json.Unmarshal(raw, &embedding); err != nil {
		return nil, false
	}
	return embedding, true
}

func (r *EmbeddingHotCache) Set(ctx context.Context, textHash string, embedding []float32) {
	raw, err := json.Marshal(embedding)
	if err != nil {
		return
	}
	r.client.Set(ctx, key(textHash), raw, r.ttl)
}

func key(textHash string) string {
	return "embedding:" + textHash
}
