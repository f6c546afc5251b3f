package memory

import (
	"context"
	"time"

	"rag-postgres-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type EmbeddingHotCache struct {
	cache *cache.Cache
}

func NewEmbeddingHotCache(ttl time.Duration) contract.HotEmbeddingCache {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Purge expired vectors every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &EmbeddingHotCache{
		cache: c,
	}
}

func (r *EmbeddingHotCache) Get(_ context.Context, textHash string) ([]float32, bool) {
	if x, found := r.cache.Get(textHash); found {
		return x.([]float32), true
	}
	return nil, false
}

func (r *EmbeddingHotCache) Set(_ context.Context, textHash string, embedding []float32) {
	r.cache.Set(textHash, embedding, cache.DefaultExpiration)
}
