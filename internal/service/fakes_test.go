package service

import (
	"context"
	"errors"
	"sync"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/pkg/embedding"
)

// nopLogger satisfies logger.ILogger without side effects.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeProvider returns a deterministic vector derived from the text length so
// different texts get different vectors.
type fakeProvider struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (p *fakeProvider) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	p.mu.Lock()
	p.calls = append(p.calls, text)
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{float32(len(text)), 1, 0},
		},
	}, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// fakeCacheRepo is an in-memory stand-in for the persistent embedding cache.
type fakeCacheRepo struct {
	mu        sync.Mutex
	entries   map[string]*entity.CacheEntry
	lookupErr error
	storeErr  error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string]*entity.CacheEntry)}
}

func (r *fakeCacheRepo) Lookup(_ context.Context, textHash string) ([]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	entry, ok := r.entries[textHash]
	if !ok {
		return nil, nil
	}
	entry.HitCount++
	return entry.Embedding, nil
}

func (r *fakeCacheRepo) Store(_ context.Context, entry *entity.CacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.storeErr != nil {
		return r.storeErr
	}
	if existing, ok := r.entries[entry.TextHash]; ok {
		existing.HitCount++
		return nil
	}
	stored := *entry
	stored.HitCount = 1
	r.entries[entry.TextHash] = &stored
	return nil
}

func (r *fakeCacheRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

func (r *fakeCacheRepo) hitCount(textHash string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[textHash]; ok {
		return entry.HitCount
	}
	return 0
}

// fakeHotCache records Get/Set traffic on the degrade tier.
type fakeHotCache struct {
	mu      sync.Mutex
	entries map[string][]float32
}

func newFakeHotCache() *fakeHotCache {
	return &fakeHotCache{entries: make(map[string][]float32)}
}

func (c *fakeHotCache) Get(_ context.Context, textHash string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vec, ok := c.entries[textHash]
	return vec, ok
}

func (c *fakeHotCache) Set(_ context.Context, textHash string, embeddingVec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[textHash] = embeddingVec
}

// fakeDocumentRepo captures bulk writes and serves canned search results.
type fakeDocumentRepo struct {
	mu            sync.Mutex
	batches       [][]*entity.Chunk
	searchResults []*entity.ScoredChunk
	lastLimit     int
	lastFilter    map[string]interface{}
	createErr     error
	searchErr     error
}

func (r *fakeDocumentRepo) CreateBulk(_ context.Context, chunks []*entity.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	batch := make([]*entity.Chunk, len(chunks))
	copy(batch, chunks)
	r.batches = append(r.batches, batch)
	return nil
}

func (r *fakeDocumentRepo) SearchSimilar(_ context.Context, _ []float32, limit int, metadataFilter map[string]interface{}) ([]*entity.ScoredChunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	r.lastLimit = limit
	r.lastFilter = metadataFilter
	if limit < len(r.searchResults) {
		return r.searchResults[:limit], nil
	}
	return r.searchResults, nil
}

func (r *fakeDocumentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, batch := range r.batches {
		total += len(batch)
	}
	return int64(total), nil
}

func (r *fakeDocumentRepo) allChunks() []*entity.Chunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Chunk
	for _, batch := range r.batches {
		all = append(all, batch...)
	}
	return all
}

// fakeHistoryRepo records audit writes and signals each one.
type fakeHistoryRepo struct {
	mu        sync.Mutex
	records   []*entity.SearchRecord
	createErr error
	created   chan struct{}
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{created: make(chan struct{}, 16)}
}

func (r *fakeHistoryRepo) Create(_ context.Context, record *entity.SearchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, record)
	select {
	case r.created <- struct{}{}:
	default:
	}
	return nil
}

func (r *fakeHistoryRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

func (r *fakeHistoryRepo) AvgResponseTimeMs(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return 0, nil
	}
	total := 0
	for _, rec := range r.records {
		total += rec.ResponseTimeMs
	}
	return float64(total) / float64(len(r.records)), nil
}

// fakeEmbedderService bypasses caching entirely for ingestion tests.
type fakeEmbedderService struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *fakeEmbedderService) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []float32{float32(len(text)), 0, 1}, nil
}

// fakePublisher captures the payloads handed to the audit topic.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) published() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.payloads))
	copy(out, p.payloads)
	return out
}

var errStoreDown = errors.New("connection refused")
