package service

import (
	"context"
	"encoding/json"
	"testing"

	"rag-postgres-be/internal/dto"
	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredChunk(content string, similarity float64) *entity.ScoredChunk {
	return &entity.ScoredChunk{
		Chunk:      &entity.Chunk{Content: content},
		Similarity: similarity,
	}
}

func TestSearchReturnsRankedResults(t *testing.T) {
	repo := &fakeDocumentRepo{searchResults: []*entity.ScoredChunk{
		scoredChunk("closest", 0.95),
		scoredChunk("close", 0.80),
		scoredChunk("far", 0.40),
	}}
	publisher := &fakePublisher{}
	svc := NewRetrievalService(repo, &fakeEmbedderService{}, publisher, nil, nopLogger{}, 5)

	results, err := svc.Search(context.Background(), "what is close?", 3, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "closest", results[0].Content)
	assert.Equal(t, 0.95, results[0].Similarity)
}

func TestSearchDefaultsTopK(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := NewRetrievalService(repo, &fakeEmbedderService{}, &fakePublisher{}, nil, nopLogger{}, 5)

	_, err := svc.Search(context.Background(), "anything", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)
}

func TestSearchPassesFilterThrough(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := NewRetrievalService(repo, &fakeEmbedderService{}, &fakePublisher{}, nil, nopLogger{}, 5)

	filter := map[string]interface{}{"category": "database"}
	_, err := svc.Search(context.Background(), "postgres", 2, filter)
	require.NoError(t, err)
	assert.Equal(t, filter, repo.lastFilter)
}

func TestSearchPublishesAuditMessage(t *testing.T) {
	repo := &fakeDocumentRepo{searchResults: []*entity.ScoredChunk{
		scoredChunk("a", 0.9),
		scoredChunk("b", 0.8),
	}}
	publisher := &fakePublisher{}
	svc := NewRetrievalService(repo, &fakeEmbedderService{}, publisher, nil, nopLogger{}, 5)

	_, err := svc.Search(context.Background(), "audited query", 2, nil)
	require.NoError(t, err)

	payloads := publisher.published()
	require.Len(t, payloads, 1)

	var msg dto.SearchLoggedMessage
	require.NoError(t, json.Unmarshal(payloads[0], &msg))
	assert.Equal(t, "audited query", msg.Query)
	assert.Equal(t, 2, msg.ResultsCount)
	assert.NotEmpty(t, msg.QueryEmbedding)
	assert.GreaterOrEqual(t, msg.ResponseTimeMs, 0)
}

func TestSearchAuditFailureDoesNotMaskResults(t *testing.T) {
	repo := &fakeDocumentRepo{searchResults: []*entity.ScoredChunk{scoredChunk("a", 0.9)}}
	publisher := &fakePublisher{err: errStoreDown}
	svc := NewRetrievalService(repo, &fakeEmbedderService{}, publisher, nil, nopLogger{}, 5)

	results, err := svc.Search(context.Background(), "resilient search", 1, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchStoreFailure(t *testing.T) {
	repo := &fakeDocumentRepo{searchErr: errStoreDown}
	svc := NewRetrievalService(repo, &fakeEmbedderService{}, &fakePublisher{}, nil, nopLogger{}, 5)

	_, err := svc.Search(context.Background(), "unreachable", 1, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindStoreUnavailable, apperrors.KindOf(err))
}

func TestSearchEmbedFailureSkipsStoreAndAudit(t *testing.T) {
	repo := &fakeDocumentRepo{}
	publisher := &fakePublisher{}
	embedder := &fakeEmbedderService{err: apperrors.New(apperrors.KindEmbeddingCapability, "generate embedding", errStoreDown)}
	svc := NewRetrievalService(repo, embedder, publisher, nil, nopLogger{}, 5)

	_, err := svc.Search(context.Background(), "cannot embed", 1, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindEmbeddingCapability, apperrors.KindOf(err))
	assert.Empty(t, publisher.published())
}
