package service

import (
	"context"
	"strings"
	"testing"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngestionService(repo *fakeDocumentRepo, embedder *fakeEmbedderService, chunkSize, overlap, batchSize int) IIngestionService {
	return NewIngestionService(repo, embedder, nil, nopLogger{}, chunkSize, overlap, batchSize)
}

func TestAddDocumentsChunkMetadata(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := newTestIngestionService(repo, &fakeEmbedderService{}, 50, 10, 100)

	content := strings.Repeat("alpha beta gamma delta. ", 10)
	docs := []*entity.Document{
		{Id: "doc-1", Content: content, Metadata: map[string]interface{}{"category": "test"}},
	}

	total, err := svc.AddDocuments(context.Background(), docs, 0)
	require.NoError(t, err)
	require.Greater(t, total, 1)

	chunks := repo.allChunks()
	require.Len(t, chunks, total)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Metadata["chunk_index"])
		assert.Equal(t, total, chunk.Metadata["total_chunks"])
		assert.Equal(t, "doc-1", chunk.Metadata["source_doc_id"])
		// Caller metadata survives the merge
		assert.Equal(t, "test", chunk.Metadata["category"])
		assert.NotEmpty(t, chunk.Embedding)
	}
}

func TestAddDocumentsUnknownSourceId(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := newTestIngestionService(repo, &fakeEmbedderService{}, 1000, 200, 100)

	docs := []*entity.Document{{Content: "short document with no id"}}

	total, err := svc.AddDocuments(context.Background(), docs, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	chunks := repo.allChunks()
	assert.Equal(t, UnknownSourceId, chunks[0].Metadata["source_doc_id"])
}

func TestAddDocumentsBatching(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := newTestIngestionService(repo, &fakeEmbedderService{}, 1000, 200, 100)

	docs := make([]*entity.Document, 5)
	for i := range docs {
		docs[i] = &entity.Document{Id: "doc", Content: "one small document"}
	}

	total, err := svc.AddDocuments(context.Background(), docs, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	// 5 documents in batches of 2 means 3 bulk writes
	assert.Len(t, repo.batches, 3)
}

func TestAddDocumentsEmptyContent(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := newTestIngestionService(repo, &fakeEmbedderService{}, 1000, 200, 100)

	total, err := svc.AddDocuments(context.Background(), []*entity.Document{{Content: ""}}, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, repo.batches)
}

func TestAddDocumentsStoreFailure(t *testing.T) {
	repo := &fakeDocumentRepo{createErr: errStoreDown}
	svc := newTestIngestionService(repo, &fakeEmbedderService{}, 1000, 200, 100)

	_, err := svc.AddDocuments(context.Background(), []*entity.Document{{Content: "doomed"}}, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindStoreUnavailable, apperrors.KindOf(err))
}

func TestAddDocumentsEmbedFailure(t *testing.T) {
	repo := &fakeDocumentRepo{}
	embedder := &fakeEmbedderService{err: apperrors.New(apperrors.KindEmbeddingCapability, "generate embedding", errStoreDown)}
	svc := newTestIngestionService(repo, embedder, 1000, 200, 100)

	_, err := svc.AddDocuments(context.Background(), []*entity.Document{{Content: "will not embed"}}, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindEmbeddingCapability, apperrors.KindOf(err))
	// Nothing was persisted for the failed batch
	assert.Empty(t, repo.batches)
}
