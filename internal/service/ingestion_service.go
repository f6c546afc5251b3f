package service

import (
	"context"
	"errors"
	"fmt"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"
	"rag-postgres-be/internal/pkg/logger"
	"rag-postgres-be/internal/repository/contract"
	"rag-postgres-be/pkg/chunker"
	"rag-postgres-be/pkg/events"
	pktNats "rag-postgres-be/pkg/nats"

	"golang.org/x/sync/errgroup"
)

// UnknownSourceId marks chunks whose source document carried no identifier.
const UnknownSourceId = "unknown"

// embedConcurrency bounds parallel model calls within one batch. The batch's
// bulk write still happens once, after every embedding has resolved.
const embedConcurrency = 4

type IIngestionService interface {
	// AddDocuments chunks, embeds and persists the documents in batches of at
	// most batchSize, returning the total number of chunks written. Batches
	// are committed serially; a failed batch fails the whole call with no
	// partial credit for that batch.
	AddDocuments(ctx context.Context, documents []*entity.Document, batchSize int) (int, error)
}

type ingestionService struct {
	documentRepo     contract.DocumentRepository
	embeddingService IEmbeddingService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
	chunkSize        int
	chunkOverlap     int
	defaultBatchSize int
}

func NewIngestionService(
	documentRepo contract.DocumentRepository,
	embeddingService IEmbeddingService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	chunkSize, chunkOverlap, defaultBatchSize int,
) IIngestionService {
	return &ingestionService{
		documentRepo:     documentRepo,
		embeddingService: embeddingService,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
		chunkSize:        chunkSize,
		chunkOverlap:     chunkOverlap,
		defaultBatchSize: defaultBatchSize,
	}
}

func (s *ingestionService) AddDocuments(ctx context.Context, documents []*entity.Document, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = s.defaultBatchSize
	}

	totalChunks := 0

	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}
		batch := documents[i:end]

		chunks, err := s.prepareBatch(ctx, batch)
		if err != nil {
			return totalChunks, err
		}
		if len(chunks) == 0 {
			continue
		}

		// One bulk write per batch. All-or-nothing: a failure here must not
		// silently drop a subset of the batch.
		if err := s.documentRepo.CreateBulk(ctx, chunks); err != nil {
			return totalChunks, apperrors.New(apperrors.KindStoreUnavailable, "persist chunk batch", err)
		}

		totalChunks += len(chunks)
		s.logger.Info("ingestion", "batch persisted", map[string]interface{}{
			"batch":  i/batchSize + 1,
			"chunks": len(chunks),
		})
	}

	if s.eventPublisher != nil {
		evt := events.DocumentsIngested(len(documents), totalChunks)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			// Event delivery is auxiliary; the ingestion already committed.
			s.logger.Warn("ingestion", "failed to publish ingest event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return totalChunks, nil
}

// prepareBatch chunks every document in the batch and resolves embeddings,
// concurrently up to embedConcurrency, preserving chunk order.
func (s *ingestionService) prepareBatch(ctx context.Context, batch []*entity.Document) ([]*entity.Chunk, error) {
	var chunks []*entity.Chunk

	for _, doc := range batch {
		pieces, err := chunker.Split(doc.Content, s.chunkSize, s.chunkOverlap)
		if err != nil {
			return nil, apperrors.New(apperrors.KindConfiguration, "chunk document", err)
		}

		sourceId := doc.Id
		if sourceId == "" {
			sourceId = UnknownSourceId
		}

		for idx, piece := range pieces {
			metadata := make(map[string]interface{}, len(doc.Metadata)+3)
			for k, v := range doc.Metadata {
				metadata[k] = v
			}
			metadata["chunk_index"] = idx
			metadata["total_chunks"] = len(pieces)
			metadata["source_doc_id"] = sourceId

			chunks = append(chunks, &entity.Chunk{
				Content:  piece,
				Metadata: metadata,
			})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for _, chunk := range chunks {
		g.Go(func() error {
			vec, err := s.embeddingService.Embed(gctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("embed chunk: %w", err)
			}
			chunk.Embedding = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.New(apperrors.KindEmbeddingCapability, "embed batch", err)
	}

	return chunks, nil
}
