package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is the ingestion input: raw text plus free-form metadata.
// Documents are transient; only their chunks are persisted.
type Document struct {
	Id       string
	Content  string
	Metadata map[string]interface{}
}

// Chunk is the persisted unit of embedding and retrieval.
type Chunk struct {
	Id        uuid.UUID
	Content   string
	Embedding []float32
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// ScoredChunk pairs a chunk with its similarity to a query embedding.
type ScoredChunk struct {
	*Chunk
	Similarity float64
}
