package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Task types hint retrieval-oriented models at the intended use of the vector.
// Providers that don't distinguish (Ollama) ignore them.
const (
	TaskRetrievalDocument  = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery     = "RETRIEVAL_QUERY"
	TaskSemanticSimilarity = "SEMANTIC_SIMILARITY"
)

// EmbeddingProvider is the raw model capability: text in, vector out.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

// Embedder is the pipeline consumed by ingestion and retrieval.
// Implementations may cache; repeat calls with the same text must return a
// numerically identical vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// HashText fingerprints the exact byte content of text. Case- and
// whitespace-sensitive: any change to the text is a different cache key.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
