package dto

import "time"

type StatsResponse struct {
	TotalDocuments    int64   `json:"total_documents"`
	TotalSearches     int64   `json:"total_searches"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	CachedEmbeddings  int64   `json:"cached_embeddings"`
}

type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Stats     StatsResponse `json:"stats"`
}

// SearchLoggedMessage is the payload of the deferred search-audit write
// published after every similarity search.
type SearchLoggedMessage struct {
	Query          string    `json:"query"`
	QueryEmbedding []float32 `json:"query_embedding"`
	ResultsCount   int       `json:"results_count"`
	ResponseTimeMs int       `json:"response_time_ms"`
}
