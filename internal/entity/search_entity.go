package entity

import "time"

// SearchRecord is one row of the append-only search audit log.
type SearchRecord struct {
	Query          string
	QueryEmbedding []float32
	ResultsCount   int
	ResponseTimeMs int
	CreatedAt      time.Time
}

// QueryResult is the full answer-with-sources payload returned by the
// question -> answer pipeline.
type QueryResult struct {
	Question  string
	Answer    string
	Sources   []*ScoredChunk
	Timestamp time.Time
}

// Stats is a point-in-time aggregate snapshot of the store.
type Stats struct {
	TotalDocuments    int64
	TotalSearches     int64
	AvgResponseTimeMs float64
	CachedEmbeddings  int64
}
