package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchRequest struct {
	Query          string                 `json:"query" validate:"required"`
	TopK           int                    `json:"top_k" validate:"omitempty,min=1"`
	MetadataFilter map[string]interface{} `json:"metadata_filter"`
}

type SearchResultItem struct {
	Id         uuid.UUID              `json:"id"`
	Content    string                 `json:"content"`
	Metadata   map[string]interface{} `json:"metadata"`
	Similarity float64                `json:"similarity"`
}

type SearchResponse struct {
	Query     string             `json:"query"`
	Results   []SearchResultItem `json:"results"`
	Count     int                `json:"count"`
	Timestamp time.Time          `json:"timestamp"`
}

type QueryRequest struct {
	Question       string                 `json:"question" validate:"required"`
	TopK           int                    `json:"top_k" validate:"omitempty,min=1"`
	MetadataFilter map[string]interface{} `json:"metadata_filter"`
}

type QueryResponse struct {
	Question  string             `json:"question"`
	Answer    string             `json:"answer"`
	Sources   []SearchResultItem `json:"sources"`
	Timestamp time.Time          `json:"timestamp"`
}
