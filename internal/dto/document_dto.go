package dto

import "time"

type IngestDocument struct {
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
	Id       string                 `json:"id"`
}

type IngestDocumentsRequest struct {
	Documents []IngestDocument `json:"documents" validate:"required,min=1,dive"`
	BatchSize int              `json:"batch_size" validate:"omitempty,min=1"`
}

type IngestDocumentsResponse struct {
	DocumentsProcessed int       `json:"documents_processed"`
	ChunksCreated      int       `json:"chunks_created"`
	Timestamp          time.Time `json:"timestamp"`
}
