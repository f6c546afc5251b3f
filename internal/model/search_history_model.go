package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// SearchHistory is append-only; rows are never updated or deleted by the
// application.
type SearchHistory struct {
	Id             uint            `gorm:"primaryKey;autoIncrement"`
	Query          string          `gorm:"type:text;not null"`
	QueryEmbedding pgvector.Vector `gorm:"type:vector(768)"`
	ResultsCount   int             `gorm:"not null"`
	ResponseTimeMs int             `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (SearchHistory) TableName() string {
	return "search_history"
}
