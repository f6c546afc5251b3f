package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type EmbeddingCacheEntry struct {
	Id           uint            `gorm:"primaryKey;autoIncrement"`
	TextHash     string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Text         string          `gorm:"type:text;not null"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"`
	HitCount     int             `gorm:"default:0"`
	LastAccessed time.Time       `gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

func (EmbeddingCacheEntry) TableName() string {
	return "embedding_cache"
}
