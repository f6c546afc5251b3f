package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunk struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content   string          `gorm:"type:text;not null"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 both emit 768 dimensions
	Metadata  datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "documents"
}
