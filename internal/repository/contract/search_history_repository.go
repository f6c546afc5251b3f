package contract

import (
	"context"

	"rag-postgres-be/internal/entity"
)

type SearchHistoryRepository interface {
	Create(ctx context.Context, record *entity.SearchRecord) error
	Count(ctx context.Context) (int64, error)
	AvgResponseTimeMs(ctx context.Context) (float64, error)
}
