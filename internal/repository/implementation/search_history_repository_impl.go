package implementation

import (
	"context"
	"fmt"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/mapper"
	"rag-postgres-be/internal/model"
	"rag-postgres-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SearchHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchHistoryMapper
}

func NewSearchHistoryRepository(db *gorm.DB) contract.SearchHistoryRepository {
	return &SearchHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchHistoryMapper(),
	}
}

func (r *SearchHistoryRepositoryImpl) Create(ctx context.Context, record *entity.SearchRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert search history: %w", err)
	}
	record.CreatedAt = m.CreatedAt
	return nil
}

func (r *SearchHistoryRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SearchHistory{}).Count(&count).Error
	return count, err
}

func (r *SearchHistoryRepositoryImpl) AvgResponseTimeMs(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&model.SearchHistory{}).
		Select("COALESCE(AVG(response_time_ms), 0)").
		Scan(&avg).Error
	return avg, err
}
