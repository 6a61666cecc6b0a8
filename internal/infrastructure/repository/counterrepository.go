package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lineup/internal/domain/counter"
	"lineup/internal/infrastructure/persistence/mappers"
	"lineup/internal/infrastructure/persistence/models"
	"lineup/internal/shared/db"
	"lineup/internal/shared/errors"
)

type CounterRepository struct {
	db     *gorm.DB
	mapper mappers.CounterMapper
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{
		db:     db,
		mapper: mappers.NewCounterMapper(),
	}
}

func (r *CounterRepository) GetByID(ctx context.Context, counterID uint) (*counter.Counter, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.CounterModel
	if err := tx.First(&model, counterID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("counter not found")
		}
		return nil, fmt.Errorf("failed to get counter by ID: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *CounterRepository) ListByLocation(ctx context.Context, locationID uint) ([]*counter.Counter, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.CounterModel
	err := tx.
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list counters: %w", err)
	}
	return r.mapper.ToDomains(modelList)
}

type LocationRepository struct {
	db     *gorm.DB
	mapper mappers.CounterMapper
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{
		db:     db,
		mapper: mappers.NewCounterMapper(),
	}
}

func (r *LocationRepository) GetByID(ctx context.Context, locationID uint) (*counter.Location, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.LocationModel
	if err := tx.First(&model, locationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("location not found")
		}
		return nil, fmt.Errorf("failed to get location by ID: %w", err)
	}
	return r.mapper.LocationToDomain(&model)
}
