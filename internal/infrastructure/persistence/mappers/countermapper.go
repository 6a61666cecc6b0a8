package mappers

import (
	"fmt"

	"lineup/internal/domain/counter"
	"lineup/internal/infrastructure/persistence/models"
)

// CounterMapper converts counter and location persistence models into domain
// entities. The queue engine only reads these, so there is no ToModel side.
type CounterMapper interface {
	ToDomain(model *models.CounterModel) (*counter.Counter, error)
	ToDomains(modelList []*models.CounterModel) ([]*counter.Counter, error)
	LocationToDomain(model *models.LocationModel) (*counter.Location, error)
}

type CounterMapperImpl struct{}

func NewCounterMapper() CounterMapper {
	return &CounterMapperImpl{}
}

func (m *CounterMapperImpl) ToDomain(model *models.CounterModel) (*counter.Counter, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := counter.ReconstructCounter(
		model.ID,
		model.LocationID,
		model.Name,
		model.Prefix,
		model.OpenTime,
		model.CloseTime,
		model.CapacityPerDay,
		model.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct counter entity: %w", err)
	}
	return entity, nil
}

func (m *CounterMapperImpl) ToDomains(modelList []*models.CounterModel) ([]*counter.Counter, error) {
	entities := make([]*counter.Counter, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (m *CounterMapperImpl) LocationToDomain(model *models.LocationModel) (*counter.Location, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := counter.ReconstructLocation(model.ID, model.Name, model.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct location entity: %w", err)
	}
	return entity, nil
}
