package mappers

import (
	"encoding/json"
	"fmt"

	"lineup/internal/domain/queue"
	vo "lineup/internal/domain/queue/valueobjects"
	"lineup/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *queue.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*queue.Ticket, error)
	ToDomains(modelList []*models.TicketModel) ([]*queue.Ticket, error)

	EventToModel(e *queue.TicketEvent) (*models.TicketEventModel, error)
	EventToDomain(model *models.TicketEventModel) (*queue.TicketEvent, error)
	EventsToDomain(modelList []*models.TicketEventModel) ([]*queue.TicketEvent, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *queue.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		LocationID:  t.LocationID(),
		CounterID:   t.CounterID(),
		HolderID:    t.HolderID(),
		DateFor:     t.DateFor(),
		Sequence:    t.Sequence(),
		QueueNumber: t.QueueNumber(),
		Status:      t.Status().String(),
		HoldReason:  t.HoldReason(),
		CreatedAt:   t.CreatedAt(),
		CalledAt:    t.CalledAt(),
		StartedAt:   t.StartedAt(),
		FinishedAt:  t.FinishedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*queue.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ticket status: %w", err)
	}

	entity, err := queue.ReconstructTicket(
		model.ID,
		model.LocationID,
		model.CounterID,
		model.HolderID,
		model.DateFor,
		model.Sequence,
		model.QueueNumber,
		status,
		model.HoldReason,
		model.CreatedAt,
		model.CalledAt,
		model.StartedAt,
		model.FinishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket entity: %w", err)
	}
	return entity, nil
}

func (m *TicketMapperImpl) ToDomains(modelList []*models.TicketModel) ([]*queue.Ticket, error) {
	entities := make([]*queue.Ticket, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (m *TicketMapperImpl) EventToModel(e *queue.TicketEvent) (*models.TicketEventModel, error) {
	model := &models.TicketEventModel{
		ID:        e.ID(),
		TicketID:  e.TicketID(),
		ActorID:   e.ActorID(),
		Type:      string(e.Type()),
		Note:      e.Note(),
		CreatedAt: e.CreatedAt(),
	}

	if len(e.Metadata()) > 0 {
		metaJSON, err := json.Marshal(e.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event metadata: %w", err)
		}
		model.Metadata = metaJSON
	}
	return model, nil
}

func (m *TicketMapperImpl) EventToDomain(model *models.TicketEventModel) (*queue.TicketEvent, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
		}
	}

	entity, err := queue.ReconstructTicketEvent(
		model.ID,
		model.TicketID,
		model.ActorID,
		queue.EventType(model.Type),
		model.Note,
		metadata,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket event: %w", err)
	}
	return entity, nil
}

func (m *TicketMapperImpl) EventsToDomain(modelList []*models.TicketEventModel) ([]*queue.TicketEvent, error) {
	entities := make([]*queue.TicketEvent, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.EventToDomain(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
