package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lineup/internal/domain/queue"
	"lineup/internal/infrastructure/persistence/mappers"
	"lineup/internal/infrastructure/persistence/models"
	"lineup/internal/shared/db"
)

// TicketEventRepository is append-only; events are never updated or deleted
// so the audit trail stays trustworthy.
type TicketEventRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketEventRepository(db *gorm.DB) *TicketEventRepository {
	return &TicketEventRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketEventRepository) Append(ctx context.Context, event *queue.TicketEvent) error {
	model, err := r.mapper.EventToModel(event)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append ticket event: %w", err)
	}

	return event.SetID(model.ID)
}

func (r *TicketEventRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*queue.TicketEvent, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.TicketEventModel
	err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket events: %w", err)
	}
	return r.mapper.EventsToDomain(modelList)
}
