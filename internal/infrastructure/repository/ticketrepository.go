package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lineup/internal/domain/queue"
	vo "lineup/internal/domain/queue/valueobjects"
	"lineup/internal/infrastructure/persistence/mappers"
	"lineup/internal/infrastructure/persistence/models"
	"lineup/internal/shared/db"
	"lineup/internal/shared/errors"
)

// activeStatuses are the statuses that count as "in the queue" for the
// duplicate-holder check.
var activeStatuses = []string{
	vo.StatusWaiting.String(),
	vo.StatusCalling.String(),
	vo.StatusServing.String(),
	vo.StatusHold.String(),
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *queue.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return err
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *queue.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Callers load the row (usually under lock) before mutating, so the row
	// exists. RowsAffected is not checked: MySQL reports zero affected rows
	// for an UPDATE that changes no column values.
	if err := tx.Save(model).Error; err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*queue.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketModel
	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket by ID: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, ticketID uint) (*queue.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, ticketID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to lock ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) MaxSequenceForUpdate(ctx context.Context, counterID uint, dateFor string) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	// Locks the tail of the counter+date index range. When no row exists yet
	// the gap lock on the unique index still blocks a concurrent first
	// insert until this transaction finishes.
	var model models.TicketModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("counter_id = ? AND date_for = ?", counterID, dateFor).
		Order("sequence DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read max sequence: %w", err)
	}
	return model.Sequence, nil
}

func (r *TicketRepository) NextWaitingForUpdate(ctx context.Context, counterID uint) (*queue.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("counter_id = ? AND status = ?", counterID, vo.StatusWaiting.String()).
		Order("created_at ASC, sequence ASC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select next waiting ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) CountIssued(ctx context.Context, counterID uint, dateFor string) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.Model(&models.TicketModel{}).
		Where("counter_id = ? AND date_for = ?", counterID, dateFor).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count issued tickets: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) HasActiveTicket(ctx context.Context, holderID, counterID uint, dateFor string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.Model(&models.TicketModel{}).
		Where("holder_id = ? AND counter_id = ? AND date_for = ? AND status IN ?",
			holderID, counterID, dateFor, activeStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check active ticket: %w", err)
	}
	return count > 0, nil
}

func (r *TicketRepository) ListWaiting(ctx context.Context, counterID uint) ([]*queue.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.TicketModel
	err := tx.
		Where("counter_id = ? AND status = ?", counterID, vo.StatusWaiting.String()).
		Order("created_at ASC, sequence ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting tickets: %w", err)
	}
	return r.mapper.ToDomains(modelList)
}
