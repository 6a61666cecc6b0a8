package models

import (
	"time"

	"gorm.io/datatypes"

	"lineup/internal/shared/constants"
)

// TicketModel is the persistence shape of a queue ticket. Two unique indexes
// back the engine's guarantees: counter+date+sequence makes concurrent
// issuance collide at the database even if the sequence lock is bypassed,
// and date+number keeps displayed numbers unambiguous across every counter
// on a given day. Counters sharing a prefix cannot both issue "A001".
type TicketModel struct {
	ID          uint    `gorm:"primaryKey"`
	LocationID  uint    `gorm:"not null;index"`
	CounterID   uint    `gorm:"not null;uniqueIndex:idx_tickets_seq,priority:1"`
	HolderID    *uint   `gorm:"index:idx_tickets_holder"`
	DateFor     string  `gorm:"size:10;not null;uniqueIndex:idx_tickets_seq,priority:2;uniqueIndex:idx_tickets_number,priority:1"`
	Sequence    int     `gorm:"not null;uniqueIndex:idx_tickets_seq,priority:3"`
	QueueNumber string  `gorm:"size:16;not null;uniqueIndex:idx_tickets_number,priority:2"`
	Status      string  `gorm:"size:20;not null;default:'waiting';index"`
	HoldReason  *string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CalledAt    *time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

// TicketEventModel is one append-only audit row. Events are never updated or
// deleted.
type TicketEventModel struct {
	ID        uint    `gorm:"primaryKey"`
	TicketID  uint    `gorm:"not null;index"`
	ActorID   *uint   `gorm:"index"`
	Type      string  `gorm:"size:20;not null"`
	Note      *string `gorm:"size:255"`
	Metadata  datatypes.JSON
	CreatedAt time.Time `gorm:"index"`
}

func (TicketEventModel) TableName() string {
	return constants.TableTicketEvents
}
