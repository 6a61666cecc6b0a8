package migrations

import (
	"gorm.io/gorm"

	"lineup/internal/infrastructure/persistence/models"
)

// MigrateQueueTables creates or updates the queue schema. Integration tests
// and the development bootstrap use it; production environments apply the
// versioned SQL scripts instead.
func MigrateQueueTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.LocationModel{},
		&models.CounterModel{},
		&models.TicketModel{},
		&models.TicketEventModel{},
	)
}
