package migration

import (
	"fmt"

	"gorm.io/gorm"

	"lineup/internal/infrastructure/persistence/models"
	"lineup/internal/shared/logger"
)

// AutoMigrateModels returns every model the queue engine persists, in
// dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.LocationModel{},
		&models.CounterModel{},
		&models.TicketModel{},
		&models.TicketEventModel{},
	}
}

// GormAutoMigrateStrategy migrates by diffing struct definitions against the
// schema. Suitable for development; production uses versioned SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	s.logger.Infow("gorm auto migration completed")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
