package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/supportdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

// AutoMigrateModels lists the models created by GORM AutoMigrate, parents first.
func AutoMigrateModels() []interface{} {
	return models.All()
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: log.With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("starting gorm auto-migration", "models_count", len(AutoMigrateModels()))

	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	s.logger.Infow("auto-migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
