package repositories

import (
	"context"
	"fmt"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository handles the settings key/value table
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// All returns every stored setting keyed by id
func (r *SettingRepository) All(ctx context.Context) (map[string]string, error) {
	var rows []gormModels.Setting

	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

// Upsert inserts the setting or overwrites its value
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	row := gormModels.Setting{Key: key, Value: value}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}

	return nil
}
