package repositories

import (
	"context"
	"fmt"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
)

// PirepFieldRepository handles the custom field schema and recorded values
type PirepFieldRepository struct {
	db *gorm.DB
}

func NewPirepFieldRepository(db *gorm.DB) *PirepFieldRepository {
	return &PirepFieldRepository{db: db}
}

// All returns the current custom field schema
func (r *PirepFieldRepository) All(ctx context.Context) ([]gormModels.PirepField, error) {
	var fields []gormModels.PirepField

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&fields).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pirep fields: %w", err)
	}

	return fields, nil
}

// ReplaceValues swaps the full set of custom field values recorded for a report
func (r *PirepFieldRepository) ReplaceValues(ctx context.Context, pirepID string, values []gormModels.PirepFieldValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pirep_id = ?", pirepID).Delete(&gormModels.PirepFieldValue{}).Error; err != nil {
			return fmt.Errorf("failed to clear pirep field values: %w", err)
		}

		if len(values) == 0 {
			return nil
		}

		for i := range values {
			values[i].PirepID = pirepID
		}
		if err := tx.Create(&values).Error; err != nil {
			return fmt.Errorf("failed to insert pirep field values: %w", err)
		}
		return nil
	})
}

// ValuesForPirep returns the custom field values recorded for a report
func (r *PirepFieldRepository) ValuesForPirep(ctx context.Context, pirepID string) ([]gormModels.PirepFieldValue, error) {
	var values []gormModels.PirepFieldValue

	err := r.db.WithContext(ctx).
		Where("pirep_id = ?", pirepID).
		Order("name ASC").
		Find(&values).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pirep field values: %w", err)
	}

	return values, nil
}
