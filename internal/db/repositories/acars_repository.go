package repositories

import (
	"context"
	"fmt"

	"infinite-experiment/crewcenter/internal/constants"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
)

// AcarsRepository stores position rows attached to reports
type AcarsRepository struct {
	db *gorm.DB
}

func NewAcarsRepository(db *gorm.DB) *AcarsRepository {
	return &AcarsRepository{db: db}
}

// ReplaceRoute deletes the report's ROUTE rows and inserts points in order
func (r *AcarsRepository) ReplaceRoute(ctx context.Context, pirepID string, points []gormModels.Acars) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("pirep_id = ? AND type = ?", pirepID, constants.AcarsTypeRoute).
			Delete(&gormModels.Acars{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear route points: %w", err)
		}

		if len(points) == 0 {
			return nil
		}

		for i := range points {
			points[i].PirepID = pirepID
			points[i].Type = constants.AcarsTypeRoute
			points[i].Order = i
		}
		if err := tx.Create(&points).Error; err != nil {
			return fmt.Errorf("failed to insert route points: %w", err)
		}
		return nil
	})
}

// RouteForPirep returns the stored route points in order
func (r *AcarsRepository) RouteForPirep(ctx context.Context, pirepID string) ([]gormModels.Acars, error) {
	var points []gormModels.Acars

	err := r.db.WithContext(ctx).
		Where("pirep_id = ? AND type = ?", pirepID, constants.AcarsTypeRoute).
		Order("position ASC").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch route points: %w", err)
	}

	return points, nil
}
