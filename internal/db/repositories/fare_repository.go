package repositories

import (
	"context"
	"fmt"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
)

// FareRepository handles fares and the per-report fare counts
type FareRepository struct {
	db *gorm.DB
}

func NewFareRepository(db *gorm.DB) *FareRepository {
	return &FareRepository{db: db}
}

// ForSubfleet returns the fares attached to a subfleet
func (r *FareRepository) ForSubfleet(ctx context.Context, subfleetID string) ([]gormModels.Fare, error) {
	var fares []gormModels.Fare

	err := r.db.WithContext(ctx).
		Joins("JOIN subfleet_fare ON subfleet_fare.fare_id = fares.id").
		Where("subfleet_fare.subfleet_id = ?", subfleetID).
		Order("fares.code ASC").
		Find(&fares).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subfleet fares: %w", err)
	}

	return fares, nil
}

// ReplaceForPirep swaps every fare row for a report in one transaction
func (r *FareRepository) ReplaceForPirep(ctx context.Context, pirepID string, rows []gormModels.PirepFare) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pirep_id = ?", pirepID).Delete(&gormModels.PirepFare{}).Error; err != nil {
			return fmt.Errorf("failed to clear pirep fares: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].PirepID = pirepID
		}
		if err := tx.Omit("Fare").Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert pirep fares: %w", err)
		}
		return nil
	})
}

// ForPirep returns the fare counts recorded for a report
func (r *FareRepository) ForPirep(ctx context.Context, pirepID string) ([]gormModels.PirepFare, error) {
	var rows []gormModels.PirepFare

	err := r.db.WithContext(ctx).
		Preload("Fare").
		Where("pirep_id = ?", pirepID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pirep fares: %w", err)
	}

	return rows, nil
}
