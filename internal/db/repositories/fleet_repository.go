package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
)

// FleetRepository handles aircraft, subfleets and rank eligibility lookups
type FleetRepository struct {
	db *gorm.DB
}

func NewFleetRepository(db *gorm.DB) *FleetRepository {
	return &FleetRepository{db: db}
}

// FindAircraft returns the aircraft with its subfleet and fares, or nil when absent
func (r *FleetRepository) FindAircraft(ctx context.Context, id string) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Preload("Subfleet.Fares", func(db *gorm.DB) *gorm.DB {
			return db.Order("fares.code ASC")
		}).
		Where("id = ?", id).
		First(&aircraft).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &aircraft, nil
}

// AllSubfleets returns every subfleet with its aircraft
func (r *FleetRepository) AllSubfleets(ctx context.Context) ([]gormModels.Subfleet, error) {
	var subfleets []gormModels.Subfleet

	err := r.db.WithContext(ctx).
		Preload("Aircraft", func(db *gorm.DB) *gorm.DB {
			return db.Order("aircraft.registration ASC")
		}).
		Order("subfleets.name ASC").
		Find(&subfleets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subfleets: %w", err)
	}

	return subfleets, nil
}

// SubfleetsForRank returns the subfleets a rank may fly, with their aircraft
func (r *FleetRepository) SubfleetsForRank(ctx context.Context, rankID string) ([]gormModels.Subfleet, error) {
	var subfleets []gormModels.Subfleet

	err := r.db.WithContext(ctx).
		Preload("Aircraft", func(db *gorm.DB) *gorm.DB {
			return db.Order("aircraft.registration ASC")
		}).
		Joins("JOIN rank_subfleet ON rank_subfleet.subfleet_id = subfleets.id").
		Where("rank_subfleet.rank_id = ?", rankID).
		Order("subfleets.name ASC").
		Find(&subfleets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rank subfleets: %w", err)
	}

	return subfleets, nil
}

// RankAllowsSubfleet reports whether the rank is attached to the subfleet
func (r *FleetRepository) RankAllowsSubfleet(ctx context.Context, rankID, subfleetID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("rank_subfleet").
		Where("rank_id = ? AND subfleet_id = ?", rankID, subfleetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check rank subfleet: %w", err)
	}

	return count > 0, nil
}
