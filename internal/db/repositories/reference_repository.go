package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
)

// ReferenceRepository serves the lookup tables used to populate forms
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ActiveAirlines returns airlines that accept new reports
func (r *ReferenceRepository) ActiveAirlines(ctx context.Context) ([]gormModels.Airline, error) {
	var airlines []gormModels.Airline

	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&airlines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airlines: %w", err)
	}

	return airlines, nil
}

// AllAirports returns every airport ordered by ICAO
func (r *ReferenceRepository) AllAirports(ctx context.Context) ([]gormModels.Airport, error) {
	var airports []gormModels.Airport

	if err := r.db.WithContext(ctx).Order("id ASC").Find(&airports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch airports: %w", err)
	}

	return airports, nil
}

// FindAirport returns the airport with the ICAO code, or nil when absent
func (r *ReferenceRepository) FindAirport(ctx context.Context, icao string) (*gormModels.Airport, error) {
	var airport gormModels.Airport

	err := r.db.WithContext(ctx).Where("id = ?", icao).First(&airport).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airport: %w", err)
	}

	return &airport, nil
}

// NavaidsByIdent returns every navaid whose ident is in idents
func (r *ReferenceRepository) NavaidsByIdent(ctx context.Context, idents []string) ([]gormModels.Navaid, error) {
	if len(idents) == 0 {
		return nil, nil
	}

	var navaids []gormModels.Navaid
	err := r.db.WithContext(ctx).
		Where("ident IN ?", idents).
		Find(&navaids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch navaids: %w", err)
	}

	return navaids, nil
}

// AirportsByID returns every airport whose ICAO is in ids
func (r *ReferenceRepository) AirportsByID(ctx context.Context, ids []string) ([]gormModels.Airport, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var airports []gormModels.Airport
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&airports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch airports: %w", err)
	}

	return airports, nil
}
