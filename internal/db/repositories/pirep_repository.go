package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PirepRepository handles pireps table operations
type PirepRepository struct {
	db *gorm.DB
}

// NewPirepRepository creates a new PIREP repository
func NewPirepRepository(db *gorm.DB) *PirepRepository {
	return &PirepRepository{db: db}
}

// FindByID returns the report with its display relations loaded, or nil when absent
func (r *PirepRepository) FindByID(ctx context.Context, id string) (*gormModels.Pirep, error) {
	var pirep gormModels.Pirep

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Airline").
		Preload("Aircraft.Subfleet.Fares").
		Preload("DptAirport").
		Preload("ArrAirport").
		Preload("Fields").
		Preload("Fares.Fare").
		Where("id = ?", id).
		First(&pirep).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pirep: %w", err)
	}

	return &pirep, nil
}

// ListByUser returns one page of the user's reports, newest first, excluding cancelled ones
func (r *PirepRepository) ListByUser(
	ctx context.Context,
	userID string,
	filters dtos.PirepFilters,
	page dtos.PageRequest,
) ([]gormModels.Pirep, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&gormModels.Pirep{}).
		Where("user_id = ?", userID).
		Where("state <> ?", constants.PirepStateCancelled)

	if filters.State != "" {
		query = query.Where("state = ?", filters.State)
	}
	if filters.AirlineID != "" {
		query = query.Where("airline_id = ?", filters.AirlineID)
	}
	if filters.DptAirportID != "" {
		query = query.Where("dpt_airport_id = ?", filters.DptAirportID)
	}
	if filters.ArrAirportID != "" {
		query = query.Where("arr_airport_id = ?", filters.ArrAirportID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pireps: %w", err)
	}

	var pireps []gormModels.Pirep
	err := query.Session(&gorm.Session{}).
		Preload("Airline").
		Preload("Aircraft").
		Preload("DptAirport").
		Preload("ArrAirport").
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&pireps).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pireps: %w", err)
	}

	return pireps, total, nil
}

// Create inserts the report; the generated id is set on pirep
func (r *PirepRepository) Create(ctx context.Context, pirep *gormModels.Pirep) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(pirep).Error; err != nil {
		return fmt.Errorf("failed to create pirep: %w", err)
	}
	return nil
}

// Update writes the editable columns of pirep
func (r *PirepRepository) Update(ctx context.Context, pirep *gormModels.Pirep) error {
	pirep.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&gormModels.Pirep{ID: pirep.ID}).
		Omit(clause.Associations).
		Select(
			"airline_id", "flight_number", "aircraft_id", "dpt_airport_id", "arr_airport_id",
			"route", "flight_time", "distance", "notes", "updated_at",
		).
		Updates(pirep)

	if result.Error != nil {
		return fmt.Errorf("failed to update pirep: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("pirep not found with ID: %s", pirep.ID)
	}

	return nil
}
