package services

import (
	"context"
	"fmt"
	"time"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
)

// PirepService owns report persistence and the derived data stored with a report
type PirepService struct {
	pirepRepo     *repositories.PirepRepository
	duplicateRepo *repositories.PirepDuplicateRepo
	fieldRepo     *repositories.PirepFieldRepository
	refRepo       *repositories.ReferenceRepository
	acarsRepo     *repositories.AcarsRepository
	geo           *GeoService
	now           func() time.Time
}

func NewPirepService(
	pirepRepo *repositories.PirepRepository,
	duplicateRepo *repositories.PirepDuplicateRepo,
	fieldRepo *repositories.PirepFieldRepository,
	refRepo *repositories.ReferenceRepository,
	acarsRepo *repositories.AcarsRepository,
	geo *GeoService,
) *PirepService {
	return &PirepService{
		pirepRepo:     pirepRepo,
		duplicateRepo: duplicateRepo,
		fieldRepo:     fieldRepo,
		refRepo:       refRepo,
		acarsRepo:     acarsRepo,
		geo:           geo,
		now:           time.Now,
	}
}

func (s *PirepService) FindByID(ctx context.Context, id string) (*gormModels.Pirep, error) {
	return s.pirepRepo.FindByID(ctx, id)
}

func (s *PirepService) ListByUser(
	ctx context.Context,
	userID string,
	filters dtos.PirepFilters,
	page dtos.PageRequest,
) ([]gormModels.Pirep, int64, error) {
	return s.pirepRepo.ListByUser(ctx, userID, filters, page)
}

// Create fills in defaults and the planned distance, then inserts the report
func (s *PirepService) Create(ctx context.Context, pirep *gormModels.Pirep) error {
	if pirep.State == "" {
		pirep.State = constants.PirepStatePending
	}
	if pirep.Source == "" {
		pirep.Source = constants.PirepSourceManual
	}

	distance, err := s.Distance(ctx, pirep.DptAirportID, pirep.ArrAirportID)
	if err != nil {
		return err
	}
	pirep.Distance = distance

	return s.pirepRepo.Create(ctx, pirep)
}

// Update writes the editable columns of the report
func (s *PirepService) Update(ctx context.Context, pirep *gormModels.Pirep) error {
	return s.pirepRepo.Update(ctx, pirep)
}

// Distance is the great-circle distance between two airports in nautical miles.
// Unknown airports yield zero.
func (s *PirepService) Distance(ctx context.Context, dptID, arrID string) (float64, error) {
	dpt, err := s.refRepo.FindAirport(ctx, dptID)
	if err != nil {
		return 0, err
	}
	arr, err := s.refRepo.FindAirport(ctx, arrID)
	if err != nil {
		return 0, err
	}
	return DistanceNM(dpt, arr), nil
}

// FindDuplicate returns a live report matching pirep that was filed within
// window, or nil when there is none
func (s *PirepService) FindDuplicate(ctx context.Context, pirep *gormModels.Pirep, window time.Duration) (*gormModels.Pirep, error) {
	since := s.now().UTC().Add(-window)

	id, err := s.duplicateRepo.FindDuplicate(ctx, pirep, since)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	return s.pirepRepo.FindByID(ctx, id)
}

// CustomFields returns the current custom field schema
func (s *PirepService) CustomFields(ctx context.Context) ([]gormModels.PirepField, error) {
	return s.fieldRepo.All(ctx)
}

// UpdateCustomFields replaces every custom field value of the report with values
func (s *PirepService) UpdateCustomFields(ctx context.Context, pirepID string, values []gormModels.PirepFieldValue) error {
	return s.fieldRepo.ReplaceValues(ctx, pirepID, values)
}

// SaveRoute recomputes the stored route points from the report's route text
func (s *PirepService) SaveRoute(ctx context.Context, pirep *gormModels.Pirep) error {
	dpt, err := s.refRepo.FindAirport(ctx, pirep.DptAirportID)
	if err != nil {
		return err
	}
	arr, err := s.refRepo.FindAirport(ctx, pirep.ArrAirportID)
	if err != nil {
		return err
	}

	points, err := s.geo.RoutePoints(ctx, dpt, arr, pirep.Route)
	if err != nil {
		return fmt.Errorf("failed to resolve route: %w", err)
	}

	return s.acarsRepo.ReplaceRoute(ctx, pirep.ID, points)
}
