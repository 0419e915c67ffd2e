package services

import (
	"context"
	"strconv"
	"strings"

	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
)

// FareService manages the per-report fare counts
type FareService struct {
	fareRepo  *repositories.FareRepository
	fleetRepo *repositories.FleetRepository
}

func NewFareService(fareRepo *repositories.FareRepository, fleetRepo *repositories.FleetRepository) *FareService {
	return &FareService{
		fareRepo:  fareRepo,
		fleetRepo: fleetRepo,
	}
}

// FaresForAircraft returns the aircraft and the fares of its subfleet.
// The aircraft is nil when it does not exist.
func (s *FareService) FaresForAircraft(ctx context.Context, aircraftID string) (*gormModels.Aircraft, []gormModels.Fare, error) {
	aircraft, err := s.fleetRepo.FindAircraft(ctx, aircraftID)
	if err != nil || aircraft == nil {
		return nil, nil, err
	}

	fares, err := s.fareRepo.ForSubfleet(ctx, aircraft.SubfleetID)
	if err != nil {
		return nil, nil, err
	}
	return aircraft, fares, nil
}

// SaveForPirep replaces every fare row of the report with rows
func (s *FareService) SaveForPirep(ctx context.Context, pirepID string, rows []gormModels.PirepFare) error {
	return s.fareRepo.ReplaceForPirep(ctx, pirepID, rows)
}

// FareCounts returns the stored count per fare id for the report
func (s *FareService) FareCounts(ctx context.Context, pirepID string) (map[string]int, error) {
	rows, err := s.fareRepo.ForPirep(ctx, pirepID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.FareID] = row.Count
	}
	return counts, nil
}

// FareRowsFromForm builds one row per fare, reading fare_<id> from the form.
// Missing, blank or unparseable counts become zero.
func FareRowsFromForm(fares []gormModels.Fare, form *dtos.PirepForm) []gormModels.PirepFare {
	rows := make([]gormModels.PirepFare, 0, len(fares))
	for _, fare := range fares {
		count, err := strconv.Atoi(strings.TrimSpace(form.Input(dtos.FareInput(fare.ID))))
		if err != nil || count < 0 {
			count = 0
		}
		rows = append(rows, gormModels.PirepFare{
			FareID: fare.ID,
			Count:  count,
		})
	}
	return rows
}
