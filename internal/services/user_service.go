package services

import (
	"context"
	"fmt"

	"infinite-experiment/crewcenter/internal/db/repositories"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
)

// UserService answers which aircraft a pilot may fly
type UserService struct {
	userRepo  *repositories.UserRepository
	fleetRepo *repositories.FleetRepository
}

func NewUserService(userRepo *repositories.UserRepository, fleetRepo *repositories.FleetRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		fleetRepo: fleetRepo,
	}
}

// FindUser returns the pilot with their rank, or nil when absent
func (s *UserService) FindUser(ctx context.Context, id string) (*gormModels.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// AllowableSubfleets returns every subfleet when there is no user or the rank
// restriction is off, otherwise the subfleets attached to the user's rank
func (s *UserService) AllowableSubfleets(
	ctx context.Context,
	user *gormModels.User,
	restrictToRank bool,
) ([]gormModels.Subfleet, error) {
	if user == nil || !restrictToRank {
		return s.fleetRepo.AllSubfleets(ctx)
	}

	if user.RankID == nil {
		return []gormModels.Subfleet{}, nil
	}

	subfleets, err := s.fleetRepo.SubfleetsForRank(ctx, *user.RankID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve allowable subfleets: %w", err)
	}
	return subfleets, nil
}

// AircraftAllowed reports whether the user's rank may fly the aircraft
func (s *UserService) AircraftAllowed(ctx context.Context, user *gormModels.User, aircraft *gormModels.Aircraft) (bool, error) {
	if user == nil || aircraft == nil || user.RankID == nil {
		return false, nil
	}
	return s.fleetRepo.RankAllowsSubfleet(ctx, *user.RankID, aircraft.SubfleetID)
}
