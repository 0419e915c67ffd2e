package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"infinite-experiment/crewcenter/internal/constants"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"github.com/jmoiron/sqlx"
)

// PirepDuplicateRepo runs the duplicate-filing lookup as plain SQL
type PirepDuplicateRepo struct {
	db *sqlx.DB
}

func NewPirepDuplicateRepo(db *sqlx.DB) *PirepDuplicateRepo {
	return &PirepDuplicateRepo{db: db}
}

// FindDuplicate returns the id of a live report matching pirep filed at or after since,
// or "" when there is none
func (r *PirepDuplicateRepo) FindDuplicate(ctx context.Context, pirep *gormModels.Pirep, since time.Time) (string, error) {
	var id string

	query := r.db.Rebind(constants.FindDuplicatePirep)
	err := r.db.GetContext(ctx, &id, query,
		pirep.UserID,
		pirep.AirlineID,
		pirep.AircraftID,
		pirep.DptAirportID,
		pirep.ArrAirportID,
		pirep.Route,
		pirep.FlightNumber,
		constants.PirepStateCancelled,
		constants.PirepStateDeleted,
		since.UTC(),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query duplicate pireps: %w", err)
	}

	return id, nil
}

// Ping verifies the connection, used by the health check
func (r *PirepDuplicateRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.GetContext(ctx, &one, constants.PingQuery)
}
