package db

import (
	"fmt"
	"time"

	"infinite-experiment/crewcenter/internal/logging"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NowUTC is used as GORM's clock so created_at/updated_at are always UTC
func NowUTC() time.Time {
	return time.Now().UTC()
}

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{NowFunc: NowUTC})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
