package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// InitPostgres opens the sqlx connection used for hand-written queries, retrying while the database starts
func InitPostgres(dsn string) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	for i := 0; i < 10; i++ {
		conn, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return conn, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}

// SqlxFromGorm shares GORM's connection pool with sqlx.
// driverName selects the placeholder style ("postgres" or "sqlite3").
func SqlxFromGorm(db *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}
