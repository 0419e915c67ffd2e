package gorm

import (
	"time"

	gormlib "gorm.io/gorm"
)

// Airport is keyed by its ICAO code
type Airport struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(5)" json:"id"`
	IATA      string    `gorm:"column:iata;type:varchar(5)" json:"iata"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	City      string    `gorm:"column:city;type:varchar(100)" json:"city"`
	Country   string    `gorm:"column:country;type:varchar(100)" json:"country"`
	Latitude  float64   `gorm:"column:latitude;not null" json:"latitude"`
	Longitude float64   `gorm:"column:longitude;not null" json:"longitude"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}

// Navaid is a named waypoint used when resolving route text
type Navaid struct {
	ID        string  `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Ident     string  `gorm:"column:ident;type:varchar(10);not null;index" json:"ident"`
	Name      string  `gorm:"column:name;type:text" json:"name"`
	Type      string  `gorm:"column:type;type:varchar(10)" json:"type"`
	Latitude  float64 `gorm:"column:latitude;not null" json:"latitude"`
	Longitude float64 `gorm:"column:longitude;not null" json:"longitude"`
}

func (Navaid) TableName() string {
	return "navaids"
}

func (n *Navaid) BeforeCreate(_ *gormlib.DB) error {
	n.ID = newID(n.ID)
	return nil
}
