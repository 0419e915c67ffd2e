package gorm

import (
	"time"

	gormlib "gorm.io/gorm"
)

type User struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Email         string    `gorm:"column:email;uniqueIndex" json:"-"`
	AirlineID     string    `gorm:"column:airline_id;type:uuid" json:"airline_id"`
	RankID        *string   `gorm:"column:rank_id;type:uuid" json:"rank_id"`
	CurrAirportID *string   `gorm:"column:curr_airport_id;type:varchar(5)" json:"curr_airport_id"`
	HomeAirportID *string   `gorm:"column:home_airport_id;type:varchar(5)" json:"home_airport_id"`
	IsActive      bool      `gorm:"column:is_active;default:true" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`

	// Relationships
	Rank    *Rank    `gorm:"foreignKey:RankID" json:"rank,omitempty"`
	Airline *Airline `gorm:"foreignKey:AirlineID" json:"airline,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(_ *gormlib.DB) error {
	u.ID = newID(u.ID)
	return nil
}

// IsAt reports whether the pilot's current location is the given airport
func (u *User) IsAt(airportID string) bool {
	return u.CurrAirportID != nil && *u.CurrAirportID == airportID
}

// Rank gates which subfleets a pilot may fly
type Rank struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	Hours     int        `gorm:"column:hours;default:0" json:"hours"`
	Subfleets []Subfleet `gorm:"many2many:rank_subfleet;joinForeignKey:RankID;joinReferences:SubfleetID" json:"subfleets,omitempty"`
}

func (Rank) TableName() string {
	return "ranks"
}

func (r *Rank) BeforeCreate(_ *gormlib.DB) error {
	r.ID = newID(r.ID)
	return nil
}

type Airline struct {
	ID     string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	ICAO   string `gorm:"column:icao;type:varchar(5);uniqueIndex" json:"icao"`
	IATA   string `gorm:"column:iata;type:varchar(5)" json:"iata"`
	Name   string `gorm:"column:name;not null" json:"name"`
	Active bool   `gorm:"column:active;default:true" json:"active"`
}

func (Airline) TableName() string {
	return "airlines"
}

func (a *Airline) BeforeCreate(_ *gormlib.DB) error {
	a.ID = newID(a.ID)
	return nil
}
