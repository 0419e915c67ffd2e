package gorm

import (
	gormlib "gorm.io/gorm"
)

// Subfleet groups aircraft that share fares and rank eligibility
type Subfleet struct {
	ID        string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	AirlineID string `gorm:"column:airline_id;type:uuid" json:"airline_id"`
	Type      string `gorm:"column:type;type:varchar(50)" json:"type"`
	Name      string `gorm:"column:name;not null" json:"name"`

	// Relationships
	Aircraft []Aircraft `gorm:"foreignKey:SubfleetID" json:"aircraft,omitempty"`
	Fares    []Fare     `gorm:"many2many:subfleet_fare;joinForeignKey:SubfleetID;joinReferences:FareID" json:"fares,omitempty"`
}

func (Subfleet) TableName() string {
	return "subfleets"
}

func (s *Subfleet) BeforeCreate(_ *gormlib.DB) error {
	s.ID = newID(s.ID)
	return nil
}

type Aircraft struct {
	ID           string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SubfleetID   string `gorm:"column:subfleet_id;type:uuid;index" json:"subfleet_id"`
	AirportID    string `gorm:"column:airport_id;type:varchar(5)" json:"airport_id"`
	ICAO         string `gorm:"column:icao;type:varchar(5)" json:"icao"`
	Name         string `gorm:"column:name;not null" json:"name"`
	Registration string `gorm:"column:registration;type:varchar(10)" json:"registration"`
	Status       string `gorm:"column:status;type:varchar(10);default:A" json:"status"`

	// Relationships
	Subfleet *Subfleet `gorm:"foreignKey:SubfleetID" json:"subfleet,omitempty"`
}

func (Aircraft) TableName() string {
	return "aircraft"
}

func (a *Aircraft) BeforeCreate(_ *gormlib.DB) error {
	a.ID = newID(a.ID)
	return nil
}

// Label is the text shown in aircraft dropdowns
func (a Aircraft) Label() string {
	return a.Name + " - " + a.Registration
}

// Fare is a seat or cargo class counted per flight
type Fare struct {
	ID       string  `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Code     string  `gorm:"column:code;type:varchar(10);not null" json:"code"`
	Name     string  `gorm:"column:name;not null" json:"name"`
	Price    float64 `gorm:"column:price;default:0" json:"price"`
	Capacity int     `gorm:"column:capacity;default:0" json:"capacity"`
	Type     int     `gorm:"column:type;default:0" json:"type"`
}

func (Fare) TableName() string {
	return "fares"
}

func (f *Fare) BeforeCreate(_ *gormlib.DB) error {
	f.ID = newID(f.ID)
	return nil
}
