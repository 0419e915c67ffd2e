package gorm

import (
	"time"

	"infinite-experiment/crewcenter/internal/constants"

	gormlib "gorm.io/gorm"
)

// Pirep is a pilot's flight report
type Pirep struct {
	ID           string                `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	UserID       string                `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	AirlineID    string                `gorm:"column:airline_id;type:uuid;not null" json:"airline_id"`
	AircraftID   string                `gorm:"column:aircraft_id;type:uuid;not null" json:"aircraft_id"`
	FlightNumber string                `gorm:"column:flight_number;type:varchar(10);not null;default:''" json:"flight_number"`
	DptAirportID string                `gorm:"column:dpt_airport_id;type:varchar(5);not null" json:"dpt_airport_id"`
	ArrAirportID string                `gorm:"column:arr_airport_id;type:varchar(5);not null" json:"arr_airport_id"`
	Route        string                `gorm:"column:route;type:text;not null;default:''" json:"route"`
	FlightTime   int                   `gorm:"column:flight_time;not null;default:0" json:"flight_time"`
	Distance     float64               `gorm:"column:distance;default:0" json:"distance"`
	State        constants.PirepState  `gorm:"column:state;type:varchar(20);not null;index" json:"state"`
	Source       constants.PirepSource `gorm:"column:source;type:varchar(10);not null" json:"source"`
	Notes        string                `gorm:"column:notes;type:text" json:"notes"`
	SubmittedAt  *time.Time            `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	User       *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Airline    *Airline          `gorm:"foreignKey:AirlineID" json:"airline,omitempty"`
	Aircraft   *Aircraft         `gorm:"foreignKey:AircraftID" json:"aircraft,omitempty"`
	DptAirport *Airport          `gorm:"foreignKey:DptAirportID" json:"dpt_airport,omitempty"`
	ArrAirport *Airport          `gorm:"foreignKey:ArrAirportID" json:"arr_airport,omitempty"`
	Fields     []PirepFieldValue `gorm:"foreignKey:PirepID" json:"fields,omitempty"`
	Fares      []PirepFare       `gorm:"foreignKey:PirepID" json:"fares,omitempty"`
}

// TableName specifies the table name for GORM
func (Pirep) TableName() string {
	return "pireps"
}

func (p *Pirep) BeforeCreate(_ *gormlib.DB) error {
	p.ID = newID(p.ID)
	return nil
}

// PirepField is one entry of the operator-defined custom field schema
type PirepField struct {
	ID          string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Slug        string `gorm:"column:slug;type:varchar(100);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Required    bool   `gorm:"column:required;default:false" json:"required"`
}

func (PirepField) TableName() string {
	return "pirep_fields"
}

func (f *PirepField) BeforeCreate(_ *gormlib.DB) error {
	f.ID = newID(f.ID)
	return nil
}

// PirepFieldValue is a custom field value recorded on a report
type PirepFieldValue struct {
	ID        string                `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	PirepID   string                `gorm:"column:pirep_id;type:uuid;not null;index" json:"pirep_id"`
	Name      string                `gorm:"column:name;not null" json:"name"`
	Slug      string                `gorm:"column:slug;type:varchar(100)" json:"slug"`
	Value     string                `gorm:"column:value;type:text" json:"value"`
	Source    constants.PirepSource `gorm:"column:source;type:varchar(10)" json:"source"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PirepFieldValue) TableName() string {
	return "pirep_field_values"
}

func (v *PirepFieldValue) BeforeCreate(_ *gormlib.DB) error {
	v.ID = newID(v.ID)
	return nil
}

// PirepFare is the passenger or cargo count for one fare on a report
type PirepFare struct {
	ID      string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	PirepID string `gorm:"column:pirep_id;type:uuid;not null;index" json:"pirep_id"`
	FareID  string `gorm:"column:fare_id;type:uuid;not null" json:"fare_id"`
	Count   int    `gorm:"column:count;not null;default:0" json:"count"`

	Fare *Fare `gorm:"foreignKey:FareID" json:"fare,omitempty"`
}

func (PirepFare) TableName() string {
	return "pirep_fares"
}

func (f *PirepFare) BeforeCreate(_ *gormlib.DB) error {
	f.ID = newID(f.ID)
	return nil
}

// Acars holds a stored position for a report; ROUTE rows are the planned route points
type Acars struct {
	ID        string              `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	PirepID   string              `gorm:"column:pirep_id;type:uuid;not null;index" json:"pirep_id"`
	Type      constants.AcarsType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Order     int                 `gorm:"column:position;not null;default:0" json:"order"`
	Name      string              `gorm:"column:name;type:varchar(20)" json:"name"`
	Latitude  float64             `gorm:"column:lat" json:"latitude"`
	Longitude float64             `gorm:"column:lon" json:"longitude"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Acars) TableName() string {
	return "acars"
}

func (a *Acars) BeforeCreate(_ *gormlib.DB) error {
	a.ID = newID(a.ID)
	return nil
}

// Setting is an operator-controlled key/value toggle
type Setting struct {
	Key       string    `gorm:"column:id;primaryKey;type:varchar(100)" json:"key"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&Airline{}, &Airport{}, &Navaid{}, &Rank{}, &User{},
		&Fare{}, &Subfleet{}, &Aircraft{},
		&Pirep{}, &PirepField{}, &PirepFieldValue{}, &PirepFare{}, &Acars{}, &Setting{},
	}
}
