package dtos

import (
	"strconv"
	"strings"
	"time"

	"infinite-experiment/crewcenter/internal/constants"
)

// PirepForm is the submitted create/edit form. Raw keeps every submitted value so
// custom-field slugs and fare_<id> counts can be read by name.
type PirepForm struct {
	AirlineID    string `json:"airline_id" validate:"required"`
	FlightNumber string `json:"flight_number" validate:"required,max=10"`
	AircraftID   string `json:"aircraft_id" validate:"required"`
	DptAirportID string `json:"dpt_airport_id" validate:"required,max=5"`
	ArrAirportID string `json:"arr_airport_id" validate:"required,max=5"`
	Route        string `json:"route" validate:"max=2000"`
	Hours        int    `json:"hours" validate:"gte=0,lte=99999"`
	Minutes      int    `json:"minutes" validate:"gte=0,lt=60"`
	Notes        string `json:"notes" validate:"max=5000"`

	Raw         map[string]string `json:"-" validate:"-"`
	ParseErrors map[string]string `json:"-" validate:"-"`
}

// NewPirepForm reads the typed fields out of a flat map of submitted values.
// Unparseable numbers are recorded in ParseErrors instead of being dropped.
func NewPirepForm(values map[string]string) PirepForm {
	form := PirepForm{
		AirlineID:    strings.TrimSpace(values["airline_id"]),
		FlightNumber: strings.TrimSpace(values["flight_number"]),
		AircraftID:   strings.TrimSpace(values["aircraft_id"]),
		DptAirportID: strings.ToUpper(strings.TrimSpace(values["dpt_airport_id"])),
		ArrAirportID: strings.ToUpper(strings.TrimSpace(values["arr_airport_id"])),
		Route:        strings.TrimSpace(values["route"]),
		Notes:        values["notes"],
		Raw:          values,
		ParseErrors:  map[string]string{},
	}
	if form.Raw == nil {
		form.Raw = map[string]string{}
	}

	form.Hours = form.intField("hours")
	form.Minutes = form.intField("minutes")
	return form
}

func (f *PirepForm) intField(name string) int {
	raw := strings.TrimSpace(f.Raw[name])
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f.ParseErrors[name] = name + " must be a whole number"
		return 0
	}
	return n
}

// Filled reports whether the named input was submitted with a non-blank value
func (f *PirepForm) Filled(name string) bool {
	return strings.TrimSpace(f.Raw[name]) != ""
}

// Input returns the submitted value for name
func (f *PirepForm) Input(name string) string {
	return f.Raw[name]
}

// FareInput is the form field name carrying the count for a fare
func FareInput(fareID string) string {
	return constants.FarePrefix + fareID
}

// PirepFilters narrows a pilot's report listing
type PirepFilters struct {
	State        constants.PirepState `json:"state,omitempty"`
	AirlineID    string               `json:"airline_id,omitempty"`
	DptAirportID string               `json:"dpt_airport_id,omitempty"`
	ArrAirportID string               `json:"arr_airport_id,omitempty"`
}

// PageRequest is a 1-based page selection
type PageRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Normalize clamps the request to sane bounds
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = constants.DefaultPerPage
	}
	if p.PerPage > constants.MaxPerPage {
		p.PerPage = constants.MaxPerPage
	}
	return p
}

// Offset is the number of rows to skip for this page
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PirepSettings is the resolved set of operator toggles used for one workflow call
type PirepSettings struct {
	OnlyFlightsFromCurrent   bool          `json:"pilots.only_flights_from_current"`
	RestrictAircraftToRank   bool          `json:"pireps.restrict_aircraft_to_rank"`
	OnlyAircraftAtDptAirport bool          `json:"pireps.only_aircraft_at_dpt_airport"`
	DuplicateWindow          time.Duration `json:"pireps.duplicate_check_time"`
}
