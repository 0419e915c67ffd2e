package dtos

import (
	"encoding/json"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
	"infinite-experiment/crewcenter/internal/units"
)

// --- Controller endpoints ----

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ErrorData is attached to error responses so clients can show the message and navigate
type ErrorData struct {
	Code     string            `json:"code"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// PirepPage is one page of a pilot's reports
type PirepPage struct {
	Items    []gormModels.Pirep `json:"items"`
	Page     int                `json:"page"`
	PerPage  int                `json:"per_page"`
	Total    int64              `json:"total"`
	LastPage int                `json:"last_page"`
}

// SelectOption is one entry of a dropdown
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AircraftGroup is the aircraft of one subfleet, labelled by subfleet name
type AircraftGroup struct {
	Subfleet string         `json:"subfleet"`
	Aircraft []SelectOption `json:"aircraft"`
}

// ReferenceData is the set of dropdown sources shared by the create and edit forms
type ReferenceData struct {
	Airlines    []SelectOption          `json:"airline_list"`
	Aircraft    []AircraftGroup         `json:"aircraft_list"`
	Airports    []SelectOption          `json:"airport_list"`
	PirepFields []gormModels.PirepField `json:"pirep_fields"`
}

type CreateFormData struct {
	ReferenceData
	ReadOnly    bool              `json:"read_only"`
	FieldValues map[string]string `json:"field_values"`
}

type EditFormData struct {
	ReferenceData
	Pirep      *gormModels.Pirep    `json:"pirep"`
	Aircraft   *gormModels.Aircraft `json:"aircraft"`
	FlightTime units.FlightTime     `json:"flight_time"`
	// FieldValues maps custom field slug to its stored value
	FieldValues map[string]string `json:"field_values"`
	// FareCounts maps fare id to its stored count
	FareCounts map[string]int `json:"fare_counts"`
}

type PirepView struct {
	Pirep       *gormModels.Pirep `json:"pirep"`
	FlightTime  units.FlightTime  `json:"flight_time"`
	MapFeatures *MapFeatures      `json:"map_features"`
}

// MapFeatures carries pre-encoded GeoJSON documents for the report map
type MapFeatures struct {
	PlannedRoutePoints json.RawMessage `json:"planned_rte_points"`
	PlannedRouteLine   json.RawMessage `json:"planned_rte_line"`
}

type FaresFormData struct {
	Aircraft *gormModels.Aircraft `json:"aircraft"`
	Fares    []gormModels.Fare    `json:"fares"`
	ReadOnly bool                 `json:"read_only"`
}

// SubmitResult identifies a created or updated report
type SubmitResult struct {
	PirepID string `json:"pirep_id"`
	Message string `json:"message,omitempty"`
}
