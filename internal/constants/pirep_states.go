package constants

import (
	"database/sql/driver"
	"fmt"
)

// PirepState is the lifecycle state of a flight report
type PirepState string

const (
	PirepStateInProgress PirepState = "IN_PROGRESS"
	PirepStatePending    PirepState = "PENDING"
	PirepStateAccepted   PirepState = "ACCEPTED"
	PirepStateCancelled  PirepState = "CANCELLED"
	PirepStateDeleted    PirepState = "DELETED"
	PirepStateDraft      PirepState = "DRAFT"
	PirepStateRejected   PirepState = "REJECTED"
	PirepStatePaused     PirepState = "PAUSED"
)

var pirepStateLabels = map[PirepState]string{
	PirepStateInProgress: "In Progress",
	PirepStatePending:    "Pending",
	PirepStateAccepted:   "Accepted",
	PirepStateCancelled:  "Cancelled",
	PirepStateDeleted:    "Deleted",
	PirepStateDraft:      "Draft",
	PirepStateRejected:   "Rejected",
	PirepStatePaused:     "Paused",
}

func (s PirepState) String() string { return string(s) }

// Label is the human readable name shown in listings
func (s PirepState) Label() string {
	if l, ok := pirepStateLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsValid reports whether s is one of the known states
func (s PirepState) IsValid() bool {
	_, ok := pirepStateLabels[s]
	return ok
}

// Scan implements the sql.Scanner interface
func (s *PirepState) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = PirepState(v)
	case []byte:
		*s = PirepState(v)
	default:
		return fmt.Errorf("PirepState: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s PirepState) Value() (driver.Value, error) { return string(s), nil }

// PirepSource records where a report or one of its values came from
type PirepSource string

const (
	PirepSourceManual PirepSource = "MANUAL"
	PirepSourceAcars  PirepSource = "ACARS"
)

func (s PirepSource) String() string { return string(s) }

// AcarsType distinguishes stored position rows
type AcarsType string

const (
	AcarsTypeFlightPath AcarsType = "FLIGHT_PATH"
	AcarsTypeRoute      AcarsType = "ROUTE"
	AcarsTypeLog        AcarsType = "LOG"
)
