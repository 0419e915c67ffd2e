package units

import "fmt"

// MaxHours bounds the hours a form may carry; the converted minutes stay well inside int range
const MaxHours = 99999

// FlightTime is a duration split into whole hours and remaining minutes.
// Stored durations are always integer minutes; forms use the split.
type FlightTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// FlightTimeFromMinutes decomposes a stored duration
func FlightTimeFromMinutes(total int) FlightTime {
	if total < 0 {
		total = 0
	}
	return FlightTime{
		Hours:   total / 60,
		Minutes: total % 60,
	}
}

// NewFlightTime builds a FlightTime from separately entered hours and minutes.
// Minutes above 59 are carried into hours.
func NewFlightTime(hours, minutes int) FlightTime {
	return FlightTimeFromMinutes(HoursToMinutes(hours) + minutes)
}

// HoursToMinutes converts whole hours to minutes
func HoursToMinutes(hours int) int {
	return hours * 60
}

// TotalMinutes is the duration in minutes
func (t FlightTime) TotalMinutes() int {
	return HoursToMinutes(t.Hours) + t.Minutes
}

func (t FlightTime) String() string {
	return fmt.Sprintf("%dh %02dm", t.Hours, t.Minutes)
}
