package units

import "testing"

func TestFlightTimeFromMinutes(t *testing.T) {
	tests := []struct {
		total   int
		hours   int
		minutes int
	}{
		{0, 0, 0},
		{59, 0, 59},
		{60, 1, 0},
		{90, 1, 30},
		{605, 10, 5},
		{-5, 0, 0},
	}

	for _, tt := range tests {
		got := FlightTimeFromMinutes(tt.total)
		if got.Hours != tt.hours || got.Minutes != tt.minutes {
			t.Errorf("FlightTimeFromMinutes(%d) = %dh%dm, want %dh%dm", tt.total, got.Hours, got.Minutes, tt.hours, tt.minutes)
		}
	}
}

func TestNewFlightTimeCarriesMinutes(t *testing.T) {
	ft := NewFlightTime(1, 75)
	if ft.Hours != 2 || ft.Minutes != 15 {
		t.Fatalf("expected 2h15m, got %dh%dm", ft.Hours, ft.Minutes)
	}
	if ft.TotalMinutes() != 135 {
		t.Errorf("expected 135 minutes, got %d", ft.TotalMinutes())
	}
}

func TestFlightTimeRoundTrip(t *testing.T) {
	for total := 0; total < 24*60; total += 7 {
		if got := FlightTimeFromMinutes(total).TotalMinutes(); got != total {
			t.Fatalf("round trip of %d minutes gave %d", total, got)
		}
	}
}

func TestFlightTimeRoundTripUpperRange(t *testing.T) {
	tests := []struct {
		hours   int
		minutes int
	}{
		{MaxHours, 0},
		{MaxHours, 59},
		{MaxHours - 1, 30},
		{1000, 1},
	}

	for _, tt := range tests {
		total := NewFlightTime(tt.hours, tt.minutes).TotalMinutes()
		if total != tt.hours*60+tt.minutes {
			t.Fatalf("NewFlightTime(%d, %d) = %d minutes", tt.hours, tt.minutes, total)
		}
		got := FlightTimeFromMinutes(total)
		if got.Hours != tt.hours || got.Minutes != tt.minutes {
			t.Errorf("round trip of %dh%dm gave %dh%dm", tt.hours, tt.minutes, got.Hours, got.Minutes)
		}
	}
}

func TestFlightTimeString(t *testing.T) {
	if got := FlightTimeFromMinutes(125).String(); got != "2h 05m" {
		t.Errorf("unexpected string %q", got)
	}
}
