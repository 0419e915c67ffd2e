package testutil

import (
	"testing"

	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"gorm.io/gorm"
)

// Fixtures is a small airline: two subfleets, one pilot whose rank may fly
// only the narrowbody subfleet, and two custom fields.
type Fixtures struct {
	Airline gormModels.Airline

	JFK gormModels.Airport
	BOS gormModels.Airport
	LHR gormModels.Airport

	Rank gormModels.Rank
	User gormModels.User

	Narrowbody gormModels.Subfleet
	Widebody   gormModels.Subfleet

	// A320 is in Narrowbody, parked at KJFK
	A320 gormModels.Aircraft
	// B777 is in Widebody, parked at KBOS
	B777 gormModels.Aircraft

	Economy  gormModels.Fare
	Business gormModels.Fare

	Remarks  gormModels.PirepField
	FuelUsed gormModels.PirepField
}

func mustCreate(t testing.TB, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}

func link(t testing.TB, db *gorm.DB, table string, row map[string]interface{}) {
	t.Helper()
	if err := db.Table(table).Create(row).Error; err != nil {
		t.Fatalf("seed %s: %v", table, err)
	}
}

// Seed inserts the fixture set
func Seed(t testing.TB, db *gorm.DB) *Fixtures {
	t.Helper()

	f := &Fixtures{
		Airline: gormModels.Airline{ICAO: "VMS", IATA: "VM", Name: "Virtual Air", Active: true},
		JFK:     gormModels.Airport{ID: "KJFK", IATA: "JFK", Name: "John F Kennedy Intl", Latitude: 40.6398, Longitude: -73.7789},
		BOS:     gormModels.Airport{ID: "KBOS", IATA: "BOS", Name: "Boston Logan Intl", Latitude: 42.3643, Longitude: -71.0052},
		LHR:     gormModels.Airport{ID: "EGLL", IATA: "LHR", Name: "London Heathrow", Latitude: 51.4706, Longitude: -0.4619},
		Rank:    gormModels.Rank{Name: "First Officer", Hours: 0},
	}

	mustCreate(t, db, &f.Airline)
	mustCreate(t, db, &f.JFK)
	mustCreate(t, db, &f.BOS)
	mustCreate(t, db, &f.LHR)
	mustCreate(t, db, &f.Rank)

	f.Narrowbody = gormModels.Subfleet{AirlineID: f.Airline.ID, Type: "A320", Name: "Narrowbody"}
	f.Widebody = gormModels.Subfleet{AirlineID: f.Airline.ID, Type: "B777", Name: "Widebody"}
	mustCreate(t, db, &f.Narrowbody)
	mustCreate(t, db, &f.Widebody)

	f.A320 = gormModels.Aircraft{SubfleetID: f.Narrowbody.ID, AirportID: "KJFK", ICAO: "A320", Name: "Airbus A320", Registration: "N320VM"}
	f.B777 = gormModels.Aircraft{SubfleetID: f.Widebody.ID, AirportID: "KBOS", ICAO: "B77W", Name: "Boeing 777", Registration: "N777VM"}
	mustCreate(t, db, &f.A320)
	mustCreate(t, db, &f.B777)

	f.Economy = gormModels.Fare{Code: "Y", Name: "Economy", Price: 100, Capacity: 150}
	f.Business = gormModels.Fare{Code: "J", Name: "Business", Price: 500, Capacity: 20}
	mustCreate(t, db, &f.Economy)
	mustCreate(t, db, &f.Business)

	link(t, db, "subfleet_fare", map[string]interface{}{"subfleet_id": f.Narrowbody.ID, "fare_id": f.Economy.ID})
	link(t, db, "subfleet_fare", map[string]interface{}{"subfleet_id": f.Narrowbody.ID, "fare_id": f.Business.ID})
	link(t, db, "rank_subfleet", map[string]interface{}{"rank_id": f.Rank.ID, "subfleet_id": f.Narrowbody.ID})

	current := "KJFK"
	f.User = gormModels.User{
		Name:          "Test Pilot",
		Email:         "pilot@example.com",
		AirlineID:     f.Airline.ID,
		RankID:        &f.Rank.ID,
		CurrAirportID: &current,
		IsActive:      true,
	}
	mustCreate(t, db, &f.User)

	f.Remarks = gormModels.PirepField{Name: "Remarks", Slug: "remarks"}
	f.FuelUsed = gormModels.PirepField{Name: "Fuel Used", Slug: "fuel-used"}
	mustCreate(t, db, &f.Remarks)
	mustCreate(t, db, &f.FuelUsed)

	return f
}

// Navaid inserts a waypoint
func Navaid(t testing.TB, db *gorm.DB, ident string, lat, lon float64) gormModels.Navaid {
	t.Helper()
	n := gormModels.Navaid{Ident: ident, Name: ident, Type: "FIX", Latitude: lat, Longitude: lon}
	mustCreate(t, db, &n)
	return n
}
