package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSettings CachePrefix = "SETTINGS_"
	CachePrefixFlash    CachePrefix = "FLASH_"
)

// Operator setting keys read by the PIREP workflow
const (
	SettingOnlyFlightsFromCurrent   = "pilots.only_flights_from_current"
	SettingRestrictAircraftToRank   = "pireps.restrict_aircraft_to_rank"
	SettingOnlyAircraftAtDptAirport = "pireps.only_aircraft_at_dpt_airport"
	SettingDuplicateCheckMinutes    = "pireps.duplicate_check_time"
)

// FarePrefix prefixes the form field carrying a fare count, e.g. fare_3f2a...
const FarePrefix = "fare_"

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)
