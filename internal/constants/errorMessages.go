package constants

// Error codes returned by the PIREP workflow. Each rejection has its own code.
const (
	ErrCodeValidation             = "VALIDATION_FAILED"
	ErrCodeNotAtDepartureAirport  = "NOT_AT_DEPARTURE_AIRPORT"
	ErrCodeAircraftNotAllowed     = "AIRCRAFT_NOT_ALLOWED"
	ErrCodeAircraftNotAtDeparture = "AIRCRAFT_NOT_AT_DEPARTURE"
	ErrCodePirepDuplicate         = "PIREP_DUPLICATE"
	ErrCodePirepNotFound          = "PIREP_NOT_FOUND"
	ErrCodeAircraftNotFound       = "AIRCRAFT_NOT_FOUND"
	ErrCodeInternal               = "INTERNAL_ERROR"
)

const (
	MsgValidationFailed       = "Please correct the highlighted fields."
	MsgNotAtDepartureAirport  = "You are currently not at the departure airport!"
	MsgAircraftNotAllowed     = "You are not allowed to fly this aircraft!"
	MsgAircraftNotAtDeparture = "This aircraft is not positioned at the departure airport!"
	MsgPirepDuplicate         = "This PIREP has already been filed."
	MsgPirepNotFound          = "Pirep not found"
	MsgAircraftNotFound       = "Aircraft not found"
	MsgPirepUpdated           = "Pirep updated successfully."
	MsgPirepFiled             = "PIREP filed successfully."
	MsgInternal               = "Something went wrong, please try again."
	MsgUnauthorized           = "Unauthorized"
)
