package constants

// FindDuplicatePirep matches a report already filed by the same pilot for the same
// flight within the duplicate window. Written with ? placeholders; callers Rebind.
const FindDuplicatePirep = `
	SELECT id
	FROM pireps
	WHERE user_id = ?
	  AND airline_id = ?
	  AND aircraft_id = ?
	  AND dpt_airport_id = ?
	  AND arr_airport_id = ?
	  AND route = ?
	  AND flight_number = ?
	  AND state NOT IN (?, ?)
	  AND created_at >= ?
	ORDER BY created_at DESC
	LIMIT 1
`

const PingQuery = `SELECT 1`
