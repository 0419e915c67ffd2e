package common

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/models/dtos"
)

const maxBodyBytes = 1 << 20

// ReadFormValues flattens a JSON object or a form-encoded body into name/value pairs.
// Custom field slugs and fare_<id> counts arrive as ordinary keys.
func ReadFormValues(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return readJSONValues(r)
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	return firstValues(r.PostForm), nil
}

func readJSONValues(r *http.Request) (map[string]string, error) {
	var body map[string]interface{}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}

	values := make(map[string]string, len(body))
	for k, v := range body {
		switch tv := v.(type) {
		case nil:
			continue
		case string:
			values[k] = tv
		case json.Number:
			values[k] = tv.String()
		case bool:
			values[k] = strconv.FormatBool(tv)
		default:
			return nil, fmt.Errorf("field %s must be a scalar value", k)
		}
	}
	return values, nil
}

func firstValues(form url.Values) map[string]string {
	values := make(map[string]string, len(form))
	for k, v := range form {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	return values
}

// ParseListQuery reads report filters and pagination from the query string
func ParseListQuery(q url.Values) (dtos.PirepFilters, dtos.PageRequest) {
	filters := dtos.PirepFilters{
		State:        constants.PirepState(strings.ToUpper(strings.TrimSpace(q.Get("state")))),
		AirlineID:    strings.TrimSpace(q.Get("airline_id")),
		DptAirportID: strings.ToUpper(strings.TrimSpace(q.Get("dpt_airport_id"))),
		ArrAirportID: strings.ToUpper(strings.TrimSpace(q.Get("arr_airport_id"))),
	}
	if !filters.State.IsValid() {
		filters.State = ""
	}

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	return filters, dtos.PageRequest{Page: page, PerPage: perPage}.Normalize()
}
