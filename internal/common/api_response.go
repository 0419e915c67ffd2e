package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/models/dtos"
)

// RespondSuccess writes the JSON envelope with status "ok". The default status code is 200.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	respond(w, initTime, constants.APIStatusOk, message, data, statusOr(http.StatusOK, statusCode))
}

// RespondError writes the JSON envelope with status "error". message is shown to the user
// as-is; data carries the error code and where the client should navigate.
// The default status code is 500.
func RespondError(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	respond(w, initTime, constants.APIStatusError, message, data, statusOr(http.StatusInternalServerError, statusCode))
}

// ResponseTime formats the time spent since init, e.g. "12ms"
func ResponseTime(init time.Time) string {
	return fmt.Sprintf("%dms", time.Since(init).Milliseconds())
}

func statusOr(def int, codes []int) int {
	if len(codes) > 0 {
		return codes[0]
	}
	return def
}

func respond(w http.ResponseWriter, initTime time.Time, status constants.APIStatus, message string, data any, code int) {
	body := dtos.APIResponse{
		Status:       string(status),
		Message:      message,
		ResponseTime: ResponseTime(initTime),
		Data:         data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}
