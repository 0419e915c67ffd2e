package api

import (
	"errors"
	"net/http"
	"time"

	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/models"
	"infinite-experiment/crewcenter/internal/models/dtos"
)

// errorStatus maps a workflow error kind to its HTTP status
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrEligibility):
		return http.StatusForbidden
	case errors.Is(err, models.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondWorkflowError writes err with its code and the page the client should go back to
func respondWorkflowError(w http.ResponseWriter, initTime time.Time, err error, redirect string) {
	pe, ok := models.AsPirepError(err)
	if !ok {
		logging.Error("PIREP request failed", "error", err.Error())
		common.RespondError(w, initTime, constants.MsgInternal, dtos.ErrorData{
			Code:     constants.ErrCodeInternal,
			Redirect: redirect,
		}, http.StatusInternalServerError)
		return
	}

	common.RespondError(w, initTime, pe.Message, dtos.ErrorData{
		Code:     pe.Code,
		Redirect: redirect,
		Fields:   pe.Fields,
	}, errorStatus(err))
}
