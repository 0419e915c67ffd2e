package api

import (
	"net/http"
	"strings"
	"time"

	"infinite-experiment/crewcenter/internal/auth"
	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

const (
	redirectList   = "/pireps"
	redirectCreate = "/pireps/create"
)

func showRedirect(id string) string { return "/pireps/" + id }
func editRedirect(id string) string { return "/pireps/" + id + "/edit" }

// ListPireps handles GET /api/v1/pireps
func (h *Handlers) ListPireps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user := auth.GetUser(r.Context())
		if user == nil {
			common.RespondError(w, initTime, constants.MsgUnauthorized, nil, http.StatusUnauthorized)
			return
		}

		filters, page := common.ParseListQuery(r.URL.Query())

		result, err := h.workflow.List(r.Context(), user, filters, page)
		if err != nil {
			respondWorkflowError(w, initTime, err, "")
			return
		}

		common.RespondSuccess(w, initTime, "", result)
	}
}

// ShowPirep handles GET /api/v1/pireps/{id}
func (h *Handlers) ShowPirep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := h.workflow.View(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWorkflowError(w, initTime, err, redirectList)
			return
		}

		common.RespondSuccess(w, initTime, "", view)
	}
}

// FaresForm handles GET /api/v1/pireps/fares?aircraft_id=
func (h *Handlers) FaresForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		aircraftID := strings.TrimSpace(r.URL.Query().Get("aircraft_id"))
		if aircraftID == "" {
			common.RespondError(w, initTime, constants.MsgValidationFailed, dtos.ErrorData{
				Code:   constants.ErrCodeValidation,
				Fields: map[string]string{"aircraft_id": "aircraft id is required"},
			}, http.StatusUnprocessableEntity)
			return
		}

		data, err := h.workflow.FaresForm(r.Context(), aircraftID)
		if err != nil {
			respondWorkflowError(w, initTime, err, "")
			return
		}

		common.RespondSuccess(w, initTime, "", data)
	}
}

// CreateForm handles GET /api/v1/pireps/create
func (h *Handlers) CreateForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user := auth.GetUser(r.Context())
		if user == nil {
			common.RespondError(w, initTime, constants.MsgUnauthorized, nil, http.StatusUnauthorized)
			return
		}

		settings, err := h.settings.PirepSettings(r.Context())
		if err != nil {
			respondWorkflowError(w, initTime, err, "")
			return
		}

		data, err := h.workflow.CreateForm(r.Context(), user, settings)
		if err != nil {
			respondWorkflowError(w, initTime, err, "")
			return
		}

		common.RespondSuccess(w, initTime, "", data)
	}
}

// SubmitPirep handles POST /api/v1/pireps
func (h *Handlers) SubmitPirep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user := auth.GetUser(r.Context())
		if user == nil {
			common.RespondError(w, initTime, constants.MsgUnauthorized, nil, http.StatusUnauthorized)
			return
		}

		values, err := common.ReadFormValues(w, r)
		if err != nil {
			common.RespondError(w, initTime, "Invalid request body", dtos.ErrorData{
				Code:     constants.ErrCodeValidation,
				Redirect: redirectCreate,
			}, http.StatusBadRequest)
			return
		}

		settings, err := h.settings.PirepSettings(r.Context())
		if err != nil {
			respondWorkflowError(w, initTime, err, redirectCreate)
			return
		}

		result, err := h.workflow.Submit(r.Context(), user, dtos.NewPirepForm(values), settings)
		if err != nil {
			respondWorkflowError(w, initTime, err, redirectCreate)
			return
		}

		w.Header().Set("Location", showRedirect(result.PirepID))
		common.RespondSuccess(w, initTime, result.Message, result, http.StatusCreated)
	}
}

// EditForm handles GET /api/v1/pireps/{id}/edit
func (h *Handlers) EditForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		data, err := h.workflow.EditForm(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWorkflowError(w, initTime, err, redirectList)
			return
		}

		common.RespondSuccess(w, initTime, "", data)
	}
}

// UpdatePirep handles PUT/PATCH /api/v1/pireps/{id}
func (h *Handlers) UpdatePirep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		id := chi.URLParam(r, "id")

		values, err := common.ReadFormValues(w, r)
		if err != nil {
			common.RespondError(w, initTime, "Invalid request body", dtos.ErrorData{
				Code:     constants.ErrCodeValidation,
				Redirect: editRedirect(id),
			}, http.StatusBadRequest)
			return
		}

		result, err := h.workflow.Update(r.Context(), id, dtos.NewPirepForm(values))
		if err != nil {
			redirect := editRedirect(id)
			if errorStatus(err) == http.StatusNotFound {
				redirect = redirectList
			}
			respondWorkflowError(w, initTime, err, redirect)
			return
		}

		common.RespondSuccess(w, initTime, result.Message, result)
	}
}
