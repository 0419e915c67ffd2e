package ui

import (
	"net/http"
	"strconv"
	"strings"

	"infinite-experiment/crewcenter/internal/auth"
	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// IndexHandler handles GET /pireps
func (h *PirepUIHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	filters, page := common.ParseListQuery(r.URL.Query())

	result, err := h.workflow.List(r.Context(), user, filters, page)
	if err != nil {
		h.failWith(w, r, "/", err)
		return
	}

	data := h.pageData(r, "My PIREPs")
	data["Page"] = result
	data["Filters"] = filters
	_ = RenderTemplate(w, "pireps/index.html", data)
}

// ShowHandler handles GET /pireps/{id}
func (h *PirepUIHandler) ShowHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.workflow.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failWith(w, r, "/pireps", err)
		return
	}

	data := h.pageData(r, "PIREP "+view.Pirep.FlightNumber)
	data["View"] = view
	if view.MapFeatures != nil {
		data["MapPoints"] = string(view.MapFeatures.PlannedRoutePoints)
		data["MapLine"] = string(view.MapFeatures.PlannedRouteLine)
	}
	_ = RenderTemplate(w, "pireps/show.html", data)
}

// FaresHandler handles GET /pireps/fares?aircraft_id=, returning the fare inputs fragment
func (h *PirepUIHandler) FaresHandler(w http.ResponseWriter, r *http.Request) {
	aircraftID := strings.TrimSpace(r.URL.Query().Get("aircraft_id"))

	form, err := h.workflow.FaresForm(r.Context(), aircraftID)
	if err != nil {
		if isNotFound(err) {
			http.Error(w, constants.MsgAircraftNotFound, http.StatusNotFound)
			return
		}
		http.Error(w, constants.MsgInternal, http.StatusInternalServerError)
		return
	}

	_ = RenderPartial(w, "pireps/fares.html", map[string]interface{}{
		"Fares":      form.Fares,
		"ReadOnly":   form.ReadOnly,
		"FareCounts": map[string]int{},
	})
}

// CreateHandler handles GET /pireps/create
func (h *PirepUIHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())

	settings, err := h.settings.PirepSettings(r.Context())
	if err != nil {
		h.failWith(w, r, "/pireps", err)
		return
	}

	form, err := h.workflow.CreateForm(r.Context(), user, settings)
	if err != nil {
		h.failWith(w, r, "/pireps", err)
		return
	}

	data := h.pageData(r, "File PIREP")
	data["Form"] = form
	data["Action"] = "/pireps"
	data["Submit"] = "File PIREP"
	data["Current"] = map[string]string{}
	_ = RenderTemplate(w, "pireps/create.html", data)
}

// StoreHandler handles POST /pireps
func (h *PirepUIHandler) StoreHandler(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())

	values, err := common.ReadFormValues(w, r)
	if err != nil {
		h.redirectWith(w, r, "/pireps/create", common.FlashError, "Invalid form submission")
		return
	}

	settings, err := h.settings.PirepSettings(r.Context())
	if err != nil {
		h.failWith(w, r, "/pireps/create", err)
		return
	}

	result, err := h.workflow.Submit(r.Context(), user, dtos.NewPirepForm(values), settings)
	if err != nil {
		h.failWith(w, r, "/pireps/create", err)
		return
	}

	h.redirectWith(w, r, "/pireps/"+result.PirepID, common.FlashSuccess, result.Message)
}

// EditHandler handles GET /pireps/{id}/edit
func (h *PirepUIHandler) EditHandler(w http.ResponseWriter, r *http.Request) {
	form, err := h.workflow.EditForm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failWith(w, r, "/pireps", err)
		return
	}

	pirep := form.Pirep
	data := h.pageData(r, "Edit PIREP")
	data["Form"] = form
	data["Action"] = "/pireps/" + pirep.ID
	data["Method"] = http.MethodPut
	data["Submit"] = "Save"
	data["Current"] = map[string]string{
		"airline_id":     pirep.AirlineID,
		"flight_number":  pirep.FlightNumber,
		"aircraft_id":    pirep.AircraftID,
		"dpt_airport_id": pirep.DptAirportID,
		"arr_airport_id": pirep.ArrAirportID,
		"route":          pirep.Route,
		"notes":          pirep.Notes,
		"hours":          strconv.Itoa(form.FlightTime.Hours),
		"minutes":        strconv.Itoa(form.FlightTime.Minutes),
	}
	if form.Aircraft != nil && form.Aircraft.Subfleet != nil {
		data["Fares"] = form.Aircraft.Subfleet.Fares
		data["FareCounts"] = form.FareCounts
	}
	_ = RenderTemplate(w, "pireps/edit.html", data)
}

// UpdateHandler handles PUT/PATCH /pireps/{id}
func (h *PirepUIHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	values, err := common.ReadFormValues(w, r)
	if err != nil {
		h.redirectWith(w, r, "/pireps/"+id+"/edit", common.FlashError, "Invalid form submission")
		return
	}
	delete(values, "_method")

	result, err := h.workflow.Update(r.Context(), id, dtos.NewPirepForm(values))
	if err != nil {
		if isNotFound(err) {
			h.failWith(w, r, "/pireps", err)
			return
		}
		h.failWith(w, r, "/pireps/"+id+"/edit", err)
		return
	}

	h.redirectWith(w, r, "/pireps/"+result.PirepID, common.FlashSuccess, result.Message)
}
