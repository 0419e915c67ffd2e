package ui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"infinite-experiment/crewcenter/internal/auth"
	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/models"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
	"infinite-experiment/crewcenter/internal/testutil"
	"infinite-experiment/crewcenter/internal/units"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logging.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

const testSession = "session-1"

var testUser = &gormModels.User{ID: "u1", Name: "Test Pilot", IsActive: true}

func setupUI(wf *testutil.MockWorkflow) (http.Handler, *common.FlashStore) {
	flash := common.NewFlashStore(common.NewCacheService(60, 60))
	h := NewPirepUIHandler(wf, testutil.StaticSettings{Settings: dtos.PirepSettings{RestrictAircraftToRank: true}}, flash)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.SetUser(r.Context(), testUser)
			ctx = auth.SetSessionID(ctx, testSession)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Get("/pireps", h.IndexHandler)
	r.Get("/pireps/fares", h.FaresHandler)
	r.Get("/pireps/create", h.CreateHandler)
	r.Post("/pireps", h.StoreHandler)
	r.Get("/pireps/{id}", h.ShowHandler)
	r.Get("/pireps/{id}/edit", h.EditHandler)
	r.Put("/pireps/{id}", h.UpdateHandler)
	return r, flash
}

func postForm(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sampleReference() dtos.ReferenceData {
	return dtos.ReferenceData{
		Airlines: []dtos.SelectOption{{Value: "a1", Label: "Virtual Air"}},
		Aircraft: []dtos.AircraftGroup{{
			Subfleet: "Narrowbody",
			Aircraft: []dtos.SelectOption{{Value: "ac1", Label: "Airbus A320 - N320VM"}},
		}},
		Airports:    []dtos.SelectOption{{Value: "KJFK", Label: "KJFK - John F Kennedy Intl"}},
		PirepFields: []gormModels.PirepField{{Name: "Remarks", Slug: "remarks"}},
	}
}

func TestStoreHandler_RedirectsToReport(t *testing.T) {
	wf := new(testutil.MockWorkflow)
	wf.On("Submit", mock.Anything, testUser, mock.MatchedBy(func(f dtos.PirepForm) bool {
		return f.FlightNumber == "100"
	}), mock.Anything).Return(&dtos.SubmitResult{PirepID: "p1", Message: constants.MsgPirepFiled}, nil)

	router, flash := setupUI(wf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm(http.MethodPost, "/pireps", url.Values{"flight_number": {"100"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pireps/p1", rec.Header().Get("Location"))
	assert.Equal(t, []common.Flash{{Level: common.FlashSuccess, Message: constants.MsgPirepFiled}}, flash.Pop(testSession))
}

func TestStoreHandler_FlashesRejection(t *testing.T) {
	pe := models.NewPirepError(models.ErrValidation, constants.ErrCodeValidation, constants.MsgValidationFailed)
	pe.Fields = map[string]string{
		"minutes":       "minutes must be less than 60",
		"flight_number": "flight number is required",
	}

	wf := new(testutil.MockWorkflow)
	wf.On("Submit", mock.Anything, testUser, mock.Anything, mock.Anything).Return(nil, pe)

	router, flash := setupUI(wf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm(http.MethodPost, "/pireps", url.Values{"minutes": {"75"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pireps/create", rec.Header().Get("Location"))

	flashes := flash.Pop(testSession)
	require.Len(t, flashes, 3)
	assert.Equal(t, constants.MsgValidationFailed, flashes[0].Message)
	assert.Equal(t, "flight number is required", flashes[1].Message)
	assert.Equal(t, "minutes must be less than 60", flashes[2].Message)
}

func TestStoreHandler_EligibilityMessage(t *testing.T) {
	wf := new(testutil.MockWorkflow)
	wf.On("Submit", mock.Anything, testUser, mock.Anything, mock.Anything).Return(nil,
		models.NewPirepError(models.ErrEligibility, constants.ErrCodeNotAtDepartureAirport, constants.MsgNotAtDepartureAirport))

	router, flash := setupUI(wf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm(http.MethodPost, "/pireps", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []common.Flash{{Level: common.FlashError, Message: constants.MsgNotAtDepartureAirport}}, flash.Pop(testSession))
}

func TestUpdateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		wf := new(testutil.MockWorkflow)
		wf.On("Update", mock.Anything, "p1", mock.MatchedBy(func(f dtos.PirepForm) bool {
			_, hasMethod := f.Raw["_method"]
			return f.Notes == "late" && !hasMethod
		})).Return(&dtos.SubmitResult{PirepID: "p1", Message: constants.MsgPirepUpdated}, nil)

		router, flash := setupUI(wf)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm(http.MethodPut, "/pireps/p1", url.Values{"_method": {"PUT"}, "notes": {"late"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/pireps/p1", rec.Header().Get("Location"))
		assert.Equal(t, constants.MsgPirepUpdated, flash.Pop(testSession)[0].Message)
		wf.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		wf := new(testutil.MockWorkflow)
		wf.On("Update", mock.Anything, "gone", mock.Anything).Return(nil,
			models.NewPirepError(models.ErrNotFound, constants.ErrCodePirepNotFound, constants.MsgPirepNotFound))

		router, flash := setupUI(wf)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm(http.MethodPut, "/pireps/gone", url.Values{}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/pireps", rec.Header().Get("Location"))
		assert.Equal(t, constants.MsgPirepNotFound, flash.Pop(testSession)[0].Message)
	})

	t.Run("internal error", func(t *testing.T) {
		wf := new(testutil.MockWorkflow)
		wf.On("Update", mock.Anything, "p1", mock.Anything).Return(nil, errors.New("db down"))

		router, flash := setupUI(wf)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, postForm(http.MethodPut, "/pireps/p1", url.Values{}))

		assert.Equal(t, "/pireps/p1/edit", rec.Header().Get("Location"))
		assert.Equal(t, constants.MsgInternal, flash.Pop(testSession)[0].Message)
	})
}

func TestShowHandler_NotFoundRedirects(t *testing.T) {
	wf := new(testutil.MockWorkflow)
	wf.On("View", mock.Anything, "gone").Return(nil,
		models.NewPirepError(models.ErrNotFound, constants.ErrCodePirepNotFound, constants.MsgPirepNotFound))

	router, flash := setupUI(wf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pireps/gone", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pireps", rec.Header().Get("Location"))
	assert.Equal(t, constants.MsgPirepNotFound, flash.Pop(testSession)[0].Message)
}

func TestShowHandler_Renders(t *testing.T) {
	wf := new(testutil.MockWorkflow)
	wf.On("View", mock.Anything, "p1").Return(&dtos.PirepView{
		Pirep: &gormModels.Pirep{
			ID:           "p1",
			FlightNumber: "100",
			DptAirportID: "KJFK",
			ArrAirportID: "KBOS",
			State:        constants.PirepStatePending,
			Airline:      &gormModels.Airline{ICAO: "VMS"},
			Fields:       []gormModels.PirepFieldValue{{Name: "Remarks", Value: "smooth"}},
		},
		FlightTime: units.FlightTimeFromMinutes(90),
		MapFeatures: &dtos.MapFeatures{
			PlannedRoutePoints: []byte(`{"type":"FeatureCollection","features":[]}`),
			PlannedRouteLine:   []byte(`{"type":"FeatureCollection","features":[]}`),
		},
	}, nil)

	router, flash := setupUI(wf)
	flash.Put(testSession, common.FlashSuccess, constants.MsgPirepFiled)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pireps/p1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "VMS100")
	assert.Contains(t, body, "1h 30m")
	assert.Contains(t, body, "Pending")
	assert.Contains(t, body, "smooth")
	assert.Contains(t, body, constants.MsgPirepFiled)
	// flashes are shown once
	assert.Nil(t, flash.Pop(testSession))
}

func TestCreateHandler_Renders(t *testing.T) {
	wf := new(testutil.MockWorkflow)
	wf.On("CreateForm", mock.Anything, testUser, dtos.PirepSettings{RestrictAircraftToRank: true}).Return(&dtos.CreateFormData{
		ReferenceData: sampleReference(),
		FieldValues:   map[string]string{},
	}, nil)

	router, _ := setupUI(wf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pireps/create", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/pireps"`)
	assert.Contains(t, body, "Airbus A320 - N320VM")
	assert.Contains(t, body, `name="remarks"`)
	assert.NotContains(t, body, `name="_method"`)
}

func TestEditHandler_Renders(t *testing.T) {
	fare := gormModels.Fare{ID: "f1", Code: "Y", Name: "Economy"}
	aircraft := &gormModels.Aircraft{
		ID:       "ac1",
		Subfleet: &gormModels.Subfleet{Name: "Narrowbody", Fares: []gormModels.Fare{fare}},
	}

	wf := new(testutil.MockWorkflow)
	wf.On("EditForm", mock.Anything, "p1").Return(&dtos.EditFormData{
		ReferenceData: sampleReference(),
		Pirep:         &gormModels.Pirep{ID: "p1", FlightNumber: "100", AircraftID: "ac1", Route: "MERIT"},
		Aircraft:      aircraft,
		FlightTime:    units.FlightTimeFromMinutes(125),
		FieldValues:   map[string]string{"remarks": "smooth"},
		FareCounts:    map[string]int{"f1": 7},
	}, nil)

	router, _ := setupUI(wf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pireps/p1/edit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/pireps/p1"`)
	assert.Contains(t, body, `name="_method" value="PUT"`)
	assert.Contains(t, body, `name="fare_f1" value="7"`)
	assert.Contains(t, body, `value="smooth"`)
	assert.Contains(t, body, `name="hours" min="0" max="99999" value="2"`)
	assert.Contains(t, body, ">MERIT</textarea>")
}

func TestFaresHandler(t *testing.T) {
	wf := new(testutil.MockWorkflow)
	wf.On("FaresForm", mock.Anything, "ac1").Return(&dtos.FaresFormData{
		Fares: []gormModels.Fare{{ID: "f1", Code: "Y", Name: "Economy"}},
	}, nil)
	wf.On("FaresForm", mock.Anything, "gone").Return(nil,
		models.NewPirepError(models.ErrNotFound, constants.ErrCodeAircraftNotFound, constants.MsgAircraftNotFound))

	router, _ := setupUI(wf)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pireps/fares?aircraft_id=ac1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="fare_f1" value="0"`)
	assert.NotContains(t, rec.Body.String(), "<html")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pireps/fares?aircraft_id=gone", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexHandler_Renders(t *testing.T) {
	wf := new(testutil.MockWorkflow)
	wf.On("List", mock.Anything, testUser, dtos.PirepFilters{}, dtos.PageRequest{Page: 1, PerPage: constants.DefaultPerPage}).
		Return(&dtos.PirepPage{
			Items: []gormModels.Pirep{{
				ID:           "p1",
				FlightNumber: "100",
				FlightTime:   65,
				State:        constants.PirepStateAccepted,
			}},
			Page:     1,
			PerPage:  constants.DefaultPerPage,
			Total:    1,
			LastPage: 1,
		}, nil)

	router, _ := setupUI(wf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pireps", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/pireps/p1/edit"`)
	assert.Contains(t, body, "1h 05m")
	assert.Contains(t, body, "Accepted")
	assert.Contains(t, body, "Page 1 of 1")
}
