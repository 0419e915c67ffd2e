package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/models"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
	"infinite-experiment/crewcenter/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, kind error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	pe, ok := models.AsPirepError(err)
	require.True(t, ok, "expected a PirepError, got %T", err)
	assert.Equal(t, code, pe.Code)
}

func TestSubmit_FilesReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	result, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)
	require.NotEmpty(t, result.PirepID)
	assert.Equal(t, constants.MsgPirepFiled, result.Message)

	pirep, err := env.pireps.FindByID(ctx, result.PirepID)
	require.NoError(t, err)
	require.NotNil(t, pirep)

	assert.Equal(t, env.fx.User.ID, pirep.UserID)
	assert.Equal(t, constants.PirepStatePending, pirep.State)
	assert.Equal(t, constants.PirepSourceManual, pirep.Source)
	assert.Equal(t, 90, pirep.FlightTime)
	assert.InDelta(t, 162, pirep.Distance, 10)
	require.NotNil(t, pirep.SubmittedAt)
	assert.True(t, pirep.SubmittedAt.After(before))
}

func TestSubmit_SavesOnlyFilledCustomFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.workflow.Submit(ctx, &env.fx.User, env.form(map[string]string{"fuel-used": "  "}), strictSettings())
	require.NoError(t, err)

	values, err := env.fields.ValuesForPirep(ctx, result.PirepID)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "remarks", values[0].Slug)
	assert.Equal(t, "Remarks", values[0].Name)
	assert.Equal(t, "smooth", values[0].Value)
	assert.Equal(t, constants.PirepSourceManual, values[0].Source)
}

func TestSubmit_SavesEveryFareOfTheSubfleet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	counts, err := env.fareSvc.FareCounts(ctx, result.PirepID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		env.fx.Economy.ID:  5,
		env.fx.Business.ID: 0,
	}, counts)
}

func TestSubmit_Eligibility(t *testing.T) {
	tests := []struct {
		name      string
		overrides func(env *testEnv) map[string]string
		settings  dtos.PirepSettings
		code      string
	}{
		{
			name: "pilot not at departure airport",
			overrides: func(env *testEnv) map[string]string {
				return map[string]string{"dpt_airport_id": "KBOS", "arr_airport_id": "KJFK"}
			},
			settings: strictSettings(),
			code:     constants.ErrCodeNotAtDepartureAirport,
		},
		{
			name: "rank may not fly the subfleet",
			overrides: func(env *testEnv) map[string]string {
				return map[string]string{"aircraft_id": env.fx.B777.ID}
			},
			settings: strictSettings(),
			code:     constants.ErrCodeAircraftNotAllowed,
		},
		{
			name: "aircraft parked elsewhere",
			overrides: func(env *testEnv) map[string]string {
				return map[string]string{"aircraft_id": env.fx.B777.ID}
			},
			settings: dtos.PirepSettings{
				OnlyFlightsFromCurrent:   true,
				OnlyAircraftAtDptAirport: true,
				DuplicateWindow:          defaultDuplicateWindow,
			},
			code: constants.ErrCodeAircraftNotAtDeparture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.workflow.Submit(context.Background(), &env.fx.User, env.form(tt.overrides(env)), tt.settings)
			requireCode(t, err, models.ErrEligibility, tt.code)
			assert.Zero(t, env.countPireps(t))
		})
	}
}

func TestSubmit_TogglesOffAllowAnyAircraftAnywhere(t *testing.T) {
	env := newTestEnv(t)

	form := env.form(map[string]string{
		"aircraft_id":    env.fx.B777.ID,
		"dpt_airport_id": "EGLL",
		"arr_airport_id": "KBOS",
	})
	settings := dtos.PirepSettings{DuplicateWindow: defaultDuplicateWindow}

	_, err := env.workflow.Submit(context.Background(), &env.fx.User, form, settings)
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.countPireps(t))
}

func TestSubmit_RejectsDuplicateWithinWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	_, err = env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	requireCode(t, err, models.ErrDuplicate, constants.ErrCodePirepDuplicate)
	assert.Equal(t, int64(1), env.countPireps(t))

	// a different flight number is a different filing
	_, err = env.workflow.Submit(ctx, &env.fx.User, env.form(map[string]string{"flight_number": "101"}), strictSettings())
	require.NoError(t, err)
	assert.Equal(t, int64(2), env.countPireps(t))
}

func TestSubmit_DuplicateWindowExpires(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	env.pirepSvc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	_, err = env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)
	assert.Equal(t, int64(2), env.countPireps(t))
}

func TestSubmit_CancelledReportIsNotADuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&gormModels.Pirep{ID: first.PirepID}).
		Update("state", constants.PirepStateCancelled).Error)

	_, err = env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)
}

func TestSubmit_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	form := env.form(map[string]string{
		"flight_number":  "",
		"minutes":        "75",
		"hours":          "abc",
		"arr_airport_id": "ZZZZ",
	})

	_, err := env.workflow.Submit(ctx, &env.fx.User, form, strictSettings())
	requireCode(t, err, models.ErrValidation, constants.ErrCodeValidation)

	pe, _ := models.AsPirepError(err)
	assert.Contains(t, pe.Fields, "flight_number")
	assert.Contains(t, pe.Fields, "minutes")
	assert.Equal(t, "hours must be a whole number", pe.Fields["hours"])
	assert.Equal(t, "airport ZZZZ does not exist", pe.Fields["arr_airport_id"])
	assert.NotContains(t, pe.Fields, "dpt_airport_id")
	assert.Zero(t, env.countPireps(t))
}

func TestSubmit_HoursUpperBound(t *testing.T) {
	tests := []struct {
		name        string
		hours       string
		wantErr     bool
		wantMinutes int
	}{
		{name: "largest accepted", hours: "99999", wantMinutes: 99999*60 + 10},
		{name: "one above the bound", hours: "100000", wantErr: true},
		{name: "overflows int when converted", hours: "153722867280912931", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			result, err := env.workflow.Submit(ctx, &env.fx.User,
				env.form(map[string]string{"hours": tt.hours, "minutes": "10"}), strictSettings())

			if tt.wantErr {
				requireCode(t, err, models.ErrValidation, constants.ErrCodeValidation)
				pe, _ := models.AsPirepError(err)
				assert.Equal(t, "hours may not be greater than 99999", pe.Fields["hours"])
				assert.Zero(t, env.countPireps(t))
				return
			}

			require.NoError(t, err)
			pirep, err := env.pireps.FindByID(ctx, result.PirepID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMinutes, pirep.FlightTime)
		})
	}
}

func TestSubmit_UnknownAircraft(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workflow.Submit(context.Background(), &env.fx.User,
		env.form(map[string]string{"aircraft_id": "does-not-exist"}), strictSettings())
	requireCode(t, err, models.ErrValidation, constants.ErrCodeValidation)

	pe, _ := models.AsPirepError(err)
	assert.Contains(t, pe.Fields, "aircraft_id")
}

func TestSubmit_RequiredCustomField(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Model(&env.fx.FuelUsed).Update("required", true).Error)

	_, err := env.workflow.Submit(context.Background(), &env.fx.User, env.form(nil), strictSettings())
	requireCode(t, err, models.ErrValidation, constants.ErrCodeValidation)

	pe, _ := models.AsPirepError(err)
	assert.Equal(t, "Fuel Used is required", pe.Fields["fuel-used"])
}

func TestSubmit_StoresRoutePoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.Navaid(t, env.db, "MERIT", 41.38, -73.13)

	result, err := env.workflow.Submit(ctx, &env.fx.User,
		env.form(map[string]string{"route": "KJFK DCT MERIT DCT KBOS"}), strictSettings())
	require.NoError(t, err)

	points, err := env.acars.RouteForPirep(ctx, result.PirepID)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "MERIT", points[0].Name)
	assert.Equal(t, constants.AcarsTypeRoute, points[0].Type)
}

func TestUpdate_AppliesEdit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	filed, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	values := env.formValues(map[string]string{
		"hours":     "2",
		"minutes":   "5",
		"notes":     "diverted",
		"remarks":   "",
		"fuel-used": "1200",
	})
	values[dtos.FareInput(env.fx.Economy.ID)] = ""
	values[dtos.FareInput(env.fx.Business.ID)] = "3"

	result, err := env.workflow.Update(ctx, filed.PirepID, dtos.NewPirepForm(values))
	require.NoError(t, err)
	assert.Equal(t, constants.MsgPirepUpdated, result.Message)
	assert.Equal(t, filed.PirepID, result.PirepID)

	pirep, err := env.pireps.FindByID(ctx, filed.PirepID)
	require.NoError(t, err)
	assert.Equal(t, 125, pirep.FlightTime)
	assert.Equal(t, "diverted", pirep.Notes)
	assert.Equal(t, constants.PirepStatePending, pirep.State)

	require.Len(t, pirep.Fields, 1)
	assert.Equal(t, "fuel-used", pirep.Fields[0].Slug)
	assert.Equal(t, "1200", pirep.Fields[0].Value)

	counts, err := env.fareSvc.FareCounts(ctx, filed.PirepID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		env.fx.Economy.ID:  0,
		env.fx.Business.ID: 3,
	}, counts)
}

func TestUpdate_RecomputesRouteOnlyWhenChanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.Navaid(t, env.db, "MERIT", 41.38, -73.13)
	testutil.Navaid(t, env.db, "PUT", 41.96, -71.81)

	filed, err := env.workflow.Submit(ctx, &env.fx.User,
		env.form(map[string]string{"route": "MERIT"}), strictSettings())
	require.NoError(t, err)

	original, err := env.acars.RouteForPirep(ctx, filed.PirepID)
	require.NoError(t, err)
	require.Len(t, original, 1)

	// same route text: stored points are left alone
	_, err = env.workflow.Update(ctx, filed.PirepID, env.form(map[string]string{"route": "MERIT", "notes": "x"}))
	require.NoError(t, err)

	unchanged, err := env.acars.RouteForPirep(ctx, filed.PirepID)
	require.NoError(t, err)
	require.Len(t, unchanged, 1)
	assert.Equal(t, original[0].ID, unchanged[0].ID)

	_, err = env.workflow.Update(ctx, filed.PirepID, env.form(map[string]string{"route": "MERIT PUT"}))
	require.NoError(t, err)

	changed, err := env.acars.RouteForPirep(ctx, filed.PirepID)
	require.NoError(t, err)
	require.Len(t, changed, 2)
	assert.Equal(t, "MERIT", changed[0].Name)
	assert.Equal(t, "PUT", changed[1].Name)
	assert.NotEqual(t, original[0].ID, changed[0].ID)
}

func TestUpdate_RecomputesDistanceWhenAirportsChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	filed, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	_, err = env.workflow.Update(ctx, filed.PirepID, env.form(map[string]string{"arr_airport_id": "EGLL"}))
	require.NoError(t, err)

	pirep, err := env.pireps.FindByID(ctx, filed.PirepID)
	require.NoError(t, err)
	assert.Equal(t, "EGLL", pirep.ArrAirportID)
	assert.Greater(t, pirep.Distance, 2900.0)
}

func TestUpdate_SkipsEligibilityChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	filed, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	_, err = env.workflow.Update(ctx, filed.PirepID, env.form(map[string]string{"aircraft_id": env.fx.B777.ID}))
	require.NoError(t, err)
}

func TestUpdate_ValidationFailureLeavesReportUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	filed, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	_, err = env.workflow.Update(ctx, filed.PirepID, env.form(map[string]string{"flight_number": "", "notes": "changed"}))
	requireCode(t, err, models.ErrValidation, constants.ErrCodeValidation)

	pirep, err := env.pireps.FindByID(ctx, filed.PirepID)
	require.NoError(t, err)
	assert.Equal(t, "100", pirep.FlightNumber)
	assert.Empty(t, pirep.Notes)
}

func TestWorkflow_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.workflow.View(ctx, "missing")
	requireCode(t, err, models.ErrNotFound, constants.ErrCodePirepNotFound)

	_, err = env.workflow.EditForm(ctx, "missing")
	requireCode(t, err, models.ErrNotFound, constants.ErrCodePirepNotFound)

	_, err = env.workflow.Update(ctx, "missing", env.form(nil))
	requireCode(t, err, models.ErrNotFound, constants.ErrCodePirepNotFound)

	_, err = env.workflow.FaresForm(ctx, "missing")
	requireCode(t, err, models.ErrNotFound, constants.ErrCodeAircraftNotFound)
}

func TestEditForm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	filed, err := env.workflow.Submit(ctx, &env.fx.User, env.form(nil), strictSettings())
	require.NoError(t, err)

	data, err := env.workflow.EditForm(ctx, filed.PirepID)
	require.NoError(t, err)

	assert.Equal(t, 1, data.FlightTime.Hours)
	assert.Equal(t, 30, data.FlightTime.Minutes)
	assert.Equal(t, map[string]string{"remarks": "smooth"}, data.FieldValues)
	assert.Equal(t, 5, data.FareCounts[env.fx.Economy.ID])
	assert.Equal(t, 0, data.FareCounts[env.fx.Business.ID])
	require.NotNil(t, data.Aircraft)
	assert.Equal(t, env.fx.A320.ID, data.Aircraft.ID)

	// every subfleet, no blank entries
	require.Len(t, data.ReferenceData.Aircraft, 2)
	assert.NotEmpty(t, data.Airlines[0].Value)
	assert.Len(t, data.Airports, 3)
	assert.Len(t, data.PirepFields, 2)
}

func TestCreateForm_RestrictsAircraftToRank(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	data, err := env.workflow.CreateForm(ctx, &env.fx.User, strictSettings())
	require.NoError(t, err)

	// blank entry plus the narrowbody subfleet
	require.Len(t, data.ReferenceData.Aircraft, 2)
	assert.Equal(t, dtos.SelectOption{}, data.ReferenceData.Aircraft[0].Aircraft[0])
	assert.Equal(t, "Narrowbody", data.ReferenceData.Aircraft[1].Subfleet)
	assert.Equal(t, env.fx.A320.ID, data.ReferenceData.Aircraft[1].Aircraft[0].Value)

	assert.Equal(t, dtos.SelectOption{}, data.Airlines[0])
	assert.Len(t, data.Airlines, 2)
	assert.Len(t, data.Airports, 4)
	assert.False(t, data.ReadOnly)

	open, err := env.workflow.CreateForm(ctx, &env.fx.User, dtos.PirepSettings{})
	require.NoError(t, err)
	assert.Len(t, open.ReferenceData.Aircraft, 3)
}

func TestFaresForm(t *testing.T) {
	env := newTestEnv(t)

	data, err := env.workflow.FaresForm(context.Background(), env.fx.A320.ID)
	require.NoError(t, err)
	assert.Equal(t, env.fx.A320.ID, data.Aircraft.ID)
	require.Len(t, data.Fares, 2)
	assert.Equal(t, "J", data.Fares[0].Code)
	assert.Equal(t, "Y", data.Fares[1].Code)

	empty, err := env.workflow.FaresForm(context.Background(), env.fx.B777.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Fares)
}

func TestView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.Navaid(t, env.db, "MERIT", 41.38, -73.13)

	filed, err := env.workflow.Submit(ctx, &env.fx.User,
		env.form(map[string]string{"route": "MERIT"}), strictSettings())
	require.NoError(t, err)

	view, err := env.workflow.View(ctx, filed.PirepID)
	require.NoError(t, err)
	assert.Equal(t, filed.PirepID, view.Pirep.ID)
	assert.Equal(t, 90, view.FlightTime.TotalMinutes())
	require.NotNil(t, view.MapFeatures)
	assert.Contains(t, string(view.MapFeatures.PlannedRoutePoints), "MERIT")
	assert.Contains(t, string(view.MapFeatures.PlannedRouteLine), "LineString")
}

func TestList_ExcludesCancelledAndPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var ids []string
	for _, number := range []string{"1", "2", "3"} {
		r, err := env.workflow.Submit(ctx, &env.fx.User,
			env.form(map[string]string{"flight_number": number}), strictSettings())
		require.NoError(t, err)
		ids = append(ids, r.PirepID)
	}
	require.NoError(t, env.db.Model(&gormModels.Pirep{ID: ids[0]}).
		Update("state", constants.PirepStateCancelled).Error)

	page, err := env.workflow.List(ctx, &env.fx.User, dtos.PirepFilters{}, dtos.PageRequest{Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Items, 1)

	all, err := env.workflow.List(ctx, &env.fx.User, dtos.PirepFilters{}, dtos.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultPerPage, all.PerPage)
	require.Len(t, all.Items, 2)
	for _, p := range all.Items {
		assert.NotEqual(t, ids[0], p.ID)
	}
}
