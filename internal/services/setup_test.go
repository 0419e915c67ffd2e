package services

import (
	"os"
	"testing"

	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/metrics"
	"infinite-experiment/crewcenter/internal/models/dtos"
	"infinite-experiment/crewcenter/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logging.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

type testEnv struct {
	db       *gorm.DB
	fx       *testutil.Fixtures
	pirepSvc *PirepService
	fareSvc  *FareService
	userSvc  *UserService
	geoSvc   *GeoService
	workflow *PirepWorkflow
	pireps   *repositories.PirepRepository
	acars    *repositories.AcarsRepository
	fields   *repositories.PirepFieldRepository
	fares    *repositories.FareRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, sx := testutil.NewTestDB(t)
	fx := testutil.Seed(t, gdb)

	pirepRepo := repositories.NewPirepRepository(gdb)
	fieldRepo := repositories.NewPirepFieldRepository(gdb)
	fareRepo := repositories.NewFareRepository(gdb)
	fleetRepo := repositories.NewFleetRepository(gdb)
	refRepo := repositories.NewReferenceRepository(gdb)
	acarsRepo := repositories.NewAcarsRepository(gdb)
	userRepo := repositories.NewUserRepository(gdb)

	geoSvc := NewGeoService(refRepo, acarsRepo)
	pirepSvc := NewPirepService(pirepRepo, repositories.NewPirepDuplicateRepo(sx), fieldRepo, refRepo, acarsRepo, geoSvc)
	fareSvc := NewFareService(fareRepo, fleetRepo)
	userSvc := NewUserService(userRepo, fleetRepo)

	workflow := NewPirepWorkflow(
		pirepSvc, fareSvc, userSvc, geoSvc, refRepo, fleetRepo,
		NewPirepValidator(refRepo),
		metrics.NewMetricsRegistry(prometheus.NewRegistry()),
	)

	return &testEnv{
		db:       gdb,
		fx:       fx,
		pirepSvc: pirepSvc,
		fareSvc:  fareSvc,
		userSvc:  userSvc,
		geoSvc:   geoSvc,
		workflow: workflow,
		pireps:   pirepRepo,
		acars:    acarsRepo,
		fields:   fieldRepo,
		fares:    fareRepo,
	}
}

// strictSettings turns on every eligibility toggle
func strictSettings() dtos.PirepSettings {
	return dtos.PirepSettings{
		OnlyFlightsFromCurrent:   true,
		RestrictAircraftToRank:   true,
		OnlyAircraftAtDptAirport: true,
		DuplicateWindow:          defaultDuplicateWindow,
	}
}

// formValues is a valid A320 KJFK-KBOS filing; overrides replace or add keys
func (e *testEnv) formValues(overrides map[string]string) map[string]string {
	values := map[string]string{
		"airline_id":     e.fx.Airline.ID,
		"flight_number":  "100",
		"aircraft_id":    e.fx.A320.ID,
		"dpt_airport_id": "KJFK",
		"arr_airport_id": "KBOS",
		"route":          "",
		"hours":          "1",
		"minutes":        "30",
		"notes":          "",
		"remarks":        "smooth",
	}
	values[dtos.FareInput(e.fx.Economy.ID)] = "5"
	values[dtos.FareInput(e.fx.Business.ID)] = ""
	for k, v := range overrides {
		values[k] = v
	}
	return values
}

func (e *testEnv) form(overrides map[string]string) dtos.PirepForm {
	return dtos.NewPirepForm(e.formValues(overrides))
}

func (e *testEnv) countPireps(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := e.db.Table("pireps").Count(&n).Error; err != nil {
		t.Fatalf("count pireps: %v", err)
	}
	return n
}
