package api

import (
	"infinite-experiment/crewcenter/internal/auth"
	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/config"
	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/metrics"
	"infinite-experiment/crewcenter/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Pirep     *repositories.PirepRepository
	Duplicate *repositories.PirepDuplicateRepo
	Field     *repositories.PirepFieldRepository
	Fare      *repositories.FareRepository
	Fleet     *repositories.FleetRepository
	Reference *repositories.ReferenceRepository
	Acars     *repositories.AcarsRepository
	Setting   *repositories.SettingRepository
	User      *repositories.UserRepository
}

type Services struct {
	Cache    common.CacheInterface
	Flash    *common.FlashStore
	Tokens   *auth.TokenManager
	Settings *services.SettingsService
	User     *services.UserService
	Geo      *services.GeoService
	Fare     *services.FareService
	Pirep    *services.PirepService
	Workflow *services.PirepWorkflow
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	Config   config.Config
}

// InitDependencies wires repositories and services over the shared connections.
// gormDB and sqlxDB must point at the same database.
func InitDependencies(
	cfg config.Config,
	gormDB *gorm.DB,
	sqlxDB *sqlx.DB,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) (*Dependencies, error) {

	repos := &Repositories{
		Pirep:     repositories.NewPirepRepository(gormDB),
		Duplicate: repositories.NewPirepDuplicateRepo(sqlxDB),
		Field:     repositories.NewPirepFieldRepository(gormDB),
		Fare:      repositories.NewFareRepository(gormDB),
		Fleet:     repositories.NewFleetRepository(gormDB),
		Reference: repositories.NewReferenceRepository(gormDB),
		Acars:     repositories.NewAcarsRepository(gormDB),
		Setting:   repositories.NewSettingRepository(gormDB),
		User:      repositories.NewUserRepository(gormDB),
	}

	geoSvc := services.NewGeoService(repos.Reference, repos.Acars)
	userSvc := services.NewUserService(repos.User, repos.Fleet)
	fareSvc := services.NewFareService(repos.Fare, repos.Fleet)
	pirepSvc := services.NewPirepService(repos.Pirep, repos.Duplicate, repos.Field, repos.Reference, repos.Acars, geoSvc)

	svcs := &Services{
		Cache:    cache,
		Flash:    common.NewFlashStore(cache),
		Tokens:   auth.NewTokenManager(cfg.Auth.JWTSecret),
		Settings: services.NewSettingsService(repos.Setting, cache, cfg.SettingsTTL, metricsReg),
		User:     userSvc,
		Geo:      geoSvc,
		Fare:     fareSvc,
		Pirep:    pirepSvc,
		Workflow: services.NewPirepWorkflow(
			pirepSvc,
			fareSvc,
			userSvc,
			geoSvc,
			repos.Reference,
			repos.Fleet,
			services.NewPirepValidator(repos.Reference),
			metricsReg,
		),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		Config:   cfg,
	}, nil
}
