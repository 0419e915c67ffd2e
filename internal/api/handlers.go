package api

import (
	"context"

	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
)

// PirepWorkflow is the report workflow as seen by the HTTP layer
type PirepWorkflow interface {
	List(ctx context.Context, user *gormModels.User, filters dtos.PirepFilters, page dtos.PageRequest) (*dtos.PirepPage, error)
	View(ctx context.Context, id string) (*dtos.PirepView, error)
	FaresForm(ctx context.Context, aircraftID string) (*dtos.FaresFormData, error)
	CreateForm(ctx context.Context, user *gormModels.User, settings dtos.PirepSettings) (*dtos.CreateFormData, error)
	Submit(ctx context.Context, user *gormModels.User, form dtos.PirepForm, settings dtos.PirepSettings) (*dtos.SubmitResult, error)
	EditForm(ctx context.Context, id string) (*dtos.EditFormData, error)
	Update(ctx context.Context, id string, form dtos.PirepForm) (*dtos.SubmitResult, error)
}

// SettingsProvider resolves the operator toggles for one request
type SettingsProvider interface {
	PirepSettings(ctx context.Context) (dtos.PirepSettings, error)
}

type Handlers struct {
	workflow PirepWorkflow
	settings SettingsProvider
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		workflow: deps.Services.Workflow,
		settings: deps.Services.Settings,
	}
}
