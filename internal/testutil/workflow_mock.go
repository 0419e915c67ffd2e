package testutil

import (
	"context"

	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"github.com/stretchr/testify/mock"
)

// MockWorkflow is a testify mock of the report workflow used by HTTP handler tests
type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) List(
	ctx context.Context,
	user *gormModels.User,
	filters dtos.PirepFilters,
	page dtos.PageRequest,
) (*dtos.PirepPage, error) {
	args := m.Called(ctx, user, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dtos.PirepPage), args.Error(1)
}

func (m *MockWorkflow) View(ctx context.Context, id string) (*dtos.PirepView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dtos.PirepView), args.Error(1)
}

func (m *MockWorkflow) FaresForm(ctx context.Context, aircraftID string) (*dtos.FaresFormData, error) {
	args := m.Called(ctx, aircraftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dtos.FaresFormData), args.Error(1)
}

func (m *MockWorkflow) CreateForm(
	ctx context.Context,
	user *gormModels.User,
	settings dtos.PirepSettings,
) (*dtos.CreateFormData, error) {
	args := m.Called(ctx, user, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dtos.CreateFormData), args.Error(1)
}

func (m *MockWorkflow) Submit(
	ctx context.Context,
	user *gormModels.User,
	form dtos.PirepForm,
	settings dtos.PirepSettings,
) (*dtos.SubmitResult, error) {
	args := m.Called(ctx, user, form, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dtos.SubmitResult), args.Error(1)
}

func (m *MockWorkflow) EditForm(ctx context.Context, id string) (*dtos.EditFormData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dtos.EditFormData), args.Error(1)
}

func (m *MockWorkflow) Update(ctx context.Context, id string, form dtos.PirepForm) (*dtos.SubmitResult, error) {
	args := m.Called(ctx, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dtos.SubmitResult), args.Error(1)
}

// StaticSettings serves a fixed set of toggles
type StaticSettings struct {
	Settings dtos.PirepSettings
	Err      error
}

func (s StaticSettings) PirepSettings(context.Context) (dtos.PirepSettings, error) {
	return s.Settings, s.Err
}
