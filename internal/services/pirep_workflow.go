package services

import (
	"context"
	"fmt"
	"time"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/metrics"
	"infinite-experiment/crewcenter/internal/models"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"
	"infinite-experiment/crewcenter/internal/units"
)

// PirepWorkflow drives listing, filing and editing of flight reports.
// Each call is one synchronous unit of work; the persistence steps of
// Submit and Update are committed independently.
type PirepWorkflow struct {
	pirepSvc  *PirepService
	fareSvc   *FareService
	userSvc   *UserService
	geoSvc    *GeoService
	refRepo   *repositories.ReferenceRepository
	fleetRepo *repositories.FleetRepository
	validator *PirepValidator
	metrics   *metrics.MetricsRegistry
	now       func() time.Time
}

func NewPirepWorkflow(
	pirepSvc *PirepService,
	fareSvc *FareService,
	userSvc *UserService,
	geoSvc *GeoService,
	refRepo *repositories.ReferenceRepository,
	fleetRepo *repositories.FleetRepository,
	validator *PirepValidator,
	metricsReg *metrics.MetricsRegistry,
) *PirepWorkflow {
	return &PirepWorkflow{
		pirepSvc:  pirepSvc,
		fareSvc:   fareSvc,
		userSvc:   userSvc,
		geoSvc:    geoSvc,
		refRepo:   refRepo,
		fleetRepo: fleetRepo,
		validator: validator,
		metrics:   metricsReg,
		now:       time.Now,
	}
}

// List returns one page of the user's reports, newest first, without cancelled ones
func (w *PirepWorkflow) List(
	ctx context.Context,
	user *gormModels.User,
	filters dtos.PirepFilters,
	page dtos.PageRequest,
) (*dtos.PirepPage, error) {
	page = page.Normalize()

	items, total, err := w.pirepSvc.ListByUser(ctx, user.ID, filters, page)
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(page.PerPage) - 1) / int64(page.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &dtos.PirepPage{
		Items:    items,
		Page:     page.Page,
		PerPage:  page.PerPage,
		Total:    total,
		LastPage: lastPage,
	}, nil
}

// View returns the report with its planned route map
func (w *PirepWorkflow) View(ctx context.Context, id string) (*dtos.PirepView, error) {
	pirep, err := w.pirepSvc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pirep == nil {
		return nil, pirepNotFound()
	}

	features, err := w.geoSvc.PirepGeoJSON(ctx, pirep)
	if err != nil {
		return nil, err
	}

	return &dtos.PirepView{
		Pirep:       pirep,
		FlightTime:  units.FlightTimeFromMinutes(pirep.FlightTime),
		MapFeatures: features,
	}, nil
}

// FaresForm returns the fare inputs for an aircraft
func (w *PirepWorkflow) FaresForm(ctx context.Context, aircraftID string) (*dtos.FaresFormData, error) {
	aircraft, fares, err := w.fareSvc.FaresForAircraft(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, models.NewPirepError(models.ErrNotFound, constants.ErrCodeAircraftNotFound, constants.MsgAircraftNotFound)
	}

	return &dtos.FaresFormData{
		Aircraft: aircraft,
		Fares:    fares,
		ReadOnly: false,
	}, nil
}

// CreateForm returns the dropdown data for a new report. Aircraft are limited
// to the subfleets the user may fly.
func (w *PirepWorkflow) CreateForm(
	ctx context.Context,
	user *gormModels.User,
	settings dtos.PirepSettings,
) (*dtos.CreateFormData, error) {
	subfleets, err := w.userSvc.AllowableSubfleets(ctx, user, settings.RestrictAircraftToRank)
	if err != nil {
		return nil, err
	}

	ref, err := w.referenceData(ctx, subfleets, true)
	if err != nil {
		return nil, err
	}

	return &dtos.CreateFormData{
		ReferenceData: *ref,
		ReadOnly:      false,
		FieldValues:   map[string]string{},
	}, nil
}

// Submit files a new report for user
func (w *PirepWorkflow) Submit(
	ctx context.Context,
	user *gormModels.User,
	form dtos.PirepForm,
	settings dtos.PirepSettings,
) (*dtos.SubmitResult, error) {
	// STEP 1: VALIDATE INPUT
	schema, err := w.pirepSvc.CustomFields(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.validator.Validate(ctx, &form, schema); err != nil {
		return nil, w.reject(user, err)
	}

	aircraft, err := w.fleetRepo.FindAircraft(ctx, form.AircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, w.reject(user, unknownAircraft())
	}

	// STEP 2: ELIGIBILITY
	if settings.OnlyFlightsFromCurrent && !user.IsAt(form.DptAirportID) {
		return nil, w.reject(user, models.NewPirepError(
			models.ErrEligibility, constants.ErrCodeNotAtDepartureAirport, constants.MsgNotAtDepartureAirport))
	}

	if settings.RestrictAircraftToRank {
		allowed, err := w.userSvc.AircraftAllowed(ctx, user, aircraft)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, w.reject(user, models.NewPirepError(
				models.ErrEligibility, constants.ErrCodeAircraftNotAllowed, constants.MsgAircraftNotAllowed))
		}
	}

	if settings.OnlyAircraftAtDptAirport && aircraft.AirportID != form.DptAirportID {
		return nil, w.reject(user, models.NewPirepError(
			models.ErrEligibility, constants.ErrCodeAircraftNotAtDeparture, constants.MsgAircraftNotAtDeparture))
	}

	pirep := &gormModels.Pirep{
		UserID: user.ID,
		Source: constants.PirepSourceManual,
		State:  constants.PirepStatePending,
	}
	applyForm(pirep, &form)

	dupe, err := w.pirepSvc.FindDuplicate(ctx, pirep, settings.DuplicateWindow)
	if err != nil {
		return nil, err
	}
	if dupe != nil {
		return nil, w.reject(user, models.NewPirepError(
			models.ErrDuplicate, constants.ErrCodePirepDuplicate, constants.MsgPirepDuplicate))
	}

	// STEP 3: FLIGHT TIME AND SUBMISSION STAMP
	pirep.FlightTime = units.NewFlightTime(form.Hours, form.Minutes).TotalMinutes()
	submittedAt := w.now().UTC()
	pirep.SubmittedAt = &submittedAt

	// STEP 4: PERSIST
	if err := w.pirepSvc.Create(ctx, pirep); err != nil {
		return nil, err
	}

	if err := w.saveCustomFields(ctx, pirep, &form, schema); err != nil {
		return nil, err
	}
	if err := w.saveFares(ctx, pirep, aircraft, &form); err != nil {
		return nil, err
	}

	// STEP 5: ROUTE
	if err := w.recomputeRoute(ctx, pirep); err != nil {
		return nil, err
	}

	if w.metrics != nil {
		w.metrics.PirepsSubmittedTotal.Inc()
	}
	logging.WithPirep(pirep.ID, user.ID).Infow("PIREP filed",
		"dpt", pirep.DptAirportID,
		"arr", pirep.ArrAirportID,
		"flight_time", pirep.FlightTime,
	)

	return &dtos.SubmitResult{PirepID: pirep.ID, Message: constants.MsgPirepFiled}, nil
}

// EditForm returns the report with its time, custom field and fare values split out
func (w *PirepWorkflow) EditForm(ctx context.Context, id string) (*dtos.EditFormData, error) {
	pirep, err := w.pirepSvc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pirep == nil {
		return nil, pirepNotFound()
	}

	subfleets, err := w.userSvc.AllowableSubfleets(ctx, nil, false)
	if err != nil {
		return nil, err
	}
	ref, err := w.referenceData(ctx, subfleets, false)
	if err != nil {
		return nil, err
	}

	fareCounts, err := w.fareSvc.FareCounts(ctx, pirep.ID)
	if err != nil {
		return nil, err
	}

	fieldValues := make(map[string]string, len(pirep.Fields))
	for _, f := range pirep.Fields {
		fieldValues[f.Slug] = f.Value
	}

	return &dtos.EditFormData{
		ReferenceData: *ref,
		Pirep:         pirep,
		Aircraft:      pirep.Aircraft,
		FlightTime:    units.FlightTimeFromMinutes(pirep.FlightTime),
		FieldValues:   fieldValues,
		FareCounts:    fareCounts,
	}, nil
}

// Update applies an edit to an existing report
func (w *PirepWorkflow) Update(ctx context.Context, id string, form dtos.PirepForm) (*dtos.SubmitResult, error) {
	pirep, err := w.pirepSvc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pirep == nil {
		return nil, pirepNotFound()
	}

	schema, err := w.pirepSvc.CustomFields(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.validator.Validate(ctx, &form, schema); err != nil {
		return nil, err
	}

	aircraft, err := w.fleetRepo.FindAircraft(ctx, form.AircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, unknownAircraft()
	}

	origRoute := pirep.Route
	origDpt, origArr := pirep.DptAirportID, pirep.ArrAirportID

	applyForm(pirep, &form)
	pirep.FlightTime = units.NewFlightTime(form.Hours, form.Minutes).TotalMinutes()

	if pirep.DptAirportID != origDpt || pirep.ArrAirportID != origArr {
		distance, err := w.pirepSvc.Distance(ctx, pirep.DptAirportID, pirep.ArrAirportID)
		if err != nil {
			return nil, err
		}
		pirep.Distance = distance
	}

	if err := w.pirepSvc.Update(ctx, pirep); err != nil {
		return nil, err
	}

	if pirep.Route != origRoute {
		if err := w.recomputeRoute(ctx, pirep); err != nil {
			return nil, err
		}
	}

	if err := w.saveCustomFields(ctx, pirep, &form, schema); err != nil {
		return nil, err
	}
	if err := w.saveFares(ctx, pirep, aircraft, &form); err != nil {
		return nil, err
	}

	if w.metrics != nil {
		w.metrics.PirepsUpdatedTotal.Inc()
	}
	logging.WithPirep(pirep.ID, pirep.UserID).Infow("PIREP updated", "route_changed", pirep.Route != origRoute)

	return &dtos.SubmitResult{PirepID: pirep.ID, Message: constants.MsgPirepUpdated}, nil
}

// saveCustomFields records every schema field filled in on the form and
// replaces whatever the report held before
func (w *PirepWorkflow) saveCustomFields(
	ctx context.Context,
	pirep *gormModels.Pirep,
	form *dtos.PirepForm,
	schema []gormModels.PirepField,
) error {
	values := make([]gormModels.PirepFieldValue, 0, len(schema))
	for _, field := range schema {
		if !form.Filled(field.Slug) {
			continue
		}
		values = append(values, gormModels.PirepFieldValue{
			Name:   field.Name,
			Slug:   field.Slug,
			Value:  form.Input(field.Slug),
			Source: constants.PirepSourceManual,
		})
	}

	logging.Debug("Saving custom fields", "pirep_id", pirep.ID, "count", len(values))

	if err := w.pirepSvc.UpdateCustomFields(ctx, pirep.ID, values); err != nil {
		return fmt.Errorf("failed to save custom fields: %w", err)
	}
	return nil
}

// saveFares stores one count per fare of the aircraft's subfleet, zero when not entered
func (w *PirepWorkflow) saveFares(
	ctx context.Context,
	pirep *gormModels.Pirep,
	aircraft *gormModels.Aircraft,
	form *dtos.PirepForm,
) error {
	var fares []gormModels.Fare
	if aircraft.Subfleet != nil {
		fares = aircraft.Subfleet.Fares
	}

	rows := FareRowsFromForm(fares, form)
	if err := w.fareSvc.SaveForPirep(ctx, pirep.ID, rows); err != nil {
		return fmt.Errorf("failed to save fares: %w", err)
	}
	return nil
}

func (w *PirepWorkflow) recomputeRoute(ctx context.Context, pirep *gormModels.Pirep) error {
	if err := w.pirepSvc.SaveRoute(ctx, pirep); err != nil {
		return err
	}
	if w.metrics != nil {
		w.metrics.RouteRecomputedTotal.Inc()
	}
	logging.Debug("Route recomputed", "pirep_id", pirep.ID, "route", pirep.Route)
	return nil
}

// reject logs and counts a refused submission, returning err unchanged
func (w *PirepWorkflow) reject(user *gormModels.User, err error) error {
	code := constants.ErrCodeInternal
	if pe, ok := models.AsPirepError(err); ok {
		code = pe.Code
	}
	if w.metrics != nil {
		w.metrics.PirepsRejectedTotal.WithLabelValues(code).Inc()
	}
	logging.Info("PIREP rejected", "user_id", user.ID, "code", code)
	return err
}

func (w *PirepWorkflow) referenceData(
	ctx context.Context,
	subfleets []gormModels.Subfleet,
	addBlank bool,
) (*dtos.ReferenceData, error) {
	airlines, err := w.refRepo.ActiveAirlines(ctx)
	if err != nil {
		return nil, err
	}
	airports, err := w.refRepo.AllAirports(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := w.pirepSvc.CustomFields(ctx)
	if err != nil {
		return nil, err
	}

	ref := &dtos.ReferenceData{
		Airlines:    []dtos.SelectOption{},
		Aircraft:    []dtos.AircraftGroup{},
		Airports:    []dtos.SelectOption{},
		PirepFields: schema,
	}

	if addBlank {
		blank := dtos.SelectOption{}
		ref.Airlines = append(ref.Airlines, blank)
		ref.Airports = append(ref.Airports, blank)
		ref.Aircraft = append(ref.Aircraft, dtos.AircraftGroup{Aircraft: []dtos.SelectOption{blank}})
	}

	for _, a := range airlines {
		ref.Airlines = append(ref.Airlines, dtos.SelectOption{Value: a.ID, Label: a.Name})
	}
	for _, a := range airports {
		ref.Airports = append(ref.Airports, dtos.SelectOption{Value: a.ID, Label: a.ID + " - " + a.Name})
	}
	for _, sf := range subfleets {
		group := dtos.AircraftGroup{Subfleet: sf.Name, Aircraft: make([]dtos.SelectOption, 0, len(sf.Aircraft))}
		for _, ac := range sf.Aircraft {
			group.Aircraft = append(group.Aircraft, dtos.SelectOption{Value: ac.ID, Label: ac.Label()})
		}
		ref.Aircraft = append(ref.Aircraft, group)
	}

	return ref, nil
}

// applyForm copies the editable attributes of form onto pirep
func applyForm(pirep *gormModels.Pirep, form *dtos.PirepForm) {
	pirep.AirlineID = form.AirlineID
	pirep.FlightNumber = form.FlightNumber
	pirep.AircraftID = form.AircraftID
	pirep.DptAirportID = form.DptAirportID
	pirep.ArrAirportID = form.ArrAirportID
	pirep.Route = form.Route
	pirep.Notes = form.Notes
}

func pirepNotFound() error {
	return models.NewPirepError(models.ErrNotFound, constants.ErrCodePirepNotFound, constants.MsgPirepNotFound)
}

func unknownAircraft() error {
	pe := models.NewPirepError(models.ErrValidation, constants.ErrCodeValidation, constants.MsgValidationFailed)
	pe.Fields = map[string]string{"aircraft_id": "aircraft does not exist"}
	return pe
}
