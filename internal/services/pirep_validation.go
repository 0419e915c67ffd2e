package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/models"
	"infinite-experiment/crewcenter/internal/models/dtos"
	gormModels "infinite-experiment/crewcenter/internal/models/gorm"

	"github.com/go-playground/validator/v10"
)

// PirepValidator checks a submitted form before anything is persisted
type PirepValidator struct {
	validate *validator.Validate
	refRepo  *repositories.ReferenceRepository
}

func NewPirepValidator(refRepo *repositories.ReferenceRepository) *PirepValidator {
	v := validator.New()

	// Report field errors under their form names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &PirepValidator{validate: v, refRepo: refRepo}
}

// Validate returns a validation PirepError listing every bad field, or nil.
// schema supplies the custom fields that must be filled in.
func (pv *PirepValidator) Validate(
	ctx context.Context,
	form *dtos.PirepForm,
	schema []gormModels.PirepField,
) error {
	fields := make(map[string]string)
	for name, msg := range form.ParseErrors {
		fields[name] = msg
	}

	if err := pv.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate pirep form: %w", err)
		}
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = FormatValidationError(fe)
			}
		}
	}

	for _, f := range schema {
		if f.Required && !form.Filled(f.Slug) {
			fields[f.Slug] = f.Name + " is required"
		}
	}

	if err := pv.checkAirport(ctx, "dpt_airport_id", form.DptAirportID, fields); err != nil {
		return err
	}
	if err := pv.checkAirport(ctx, "arr_airport_id", form.ArrAirportID, fields); err != nil {
		return err
	}

	if len(fields) == 0 {
		return nil
	}

	pe := models.NewPirepError(models.ErrValidation, constants.ErrCodeValidation, constants.MsgValidationFailed)
	pe.Fields = fields
	return pe
}

func (pv *PirepValidator) checkAirport(ctx context.Context, name, icao string, fields map[string]string) error {
	if icao == "" || fields[name] != "" {
		return nil
	}
	airport, err := pv.refRepo.FindAirport(ctx, icao)
	if err != nil {
		return err
	}
	if airport == nil {
		fields[name] = fmt.Sprintf("airport %s does not exist", icao)
	}
	return nil
}

// FormatValidationError renders one field error as a user-facing message
func FormatValidationError(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s may not be greater than %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s may not be greater than %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
