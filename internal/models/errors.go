package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation indicates malformed or missing input, reported per field.
	ErrValidation = errors.New("validation failed")
	// ErrEligibility indicates the pilot, aircraft or airport does not satisfy a filing rule.
	ErrEligibility = errors.New("not eligible")
	// ErrDuplicate indicates a matching report has already been filed.
	ErrDuplicate = errors.New("duplicate pirep")
	// ErrNotFound indicates the requested report or aircraft does not exist.
	ErrNotFound = errors.New("not found")
)

// PirepError is the user-facing outcome of a rejected workflow step.
// Kind is one of the sentinel errors above, so errors.Is works on it.
type PirepError struct {
	Kind    error
	Code    string
	Message string
	Fields  map[string]string
}

func (e *PirepError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code + ": " + e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return e.Code + ": " + e.Message + " (" + strings.Join(names, ", ") + ")"
}

func (e *PirepError) Unwrap() error {
	return e.Kind
}

// NewPirepError builds a PirepError of the given kind
func NewPirepError(kind error, code, message string) *PirepError {
	return &PirepError{Kind: kind, Code: code, Message: message}
}

// AsPirepError extracts a PirepError from err, if any
func AsPirepError(err error) (*PirepError, bool) {
	var pe *PirepError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
