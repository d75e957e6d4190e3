// Package errors provides the error and warning system for the Ames
// preprocessing pipeline. Errors carry stack traces via cockroachdb/errors
// and structured fields for zerolog; warnings are dispatched through a
// configurable process-wide handler so a pipeline step can surface a
// misconfiguration without aborting the run.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("ames-warning: %v\n", w)
	}
)

// SetWarningHandler replaces the process-wide warning handler. The pipeline
// driver installs a handler that routes warnings into its structured logger.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings entirely
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn raises a warning through the installed handler. Unlike an error
// return, execution continues after the call.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConfigurationWarning is raised when a strategy or context receives an
// unrecognised strategy/method name. The operation becomes a no-op, the
// input is returned unchanged, and the caller keeps going.
type ConfigurationWarning struct {
	Component string // e.g. "FillMissingValuesStrategy", "OutliersDetector"
	Option    string // the parameter that was not understood, e.g. "method"
	Value     string // the unrecognised value
}

func (w *ConfigurationWarning) Error() string {
	return fmt.Sprintf("unsupported %s %q for %s; input returned unchanged", w.Option, w.Value, w.Component)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConfigurationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("component", w.Component).
		Str("option", w.Option).
		Str("value", w.Value).
		Str("type", "ConfigurationWarning")
}

// NewConfigurationWarning creates a new ConfigurationWarning.
func NewConfigurationWarning(component, option, value string) *ConfigurationWarning {
	return &ConfigurationWarning{Component: component, Option: option, Value: value}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// InsufficientDataError is returned when a column aggregate (mean, median,
// mode) cannot be computed because the column is empty or entirely missing.
type InsufficientDataError struct {
	Op     string
	Column string
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("ames: %s: cannot aggregate column %q: %s", e.Op, e.Column, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError creates a new InsufficientDataError with a stack trace.
func NewInsufficientDataError(op, column, reason string) error {
	err := &InsufficientDataError{Op: op, Column: column, Reason: reason}
	return errors.WithStack(err)
}

// DomainError is returned when a transformation input violates a
// mathematical precondition, e.g. log1p applied to a value below -1.
type DomainError struct {
	Op     string
	Column string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("ames: %s: column %q value %g outside domain: %s", e.Op, e.Column, e.Value, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DomainError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Float64("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "DomainError")
}

// NewDomainError creates a new DomainError with a stack trace.
func NewDomainError(op, column string, value float64, reason string) error {
	err := &DomainError{Op: op, Column: column, Value: value, Reason: reason}
	return errors.WithStack(err)
}

// InvalidTargetError is returned by the splitter when the requested target
// column is absent from the table.
type InvalidTargetError struct {
	Target  string
	Columns []string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("ames: target column %q not present in table (columns: %v)", e.Target, e.Columns)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InvalidTargetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("target", e.Target).
		Strs("columns", e.Columns).
		Str("type", "InvalidTargetError")
}

// NewInvalidTargetError creates a new InvalidTargetError with a stack trace.
func NewInvalidTargetError(target string, columns []string) error {
	err := &InvalidTargetError{Target: target, Columns: columns}
	return errors.WithStack(err)
}

// InvalidFeatureError is returned when a strategy's feature list names a
// column absent from the table, or names a column whose type the
// transformation cannot operate on.
type InvalidFeatureError struct {
	Op      string
	Feature string
	Reason  string
}

func (e *InvalidFeatureError) Error() string {
	return fmt.Sprintf("ames: %s: invalid feature %q: %s", e.Op, e.Feature, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InvalidFeatureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("feature", e.Feature).
		Str("reason", e.Reason).
		Str("type", "InvalidFeatureError")
}

// NewInvalidFeatureError creates a new InvalidFeatureError with a stack trace.
func NewInvalidFeatureError(op, feature, reason string) error {
	err := &InvalidFeatureError{Op: op, Feature: feature, Reason: reason}
	return errors.WithStack(err)
}

// DimensionError reports a shape mismatch between two tables or matrices.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("ames: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// NotFittedError is returned when Predict or Transform is called on a model
// that has not been fitted.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("ames: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("ames: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives an empty table or matrix.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a linear system cannot be solved.
	ErrSingularMatrix = New("singular matrix")
)
