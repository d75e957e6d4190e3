// Package model holds the shared estimator contracts: fitted-state
// tracking and the interfaces the regression and metrics layers work
// against.
package model

import "github.com/Aditi-Asati/ames-price-prediction/pkg/errors"

// EstimatorState tracks whether an estimator has been fitted.
type EstimatorState int

const (
	// NotFitted is the initial state.
	NotFitted EstimatorState = iota
	// Fitted means Fit completed successfully.
	Fitted
)

// BaseEstimator is the embeddable base for the module's estimators. The
// regression model embeds it so Predict, Score, and Save can refuse to
// run before Fit.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the estimator has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// RequireFitted returns a NotFittedError naming the estimator and the
// method that was called too early, or nil when the estimator is fitted.
func (e *BaseEstimator) RequireFitted(estimatorName, method string) error {
	if e.IsFitted() {
		return nil
	}
	return errors.NewNotFittedError(estimatorName, method)
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to its initial state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
