package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that learns from training data.
type Fitter interface {
	// Fit trains the model on X with targets y.
	Fit(X, y mat.Matrix) error
}

// Predictor is a fitted model that produces predictions.
type Predictor interface {
	// Predict returns predictions for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor is a model usable by the evaluation step.
type Regressor interface {
	Fitter
	Predictor

	// Score returns the coefficient of determination (R²) on X, y.
	Score(X, y mat.Matrix) (float64, error)
}
