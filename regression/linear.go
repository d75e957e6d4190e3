// Package regression implements the ordinary least squares model the
// training pipeline fits on the preprocessed Ames table.
package regression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Aditi-Asati/ames-price-prediction/core/model"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// LinearRegression is an ordinary least squares regressor solved by QR
// decomposition.
type LinearRegression struct {
	model.BaseEstimator

	// Hyperparameters
	fitIntercept bool

	// Learned parameters
	coef      []float64
	intercept float64

	// Shape seen at fit time
	nFeatures int
	nSamples  int

	// Column names of the training matrix, kept for persistence so the
	// serving layer can align inference inputs.
	featureNames []string
}

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithFitIntercept controls whether an intercept term is learned.
// Defaults to true.
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithFeatureNames records the training column names on the model so they
// are persisted alongside the coefficients.
func WithFeatureNames(names []string) Option {
	return func(lr *LinearRegression) {
		lr.featureNames = append([]string(nil), names...)
	}
}

// NewLinearRegression creates an unfitted model.
func NewLinearRegression(options ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept: true,
	}
	for _, opt := range options {
		opt(lr)
	}
	return lr
}

// Fit trains the model on X (n samples × p features) against the column
// vector y.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LinearRegression.Fit")
	}
	if rows != yRows {
		return errors.NewDimensionError("LinearRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LinearRegression.Fit", 1, yCols, 1)
	}

	lr.nSamples = rows
	lr.nFeatures = cols

	var XFit mat.Matrix = X
	if lr.fitIntercept {
		// prepend a bias column of ones
		withIntercept := mat.NewDense(rows, cols+1, nil)
		for i := 0; i < rows; i++ {
			withIntercept.Set(i, 0, 1.0)
			for j := 0; j < cols; j++ {
				withIntercept.Set(i, j+1, X.At(i, j))
			}
		}
		XFit = withIntercept
	}

	var qr mat.QR
	qr.Factorize(XFit)

	_, fitCols := XFit.Dims()
	coefficients := mat.NewDense(fitCols, 1, nil)
	if err := qr.SolveTo(coefficients, false, y); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, fmt.Sprintf("LinearRegression.Fit: %v", err))
	}

	if lr.fitIntercept {
		lr.intercept = coefficients.At(0, 0)
		lr.coef = make([]float64, cols)
		for j := 0; j < cols; j++ {
			lr.coef[j] = coefficients.At(j+1, 0)
		}
	} else {
		lr.intercept = 0
		lr.coef = make([]float64, cols)
		for j := 0; j < cols; j++ {
			lr.coef[j] = coefficients.At(j, 0)
		}
	}

	lr.SetFitted()
	return nil
}

// Predict returns the fitted model's predictions for X as an n×1 matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	if cols != lr.nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, cols, 1)
	}

	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := lr.intercept
		for j := 0; j < cols; j++ {
			pred += lr.coef[j] * X.At(i, j)
		}
		out.Set(i, 0, pred)
	}
	return out, nil
}

// Score returns the coefficient of determination R² of the predictions
// for X against y.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	n, _ := y.Dims()
	var yMean float64
	for i := 0; i < n; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrue := y.At(i, 0)
		d := yTrue - yMean
		tss += d * d
		r := yTrue - pred.At(i, 0)
		rss += r * r
	}
	if tss == 0 {
		return 0, errors.NewValueError("LinearRegression.Score", "target has zero variance")
	}
	return 1 - rss/tss, nil
}

// Coef returns a copy of the learned coefficients.
func (lr *LinearRegression) Coef() []float64 {
	return append([]float64(nil), lr.coef...)
}

// Intercept returns the learned intercept.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// FeatureNames returns the training column names recorded on the model.
func (lr *LinearRegression) FeatureNames() []string {
	return append([]string(nil), lr.featureNames...)
}

// NFeatures returns the number of features seen at fit time.
func (lr *LinearRegression) NFeatures() int {
	return lr.nFeatures
}

// String returns a short description of the model.
func (lr *LinearRegression) String() string {
	if !lr.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t)", lr.fitIntercept)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d)", lr.fitIntercept, lr.nFeatures)
}
