package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Aditi-Asati/ames-price-prediction/core/model"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

// ModelEvaluationStrategy scores a fitted model on a held-out set and
// returns named metrics.
type ModelEvaluationStrategy interface {
	EvaluateModel(m model.Regressor, X, y mat.Matrix) (map[string]float64, error)
}

// RegressionModelEvaluationStrategy computes the standard regression
// metrics (MSE, RMSE, MAE, R²) from the model's predictions.
type RegressionModelEvaluationStrategy struct {
	logger log.Logger
}

// NewRegressionModelEvaluationStrategy creates a regression evaluation
// strategy.
func NewRegressionModelEvaluationStrategy(logger log.Logger) *RegressionModelEvaluationStrategy {
	if logger == nil {
		logger = log.Discard()
	}
	return &RegressionModelEvaluationStrategy{logger: logger}
}

// EvaluateModel predicts on X and scores the predictions against y.
func (s *RegressionModelEvaluationStrategy) EvaluateModel(m model.Regressor, X, y mat.Matrix) (map[string]float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return nil, errors.Wrap(err, "EvaluateModel: predict")
	}

	yVec, err := vecFromColumn("EvaluateModel", y)
	if err != nil {
		return nil, err
	}
	predVec, err := vecFromColumn("EvaluateModel", pred)
	if err != nil {
		return nil, err
	}

	mse, err := MSE(yVec, predVec)
	if err != nil {
		return nil, err
	}
	rmse, err := RMSE(yVec, predVec)
	if err != nil {
		return nil, err
	}
	mae, err := MAE(yVec, predVec)
	if err != nil {
		return nil, err
	}
	r2, err := R2Score(yVec, predVec)
	if err != nil {
		return nil, err
	}

	results := map[string]float64{
		"MSE":  mse,
		"RMSE": rmse,
		"MAE":  mae,
		"R2":   r2,
	}
	for name, score := range results {
		s.logger.Info("model evaluated", log.MetricKey, name, log.ScoreKey, score)
	}
	return results, nil
}

// ModelEvaluator is the context that delegates evaluation to a strategy.
type ModelEvaluator struct {
	strategy ModelEvaluationStrategy
	logger   log.Logger
}

// NewModelEvaluator creates an evaluator with the given strategy.
func NewModelEvaluator(strategy ModelEvaluationStrategy, logger log.Logger) *ModelEvaluator {
	if logger == nil {
		logger = log.Discard()
	}
	return &ModelEvaluator{strategy: strategy, logger: logger}
}

// SetStrategy swaps the evaluation strategy at runtime.
func (e *ModelEvaluator) SetStrategy(strategy ModelEvaluationStrategy) {
	e.logger.Info("switching model evaluation strategy")
	e.strategy = strategy
}

// Evaluate executes the configured strategy.
func (e *ModelEvaluator) Evaluate(m model.Regressor, X, y mat.Matrix) (map[string]float64, error) {
	e.logger.Info("evaluating model", log.OperationKey, "evaluate")
	return e.strategy.EvaluateModel(m, X, y)
}
