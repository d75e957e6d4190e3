// Package server exposes a trained model over HTTP for online price
// prediction.
package server

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
	"github.com/Aditi-Asati/ames-price-prediction/regression"
)

// PredictionService wraps a loaded model and aligns incoming feature maps
// to the schema the model was trained with.
type PredictionService struct {
	model  *regression.LinearRegression
	logger log.Logger
}

// NewPredictionService loads the model persisted at modelPath.
func NewPredictionService(modelPath string, logger log.Logger) (*PredictionService, error) {
	if logger == nil {
		logger = log.Discard()
	}

	model, err := regression.Load(modelPath)
	if err != nil {
		return nil, errors.Wrap(err, "NewPredictionService")
	}
	if len(model.FeatureNames()) == 0 {
		return nil, errors.NewValueError("NewPredictionService", "model file carries no feature schema; retrain with feature names")
	}

	logger.Info("model loaded",
		log.ModelNameKey, "linear_regression",
		log.FeaturesKey, model.NFeatures())
	return &PredictionService{model: model, logger: logger}, nil
}

// FeatureNames returns the schema the service aligns inputs to.
func (s *PredictionService) FeatureNames() []string {
	return s.model.FeatureNames()
}

// SchemaDigest returns the digest of the model's feature schema.
func (s *PredictionService) SchemaDigest() string {
	return regression.SchemaDigest(s.model.FeatureNames())
}

// Predict scores one observation given as a feature-name-to-value map.
// Features the model was not trained on are dropped; trained features
// absent from the request are zero-filled, which matches how unseen
// one-hot categories encode.
func (s *PredictionService) Predict(features map[string]float64) (float64, error) {
	names := s.model.FeatureNames()
	row := mat.NewDense(1, len(names), nil)
	for j, name := range names {
		if v, ok := features[name]; ok {
			row.Set(0, j, v)
		}
	}

	pred, err := s.model.Predict(row)
	if err != nil {
		return 0, err
	}
	return pred.At(0, 0), nil
}

// PredictBatch scores several observations in request order.
func (s *PredictionService) PredictBatch(observations []map[string]float64) ([]float64, error) {
	if len(observations) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "PredictBatch")
	}

	names := s.model.FeatureNames()
	X := mat.NewDense(len(observations), len(names), nil)
	for i, features := range observations {
		for j, name := range names {
			if v, ok := features[name]; ok {
				X.Set(i, j, v)
			}
		}
	}

	pred, err := s.model.Predict(X)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(observations))
	for i := range out {
		out[i] = pred.At(i, 0)
	}
	return out, nil
}
