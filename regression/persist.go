package regression

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// modelFile is the on-disk representation of a fitted model.
type modelFile struct {
	Model        string    `json:"model"`
	FitIntercept bool      `json:"fit_intercept"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	FeatureNames []string  `json:"feature_names"`
	SchemaDigest string    `json:"schema_digest"`
	NSamples     int       `json:"n_samples"`
}

// SchemaDigest returns the hex sha256 of the ordered feature names. The
// serving layer compares this against the digest of its own aligned
// inputs before predicting.
func SchemaDigest(featureNames []string) string {
	h := sha256.Sum256([]byte(strings.Join(featureNames, "\x00")))
	return hex.EncodeToString(h[:])
}

// Save writes the fitted model to path as JSON.
func (lr *LinearRegression) Save(path string) error {
	if err := lr.RequireFitted("LinearRegression", "Save"); err != nil {
		return err
	}

	file := modelFile{
		Model:        "linear_regression",
		FitIntercept: lr.fitIntercept,
		Intercept:    lr.intercept,
		Coefficients: lr.Coef(),
		FeatureNames: lr.FeatureNames(),
		SchemaDigest: SchemaDigest(lr.featureNames),
		NSamples:     lr.nSamples,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Wrap(err, "LinearRegression.Save: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "LinearRegression.Save: write")
	}
	return nil
}

// Load reads a model previously written by Save. The schema digest is
// recomputed from the stored feature names and must match.
func Load(path string) (*LinearRegression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "regression.Load: read")
	}

	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "regression.Load: unmarshal")
	}
	if file.Model != "linear_regression" {
		return nil, errors.NewValueError("regression.Load", "unsupported model kind: "+file.Model)
	}
	if len(file.FeatureNames) > 0 && len(file.FeatureNames) != len(file.Coefficients) {
		return nil, errors.NewValueError("regression.Load", "feature names and coefficients disagree in length")
	}
	if file.SchemaDigest != "" && file.SchemaDigest != SchemaDigest(file.FeatureNames) {
		return nil, errors.NewValueError("regression.Load", "schema digest mismatch: model file is corrupt or was edited")
	}

	lr := &LinearRegression{
		fitIntercept: file.FitIntercept,
		intercept:    file.Intercept,
		coef:         append([]float64(nil), file.Coefficients...),
		nFeatures:    len(file.Coefficients),
		nSamples:     file.NSamples,
		featureNames: append([]string(nil), file.FeatureNames...),
	}
	lr.SetFitted()
	return lr, nil
}
