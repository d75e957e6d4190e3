package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Aditi-Asati/ames-price-prediction/regression"
)

// trainedModelPath fits y = 2*LotArea + 3*OverallQual + 10 and saves it.
func trainedModelPath(t *testing.T) string {
	t.Helper()

	X := mat.NewDense(6, 2, []float64{
		1, 1,
		2, 1,
		3, 2,
		4, 3,
		5, 5,
		6, 8,
	})
	y := mat.NewDense(6, 1, nil)
	for i := 0; i < 6; i++ {
		y.Set(i, 0, 2*X.At(i, 0)+3*X.At(i, 1)+10)
	}

	lr := regression.NewLinearRegression(regression.WithFeatureNames([]string{"LotArea", "OverallQual"}))
	require.NoError(t, lr.Fit(X, y))

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, lr.Save(path))
	return path
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc, err := NewPredictionService(trainedModelPath(t), nil)
	require.NoError(t, err)
	srv := httptest.NewServer(NewRouter(svc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Features)
	assert.NotEmpty(t, health.SchemaDigest)
}

func TestPredictEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(PredictRequest{
		Rows: []map[string]float64{
			{"LotArea": 10, "OverallQual": 4},
			{"LotArea": 0, "OverallQual": 0},
		},
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/predict", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out PredictResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Predictions, 2)
	assert.InDelta(t, 42.0, out.Predictions[0], 1e-6) // 2*10 + 3*4 + 10
	assert.InDelta(t, 10.0, out.Predictions[1], 1e-6) // intercept only
}

func TestPredictUnknownFeaturesDropped(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(PredictRequest{
		Rows: []map[string]float64{
			{"LotArea": 10, "OverallQual": 4, "PoolArea": 999},
		},
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/predict", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out PredictResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.InDelta(t, 42.0, out.Predictions[0], 1e-6)
}

func TestPredictAbsentFeaturesZeroFilled(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(PredictRequest{
		Rows: []map[string]float64{
			{"LotArea": 5},
		},
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/predict", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out PredictResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.InDelta(t, 20.0, out.Predictions[0], 1e-6) // 2*5 + 3*0 + 10
}

func TestPredictEmptyRowsRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/predict", "application/json", bytes.NewReader([]byte(`{"rows":[]}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPredictMalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/predict", "application/json", bytes.NewReader([]byte(`{not json`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewPredictionServiceMissingFile(t *testing.T) {
	_, err := NewPredictionService(filepath.Join(t.TempDir(), "absent.json"), nil)
	require.Error(t, err)
}

func TestPredictionServiceDirect(t *testing.T) {
	svc, err := NewPredictionService(trainedModelPath(t), nil)
	require.NoError(t, err)

	pred, err := svc.Predict(map[string]float64{"LotArea": 1, "OverallQual": 1})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, pred, 1e-6)

	assert.Equal(t, []string{"LotArea", "OverallQual"}, svc.FeatureNames())
}
