package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

func writeTrainingData(t *testing.T, dir string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("LotArea,OverallQual,Neighborhood,SalePrice\n")
	neighborhoods := []string{"CollgCr", "Veenker", "NAmes"}
	for i := 0; i < 30; i++ {
		lot := 5000 + 300*i
		qual := 3 + i%7
		hood := neighborhoods[i%3]
		// price is an exact linear function so the model can fit it
		price := 50*lot + 10000*qual + 20000
		fmt.Fprintf(&b, "%d,%d,%s,%d\n", lot, qual, hood, price)
	}

	path := filepath.Join(dir, "housing.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func testConfig(t *testing.T, dir string) *Config {
	t.Helper()
	cfg := &Config{
		Data: DataConfig{
			Path:   writeTrainingData(t, dir),
			Target: "SalePrice",
		},
		Artifacts: ArtifactsConfig{Dir: filepath.Join(dir, "artifacts")},
		Missing:   MissingConfig{Strategy: "drop", Axis: 0},
		Features: []FeatureStep{
			{Strategy: "onehot_encoding", Columns: []string{"Neighborhood"}},
		},
		Outliers: OutliersConfig{Enabled: false, Strategy: "zscore", Method: "remove"},
		Split:    SplitConfig{TestSize: 0.2, RandomState: 42},
		Model:    ModelConfig{FitIntercept: true},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestTrainingPipelineRun(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	result, err := NewTrainingPipeline(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 24, result.TrainRows)
	assert.Equal(t, 6, result.TestRows)

	assert.FileExists(t, result.ModelPath)
	assert.FileExists(t, result.MetricsPath)
	assert.Contains(t, result.ModelPath, result.RunID)

	for _, metric := range []string{"MSE", "RMSE", "MAE", "R2"} {
		assert.Contains(t, result.Metrics, metric)
	}
	// the data is exactly linear, so the fit should be essentially perfect
	assert.InDelta(t, 1.0, result.Metrics["R2"], 1e-6)
}

func TestTrainingPipelineRunWithOutlierRemoval(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cfg.Outliers = OutliersConfig{
		Enabled:   true,
		Strategy:  "iqr",
		Method:    "remove",
		Threshold: 0,
	}

	result, err := NewTrainingPipeline(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Greater(t, result.TrainRows, 0)
}

func TestTrainingPipelineCancelledContext(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTrainingPipeline(cfg, nil).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrainingPipelineUnknownFeatureStrategy(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cfg.Features = []FeatureStep{{Strategy: "box_cox", Columns: []string{"LotArea"}}}

	_, err := NewTrainingPipeline(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "box_cox")
}

func TestTrainingPipelineMissingTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cfg.Data.Target = "Price"

	_, err := NewTrainingPipeline(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Price")
}

func TestTrainingPipelineRunIDsAreUnique(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	p := NewTrainingPipeline(cfg, nil)
	r1, err := p.Run(context.Background())
	require.NoError(t, err)
	r2, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, r1.RunID, r2.RunID)
}

func TestTrainingPipelineRoutesWarningsToLogger(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	logger, buffer := log.NewTestLogger(log.LevelDebug)
	NewTrainingPipeline(cfg, logger)

	errors.Warn(errors.NewConfigurationWarning("OutliersDetector", "method", "winsorize"))

	assert.Contains(t, buffer.String(), "configuration warning")
	assert.Contains(t, buffer.String(), "winsorize")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
data:
  path: data/housing.zip
  target: SalePrice
missing:
  strategy: fill
  method: median
features:
  - strategy: log
    columns: [SalePrice]
  - strategy: onehot_encoding
    columns: [Neighborhood]
outliers:
  strategy: zscore
  threshold: 3
  columns: [SalePrice]
  method: remove
split:
  test_size: 0.25
  random_state: 7
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/housing.zip", cfg.Data.Path)
	assert.Equal(t, "SalePrice", cfg.Data.Target)
	assert.Equal(t, "fill", cfg.Missing.Strategy)
	assert.Equal(t, "median", cfg.Missing.Method)
	require.Len(t, cfg.Features, 2)
	assert.Equal(t, "log", cfg.Features[0].Strategy)
	assert.Equal(t, 0.25, cfg.Split.TestSize)
	assert.Equal(t, int64(7), cfg.Split.RandomState)

	// defaults fill in what the file omits
	assert.Equal(t, "artifacts", cfg.Artifacts.Dir)
	assert.True(t, cfg.Model.FitIntercept)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadConfigMissingDataPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  target: SalePrice\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.path")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "test size too large",
			mutate:  func(c *Config) { c.Split.TestSize = 1.5 },
			wantErr: "test_size",
		},
		{
			name:    "unknown missing strategy",
			mutate:  func(c *Config) { c.Missing.Strategy = "interpolate" },
			wantErr: "interpolate",
		},
		{
			name: "unknown outlier method",
			mutate: func(c *Config) {
				c.Outliers.Enabled = true
				c.Outliers.Method = "winsorize"
			},
			wantErr: "winsorize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Data:     DataConfig{Path: "data.csv", Target: "SalePrice"},
				Missing:  MissingConfig{Strategy: "drop"},
				Outliers: OutliersConfig{Strategy: "zscore", Method: "remove"},
				Split:    SplitConfig{TestSize: 0.2, RandomState: 42},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
