// Package pipeline wires ingestion, preprocessing, training, and
// evaluation into a reproducible training run.
package pipeline

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// Config describes one training run. It is loaded from a YAML file with
// environment overrides under the AMES_ prefix.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Missing   MissingConfig   `mapstructure:"missing"`
	Features  []FeatureStep   `mapstructure:"features"`
	Outliers  OutliersConfig  `mapstructure:"outliers"`
	Split     SplitConfig     `mapstructure:"split"`
	Model     ModelConfig     `mapstructure:"model"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

type DataConfig struct {
	// Path points at a .zip archive or a .csv file.
	Path   string `mapstructure:"path"`
	Target string `mapstructure:"target"`
}

type ArtifactsConfig struct {
	Dir string `mapstructure:"dir"`
}

type MissingConfig struct {
	// Strategy is "drop" or "fill".
	Strategy string `mapstructure:"strategy"`
	// Axis applies to "drop": 0 for rows, 1 for columns.
	Axis int `mapstructure:"axis"`
	// Thresh applies to "drop": minimum present values to keep.
	Thresh int `mapstructure:"thresh"`
	// Method applies to "fill": mean, median, mode, or constant.
	Method string `mapstructure:"method"`
	// FillValue applies to the constant method.
	FillValue float64 `mapstructure:"fill_value"`
}

type FeatureStep struct {
	// Strategy is "log", "standard_scaling", "minmax_scaling", or
	// "onehot_encoding".
	Strategy string   `mapstructure:"strategy"`
	Columns  []string `mapstructure:"columns"`
	// Range applies to minmax_scaling; defaults to [0, 1].
	Range []float64 `mapstructure:"range"`
}

type OutliersConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Strategy is "zscore" or "iqr".
	Strategy  string   `mapstructure:"strategy"`
	Threshold float64  `mapstructure:"threshold"`
	Columns   []string `mapstructure:"columns"`
	// Method is "remove" or "cap".
	Method string `mapstructure:"method"`
}

type SplitConfig struct {
	TestSize    float64 `mapstructure:"test_size"`
	RandomState int64   `mapstructure:"random_state"`
}

type ModelConfig struct {
	FitIntercept bool `mapstructure:"fit_intercept"`
}

type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	ModelPath string `mapstructure:"model_path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads the config file at path, applying defaults and
// AMES_-prefixed environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("data.target", "SalePrice")
	v.SetDefault("artifacts.dir", "artifacts")
	v.SetDefault("missing.strategy", "drop")
	v.SetDefault("missing.axis", 0)
	v.SetDefault("outliers.enabled", true)
	v.SetDefault("outliers.strategy", "zscore")
	v.SetDefault("outliers.method", "remove")
	v.SetDefault("split.test_size", 0.2)
	v.SetDefault("split.random_state", 42)
	v.SetDefault("model.fit_intercept", true)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("AMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "LoadConfig: read "+path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "LoadConfig: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configs that cannot produce a training run.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return errors.NewValueError("Config.Validate", "data.path is required")
	}
	if c.Data.Target == "" {
		return errors.NewValueError("Config.Validate", "data.target is required")
	}
	if c.Split.TestSize <= 0 || c.Split.TestSize >= 1 {
		return errors.NewValueError("Config.Validate", "split.test_size must be in (0, 1)")
	}
	switch c.Missing.Strategy {
	case "drop", "fill":
	default:
		return errors.NewValueError("Config.Validate", "missing.strategy must be drop or fill, got "+c.Missing.Strategy)
	}
	if c.Outliers.Enabled {
		switch c.Outliers.Strategy {
		case "zscore", "iqr":
		default:
			return errors.NewValueError("Config.Validate", "outliers.strategy must be zscore or iqr, got "+c.Outliers.Strategy)
		}
		switch c.Outliers.Method {
		case "remove", "cap":
		default:
			return errors.NewValueError("Config.Validate", "outliers.method must be remove or cap, got "+c.Outliers.Method)
		}
	}
	return nil
}
