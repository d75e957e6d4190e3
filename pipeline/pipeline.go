package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/ingestion"
	"github.com/Aditi-Asati/ames-price-prediction/metrics"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
	"github.com/Aditi-Asati/ames-price-prediction/preprocessing"
	"github.com/Aditi-Asati/ames-price-prediction/regression"
)

// State carries the data frame and derived artifacts between steps.
type State struct {
	Config *Config

	Frame        *dataframe.DataFrame
	XTrain       *dataframe.DataFrame
	XTest        *dataframe.DataFrame
	YTrain       *dataframe.Series
	YTest        *dataframe.Series
	FeatureNames []string

	Model   *regression.LinearRegression
	Metrics map[string]float64
}

// Step is one stage of the training pipeline.
type Step interface {
	Name() string
	Execute(ctx context.Context, state *State) error
}

// Result summarizes a completed training run.
type Result struct {
	RunID       string             `json:"run_id"`
	StartedAt   time.Time          `json:"started_at"`
	Duration    time.Duration      `json:"duration"`
	ModelPath   string             `json:"model_path"`
	MetricsPath string             `json:"metrics_path"`
	Metrics     map[string]float64 `json:"metrics"`
	TrainRows   int                `json:"train_rows"`
	TestRows    int                `json:"test_rows"`
}

// TrainingPipeline runs the full ingest-preprocess-train-evaluate flow
// and writes the resulting model and metrics under the artifacts
// directory.
type TrainingPipeline struct {
	cfg    *Config
	logger log.Logger
	steps  []Step
}

// NewTrainingPipeline builds a pipeline from the config. Pass nil to
// discard logs. Configuration warnings raised by the preprocessing
// strategies are routed into the pipeline's logger.
func NewTrainingPipeline(cfg *Config, logger log.Logger) *TrainingPipeline {
	if logger == nil {
		logger = log.Discard()
	}
	errors.SetWarningHandler(func(w error) {
		logger.Warn("configuration warning", log.ErrAttrKey, w)
	})
	return &TrainingPipeline{
		cfg:    cfg,
		logger: logger,
		steps: []Step{
			&ingestStep{logger: logger},
			&missingValuesStep{logger: logger},
			&featureEngineeringStep{logger: logger},
			&outlierStep{logger: logger},
			&splitStep{logger: logger},
			&trainStep{logger: logger},
			&evaluateStep{logger: logger},
		},
	}
}

// Run executes every step in order and persists the model and metrics
// to artifacts/<run-id>/.
func (p *TrainingPipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	started := time.Now()
	logger := p.logger.With(log.RunIDKey, runID)
	logger.Info("training run started")

	state := &State{Config: p.cfg}
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "pipeline cancelled before step "+step.Name())
		}

		stepStart := time.Now()
		if err := step.Execute(ctx, state); err != nil {
			logger.Error("step failed", log.StepKey, step.Name(), log.ErrAttrKey, err)
			return nil, errors.Wrap(err, "step "+step.Name())
		}
		logger.Info("step completed",
			log.StepKey, step.Name(),
			log.DurationMsKey, time.Since(stepStart).Milliseconds())
	}

	runDir := filepath.Join(p.cfg.Artifacts.Dir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create artifacts directory")
	}

	modelPath := filepath.Join(runDir, "model.json")
	if err := state.Model.Save(modelPath); err != nil {
		return nil, err
	}

	metricsPath := filepath.Join(runDir, "metrics.json")
	metricsJSON, err := json.MarshalIndent(state.Metrics, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal metrics")
	}
	if err := os.WriteFile(metricsPath, metricsJSON, 0o644); err != nil {
		return nil, errors.Wrap(err, "write metrics")
	}

	result := &Result{
		RunID:       runID,
		StartedAt:   started,
		Duration:    time.Since(started),
		ModelPath:   modelPath,
		MetricsPath: metricsPath,
		Metrics:     state.Metrics,
		TrainRows:   state.XTrain.NumRows(),
		TestRows:    state.XTest.NumRows(),
	}
	logger.Info("training run finished",
		log.DurationMsKey, result.Duration.Milliseconds(),
		log.ScoreKey, state.Metrics["R2"])
	return result, nil
}

type ingestStep struct {
	logger log.Logger
}

func (s *ingestStep) Name() string { return "ingest" }

func (s *ingestStep) Execute(_ context.Context, state *State) error {
	extractor, err := ingestion.NewDataExtractor(state.Config.Data.Path, ingestion.WithLogger(s.logger))
	if err != nil {
		return err
	}
	df, err := extractor.ExtractData(state.Config.Data.Path)
	if err != nil {
		return err
	}
	if !df.HasColumn(state.Config.Data.Target) {
		return errors.NewInvalidTargetError(state.Config.Data.Target, df.ColumnNames())
	}
	state.Frame = df
	return nil
}

type missingValuesStep struct {
	logger log.Logger
}

func (s *missingValuesStep) Name() string { return "handle-missing-values" }

func (s *missingValuesStep) Execute(_ context.Context, state *State) error {
	cfg := state.Config.Missing

	var strategy preprocessing.MissingValuesHandlingStrategy
	switch cfg.Strategy {
	case "drop":
		strategy = preprocessing.NewDropMissingValuesStrategy(preprocessing.Axis(cfg.Axis), cfg.Thresh)
	case "fill":
		method, fillValue, err := fillSpec(cfg)
		if err != nil {
			return err
		}
		strategy = preprocessing.NewFillMissingValuesStrategy(method, fillValue)
	default:
		return errors.NewValueError(s.Name(), "unknown missing value strategy: "+cfg.Strategy)
	}

	handler := preprocessing.NewMissingValuesHandler(strategy, preprocessing.WithLogger(s.logger))
	df, err := handler.HandleMissingValues(state.Frame)
	if err != nil {
		return err
	}
	state.Frame = df
	return nil
}

func fillSpec(cfg MissingConfig) (preprocessing.FillMethod, any, error) {
	switch cfg.Method {
	case "mean":
		return preprocessing.FillMean, nil, nil
	case "median":
		return preprocessing.FillMedian, nil, nil
	case "mode":
		return preprocessing.FillMode, nil, nil
	case "constant":
		return preprocessing.FillConstant, cfg.FillValue, nil
	default:
		return "", nil, errors.NewValueError("handle-missing-values", "unknown fill method: "+cfg.Method)
	}
}

type featureEngineeringStep struct {
	logger log.Logger
}

func (s *featureEngineeringStep) Name() string { return "feature-engineering" }

func (s *featureEngineeringStep) Execute(_ context.Context, state *State) error {
	df := state.Frame
	for _, spec := range state.Config.Features {
		var strategy preprocessing.FeatureEngineeringStrategy
		switch spec.Strategy {
		case "log":
			strategy = preprocessing.NewLogTransformationStrategy(spec.Columns)
		case "standard_scaling":
			strategy = preprocessing.NewStandardScalingStrategy(spec.Columns)
		case "minmax_scaling":
			if len(spec.Range) == 2 {
				strategy = preprocessing.NewMinMaxScalingStrategy(spec.Columns, [2]float64{spec.Range[0], spec.Range[1]})
			} else {
				strategy = preprocessing.NewMinMaxScalingStrategyDefault(spec.Columns)
			}
		case "onehot_encoding":
			strategy = preprocessing.NewOneHotEncodingStrategy(spec.Columns)
		default:
			return errors.NewValueError(s.Name(), "unknown feature engineering strategy: "+spec.Strategy)
		}

		engineer := preprocessing.NewFeatureEngineer(strategy, preprocessing.WithLogger(s.logger))
		out, err := engineer.ApplyTransformation(df)
		if err != nil {
			return err
		}
		df = out
	}
	state.Frame = df
	return nil
}

type outlierStep struct {
	logger log.Logger
}

func (s *outlierStep) Name() string { return "handle-outliers" }

func (s *outlierStep) Execute(_ context.Context, state *State) error {
	cfg := state.Config.Outliers
	if !cfg.Enabled {
		return nil
	}

	var strategy preprocessing.OutlierDetectionStrategy
	switch cfg.Strategy {
	case "zscore":
		strategy = preprocessing.NewZScoreOutlierDetectionStrategy(cfg.Threshold, cfg.Columns...)
	case "iqr":
		strategy = preprocessing.NewIQROutlierDetectionStrategy()
	default:
		return errors.NewValueError(s.Name(), "unknown outlier detection strategy: "+cfg.Strategy)
	}

	detector := preprocessing.NewOutliersDetector(strategy, preprocessing.WithLogger(s.logger))
	df, err := detector.HandleOutliers(state.Frame, cfg.Method)
	if err != nil {
		return err
	}
	state.Frame = df
	return nil
}

type splitStep struct {
	logger log.Logger
}

func (s *splitStep) Name() string { return "split" }

func (s *splitStep) Execute(_ context.Context, state *State) error {
	cfg := state.Config.Split
	splitter := preprocessing.NewDataSplitter(cfg.TestSize, cfg.RandomState, preprocessing.WithLogger(s.logger))

	xTrain, xTest, yTrain, yTest, err := splitter.SplitData(state.Frame, state.Config.Data.Target)
	if err != nil {
		return err
	}
	state.XTrain, state.XTest = xTrain, xTest
	state.YTrain, state.YTest = yTrain, yTest
	state.FeatureNames = xTrain.NumericColumnNames()
	return nil
}

type trainStep struct {
	logger log.Logger
}

func (s *trainStep) Name() string { return "train" }

func (s *trainStep) Execute(_ context.Context, state *State) error {
	X, err := state.XTrain.Matrix(state.FeatureNames)
	if err != nil {
		return err
	}
	y, err := state.YTrain.Vector()
	if err != nil {
		return err
	}

	model := regression.NewLinearRegression(
		regression.WithFitIntercept(state.Config.Model.FitIntercept),
		regression.WithFeatureNames(state.FeatureNames),
	)
	if err := model.Fit(X, columnMatrix(y)); err != nil {
		return err
	}

	s.logger.Info("model trained",
		log.ModelNameKey, "linear_regression",
		log.SamplesKey, state.XTrain.NumRows(),
		log.FeaturesKey, len(state.FeatureNames))
	state.Model = model
	return nil
}

type evaluateStep struct {
	logger log.Logger
}

func (s *evaluateStep) Name() string { return "evaluate" }

func (s *evaluateStep) Execute(_ context.Context, state *State) error {
	X, err := state.XTest.Matrix(state.FeatureNames)
	if err != nil {
		return err
	}
	y, err := state.YTest.Vector()
	if err != nil {
		return err
	}

	evaluator := metrics.NewModelEvaluator(metrics.NewRegressionModelEvaluationStrategy(s.logger), s.logger)
	results, err := evaluator.Evaluate(state.Model, X, columnMatrix(y))
	if err != nil {
		return err
	}
	state.Metrics = results
	return nil
}

func columnMatrix(v *mat.VecDense) mat.Matrix {
	out := mat.NewDense(v.Len(), 1, nil)
	for i := 0; i < v.Len(); i++ {
		out.Set(i, 0, v.AtVec(i))
	}
	return out
}
