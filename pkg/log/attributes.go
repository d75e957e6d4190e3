// Package log defines standard attribute keys for pipeline operations.
//
// Using these keys consistently across steps makes run logs filterable by
// component, operation, and data shape.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the model or strategy type.
	// Examples: "LinearRegression", "ZScoreOutlierDetectionStrategy"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "transform", "handle", "detect", "split"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "preprocessing", "regression", "pipeline"
	ComponentKey = "ml.component"

	// StepKey names the pipeline step emitting the record.
	StepKey = "pipeline.step"

	// RunIDKey carries the unique identifier of a pipeline run.
	RunIDKey = "pipeline.run_id"
)

// Data shape.
const (
	// SamplesKey is the number of rows in the table being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the table being processed.
	FeaturesKey = "data.features"

	// ColumnKey names a single column an operation is restricted to.
	ColumnKey = "data.column"
)

// Performance and results.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MetricKey names an evaluation metric being reported.
	MetricKey = "eval.metric"

	// ScoreKey carries the value of an evaluation metric.
	ScoreKey = "eval.score"
)
