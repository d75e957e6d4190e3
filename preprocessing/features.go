package preprocessing

import (
	"math"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

// FeatureEngineeringStrategy transforms a fixed set of features, chosen at
// construction time. Non-selected columns and their order are always
// preserved in the output.
type FeatureEngineeringStrategy interface {
	ApplyTransformation(df *dataframe.DataFrame) (*dataframe.DataFrame, error)
}

// numericFeature fetches a selected column and checks it is numeric.
func numericFeature(op string, df *dataframe.DataFrame, name string) (*dataframe.Series, error) {
	col, ok := df.Column(name)
	if !ok {
		return nil, errors.NewInvalidFeatureError(op, name, "column not present")
	}
	if col.Kind() != dataframe.KindFloat {
		return nil, errors.NewInvalidFeatureError(op, name, "column is not numeric")
	}
	return col, nil
}

// LogTransformationStrategy applies log1p to each selected feature.
// Values at or below -1 are outside the domain of log1p and fail with a
// DomainError.
type LogTransformationStrategy struct {
	features []string
}

// NewLogTransformationStrategy builds a log transform over the given features.
func NewLogTransformationStrategy(features []string) *LogTransformationStrategy {
	return &LogTransformationStrategy{features: append([]string(nil), features...)}
}

// ApplyTransformation returns a copy of df with the selected features
// replaced by log1p of their values.
func (s *LogTransformationStrategy) ApplyTransformation(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	out := df.Clone()
	for _, name := range s.features {
		col, err := numericFeature("LogTransformation", out, name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			v := col.Float(i)
			if v <= -1 {
				return nil, errors.NewDomainError("LogTransformation", name, v, "log1p requires values > -1")
			}
			col.SetFloat(i, math.Log1p(v))
		}
	}
	return out, nil
}

// StandardScalingStrategy replaces each selected feature with its z-scores.
// Mean and standard deviation are refit from the input on every call; no
// fit state is carried across calls.
type StandardScalingStrategy struct {
	features []string
}

// NewStandardScalingStrategy builds a standard scaler over the given features.
func NewStandardScalingStrategy(features []string) *StandardScalingStrategy {
	return &StandardScalingStrategy{features: append([]string(nil), features...)}
}

// ApplyTransformation returns a copy of df with the selected features
// standardised to mean 0 and unit variance.
func (s *StandardScalingStrategy) ApplyTransformation(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	out := df.Clone()
	for _, name := range s.features {
		col, err := numericFeature("StandardScaling", out, name)
		if err != nil {
			return nil, err
		}

		mean, err := col.Mean()
		if err != nil {
			return nil, errors.NewInsufficientDataError("StandardScaling", name, "no non-missing values")
		}
		scale, _ := col.PopStdDev()
		if math.Abs(scale) < 1e-8 {
			// constant feature; avoid division by zero
			scale = 1
		}

		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			col.SetFloat(i, (col.Float(i)-mean)/scale)
		}
	}
	return out, nil
}

// MinMaxScalingStrategy rescales each selected feature linearly so its
// observed min/max map onto a target range.
type MinMaxScalingStrategy struct {
	features     []string
	featureRange [2]float64
}

// NewMinMaxScalingStrategy builds a min-max scaler targeting featureRange.
func NewMinMaxScalingStrategy(features []string, featureRange [2]float64) *MinMaxScalingStrategy {
	return &MinMaxScalingStrategy{
		features:     append([]string(nil), features...),
		featureRange: featureRange,
	}
}

// NewMinMaxScalingStrategyDefault builds a min-max scaler targeting [0, 1].
func NewMinMaxScalingStrategyDefault(features []string) *MinMaxScalingStrategy {
	return NewMinMaxScalingStrategy(features, [2]float64{0, 1})
}

// ApplyTransformation returns a copy of df with the selected features
// rescaled into the target range.
func (s *MinMaxScalingStrategy) ApplyTransformation(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	out := df.Clone()
	lo, hi := s.featureRange[0], s.featureRange[1]
	for _, name := range s.features {
		col, err := numericFeature("MinMaxScaling", out, name)
		if err != nil {
			return nil, err
		}

		min, err := col.Min()
		if err != nil {
			return nil, errors.NewInsufficientDataError("MinMaxScaling", name, "no non-missing values")
		}
		max, _ := col.Max()
		scale := max - min
		if math.Abs(scale) < 1e-8 {
			// constant feature maps onto the lower bound
			scale = 1
		}

		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			col.SetFloat(i, lo+(col.Float(i)-min)*(hi-lo)/scale)
		}
	}
	return out, nil
}

// OneHotEncodingStrategy replaces each selected categorical feature with
// drop-first indicator columns named {feature}_{category}.
//
// Categories are fitted from the first table the strategy is applied to,
// in sorted order, and kept for subsequent applications: values unseen at
// fit time (and missing cells) encode as all-zero indicators.
type OneHotEncodingStrategy struct {
	features []string
	fitted   map[string][]string
}

// NewOneHotEncodingStrategy builds a one-hot encoder over the given features.
func NewOneHotEncodingStrategy(features []string) *OneHotEncodingStrategy {
	return &OneHotEncodingStrategy{features: append([]string(nil), features...)}
}

// ApplyTransformation returns a copy of df with the selected categorical
// features replaced by indicator columns appended at the end of the table.
func (s *OneHotEncodingStrategy) ApplyTransformation(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	for _, name := range s.features {
		col, ok := df.Column(name)
		if !ok {
			return nil, errors.NewInvalidFeatureError("OneHotEncoding", name, "column not present")
		}
		if col.Kind() != dataframe.KindString {
			return nil, errors.NewInvalidFeatureError("OneHotEncoding", name, "column is not categorical")
		}
	}

	if s.fitted == nil {
		s.fitted = make(map[string][]string, len(s.features))
		for _, name := range s.features {
			col, _ := df.Column(name)
			cats, err := col.Categories()
			if err != nil {
				return nil, err
			}
			s.fitted[name] = cats
		}
	}

	n := df.NumRows()
	var indicators []*dataframe.Series
	for _, name := range s.features {
		col, _ := df.Column(name)
		cats := s.fitted[name]
		if len(cats) < 2 {
			// a single observed category encodes as the dropped baseline
			continue
		}
		for _, cat := range cats[1:] {
			vals := make([]float64, n)
			for i := 0; i < n; i++ {
				if !col.IsMissing(i) && col.Str(i) == cat {
					vals[i] = 1
				}
			}
			indicators = append(indicators, dataframe.NewFloatSeries(name+"_"+cat, vals))
		}
	}
	return df.DropColumns(s.features...).WithColumns(indicators...)
}

// FeatureEngineer is the context for feature-engineering strategies.
type FeatureEngineer struct {
	strategy FeatureEngineeringStrategy
	logger   log.Logger
}

// NewFeatureEngineer builds a context around the given strategy.
func NewFeatureEngineer(strategy FeatureEngineeringStrategy, opts ...Option) *FeatureEngineer {
	o := newOptions(opts)
	return &FeatureEngineer{strategy: strategy, logger: o.logger}
}

// SetStrategy swaps the active strategy. The previous one is discarded.
func (f *FeatureEngineer) SetStrategy(strategy FeatureEngineeringStrategy) {
	f.logger.Info("switching feature engineering strategy",
		log.ComponentKey, "preprocessing")
	f.strategy = strategy
}

// ApplyTransformation applies the active strategy to df.
func (f *FeatureEngineer) ApplyTransformation(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	f.logger.Info("applying feature engineering",
		log.ComponentKey, "preprocessing",
		log.OperationKey, "transform",
		log.SamplesKey, df.NumRows(),
		log.FeaturesKey, df.NumCols())
	return f.strategy.ApplyTransformation(df)
}
