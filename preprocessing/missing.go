// Package preprocessing implements the interchangeable data-cleaning and
// transformation strategies of the pipeline: missing-value handling,
// outlier detection, feature engineering, and the train/test splitter.
//
// Each strategy family follows the same shape: a narrow interface, one
// implementation per variant selected explicitly at construction time, and
// a context object holding the currently active strategy. Strategies are
// pure functions over their input table; the input is never mutated.
package preprocessing

import (
	"fmt"
	"strconv"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

// Option configures a strategy context.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger injects the logger a context reports through. Contexts without
// one stay silent.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: log.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MissingValuesHandlingStrategy fills or drops missing entries of a table.
type MissingValuesHandlingStrategy interface {
	Handle(df *dataframe.DataFrame) (*dataframe.DataFrame, error)
}

// Axis selects the direction a drop operates along.
type Axis int

const (
	// AxisRows drops rows.
	AxisRows Axis = 0
	// AxisColumns drops columns.
	AxisColumns Axis = 1
)

// DropMissingValuesStrategy removes rows or columns carrying missing cells.
type DropMissingValuesStrategy struct {
	axis   Axis
	thresh int
}

// NewDropMissingValuesStrategy builds a drop strategy. thresh is the
// minimum number of non-missing cells a row/column needs to survive;
// thresh 0 means any missing cell is fatal.
func NewDropMissingValuesStrategy(axis Axis, thresh int) *DropMissingValuesStrategy {
	return &DropMissingValuesStrategy{axis: axis, thresh: thresh}
}

// Handle returns a copy of df without the rows or columns that fall below
// the threshold.
func (s *DropMissingValuesStrategy) Handle(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	if s.axis == AxisColumns {
		required := s.thresh
		if required == 0 {
			required = df.NumRows()
		}
		var drop []string
		for _, name := range df.ColumnNames() {
			col, _ := df.Column(name)
			if col.Len()-col.MissingCount() < required {
				drop = append(drop, name)
			}
		}
		return df.DropColumns(drop...), nil
	}

	required := s.thresh
	if required == 0 {
		required = df.NumCols()
	}
	keep := make([]bool, df.NumRows())
	for i := range keep {
		present := 0
		for j := 0; j < df.NumCols(); j++ {
			if !df.ColumnAt(j).IsMissing(i) {
				present++
			}
		}
		keep[i] = present >= required
	}
	return df.Filter(keep)
}

// FillMethod selects how FillMissingValuesStrategy computes replacements.
type FillMethod string

const (
	FillMean     FillMethod = "mean"
	FillMedian   FillMethod = "median"
	FillMode     FillMethod = "mode"
	FillConstant FillMethod = "constant"
)

// FillMissingValuesStrategy replaces missing entries with a column
// aggregate or a constant.
//
// mean and median touch numeric columns only; mode touches every column;
// constant replaces all missing entries with the given literal. An
// unrecognised method raises a ConfigurationWarning and returns the input
// unchanged.
type FillMissingValuesStrategy struct {
	method    FillMethod
	fillValue any
}

// NewFillMissingValuesStrategy builds a fill strategy. fillValue is only
// consulted for FillConstant.
func NewFillMissingValuesStrategy(method FillMethod, fillValue any) *FillMissingValuesStrategy {
	return &FillMissingValuesStrategy{method: method, fillValue: fillValue}
}

// Handle returns a copy of df with missing entries filled.
func (s *FillMissingValuesStrategy) Handle(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	switch s.method {
	case FillMean, FillMedian:
		return s.fillNumericAggregate(df)
	case FillMode:
		return s.fillMode(df)
	case FillConstant:
		return s.fillConstant(df)
	default:
		errors.Warn(errors.NewConfigurationWarning("FillMissingValuesStrategy", "method", string(s.method)))
		return df, nil
	}
}

func (s *FillMissingValuesStrategy) fillNumericAggregate(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	out := df.Clone()
	for _, name := range out.NumericColumnNames() {
		col, _ := out.Column(name)
		if col.MissingCount() == 0 {
			continue
		}

		var agg float64
		var err error
		if s.method == FillMean {
			agg, err = col.Mean()
		} else {
			agg, err = col.Median()
		}
		if err != nil {
			return nil, errors.NewInsufficientDataError("Fill("+string(s.method)+")", name, "no non-missing values")
		}

		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				col.SetFloat(i, agg)
			}
		}
	}
	return out, nil
}

func (s *FillMissingValuesStrategy) fillMode(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	out := df.Clone()
	for _, name := range out.ColumnNames() {
		col, _ := out.Column(name)
		if col.MissingCount() == 0 || col.Kind() == dataframe.KindBool {
			continue
		}

		switch col.Kind() {
		case dataframe.KindFloat:
			mode, err := col.ModeFloat()
			if err != nil {
				return nil, errors.NewInsufficientDataError("Fill(mode)", name, "no non-missing values")
			}
			for i := 0; i < col.Len(); i++ {
				if col.IsMissing(i) {
					col.SetFloat(i, mode)
				}
			}
		case dataframe.KindString:
			mode, err := col.ModeString()
			if err != nil {
				return nil, errors.NewInsufficientDataError("Fill(mode)", name, "no non-missing values")
			}
			for i := 0; i < col.Len(); i++ {
				if col.IsMissing(i) {
					col.SetStr(i, mode)
				}
			}
		}
	}
	return out, nil
}

func (s *FillMissingValuesStrategy) fillConstant(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	out := df.Clone()
	for _, name := range out.ColumnNames() {
		col, _ := out.Column(name)
		if col.MissingCount() == 0 || col.Kind() == dataframe.KindBool {
			continue
		}

		switch col.Kind() {
		case dataframe.KindFloat:
			v, err := toFloat(s.fillValue)
			if err != nil {
				return nil, errors.NewValueError("Fill(constant)",
					fmt.Sprintf("fill value %v is not numeric, required by column %q", s.fillValue, name))
			}
			for i := 0; i < col.Len(); i++ {
				if col.IsMissing(i) {
					col.SetFloat(i, v)
				}
			}
		case dataframe.KindString:
			v := fmt.Sprint(s.fillValue)
			for i := 0; i < col.Len(); i++ {
				if col.IsMissing(i) {
					col.SetStr(i, v)
				}
			}
		}
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(t, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
}

// MissingValuesHandler is the context for missing-value strategies. It
// holds exactly one active strategy; SetStrategy replaces it with no
// history retained.
type MissingValuesHandler struct {
	strategy MissingValuesHandlingStrategy
	logger   log.Logger
}

// NewMissingValuesHandler builds a handler around the given strategy.
func NewMissingValuesHandler(strategy MissingValuesHandlingStrategy, opts ...Option) *MissingValuesHandler {
	o := newOptions(opts)
	return &MissingValuesHandler{strategy: strategy, logger: o.logger}
}

// SetStrategy swaps the active strategy. The previous one is discarded.
func (h *MissingValuesHandler) SetStrategy(strategy MissingValuesHandlingStrategy) {
	h.logger.Info("switching missing-value handling strategy",
		log.ComponentKey, "preprocessing")
	h.strategy = strategy
}

// HandleMissingValues applies the active strategy to df.
func (h *MissingValuesHandler) HandleMissingValues(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	h.logger.Info("handling missing values",
		log.ComponentKey, "preprocessing",
		log.OperationKey, "handle",
		log.SamplesKey, df.NumRows(),
		log.FeaturesKey, df.NumCols())
	return h.strategy.Handle(df)
}
