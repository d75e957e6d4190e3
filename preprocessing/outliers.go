package preprocessing

import (
	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

// OutlierDetectionStrategy flags anomalous cells of a table. The returned
// mask has the same shape and column names as the input; true means
// flagged. Columns the strategy does not examine contribute all-false
// mask columns.
type OutlierDetectionStrategy interface {
	DetectOutliers(df *dataframe.DataFrame) (*dataframe.DataFrame, error)
}

// Outlier handling methods accepted by OutliersDetector.HandleOutliers.
const (
	HandleRemove = "remove"
	HandleCap    = "cap"
)

// DefaultZScoreThreshold is the z-score cutoff used when none is given.
const DefaultZScoreThreshold = 3.0

// allFalseMask builds a same-shape boolean mask with every cell false.
func allFalseMask(df *dataframe.DataFrame) *dataframe.DataFrame {
	cols := make([]*dataframe.Series, df.NumCols())
	for j := 0; j < df.NumCols(); j++ {
		cols[j] = dataframe.NewBoolSeries(df.ColumnAt(j).Name(), make([]bool, df.NumRows()))
	}
	mask, _ := dataframe.New(cols...)
	return mask
}

// IQROutlierDetectionStrategy flags values outside
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR] per numeric column, with quartiles computed
// by linear interpolation.
type IQROutlierDetectionStrategy struct{}

// NewIQROutlierDetectionStrategy builds an IQR detection strategy.
func NewIQROutlierDetectionStrategy() *IQROutlierDetectionStrategy {
	return &IQROutlierDetectionStrategy{}
}

// DetectOutliers returns the boolean outlier mask for df.
func (s *IQROutlierDetectionStrategy) DetectOutliers(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	mask := allFalseMask(df)
	for _, name := range df.NumericColumnNames() {
		col, _ := df.Column(name)

		q1, err := col.Quantile(0.25)
		if err != nil {
			// a column with no present values flags nothing
			continue
		}
		q3, _ := col.Quantile(0.75)
		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr

		flags := make([]bool, col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			v := col.Float(i)
			flags[i] = v < lower || v > upper
		}
		var werr error
		mask, werr = mask.WithColumn(dataframe.NewBoolSeries(name, flags))
		if werr != nil {
			return nil, werr
		}
	}
	return mask, nil
}

// ZScoreOutlierDetectionStrategy flags values whose absolute z-score
// exceeds a threshold. The z-score uses the column's sample standard
// deviation; a zero-variance column flags nothing.
type ZScoreOutlierDetectionStrategy struct {
	threshold float64
	features  []string
}

// NewZScoreOutlierDetectionStrategy builds a z-score detection strategy.
// threshold 0 selects DefaultZScoreThreshold. When features are given the
// strategy restricts itself to those columns, otherwise it examines every
// numeric column.
func NewZScoreOutlierDetectionStrategy(threshold float64, features ...string) *ZScoreOutlierDetectionStrategy {
	if threshold == 0 {
		threshold = DefaultZScoreThreshold
	}
	return &ZScoreOutlierDetectionStrategy{threshold: threshold, features: features}
}

// DetectOutliers returns the boolean outlier mask for df.
func (s *ZScoreOutlierDetectionStrategy) DetectOutliers(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	selected := s.features
	if len(selected) == 0 {
		selected = df.NumericColumnNames()
	} else {
		for _, name := range selected {
			col, ok := df.Column(name)
			if !ok {
				return nil, errors.NewInvalidFeatureError("ZScoreOutlierDetectionStrategy", name, "column not present")
			}
			if col.Kind() != dataframe.KindFloat {
				return nil, errors.NewInvalidFeatureError("ZScoreOutlierDetectionStrategy", name, "column is not numeric")
			}
		}
	}

	mask := allFalseMask(df)
	for _, name := range selected {
		col, _ := df.Column(name)

		mean, err := col.Mean()
		if err != nil {
			continue
		}
		std, err := col.StdDev()
		if err != nil || std == 0 {
			// zero variance yields undefined z; treat as no outliers
			continue
		}

		flags := make([]bool, col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			z := (col.Float(i) - mean) / std
			if z < 0 {
				z = -z
			}
			flags[i] = z > s.threshold
		}
		var werr error
		mask, werr = mask.WithColumn(dataframe.NewBoolSeries(name, flags))
		if werr != nil {
			return nil, werr
		}
	}
	return mask, nil
}

// OutliersDetector is the context for outlier detection strategies.
type OutliersDetector struct {
	strategy OutlierDetectionStrategy
	logger   log.Logger
}

// NewOutliersDetector builds a detector around the given strategy.
func NewOutliersDetector(strategy OutlierDetectionStrategy, opts ...Option) *OutliersDetector {
	o := newOptions(opts)
	return &OutliersDetector{strategy: strategy, logger: o.logger}
}

// SetStrategy swaps the active strategy. The previous one is discarded.
func (d *OutliersDetector) SetStrategy(strategy OutlierDetectionStrategy) {
	d.logger.Info("switching outlier detection strategy",
		log.ComponentKey, "preprocessing")
	d.strategy = strategy
}

// DetectOutliers runs the active strategy against df.
func (d *OutliersDetector) DetectOutliers(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	d.logger.Info("performing outlier detection",
		log.ComponentKey, "preprocessing",
		log.OperationKey, "detect",
		log.SamplesKey, df.NumRows())
	return d.strategy.DetectOutliers(df)
}

// HandleOutliers remediates outliers in df.
//
// "remove" drops every row flagged in any column of the detection mask.
// "cap" clips each numeric column to its own [1st, 99th] percentile; the
// detection strategy plays no part in capping, only in removal. Any other
// method raises a ConfigurationWarning and returns the input unchanged.
func (d *OutliersDetector) HandleOutliers(df *dataframe.DataFrame, method string) (*dataframe.DataFrame, error) {
	switch method {
	case HandleRemove:
		d.logger.Info("removing outliers", log.ComponentKey, "preprocessing")
		mask, err := d.DetectOutliers(df)
		if err != nil {
			return nil, err
		}
		keep := make([]bool, df.NumRows())
		for i := range keep {
			flagged := false
			for j := 0; j < mask.NumCols(); j++ {
				if mask.ColumnAt(j).Bool(i) {
					flagged = true
					break
				}
			}
			keep[i] = !flagged
		}
		return df.Filter(keep)

	case HandleCap:
		d.logger.Info("capping outliers", log.ComponentKey, "preprocessing")
		out := df.Clone()
		for _, name := range out.NumericColumnNames() {
			col, _ := out.Column(name)
			lower, err := col.Quantile(0.01)
			if err != nil {
				continue
			}
			upper, _ := col.Quantile(0.99)
			for i := 0; i < col.Len(); i++ {
				if col.IsMissing(i) {
					continue
				}
				v := col.Float(i)
				if v < lower {
					col.SetFloat(i, lower)
				} else if v > upper {
					col.SetFloat(i, upper)
				}
			}
		}
		return out, nil

	default:
		errors.Warn(errors.NewConfigurationWarning("OutliersDetector", "method", method))
		return df, nil
	}
}
