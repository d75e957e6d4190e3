// Package eda provides summary statistics and diagnostic plots for
// exploring a housing table before modelling.
package eda

import (
	"sort"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// ColumnSummary holds the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics for every numeric column,
// skipping missing values. Columns with no present values are omitted.
func Describe(df *dataframe.DataFrame) ([]ColumnSummary, error) {
	if df.NumRows() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Describe")
	}

	summaries := make([]ColumnSummary, 0, df.NumCols())
	for _, name := range df.NumericColumnNames() {
		col, ok := df.Column(name)
		if !ok {
			continue
		}

		count := col.Len() - col.MissingCount()
		if count == 0 {
			continue
		}

		mean, err := col.Mean()
		if err != nil {
			return nil, errors.Wrap(err, "Describe: "+name)
		}
		std, err := col.StdDev()
		if err != nil {
			return nil, errors.Wrap(err, "Describe: "+name)
		}
		min, err := col.Min()
		if err != nil {
			return nil, errors.Wrap(err, "Describe: "+name)
		}
		max, err := col.Max()
		if err != nil {
			return nil, errors.Wrap(err, "Describe: "+name)
		}
		q1, err := col.Quantile(0.25)
		if err != nil {
			return nil, errors.Wrap(err, "Describe: "+name)
		}
		median, err := col.Quantile(0.5)
		if err != nil {
			return nil, errors.Wrap(err, "Describe: "+name)
		}
		q3, err := col.Quantile(0.75)
		if err != nil {
			return nil, errors.Wrap(err, "Describe: "+name)
		}

		summaries = append(summaries, ColumnSummary{
			Column: name,
			Count:  count,
			Mean:   mean,
			Std:    std,
			Min:    min,
			Q1:     q1,
			Median: median,
			Q3:     q3,
			Max:    max,
		})
	}
	return summaries, nil
}

// MissingValueCount reports how many values are absent in one column.
type MissingValueCount struct {
	Column  string  `json:"column"`
	Missing int     `json:"missing"`
	Ratio   float64 `json:"ratio"`
}

// MissingValuesSummary reports, per column, the number and ratio of
// missing values. Columns without missing values are omitted. The result
// is sorted by descending missing count, then by column name.
func MissingValuesSummary(df *dataframe.DataFrame) []MissingValueCount {
	n := df.NumRows()
	if n == 0 {
		return nil
	}

	var counts []MissingValueCount
	for _, name := range df.ColumnNames() {
		col, _ := df.Column(name)
		missing := col.MissingCount()
		if missing == 0 {
			continue
		}
		counts = append(counts, MissingValueCount{
			Column:  name,
			Missing: missing,
			Ratio:   float64(missing) / float64(n),
		})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Missing != counts[j].Missing {
			return counts[i].Missing > counts[j].Missing
		}
		return counts[i].Column < counts[j].Column
	})
	return counts
}
