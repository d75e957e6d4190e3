package dataframe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// Column statistics are computed over non-missing cells only. All of them
// return ErrEmptyData (wrapped) when no present value exists.

// Mean returns the arithmetic mean of a numeric series.
func (s *Series) Mean() (float64, error) {
	vals, err := s.nonMissingFloats()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Series.Mean")
	}
	return stat.Mean(vals, nil), nil
}

// StdDev returns the sample standard deviation (n-1 denominator) of a
// numeric series. A single present value has zero deviation.
func (s *Series) StdDev() (float64, error) {
	vals, err := s.nonMissingFloats()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Series.StdDev")
	}
	if len(vals) == 1 {
		return 0, nil
	}
	return stat.StdDev(vals, nil), nil
}

// PopStdDev returns the population standard deviation (n denominator).
func (s *Series) PopStdDev() (float64, error) {
	vals, err := s.nonMissingFloats()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Series.PopStdDev")
	}
	mean := stat.Mean(vals, nil)
	var sumSq float64
	for _, v := range vals {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(vals))), nil
}

// Min returns the smallest present value of a numeric series.
func (s *Series) Min() (float64, error) {
	vals, err := s.nonMissingFloats()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Series.Min")
	}
	return floats.Min(vals), nil
}

// Max returns the largest present value of a numeric series.
func (s *Series) Max() (float64, error) {
	vals, err := s.nonMissingFloats()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Series.Max")
	}
	return floats.Max(vals), nil
}

// Quantile returns the p-quantile (0 <= p <= 1) of a numeric series using
// linear interpolation at position (n-1)*p over the sorted present values,
// matching pandas' default interpolation.
func (s *Series) Quantile(p float64) (float64, error) {
	vals, err := s.nonMissingFloats()
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Series.Quantile")
	}
	if p < 0 || p > 1 {
		return 0, errors.NewValueError("Series.Quantile", "p must be in [0, 1]")
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), nil
}

// Median returns the 0.5-quantile.
func (s *Series) Median() (float64, error) {
	return s.Quantile(0.5)
}

// ModeFloat returns the most frequent present value of a numeric series.
// Ties break in favour of the first-encountered value.
func (s *Series) ModeFloat() (float64, error) {
	if s.kind != KindFloat {
		return 0, errors.NewValueError("Series.ModeFloat", "not a numeric column")
	}
	counts := make(map[float64]int)
	var best float64
	bestCount := 0
	for i, v := range s.floats {
		if !s.valid[i] {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	if bestCount == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Series.ModeFloat")
	}
	return best, nil
}

// ModeString returns the most frequent present value of a string series.
// Ties break in favour of the first-encountered value.
func (s *Series) ModeString() (string, error) {
	if s.kind != KindString {
		return "", errors.NewValueError("Series.ModeString", "not a string column")
	}
	counts := make(map[string]int)
	var best string
	bestCount := 0
	for i, v := range s.strings {
		if !s.valid[i] {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	if bestCount == 0 {
		return "", errors.Wrap(errors.ErrEmptyData, "Series.ModeString")
	}
	return best, nil
}

// Categories returns the distinct present values of a string series in
// sorted order.
func (s *Series) Categories() ([]string, error) {
	if s.kind != KindString {
		return nil, errors.NewValueError("Series.Categories", "not a string column")
	}
	seen := make(map[string]bool)
	var cats []string
	for i, v := range s.strings {
		if !s.valid[i] || seen[v] {
			continue
		}
		seen[v] = true
		cats = append(cats, v)
	}
	sort.Strings(cats)
	return cats, nil
}
