// Package dataframe implements the tabular data model the preprocessing
// strategies operate on: ordered rows by named, typed columns, with
// explicit missing-value tracking. Every operation returns a new value;
// a DataFrame handed to a transformation is never mutated.
package dataframe

import (
	"math"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// Kind is the semantic type of a Series.
type Kind int

const (
	// KindFloat marks a numeric column backed by float64 values.
	KindFloat Kind = iota
	// KindString marks a categorical/text column.
	KindString
	// KindBool marks a boolean column, used by outlier masks.
	KindBool
)

// String returns the kind name as used in summaries and logs.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Series is one named column. Cells may be missing; missing numeric cells
// read back as NaN, missing string cells as the empty string.
type Series struct {
	name    string
	kind    Kind
	floats  []float64
	strings []string
	bools   []bool
	valid   []bool
}

// NewFloatSeries builds a numeric series. NaN values are recorded as missing.
func NewFloatSeries(name string, values []float64) *Series {
	s := &Series{
		name:   name,
		kind:   KindFloat,
		floats: append([]float64(nil), values...),
		valid:  make([]bool, len(values)),
	}
	for i, v := range values {
		s.valid[i] = !math.IsNaN(v)
	}
	return s
}

// NewStringSeries builds a categorical series with every cell present.
func NewStringSeries(name string, values []string) *Series {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return NewStringSeriesWithMissing(name, values, valid)
}

// NewStringSeriesWithMissing builds a categorical series with an explicit
// validity mask. valid[i] == false marks cell i as missing.
func NewStringSeriesWithMissing(name string, values []string, valid []bool) *Series {
	s := &Series{
		name:    name,
		kind:    KindString,
		strings: append([]string(nil), values...),
		valid:   append([]bool(nil), valid...),
	}
	for i, ok := range s.valid {
		if !ok {
			s.strings[i] = ""
		}
	}
	return s
}

// NewBoolSeries builds a boolean series. Mask columns have no missing cells.
func NewBoolSeries(name string, values []bool) *Series {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return &Series{
		name:  name,
		kind:  KindBool,
		bools: append([]bool(nil), values...),
		valid: valid,
	}
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Kind returns the column's semantic type.
func (s *Series) Kind() Kind { return s.kind }

// Len returns the number of cells.
func (s *Series) Len() int { return len(s.valid) }

// IsMissing reports whether cell i is missing.
func (s *Series) IsMissing(i int) bool { return !s.valid[i] }

// MissingCount returns the number of missing cells.
func (s *Series) MissingCount() int {
	n := 0
	for _, ok := range s.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Float returns cell i of a numeric series; NaN when missing.
func (s *Series) Float(i int) float64 {
	if !s.valid[i] {
		return math.NaN()
	}
	return s.floats[i]
}

// Str returns cell i of a string series; empty when missing.
func (s *Series) Str(i int) string {
	return s.strings[i]
}

// Bool returns cell i of a boolean series.
func (s *Series) Bool(i int) bool {
	return s.bools[i]
}

// SetFloat overwrites cell i with a present numeric value.
func (s *Series) SetFloat(i int, v float64) {
	s.floats[i] = v
	s.valid[i] = !math.IsNaN(v)
}

// SetStr overwrites cell i with a present string value.
func (s *Series) SetStr(i int, v string) {
	s.strings[i] = v
	s.valid[i] = true
}

// Rename returns a copy of the series under a new name.
func (s *Series) Rename(name string) *Series {
	c := s.Clone()
	c.name = name
	return c
}

// Clone returns a deep copy.
func (s *Series) Clone() *Series {
	return &Series{
		name:    s.name,
		kind:    s.kind,
		floats:  append([]float64(nil), s.floats...),
		strings: append([]string(nil), s.strings...),
		bools:   append([]bool(nil), s.bools...),
		valid:   append([]bool(nil), s.valid...),
	}
}

// Take returns a new series holding the cells at the given row indices, in
// the given order.
func (s *Series) Take(indices []int) *Series {
	out := &Series{name: s.name, kind: s.kind, valid: make([]bool, len(indices))}
	switch s.kind {
	case KindFloat:
		out.floats = make([]float64, len(indices))
		for j, i := range indices {
			out.floats[j] = s.floats[i]
			out.valid[j] = s.valid[i]
		}
	case KindString:
		out.strings = make([]string, len(indices))
		for j, i := range indices {
			out.strings[j] = s.strings[i]
			out.valid[j] = s.valid[i]
		}
	case KindBool:
		out.bools = make([]bool, len(indices))
		for j, i := range indices {
			out.bools[j] = s.bools[i]
			out.valid[j] = s.valid[i]
		}
	}
	return out
}

// nonMissingFloats returns the present values of a numeric series.
func (s *Series) nonMissingFloats() ([]float64, error) {
	if s.kind != KindFloat {
		return nil, errors.NewValueError("Series."+s.name, "not a numeric column")
	}
	vals := make([]float64, 0, len(s.floats))
	for i, v := range s.floats {
		if s.valid[i] {
			vals = append(vals, v)
		}
	}
	return vals, nil
}
