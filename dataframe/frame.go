package dataframe

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// DataFrame is an ordered collection of uniquely named, equal-length
// columns. Column order is insertion order.
type DataFrame struct {
	columns []*Series
	byName  map[string]int
}

// New builds a DataFrame from the given columns. Column names must be
// unique and lengths must match.
func New(columns ...*Series) (*DataFrame, error) {
	df := &DataFrame{byName: make(map[string]int, len(columns))}
	for _, col := range columns {
		if err := df.append(col); err != nil {
			return nil, err
		}
	}
	return df, nil
}

func (df *DataFrame) append(col *Series) error {
	if _, exists := df.byName[col.Name()]; exists {
		return errors.NewValueError("DataFrame", "duplicate column name: "+col.Name())
	}
	if len(df.columns) > 0 && col.Len() != df.NumRows() {
		return errors.NewDimensionError("DataFrame", df.NumRows(), col.Len(), 0)
	}
	df.byName[col.Name()] = len(df.columns)
	df.columns = append(df.columns, col)
	return nil
}

// NumRows returns the number of rows.
func (df *DataFrame) NumRows() int {
	if len(df.columns) == 0 {
		return 0
	}
	return df.columns[0].Len()
}

// NumCols returns the number of columns.
func (df *DataFrame) NumCols() int { return len(df.columns) }

// ColumnNames returns the column names in insertion order.
func (df *DataFrame) ColumnNames() []string {
	names := make([]string, len(df.columns))
	for i, col := range df.columns {
		names[i] = col.Name()
	}
	return names
}

// NumericColumnNames returns the names of all float columns, in order.
func (df *DataFrame) NumericColumnNames() []string {
	var names []string
	for _, col := range df.columns {
		if col.Kind() == KindFloat {
			names = append(names, col.Name())
		}
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.byName[name]
	return ok
}

// Column returns the named column. The returned series is the frame's own;
// callers that modify it must Clone first.
func (df *DataFrame) Column(name string) (*Series, bool) {
	i, ok := df.byName[name]
	if !ok {
		return nil, false
	}
	return df.columns[i], true
}

// ColumnAt returns the column at position i.
func (df *DataFrame) ColumnAt(i int) *Series { return df.columns[i] }

// Clone returns a deep copy.
func (df *DataFrame) Clone() *DataFrame {
	out := &DataFrame{byName: make(map[string]int, len(df.columns))}
	for _, col := range df.columns {
		_ = out.append(col.Clone())
	}
	return out
}

// WithColumn returns a copy with the given column appended, or replacing a
// column of the same name in place (same position).
func (df *DataFrame) WithColumn(col *Series) (*DataFrame, error) {
	out := df.Clone()
	if i, ok := out.byName[col.Name()]; ok {
		out.columns[i] = col.Clone()
		return out, nil
	}
	if err := out.append(col.Clone()); err != nil {
		return nil, err
	}
	return out, nil
}

// WithColumns returns a copy with every given column applied in order,
// appending or replacing as WithColumn does, cloning the frame only once.
func (df *DataFrame) WithColumns(cols ...*Series) (*DataFrame, error) {
	out := df.Clone()
	for _, col := range cols {
		if i, ok := out.byName[col.Name()]; ok {
			out.columns[i] = col.Clone()
			continue
		}
		if err := out.append(col.Clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DropColumns returns a copy without the named columns. Unknown names are
// ignored.
func (df *DataFrame) DropColumns(names ...string) *DataFrame {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &DataFrame{byName: make(map[string]int)}
	for _, col := range df.columns {
		if !drop[col.Name()] {
			_ = out.append(col.Clone())
		}
	}
	return out
}

// Select returns a copy holding only the named columns, in the given order.
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	out := &DataFrame{byName: make(map[string]int, len(names))}
	for _, name := range names {
		col, ok := df.Column(name)
		if !ok {
			return nil, errors.NewValueError("DataFrame.Select", "unknown column: "+name)
		}
		if err := out.append(col.Clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Take returns a copy holding the rows at the given indices, in order.
func (df *DataFrame) Take(indices []int) *DataFrame {
	out := &DataFrame{byName: make(map[string]int, len(df.columns))}
	for _, col := range df.columns {
		_ = out.append(col.Take(indices))
	}
	return out
}

// Filter returns a copy holding only the rows where keep[i] is true.
func (df *DataFrame) Filter(keep []bool) (*DataFrame, error) {
	if len(keep) != df.NumRows() {
		return nil, errors.NewDimensionError("DataFrame.Filter", df.NumRows(), len(keep), 0)
	}
	var indices []int
	for i, k := range keep {
		if k {
			indices = append(indices, i)
		}
	}
	return df.Take(indices), nil
}

// Matrix materialises the named numeric columns as a dense matrix for
// model fitting. Missing cells surface as NaN; callers are expected to
// have imputed them first.
func (df *DataFrame) Matrix(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "DataFrame.Matrix")
	}
	n := df.NumRows()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "DataFrame.Matrix")
	}
	out := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		col, ok := df.Column(name)
		if !ok {
			return nil, errors.NewValueError("DataFrame.Matrix", "unknown column: "+name)
		}
		if col.Kind() != KindFloat {
			return nil, errors.NewValueError("DataFrame.Matrix", "non-numeric column: "+name)
		}
		for i := 0; i < n; i++ {
			out.Set(i, j, col.Float(i))
		}
	}
	return out, nil
}

// Vector materialises a numeric column as a gonum vector.
func (s *Series) Vector() (*mat.VecDense, error) {
	if s.kind != KindFloat {
		return nil, errors.NewValueError("Series.Vector", "not a numeric column")
	}
	if s.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Series.Vector")
	}
	out := mat.NewVecDense(s.Len(), nil)
	for i := 0; i < s.Len(); i++ {
		out.SetVec(i, s.Float(i))
	}
	return out, nil
}
