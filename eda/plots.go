package eda

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// HistogramPNG renders a histogram of one numeric column to a PNG file.
// Missing values are skipped.
func HistogramPNG(df *dataframe.DataFrame, column string, bins int, path string) error {
	col, ok := df.Column(column)
	if !ok {
		return errors.NewInvalidFeatureError("HistogramPNG", column, "column not found")
	}
	if col.Kind() != dataframe.KindFloat {
		return errors.NewInvalidFeatureError("HistogramPNG", column, "column is not numeric")
	}
	if bins <= 0 {
		bins = 30
	}

	var values plotter.Values
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		values = append(values, col.Float(i))
	}
	if len(values) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "HistogramPNG: "+column)
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + column
	p.X.Label.Text = column
	p.Y.Label.Text = "Frequency"

	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return errors.Wrap(err, "HistogramPNG")
	}
	p.Add(hist)

	return errors.Wrap(p.Save(8*vg.Inch, 5*vg.Inch, path), "HistogramPNG: save")
}

// ScatterPNG renders a scatter plot of two numeric columns to a PNG file.
// Rows where either value is missing are skipped.
func ScatterPNG(df *dataframe.DataFrame, xColumn, yColumn, path string) error {
	xCol, ok := df.Column(xColumn)
	if !ok {
		return errors.NewInvalidFeatureError("ScatterPNG", xColumn, "column not found")
	}
	yCol, ok := df.Column(yColumn)
	if !ok {
		return errors.NewInvalidFeatureError("ScatterPNG", yColumn, "column not found")
	}
	if xCol.Kind() != dataframe.KindFloat {
		return errors.NewInvalidFeatureError("ScatterPNG", xColumn, "column is not numeric")
	}
	if yCol.Kind() != dataframe.KindFloat {
		return errors.NewInvalidFeatureError("ScatterPNG", yColumn, "column is not numeric")
	}

	var pts plotter.XYs
	for i := 0; i < xCol.Len(); i++ {
		if xCol.IsMissing(i) || yCol.IsMissing(i) {
			continue
		}
		pts = append(pts, plotter.XY{X: xCol.Float(i), Y: yCol.Float(i)})
	}
	if len(pts) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "ScatterPNG")
	}

	p := plot.New()
	p.Title.Text = yColumn + " vs " + xColumn
	p.X.Label.Text = xColumn
	p.Y.Label.Text = yColumn

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "ScatterPNG")
	}
	p.Add(scatter)

	return errors.Wrap(p.Save(8*vg.Inch, 6*vg.Inch, path), "ScatterPNG: save")
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (int, int) { n := g.m.SymmetricDim(); return n, n }
func (g corrGrid) X(c int) float64  { return float64(c) }
func (g corrGrid) Y(r int) float64  { return float64(r) }
func (g corrGrid) Z(c, r int) float64 {
	return g.m.At(r, c)
}

// CorrelationMatrix computes the Pearson correlation matrix over the given
// numeric columns (all numeric columns when none are named). Rows with a
// missing value in any selected column are dropped first.
func CorrelationMatrix(df *dataframe.DataFrame, columns ...string) (*mat.SymDense, []string, error) {
	if len(columns) == 0 {
		columns = df.NumericColumnNames()
	}
	if len(columns) < 2 {
		return nil, nil, errors.NewValueError("CorrelationMatrix", "need at least two numeric columns")
	}

	cols := make([]*dataframe.Series, len(columns))
	for i, name := range columns {
		col, ok := df.Column(name)
		if !ok {
			return nil, nil, errors.NewInvalidFeatureError("CorrelationMatrix", name, "column not found")
		}
		if col.Kind() != dataframe.KindFloat {
			return nil, nil, errors.NewInvalidFeatureError("CorrelationMatrix", name, "column is not numeric")
		}
		cols[i] = col
	}

	var keep []int
	for i := 0; i < df.NumRows(); i++ {
		complete := true
		for _, col := range cols {
			if col.IsMissing(i) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}
	if len(keep) < 2 {
		return nil, nil, errors.NewInsufficientDataError("CorrelationMatrix", "", "fewer than two complete rows")
	}

	data := mat.NewDense(len(keep), len(columns), nil)
	for r, idx := range keep {
		for c, col := range cols {
			data.Set(r, c, col.Float(idx))
		}
	}

	corr := mat.NewSymDense(len(columns), nil)
	stat.CorrelationMatrix(corr, data, nil)
	return corr, columns, nil
}

// CorrelationHeatmapPNG renders the correlation matrix of the given
// numeric columns as a heat map PNG.
func CorrelationHeatmapPNG(df *dataframe.DataFrame, path string, columns ...string) error {
	corr, names, err := CorrelationMatrix(df, columns...)
	if err != nil {
		return errors.Wrap(err, "CorrelationHeatmapPNG")
	}

	pal := moreland.SmoothBlueRed().Palette(255)
	heat := plotter.NewHeatMap(corrGrid{m: corr}, pal)
	heat.Min = -1
	heat.Max = 1

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(heat)

	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 1.2
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	return errors.Wrap(p.Save(9*vg.Inch, 8*vg.Inch, path), "CorrelationHeatmapPNG: save")
}
