package preprocessing

import (
	"math"
	"testing"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

func TestLogTransformationExactValues(t *testing.T) {
	df, err := dataframe.New(
		dataframe.NewFloatSeries("x", []float64{0, 1, 3}),
	)
	if err != nil {
		t.Fatal(err)
	}

	out, err := NewLogTransformationStrategy([]string{"x"}).ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}

	col, _ := out.Column("x")
	want := []float64{0, math.Log(2), math.Log(4)}
	for i, w := range want {
		if math.Abs(col.Float(i)-w) > 1e-9 {
			t.Errorf("log1p[%d] = %v, want %v", i, col.Float(i), w)
		}
	}

	orig, _ := df.Column("x")
	if orig.Float(1) != 1 {
		t.Error("input frame was mutated")
	}
}

func TestLogTransformationDomainError(t *testing.T) {
	df, _ := dataframe.New(dataframe.NewFloatSeries("x", []float64{0, -2}))

	_, err := NewLogTransformationStrategy([]string{"x"}).ApplyTransformation(df)
	var de *errors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DomainError", err)
	}
	if de.Value != -2 {
		t.Errorf("DomainError.Value = %v, want -2", de.Value)
	}
}

func TestLogTransformationUnknownFeature(t *testing.T) {
	df, _ := dataframe.New(dataframe.NewFloatSeries("x", []float64{1}))

	_, err := NewLogTransformationStrategy([]string{"ghost"}).ApplyTransformation(df)
	var ife *errors.InvalidFeatureError
	if !errors.As(err, &ife) {
		t.Errorf("err = %v, want InvalidFeatureError", err)
	}
}

func TestStandardScalingRefitsPerCall(t *testing.T) {
	df, err := dataframe.New(
		dataframe.NewFloatSeries("x", []float64{2, 4, 4, 4, 5, 5, 7, 9}),
		dataframe.NewFloatSeries("untouched", []float64{1, 2, 3, 4, 5, 6, 7, 8}),
	)
	if err != nil {
		t.Fatal(err)
	}

	strategy := NewStandardScalingStrategy([]string{"x"})
	out, err := strategy.ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}

	// mean 5, population std 2
	col, _ := out.Column("x")
	if math.Abs(col.Float(0)-(-1.5)) > 1e-9 {
		t.Errorf("z[0] = %v, want -1.5", col.Float(0))
	}
	mean, _ := col.Mean()
	if math.Abs(mean) > 1e-9 {
		t.Errorf("scaled mean = %v, want 0", mean)
	}

	other, _ := out.Column("untouched")
	if other.Float(0) != 1 {
		t.Error("non-selected column was modified")
	}

	// a second application refits from its own input
	again, err := strategy.ApplyTransformation(out)
	if err != nil {
		t.Fatal(err)
	}
	col2, _ := again.Column("x")
	mean2, _ := col2.Mean()
	if math.Abs(mean2) > 1e-9 {
		t.Errorf("refit mean = %v, want 0", mean2)
	}
}

func TestStandardScalingConstantColumn(t *testing.T) {
	df, _ := dataframe.New(dataframe.NewFloatSeries("x", []float64{3, 3, 3}))

	out, err := NewStandardScalingStrategy([]string{"x"}).ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.Column("x")
	for i := 0; i < col.Len(); i++ {
		if col.Float(i) != 0 {
			t.Errorf("constant column z[%d] = %v, want 0", i, col.Float(i))
		}
	}
}

func TestMinMaxScalingMapsObservedRange(t *testing.T) {
	df, err := dataframe.New(
		dataframe.NewFloatSeries("x", []float64{10, 20, 30}),
	)
	if err != nil {
		t.Fatal(err)
	}

	out, err := NewMinMaxScalingStrategy([]string{"x"}, [2]float64{-1, 1}).ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}

	col, _ := out.Column("x")
	want := []float64{-1, 0, 1}
	for i, w := range want {
		if math.Abs(col.Float(i)-w) > 1e-9 {
			t.Errorf("scaled[%d] = %v, want %v", i, col.Float(i), w)
		}
	}
}

func TestMinMaxScalingDefaultRange(t *testing.T) {
	df, _ := dataframe.New(dataframe.NewFloatSeries("x", []float64{5, 15}))

	out, err := NewMinMaxScalingStrategyDefault([]string{"x"}).ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.Column("x")
	if col.Float(0) != 0 || col.Float(1) != 1 {
		t.Errorf("scaled = [%v %v], want [0 1]", col.Float(0), col.Float(1))
	}
}

func TestOneHotEncodingDropFirst(t *testing.T) {
	df, err := dataframe.New(
		dataframe.NewFloatSeries("LotArea", []float64{1, 2, 3, 4}),
		dataframe.NewStringSeries("Street", []string{"Pave", "Grvl", "Pave", "Mixd"}),
	)
	if err != nil {
		t.Fatal(err)
	}

	out, err := NewOneHotEncodingStrategy([]string{"Street"}).ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}

	if out.HasColumn("Street") {
		t.Error("original categorical column should be removed")
	}
	// categories sorted: Grvl, Mixd, Pave; Grvl is the dropped baseline
	if out.HasColumn("Street_Grvl") {
		t.Error("first category must be dropped")
	}
	mixd, ok := out.Column("Street_Mixd")
	if !ok {
		t.Fatal("Street_Mixd indicator missing")
	}
	pave, _ := out.Column("Street_Pave")

	wantMixd := []float64{0, 0, 0, 1}
	wantPave := []float64{1, 0, 1, 0}
	for i := 0; i < 4; i++ {
		if mixd.Float(i) != wantMixd[i] {
			t.Errorf("Street_Mixd[%d] = %v, want %v", i, mixd.Float(i), wantMixd[i])
		}
		if pave.Float(i) != wantPave[i] {
			t.Errorf("Street_Pave[%d] = %v, want %v", i, pave.Float(i), wantPave[i])
		}
	}

	// 3 categories produce exactly 2 indicators, appended after LotArea
	names := out.ColumnNames()
	if names[0] != "LotArea" {
		t.Errorf("non-selected column moved: %v", names)
	}
	if len(names) != 3 {
		t.Errorf("columns = %v, want 3 columns", names)
	}

	// no indicator cell is missing
	for _, name := range []string{"Street_Mixd", "Street_Pave"} {
		col, _ := out.Column(name)
		if col.MissingCount() != 0 {
			t.Errorf("%s has missing cells", name)
		}
	}
}

func TestOneHotEncodingUnseenCategoryEncodesAllZero(t *testing.T) {
	fit, _ := dataframe.New(dataframe.NewStringSeries("c", []string{"a", "b", "a"}))
	strategy := NewOneHotEncodingStrategy([]string{"c"})
	if _, err := strategy.ApplyTransformation(fit); err != nil {
		t.Fatal(err)
	}

	reuse, _ := dataframe.New(dataframe.NewStringSeries("c", []string{"a", "z"}))
	out, err := strategy.ApplyTransformation(reuse)
	if err != nil {
		t.Fatal(err)
	}

	b, ok := out.Column("c_b")
	if !ok {
		t.Fatal("fitted indicator c_b missing on reuse")
	}
	if b.Float(0) != 0 || b.Float(1) != 0 {
		t.Errorf("unseen category encoded as [%v %v], want all-zero", b.Float(0), b.Float(1))
	}
	if out.HasColumn("c_z") {
		t.Error("unseen category must not grow a new indicator")
	}
}

func TestOneHotEncodingNonCategoricalFeature(t *testing.T) {
	df, _ := dataframe.New(dataframe.NewFloatSeries("x", []float64{1}))

	_, err := NewOneHotEncodingStrategy([]string{"x"}).ApplyTransformation(df)
	var ife *errors.InvalidFeatureError
	if !errors.As(err, &ife) {
		t.Errorf("err = %v, want InvalidFeatureError", err)
	}
}

func TestFeatureEngineerContext(t *testing.T) {
	df, _ := dataframe.New(dataframe.NewFloatSeries("x", []float64{0, 1, 3}))

	engineer := NewFeatureEngineer(NewLogTransformationStrategy([]string{"x"}))
	out, err := engineer.ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.Column("x")
	if math.Abs(col.Float(2)-math.Log(4)) > 1e-9 {
		t.Errorf("log applied through context = %v", col.Float(2))
	}

	engineer.SetStrategy(NewMinMaxScalingStrategyDefault([]string{"x"}))
	out2, err := engineer.ApplyTransformation(df)
	if err != nil {
		t.Fatal(err)
	}
	col2, _ := out2.Column("x")
	if col2.Float(0) != 0 || col2.Float(2) != 1 {
		t.Errorf("swapped strategy result = [%v .. %v]", col2.Float(0), col2.Float(2))
	}
}
