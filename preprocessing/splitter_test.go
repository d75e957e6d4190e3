package preprocessing

import (
	"testing"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

func splitterFrame(t *testing.T) *dataframe.DataFrame {
	t.Helper()
	n := 10
	ids := make([]float64, n)
	prices := make([]float64, n)
	for i := 0; i < n; i++ {
		ids[i] = float64(i)
		prices[i] = float64(i) * 1000
	}
	df, err := dataframe.New(
		dataframe.NewFloatSeries("Id", ids),
		dataframe.NewFloatSeries("SalePrice", prices),
	)
	if err != nil {
		t.Fatal(err)
	}
	return df
}

func TestSplitSizes(t *testing.T) {
	df := splitterFrame(t)
	splitter := NewDataSplitter(0.2, DefaultRandomState)

	xTrain, xTest, yTrain, yTest, err := splitter.SplitData(df, "SalePrice")
	if err != nil {
		t.Fatal(err)
	}

	if xTrain.NumRows()+xTest.NumRows() != df.NumRows() {
		t.Errorf("train+test = %d, want %d", xTrain.NumRows()+xTest.NumRows(), df.NumRows())
	}
	if xTest.NumRows() != 2 {
		t.Errorf("test rows = %d, want round(0.2*10) = 2", xTest.NumRows())
	}
	if yTrain.Len() != xTrain.NumRows() || yTest.Len() != xTest.NumRows() {
		t.Error("label lengths do not match feature tables")
	}
	if xTrain.HasColumn("SalePrice") || xTest.HasColumn("SalePrice") {
		t.Error("target column must be removed from feature tables")
	}
}

func TestSplitRowCorrespondence(t *testing.T) {
	df := splitterFrame(t)
	splitter := NewDataSplitter(0.3, 7)

	xTrain, xTest, yTrain, yTest, err := splitter.SplitData(df, "SalePrice")
	if err != nil {
		t.Fatal(err)
	}

	// price was constructed as 1000 * id; correspondence must survive shuffling
	id, _ := xTrain.Column("Id")
	for i := 0; i < xTrain.NumRows(); i++ {
		if yTrain.Float(i) != id.Float(i)*1000 {
			t.Errorf("train row %d misaligned: id=%v price=%v", i, id.Float(i), yTrain.Float(i))
		}
	}
	idTest, _ := xTest.Column("Id")
	for i := 0; i < xTest.NumRows(); i++ {
		if yTest.Float(i) != idTest.Float(i)*1000 {
			t.Errorf("test row %d misaligned: id=%v price=%v", i, idTest.Float(i), yTest.Float(i))
		}
	}
}

func TestSplitIsReproducible(t *testing.T) {
	df := splitterFrame(t)

	_, xTest1, _, _, err := NewDataSplitter(0.2, 42).SplitData(df, "SalePrice")
	if err != nil {
		t.Fatal(err)
	}
	_, xTest2, _, _, err := NewDataSplitter(0.2, 42).SplitData(df, "SalePrice")
	if err != nil {
		t.Fatal(err)
	}

	a, _ := xTest1.Column("Id")
	b, _ := xTest2.Column("Id")
	for i := 0; i < a.Len(); i++ {
		if a.Float(i) != b.Float(i) {
			t.Errorf("same seed produced different splits at row %d", i)
		}
	}
}

func TestSplitInvalidTarget(t *testing.T) {
	df := splitterFrame(t)

	_, _, _, _, err := NewDataSplitter(0.2, 42).SplitData(df, "Ghost")
	var ite *errors.InvalidTargetError
	if !errors.As(err, &ite) {
		t.Fatalf("err = %v, want InvalidTargetError", err)
	}
	if ite.Target != "Ghost" {
		t.Errorf("InvalidTargetError.Target = %q", ite.Target)
	}
}

func TestSplitDefaultTestSize(t *testing.T) {
	s := NewDataSplitter(0, 42)
	if s.testSize != DefaultTestSize {
		t.Errorf("testSize = %v, want %v", s.testSize, DefaultTestSize)
	}
}

func TestSplitDefaultRandomState(t *testing.T) {
	s := NewDataSplitter(0.2, 0)
	if s.randomState != DefaultRandomState {
		t.Errorf("randomState = %v, want %v", s.randomState, DefaultRandomState)
	}

	// a zero random state must partition exactly as the default seed does
	df := splitterFrame(t)
	_, zeroTest, _, _, err := NewDataSplitter(0.2, 0).SplitData(df, "SalePrice")
	if err != nil {
		t.Fatal(err)
	}
	_, defaultTest, _, _, err := NewDataSplitter(0.2, DefaultRandomState).SplitData(df, "SalePrice")
	if err != nil {
		t.Fatal(err)
	}

	a, _ := zeroTest.Column("Id")
	b, _ := defaultTest.Column("Id")
	if a.Len() != b.Len() {
		t.Fatalf("test partitions differ in size: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.Float(i) != b.Float(i) {
			t.Errorf("test row %d is %v with zero state but %v with the default seed", i, a.Float(i), b.Float(i))
		}
	}
}
