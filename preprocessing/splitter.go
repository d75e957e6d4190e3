package preprocessing

import (
	"math"
	"math/rand"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

// Splitter defaults.
const (
	DefaultTestSize    = 0.2
	DefaultRandomState = 42
)

// DataSplitter partitions a table into train/test feature tables and label
// series using a seeded, reproducible shuffle.
type DataSplitter struct {
	testSize    float64
	randomState int64
	logger      log.Logger
}

// NewDataSplitter builds a splitter. Zero values select DefaultTestSize
// and DefaultRandomState.
func NewDataSplitter(testSize float64, randomState int64, opts ...Option) *DataSplitter {
	if testSize == 0 {
		testSize = DefaultTestSize
	}
	if randomState == 0 {
		randomState = DefaultRandomState
	}
	o := newOptions(opts)
	return &DataSplitter{testSize: testSize, randomState: randomState, logger: o.logger}
}

// SplitData removes the target column as y, shuffles the rows with the
// configured seed, and partitions so that |test| = round(testSize * n).
// Row correspondence between the X tables and y series is preserved.
func (s *DataSplitter) SplitData(df *dataframe.DataFrame, targetColumn string) (xTrain, xTest *dataframe.DataFrame, yTrain, yTest *dataframe.Series, err error) {
	target, ok := df.Column(targetColumn)
	if !ok {
		return nil, nil, nil, nil, errors.NewInvalidTargetError(targetColumn, df.ColumnNames())
	}

	n := df.NumRows()
	testCount := int(math.Round(s.testSize * float64(n)))

	perm := rand.New(rand.NewSource(s.randomState)).Perm(n)
	testIdx := perm[:testCount]
	trainIdx := perm[testCount:]

	features := df.DropColumns(targetColumn)
	xTrain = features.Take(trainIdx)
	xTest = features.Take(testIdx)
	yTrain = target.Take(trainIdx)
	yTest = target.Take(testIdx)

	s.logger.Info("train test split completed",
		log.ComponentKey, "preprocessing",
		log.OperationKey, "split",
		log.SamplesKey, n,
		"train_samples", len(trainIdx),
		"test_samples", len(testIdx))
	return xTrain, xTest, yTrain, yTest, nil
}
