package dataframe

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
)

// ReadCSV parses a header-first CSV stream into a DataFrame. A column is
// numeric when every non-empty cell parses as a float; otherwise it is
// categorical. Empty cells are missing in both cases.
func ReadCSV(r io.Reader) (*DataFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSV")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "ReadCSV: no header row")
	}

	header := records[0]
	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, errors.NewDimensionError("ReadCSV row "+strconv.Itoa(i+1), len(header), len(row), 1)
		}
	}

	columns := make([]*Series, 0, len(header))
	for j, name := range header {
		numeric := true
		for _, row := range rows {
			cell := row[j]
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric = false
				break
			}
		}

		if numeric {
			vals := make([]float64, len(rows))
			for i, row := range rows {
				if row[j] == "" {
					vals[i] = math.NaN()
					continue
				}
				v, _ := strconv.ParseFloat(row[j], 64)
				vals[i] = v
			}
			columns = append(columns, NewFloatSeries(name, vals))
			continue
		}

		vals := make([]string, len(rows))
		valid := make([]bool, len(rows))
		for i, row := range rows {
			vals[i] = row[j]
			valid[i] = row[j] != ""
		}
		columns = append(columns, NewStringSeriesWithMissing(name, vals, valid))
	}

	return New(columns...)
}

// ReadCSVFile reads and parses the CSV file at path.
func ReadCSVFile(path string) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSVFile")
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSVFile writes the frame to the CSV file at path.
func WriteCSVFile(path string, df *DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "WriteCSVFile")
	}
	defer f.Close()
	return WriteCSV(f, df)
}

// WriteCSV writes the frame as CSV with a header row. Missing cells are
// written as empty fields.
func WriteCSV(w io.Writer, df *DataFrame) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(df.ColumnNames()); err != nil {
		return errors.Wrap(err, "WriteCSV")
	}

	record := make([]string, df.NumCols())
	for i := 0; i < df.NumRows(); i++ {
		for j := 0; j < df.NumCols(); j++ {
			col := df.ColumnAt(j)
			if col.IsMissing(i) {
				record[j] = ""
				continue
			}
			switch col.Kind() {
			case KindFloat:
				record[j] = strconv.FormatFloat(col.Float(i), 'g', -1, 64)
			case KindString:
				record[j] = col.Str(i)
			case KindBool:
				record[j] = strconv.FormatBool(col.Bool(i))
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "WriteCSV")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "WriteCSV")
}
