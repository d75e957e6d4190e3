// Package ingestion loads raw housing data archives into data frames.
package ingestion

import (
	"archive/zip"
	"path/filepath"
	"strings"

	"github.com/Aditi-Asati/ames-price-prediction/dataframe"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/errors"
	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

// DataExtractor reads a raw data file from disk into a DataFrame.
type DataExtractor interface {
	ExtractData(path string) (*dataframe.DataFrame, error)
}

// Option configures an extractor.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger used during extraction.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: log.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CSVDataExtractor reads a plain CSV file.
type CSVDataExtractor struct {
	opts *options
}

// NewCSVDataExtractor creates a CSV extractor.
func NewCSVDataExtractor(opts ...Option) *CSVDataExtractor {
	return &CSVDataExtractor{opts: newOptions(opts)}
}

// ExtractData parses the CSV at path.
func (e *CSVDataExtractor) ExtractData(path string) (*dataframe.DataFrame, error) {
	df, err := dataframe.ReadCSVFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "CSVDataExtractor.ExtractData")
	}
	e.opts.logger.Info("extracted csv file",
		"path", path,
		log.SamplesKey, df.NumRows(),
		log.FeaturesKey, df.NumCols())
	return df, nil
}

// ZipDataExtractor reads a zip archive containing exactly one CSV file.
type ZipDataExtractor struct {
	opts *options
}

// NewZipDataExtractor creates a zip extractor.
func NewZipDataExtractor(opts ...Option) *ZipDataExtractor {
	return &ZipDataExtractor{opts: newOptions(opts)}
}

// ExtractData opens the archive at path, locates its single CSV member,
// and parses it. Archives with zero or multiple CSV members are rejected.
func (e *ZipDataExtractor) ExtractData(path string) (*dataframe.DataFrame, error) {
	if strings.ToLower(filepath.Ext(path)) != ".zip" {
		return nil, errors.NewValueError("ZipDataExtractor.ExtractData", "the provided file is not a .zip file")
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "ZipDataExtractor.ExtractData: open archive")
	}
	defer archive.Close()

	var csvMembers []*zip.File
	for _, member := range archive.File {
		if member.FileInfo().IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(member.Name)) == ".csv" {
			csvMembers = append(csvMembers, member)
		}
	}

	if len(csvMembers) == 0 {
		return nil, errors.NewValueError("ZipDataExtractor.ExtractData", "no CSV file found in the archive")
	}
	if len(csvMembers) > 1 {
		return nil, errors.NewValueError("ZipDataExtractor.ExtractData", "multiple CSV files found; please specify an archive with a single CSV")
	}

	rc, err := csvMembers[0].Open()
	if err != nil {
		return nil, errors.Wrap(err, "ZipDataExtractor.ExtractData: open member")
	}
	defer rc.Close()

	df, err := dataframe.ReadCSV(rc)
	if err != nil {
		return nil, errors.Wrap(err, "ZipDataExtractor.ExtractData: parse "+csvMembers[0].Name)
	}

	e.opts.logger.Info("extracted zip archive",
		"member", csvMembers[0].Name,
		log.SamplesKey, df.NumRows(),
		log.FeaturesKey, df.NumCols())
	return df, nil
}

// NewDataExtractor picks an extractor based on the file extension.
func NewDataExtractor(path string, opts ...Option) (DataExtractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return NewZipDataExtractor(opts...), nil
	case ".csv":
		return NewCSVDataExtractor(opts...), nil
	default:
		return nil, errors.NewValueError("NewDataExtractor", "no extractor available for file type "+filepath.Ext(path))
	}
}
