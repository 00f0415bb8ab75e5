// Package io provides data input/output operations for DataFrames.
// It supports CSV reading with type inference and CSV writing with a
// header row, the only serialization the review pipeline needs.
package io

import (
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/paveg/reviewlens/internal/dataframe"
)

// CSVOptions configures CSV reading and writing behavior
type CSVOptions struct {
	Delimiter        rune // Field delimiter (default: ',')
	Header           bool // Whether the first row is a header (default: true)
	Comment          rune // Comment character (default: none)
	SkipInitialSpace bool // Trim leading space in fields
	TypeInference    bool // Infer bool/int/float column types (default: true)
}

// DefaultCSVOptions returns the standard CSV configuration
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:     ',',
		Header:        true,
		TypeInference: true,
	}
}

// CSVReader reads CSV data into a DataFrame
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
	mem     memory.Allocator
}

// NewCSVReader creates a CSVReader with the given options
func NewCSVReader(r io.Reader, options CSVOptions, mem memory.Allocator) *CSVReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &CSVReader{reader: r, options: options, mem: mem}
}

// CSVWriter writes a DataFrame as CSV
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a CSVWriter with the given options
func NewCSVWriter(w io.Writer, options CSVOptions) *CSVWriter {
	return &CSVWriter{writer: w, options: options}
}

// ReadCSVFile reads a CSV file into a DataFrame using default options
func ReadCSVFile(path string, mem memory.Allocator) (*dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return NewCSVReader(f, DefaultCSVOptions(), mem).Read()
}

// WriteCSVFile writes a DataFrame to a CSV file using default options
func WriteCSVFile(path string, df *dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return NewCSVWriter(f, DefaultCSVOptions()).Write(df)
}
