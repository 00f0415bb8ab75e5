package io

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/series"
)

const (
	trueStr  = "true"
	falseStr = "false"

	typeBool   = "bool"
	typeInt    = "int"
	typeFloat  = "float"
	typeString = "string"
)

// Read reads CSV data and returns a DataFrame
func (r *CSVReader) Read() (*dataframe.DataFrame, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return dataframe.New(), nil
	}

	var headers []string
	var dataRows [][]string

	if r.options.Header {
		headers = records[0]
		dataRows = records[1:]
	} else {
		numCols := len(records[0])
		headers = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			headers[i] = fmt.Sprintf("column_%d", i)
		}
		dataRows = records
	}

	// Transpose to column-major order.
	numCols := len(headers)
	columns := make([][]string, numCols)
	for i := 0; i < numCols; i++ {
		columns[i] = make([]string, len(dataRows))
		for j, row := range dataRows {
			if i < len(row) {
				columns[i][j] = row[i]
			}
		}
	}

	seriesList := make([]dataframe.ISeries, 0, numCols)
	for i, header := range headers {
		seriesList = append(seriesList, r.createSeriesFromStrings(header, columns[i]))
	}

	return dataframe.New(seriesList...), nil
}

// createSeriesFromStrings creates a series from string data, inferring
// the appropriate type. Empty and unparseable values become nulls, not
// zero values.
func (r *CSVReader) createSeriesFromStrings(name string, data []string) dataframe.ISeries {
	inferredType := typeString
	if r.options.TypeInference {
		inferredType = inferDataType(data)
	}

	switch inferredType {
	case typeBool:
		return r.createBoolSeries(name, data)
	case typeInt:
		return r.createIntSeries(name, data)
	case typeFloat:
		return r.createFloatSeries(name, data)
	default:
		return series.New(name, data, r.mem)
	}
}

// inferDataType determines the most specific type the non-empty values
// of a column all parse as.
func inferDataType(data []string) string {
	canBeInt := true
	canBeFloat := true
	canBeBool := true
	hasNonEmptyValue := false

	for _, value := range data {
		if value == "" {
			continue // Empty values stay absent under any type
		}
		hasNonEmptyValue = true

		if canBeBool {
			lower := strings.ToLower(value)
			if lower != trueStr && lower != falseStr {
				canBeBool = false
			}
		}

		if canBeInt {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				canBeInt = false
			}
		}

		if canBeFloat {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				canBeFloat = false
			}
		}
	}

	if !hasNonEmptyValue {
		return typeString
	}

	if canBeBool {
		return typeBool
	}
	if canBeInt {
		return typeInt
	}
	if canBeFloat {
		return typeFloat
	}
	return typeString
}

func (r *CSVReader) createBoolSeries(name string, data []string) dataframe.ISeries {
	values := make([]bool, len(data))
	valid := make([]bool, len(data))
	for i, value := range data {
		if value == "" {
			continue
		}
		values[i] = strings.EqualFold(value, trueStr)
		valid[i] = true
	}
	return series.NewNullable(name, values, valid, r.mem)
}

func (r *CSVReader) createIntSeries(name string, data []string) dataframe.ISeries {
	values := make([]int64, len(data))
	valid := make([]bool, len(data))
	for i, value := range data {
		if value == "" {
			continue
		}
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		values[i] = v
		valid[i] = true
	}
	return series.NewNullable(name, values, valid, r.mem)
}

func (r *CSVReader) createFloatSeries(name string, data []string) dataframe.ISeries {
	values := make([]float64, len(data))
	valid := make([]bool, len(data))
	for i, value := range data {
		if value == "" {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		values[i] = v
		valid[i] = true
	}
	return series.NewNullable(name, values, valid, r.mem)
}

// Write writes the DataFrame to CSV format: header row, then one line
// per row; null values serialize as empty fields.
func (w *CSVWriter) Write(df *dataframe.DataFrame) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter
	defer csvWriter.Flush()

	if w.options.Header {
		if err := csvWriter.Write(df.Columns()); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	columns := df.Columns()
	for i := 0; i < df.Len(); i++ {
		row := make([]string, len(columns))
		for j, colName := range columns {
			column, exists := df.Column(colName)
			if !exists {
				continue
			}
			row[j] = column.GetAsString(i)
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	return csvWriter.Error()
}
