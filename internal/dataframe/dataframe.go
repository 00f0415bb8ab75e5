// Package dataframe provides the in-memory table the review pipeline
// operates on: an ordered set of typed, nullable columns with
// non-destructive select, take, and join operations.
package dataframe

import (
	"fmt"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/paveg/reviewlens/internal/errors"
)

// DataFrame represents a table of data with typed columns
type DataFrame struct {
	columns map[string]ISeries
	order   []string // Maintains column order
}

// New creates a new DataFrame from a slice of ISeries.
// A duplicated column name keeps the first occurrence.
func New(series ...ISeries) *DataFrame {
	columns := make(map[string]ISeries)
	order := make([]string, 0, len(series))

	for _, s := range series {
		name := s.Name()
		if _, exists := columns[name]; exists {
			continue
		}
		columns[name] = s
		order = append(order, name)
	}

	return &DataFrame{
		columns: columns,
		order:   order,
	}
}

// Columns returns the names of all columns in order
func (df *DataFrame) Columns() []string {
	if len(df.order) == 0 {
		return []string{}
	}
	return append([]string(nil), df.order...)
}

// Len returns the number of rows (assumes all columns have same length)
func (df *DataFrame) Len() int {
	if len(df.order) == 0 {
		return 0
	}
	if s, exists := df.columns[df.order[0]]; exists {
		return s.Len()
	}
	return 0
}

// Width returns the number of columns
func (df *DataFrame) Width() int {
	return len(df.columns)
}

// Column returns the series for the given column name
func (df *DataFrame) Column(name string) (ISeries, bool) {
	s, exists := df.columns[name]
	return s, exists
}

// HasColumn checks if a column exists
func (df *DataFrame) HasColumn(name string) bool {
	_, exists := df.columns[name]
	return exists
}

// Select returns a new DataFrame with only the specified columns
func (df *DataFrame) Select(names ...string) *DataFrame {
	selected := make([]ISeries, 0, len(names))
	for _, name := range names {
		if s, exists := df.columns[name]; exists {
			selected = append(selected, s)
		}
	}
	return New(selected...)
}

// Drop returns a new DataFrame without the specified columns
func (df *DataFrame) Drop(names ...string) *DataFrame {
	dropSet := make(map[string]bool, len(names))
	for _, name := range names {
		dropSet[name] = true
	}

	kept := make([]ISeries, 0, len(df.order))
	for _, name := range df.order {
		if !dropSet[name] {
			kept = append(kept, df.columns[name])
		}
	}
	return New(kept...)
}

// WithColumn returns a new DataFrame with the given series appended,
// or replacing an existing column of the same name in place.
func (df *DataFrame) WithColumn(s ISeries) *DataFrame {
	name := s.Name()
	cols := make([]ISeries, 0, len(df.order)+1)
	replaced := false
	for _, existing := range df.order {
		if existing == name {
			cols = append(cols, s)
			replaced = true
			continue
		}
		cols = append(cols, df.columns[existing])
	}
	if !replaced {
		cols = append(cols, s)
	}
	return New(cols...)
}

// String returns a string representation of the DataFrame
func (df *DataFrame) String() string {
	if len(df.columns) == 0 {
		return "DataFrame[empty]"
	}

	parts := []string{fmt.Sprintf("DataFrame[%dx%d]", df.Len(), df.Width())}
	for _, name := range df.order {
		parts = append(parts, fmt.Sprintf("  %s: %s", name, df.columns[name].DataType().String()))
	}
	return strings.Join(parts, "\n")
}

// Take returns a new DataFrame containing the rows at the given
// indices, in order. An index of -1 produces a row of nulls, which is
// how unmatched join rows are materialized.
func (df *DataFrame) Take(indices []int) *DataFrame {
	mem := memory.NewGoAllocator()

	taken := make([]ISeries, 0, len(df.order))
	for _, name := range df.order {
		taken = append(taken, takeColumn(df.columns[name], indices, mem))
	}
	return New(taken...)
}

// Float64Column returns the values and validity mask of a float64 column.
func (df *DataFrame) Float64Column(name string) ([]float64, []bool, error) {
	arr, err := df.columnArray(name)
	if err != nil {
		return nil, nil, err
	}
	defer arr.Release()

	typed, ok := arr.(*array.Float64)
	if !ok {
		return nil, nil, errors.NewUnsupportedTypeError("column", name, arr.DataType().String())
	}

	values := make([]float64, typed.Len())
	valid := make([]bool, typed.Len())
	for i := 0; i < typed.Len(); i++ {
		if typed.IsNull(i) {
			continue
		}
		values[i] = typed.Value(i)
		valid[i] = true
	}
	return values, valid, nil
}

// StringColumn returns the values and validity mask of a string column.
func (df *DataFrame) StringColumn(name string) ([]string, []bool, error) {
	arr, err := df.columnArray(name)
	if err != nil {
		return nil, nil, err
	}
	defer arr.Release()

	typed, ok := arr.(*array.String)
	if !ok {
		return nil, nil, errors.NewUnsupportedTypeError("column", name, arr.DataType().String())
	}

	values := make([]string, typed.Len())
	valid := make([]bool, typed.Len())
	for i := 0; i < typed.Len(); i++ {
		if typed.IsNull(i) {
			continue
		}
		values[i] = typed.Value(i)
		valid[i] = true
	}
	return values, valid, nil
}

// TimeColumn returns the values and validity mask of a timestamp column.
func (df *DataFrame) TimeColumn(name string) ([]time.Time, []bool, error) {
	arr, err := df.columnArray(name)
	if err != nil {
		return nil, nil, err
	}
	defer arr.Release()

	typed, ok := arr.(*array.Timestamp)
	if !ok {
		return nil, nil, errors.NewUnsupportedTypeError("column", name, arr.DataType().String())
	}

	values := make([]time.Time, typed.Len())
	valid := make([]bool, typed.Len())
	for i := 0; i < typed.Len(); i++ {
		if typed.IsNull(i) {
			continue
		}
		values[i] = time.UnixMilli(int64(typed.Value(i))).UTC()
		valid[i] = true
	}
	return values, valid, nil
}

// columnArray retains and returns the Arrow array behind a column.
func (df *DataFrame) columnArray(name string) (arrow.Array, error) {
	s, exists := df.columns[name]
	if !exists {
		return nil, errors.NewColumnNotFoundError("column", name)
	}
	return s.Array(), nil
}

// Release releases all underlying Arrow memory
func (df *DataFrame) Release() {
	for _, s := range df.columns {
		s.Release()
	}
}
