// Package series provides data structures for column operations
package series

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// TimestampType is the Arrow type used for all timestamp columns.
// Millisecond precision is enough for review submission times.
var TimestampType = &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}

// Series represents a typed data column with Apache Arrow backend.
// Absent values are represented as Arrow nulls, never as zero values.
type Series[T any] struct {
	name  string
	array arrow.Array
}

// New creates a new Series from a slice of values with no nulls
func New[T any](name string, values []T, mem memory.Allocator) *Series[T] {
	return NewNullable(name, values, nil, mem)
}

// NewNullable creates a new Series from a slice of values and a validity
// mask. values[i] is stored as null when valid[i] is false. A nil mask
// means every value is present.
func NewNullable[T any](name string, values []T, valid []bool, mem memory.Allocator) *Series[T] {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	if valid != nil && len(valid) != len(values) {
		panic(fmt.Sprintf("series %s: validity mask length %d does not match values length %d",
			name, len(valid), len(values)))
	}

	present := func(i int) bool { return valid == nil || valid[i] }

	var arr arrow.Array

	// Use type switching to create the appropriate Arrow array
	switch v := any(values).(type) {
	case []string:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		for i, val := range v {
			if present(i) {
				builder.Append(val)
			} else {
				builder.AppendNull()
			}
		}
		arr = builder.NewArray()
	case []int64:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		for i, val := range v {
			if present(i) {
				builder.Append(val)
			} else {
				builder.AppendNull()
			}
		}
		arr = builder.NewArray()
	case []float64:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		for i, val := range v {
			if present(i) {
				builder.Append(val)
			} else {
				builder.AppendNull()
			}
		}
		arr = builder.NewArray()
	case []bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		for i, val := range v {
			if present(i) {
				builder.Append(val)
			} else {
				builder.AppendNull()
			}
		}
		arr = builder.NewArray()
	case []time.Time:
		builder := array.NewTimestampBuilder(mem, TimestampType)
		defer builder.Release()
		for i, val := range v {
			if present(i) {
				builder.Append(arrow.Timestamp(val.UnixMilli()))
			} else {
				builder.AppendNull()
			}
		}
		arr = builder.NewArray()
	default:
		panic(fmt.Sprintf("unsupported type: %T", values))
	}

	return &Series[T]{
		name:  name,
		array: arr,
	}
}

// Name returns the column name
func (s *Series[T]) Name() string {
	return s.name
}

// Len returns the length of the series
func (s *Series[T]) Len() int {
	return s.array.Len()
}

// Value returns the value at the given index. Null entries and
// out-of-range indexes yield the zero value; callers that care about
// presence must check IsNull first.
func (s *Series[T]) Value(index int) T {
	var result T
	if index < 0 || index >= s.array.Len() || s.array.IsNull(index) {
		return result
	}

	switch arr := s.array.(type) {
	case *array.String:
		if v, ok := any(&result).(*string); ok {
			*v = arr.Value(index)
		}
	case *array.Int64:
		if v, ok := any(&result).(*int64); ok {
			*v = arr.Value(index)
		}
	case *array.Float64:
		if v, ok := any(&result).(*float64); ok {
			*v = arr.Value(index)
		}
	case *array.Boolean:
		if v, ok := any(&result).(*bool); ok {
			*v = arr.Value(index)
		}
	case *array.Timestamp:
		if v, ok := any(&result).(*time.Time); ok {
			*v = time.UnixMilli(int64(arr.Value(index))).UTC()
		}
	}

	return result
}

// Values returns the data as a Go slice. Null entries become zero values;
// use IsNull for presence checks.
func (s *Series[T]) Values() []T {
	result := make([]T, s.array.Len())
	for i := range result {
		result[i] = s.Value(i)
	}
	return result
}

// IsNull checks if the value at index is null
func (s *Series[T]) IsNull(index int) bool {
	return s.array.IsNull(index)
}

// NullCount returns the number of null entries
func (s *Series[T]) NullCount() int {
	return s.array.NullN()
}

// DataType returns the Arrow data type
func (s *Series[T]) DataType() arrow.DataType {
	return s.array.DataType()
}

// GetAsString returns the value at index formatted as a string.
// Null entries format as the empty string.
func (s *Series[T]) GetAsString(index int) string {
	if index < 0 || index >= s.array.Len() || s.array.IsNull(index) {
		return ""
	}

	switch arr := s.array.(type) {
	case *array.String:
		return arr.Value(index)
	case *array.Int64:
		return strconv.FormatInt(arr.Value(index), 10)
	case *array.Float64:
		return strconv.FormatFloat(arr.Value(index), 'g', -1, 64)
	case *array.Boolean:
		return strconv.FormatBool(arr.Value(index))
	case *array.Timestamp:
		return time.UnixMilli(int64(arr.Value(index))).UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// String returns a string representation of the series
func (s *Series[T]) String() string {
	return fmt.Sprintf("Series[%s]: %s (len=%d)",
		reflect.TypeOf(new(T)).Elem().Name(),
		s.name,
		s.Len())
}

// Array returns the underlying Arrow array (retains a reference)
func (s *Series[T]) Array() arrow.Array {
	if s.array != nil {
		s.array.Retain()
		return s.array
	}
	return nil
}

// Release releases the underlying Arrow memory
func (s *Series[T]) Release() {
	if s.array != nil {
		s.array.Release()
	}
}
