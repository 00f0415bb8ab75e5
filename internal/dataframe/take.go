package dataframe

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/paveg/reviewlens/internal/series"
)

// takeColumn gathers the rows of a single column at the given indices.
// Negative indices and source nulls both become nulls in the result, so
// the gathered column keeps explicit absence instead of zero defaults.
func takeColumn(s ISeries, indices []int, mem memory.Allocator) ISeries {
	arr := s.Array()
	defer arr.Release()

	name := s.Name()

	switch typed := arr.(type) {
	case *array.String:
		return takeTyped(name, indices, mem, func(i int) (string, bool) {
			if i < 0 || i >= typed.Len() || typed.IsNull(i) {
				return "", false
			}
			return typed.Value(i), true
		})
	case *array.Int64:
		return takeTyped(name, indices, mem, func(i int) (int64, bool) {
			if i < 0 || i >= typed.Len() || typed.IsNull(i) {
				return 0, false
			}
			return typed.Value(i), true
		})
	case *array.Float64:
		return takeTyped(name, indices, mem, func(i int) (float64, bool) {
			if i < 0 || i >= typed.Len() || typed.IsNull(i) {
				return 0, false
			}
			return typed.Value(i), true
		})
	case *array.Boolean:
		return takeTyped(name, indices, mem, func(i int) (bool, bool) {
			if i < 0 || i >= typed.Len() || typed.IsNull(i) {
				return false, false
			}
			return typed.Value(i), true
		})
	case *array.Timestamp:
		return takeTyped(name, indices, mem, func(i int) (time.Time, bool) {
			if i < 0 || i >= typed.Len() || typed.IsNull(i) {
				return time.Time{}, false
			}
			return time.UnixMilli(int64(typed.Value(i))).UTC(), true
		})
	default:
		// Unsupported column types collapse to an all-null string column.
		return takeTyped(name, indices, mem, func(int) (string, bool) {
			return "", false
		})
	}
}

// takeTyped builds a nullable series by probing the source getter for
// each requested index.
func takeTyped[T any](
	name string, indices []int, mem memory.Allocator, get func(int) (T, bool),
) ISeries {
	values := make([]T, len(indices))
	valid := make([]bool, len(indices))
	for out, src := range indices {
		values[out], valid[out] = get(src)
	}
	return series.NewNullable(name, values, valid, mem)
}
