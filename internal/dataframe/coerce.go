package dataframe

import (
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/paveg/reviewlens/internal/series"
)

// Timestamp layouts accepted by ToTimestamp, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
}

// ToFloat64 coerces a column to nullable float64. Values that cannot be
// parsed become nulls, never zeros; existing nulls stay null. Booleans
// coerce to 1 and 0.
func ToFloat64(s ISeries, mem memory.Allocator) ISeries {
	arr := s.Array()
	defer arr.Release()

	n := arr.Len()
	values := make([]float64, n)
	valid := make([]bool, n)

	switch typed := arr.(type) {
	case *array.Float64:
		for i := 0; i < n; i++ {
			if !typed.IsNull(i) {
				values[i] = typed.Value(i)
				valid[i] = true
			}
		}
	case *array.Int64:
		for i := 0; i < n; i++ {
			if !typed.IsNull(i) {
				values[i] = float64(typed.Value(i))
				valid[i] = true
			}
		}
	case *array.Boolean:
		for i := 0; i < n; i++ {
			if !typed.IsNull(i) {
				if typed.Value(i) {
					values[i] = 1
				}
				valid[i] = true
			}
		}
	case *array.String:
		for i := 0; i < n; i++ {
			if typed.IsNull(i) {
				continue
			}
			raw := strings.TrimSpace(typed.Value(i))
			if raw == "" {
				continue
			}
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				values[i] = v
				valid[i] = true
			}
		}
	default:
		// Timestamps and anything else have no numeric reading.
	}

	return series.NewNullable(s.Name(), values, valid, mem)
}

// ToTimestamp coerces a column to a nullable timestamp. String values
// are parsed against a fixed set of layouts; failures become nulls.
func ToTimestamp(s ISeries, mem memory.Allocator) ISeries {
	arr := s.Array()
	defer arr.Release()

	n := arr.Len()
	values := make([]time.Time, n)
	valid := make([]bool, n)

	switch typed := arr.(type) {
	case *array.Timestamp:
		for i := 0; i < n; i++ {
			if !typed.IsNull(i) {
				values[i] = time.UnixMilli(int64(typed.Value(i))).UTC()
				valid[i] = true
			}
		}
	case *array.String:
		for i := 0; i < n; i++ {
			if typed.IsNull(i) {
				continue
			}
			raw := strings.TrimSpace(typed.Value(i))
			if raw == "" {
				continue
			}
			if t, ok := parseTimestamp(raw); ok {
				values[i] = t
				valid[i] = true
			}
		}
	default:
		// No calendar reading for numeric or boolean columns.
	}

	return series.NewNullable(s.Name(), values, valid, mem)
}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ToString coerces a column to nullable strings, preserving nulls.
func ToString(s ISeries, mem memory.Allocator) ISeries {
	n := s.Len()
	values := make([]string, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if s.IsNull(i) {
			continue
		}
		values[i] = s.GetAsString(i)
		valid[i] = true
	}
	return series.NewNullable(s.Name(), values, valid, mem)
}

// ToStringFilled coerces a column to strings with nulls replaced by
// fill, producing a column with no absent values.
func ToStringFilled(s ISeries, fill string, mem memory.Allocator) ISeries {
	n := s.Len()
	values := make([]string, n)
	for i := 0; i < n; i++ {
		if s.IsNull(i) {
			values[i] = fill
			continue
		}
		values[i] = s.GetAsString(i)
	}
	return series.New(s.Name(), values, mem)
}
