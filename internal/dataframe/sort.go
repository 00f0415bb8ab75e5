package dataframe

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortByDesc stably sorts items in place, descending by key. Stability
// preserves first-encounter order among ties, which is the tie-break
// rule for every ranking in this engine.
func SortByDesc[T any, K constraints.Ordered](items []T, key func(T) K) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) > key(items[j])
	})
}

// SortByAsc stably sorts items in place, ascending by key.
func SortByAsc[T any, K constraints.Ordered](items []T, key func(T) K) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) < key(items[j])
	})
}

// SortIndicesByFloat64Desc returns the row indices of df ordered by the
// named float64 column, highest first. Rows whose value is absent are
// excluded rather than sorted to either end.
func (df *DataFrame) SortIndicesByFloat64Desc(name string) ([]int, error) {
	values, valid, err := df.Float64Column(name)
	if err != nil {
		return nil, err
	}

	type rowValue struct {
		row   int
		value float64
	}

	rows := make([]rowValue, 0, len(values))
	for i, ok := range valid {
		if ok {
			rows = append(rows, rowValue{row: i, value: values[i]})
		}
	}

	SortByDesc(rows, func(r rowValue) float64 { return r.value })

	indices := make([]int, len(rows))
	for i, r := range rows {
		indices[i] = r.row
	}
	return indices, nil
}
