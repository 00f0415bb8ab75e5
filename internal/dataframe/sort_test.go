//nolint:testpackage // requires internal access to unexported types and functions
package dataframe

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paveg/reviewlens/internal/series"
)

func TestSortByDescStableTies(t *testing.T) {
	type group struct {
		key  string
		mean float64
	}

	groups := []group{
		{"glow", 4.0},
		{"dew", 4.5},
		{"mist", 4.0},
		{"haze", 3.0},
	}

	SortByDesc(groups, func(g group) float64 { return g.mean })

	// glow and mist tie; first-encounter order must survive.
	assert.Equal(t, []group{
		{"dew", 4.5},
		{"glow", 4.0},
		{"mist", 4.0},
		{"haze", 3.0},
	}, groups)
}

func TestSortByAsc(t *testing.T) {
	ratings := []float64{3, 1, 5}
	SortByAsc(ratings, func(v float64) float64 { return v })
	assert.Equal(t, []float64{1, 3, 5}, ratings)
}

func TestSortIndicesByFloat64Desc(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(series.NewNullable(
		"sentiment_score",
		[]float64{0.2, 0.9, 0, 0.9, -0.5},
		[]bool{true, true, false, true, true},
		mem,
	))

	indices, err := df.SortIndicesByFloat64Desc("sentiment_score")
	require.NoError(t, err)

	// Null row 2 is excluded; tied rows 1 and 3 keep encounter order.
	assert.Equal(t, []int{1, 3, 0, 4}, indices)
}

func TestSortIndicesByFloat64DescMissingColumn(t *testing.T) {
	df := New()
	_, err := df.SortIndicesByFloat64Desc("sentiment_score")
	assert.Error(t, err)
}
