//nolint:testpackage // requires internal access to unexported types and functions
package dataframe

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paveg/reviewlens/internal/series"
)

func TestNewDataFrame(t *testing.T) {
	mem := memory.NewGoAllocator()

	ids := series.New("product_id", []string{"P1", "P2", "P3"}, mem)
	ratings := series.New("rating", []float64{5, 1, 3}, mem)
	df := New(ids, ratings)
	defer df.Release()

	assert.Equal(t, 3, df.Len())
	assert.Equal(t, 2, df.Width())
	assert.Equal(t, []string{"product_id", "rating"}, df.Columns())
	assert.True(t, df.HasColumn("rating"))
	assert.False(t, df.HasColumn("brand_name"))
}

func TestNewDataFrameDuplicateNameKeepsFirst(t *testing.T) {
	mem := memory.NewGoAllocator()

	first := series.New("price_usd", []float64{10}, mem)
	second := series.New("price_usd", []float64{99}, mem)
	df := New(first, second)

	require.Equal(t, 1, df.Width())
	col, exists := df.Column("price_usd")
	require.True(t, exists)
	assert.InDelta(t, 10.0, col.(*series.Series[float64]).Value(0), 1e-9)
}

func TestSelectAndDrop(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(
		series.New("product_id", []string{"P1"}, mem),
		series.New("brand_name", []string{"glow"}, mem),
		series.New("rating", []float64{4}, mem),
	)
	defer df.Release()

	selected := df.Select("rating", "product_id")
	assert.Equal(t, []string{"rating", "product_id"}, selected.Columns())

	dropped := df.Drop("brand_name", "missing")
	assert.Equal(t, []string{"product_id", "rating"}, dropped.Columns())

	// Source is untouched.
	assert.Equal(t, 3, df.Width())
}

func TestWithColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(
		series.New("product_id", []string{"P1", "P2"}, mem),
		series.New("rating", []float64{5, 2}, mem),
	)

	appended := df.WithColumn(series.New("sentiment_score", []float64{0.8, -0.4}, mem))
	assert.Equal(t, []string{"product_id", "rating", "sentiment_score"}, appended.Columns())

	replaced := appended.WithColumn(series.New("rating", []float64{1, 1}, mem))
	assert.Equal(t, []string{"product_id", "rating", "sentiment_score"}, replaced.Columns())
	values, valid, err := replaced.Float64Column("rating")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, values)
	assert.Equal(t, []bool{true, true}, valid)
}

func TestTake(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(
		series.New("product_id", []string{"P1", "P2", "P3"}, mem),
		series.New("rating", []float64{5, 1, 3}, mem),
	)

	taken := df.Take([]int{2, 0, -1})
	require.Equal(t, 3, taken.Len())

	ids, valid, err := taken.StringColumn("product_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"P3", "P1", ""}, ids)
	assert.Equal(t, []bool{true, true, false}, valid)

	ratings, valid, err := taken.Float64Column("rating")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 0}, ratings)
	assert.False(t, valid[2], "negative index must produce a null, not zero")
}

func TestTakePreservesSourceNulls(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(series.NewNullable("rating", []float64{5, 0}, []bool{true, false}, mem))

	taken := df.Take([]int{1, 0})
	_, valid, err := taken.Float64Column("rating")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, valid)
}

func TestTypedColumnAccessors(t *testing.T) {
	mem := memory.NewGoAllocator()

	when := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	df := New(
		series.New("review_text", []string{"love it"}, mem),
		series.New("rating", []float64{5}, mem),
		series.New("submission_time", []time.Time{when}, mem),
	)

	_, _, err := df.Float64Column("review_text")
	assert.Error(t, err, "type mismatch must be reported")

	_, _, err = df.Float64Column("missing")
	assert.Error(t, err)

	times, valid, err := df.TimeColumn("submission_time")
	require.NoError(t, err)
	assert.True(t, valid[0])
	assert.True(t, when.Equal(times[0]))
}

func TestRenamedSharesData(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := series.New("Price_USD", []float64{10}, mem)
	renamed := Renamed(s, "price_usd")

	assert.Equal(t, "price_usd", renamed.Name())
	assert.Equal(t, 1, renamed.Len())
	assert.Same(t, s, Renamed(s, "Price_USD"), "same name returns the series unchanged")
}

func TestStringRepresentation(t *testing.T) {
	assert.Equal(t, "DataFrame[empty]", New().String())

	mem := memory.NewGoAllocator()
	df := New(series.New("rating", []float64{5}, mem))
	assert.Contains(t, df.String(), "DataFrame[1x1]")
	assert.Contains(t, df.String(), "rating")
}
