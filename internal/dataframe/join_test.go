//nolint:testpackage // requires internal access to unexported types and functions
package dataframe

import (
	"fmt"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paveg/reviewlens/internal/series"
)

func TestLeftJoinKeepsEveryLeftRow(t *testing.T) {
	mem := memory.NewGoAllocator()

	reviews := New(
		series.New("product_id", []string{"P1", "P2", "P1", "P9"}, mem),
		series.New("rating", []float64{5, 1, 3, 4}, mem),
	)
	defer reviews.Release()

	products := New(
		series.New("product_id", []string{"P1", "P2"}, mem),
		series.New("brand_name", []string{"glow", "dew"}, mem),
		series.New("price_usd", []float64{20, 35}, mem),
	)
	defer products.Release()

	result, err := reviews.LeftJoin(products, "product_id")
	require.NoError(t, err)

	assert.Equal(t, []string{"product_id", "rating", "brand_name", "price_usd"}, result.Columns())
	assert.Equal(t, 4, result.Len(), "no review row may be dropped")

	brands, valid, err := result.StringColumn("brand_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"glow", "dew", "glow", ""}, brands)
	assert.Equal(t, []bool{true, true, true, false}, valid, "unmatched row receives nulls")

	prices, valid, err := result.Float64Column("price_usd")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 35, 20, 0}, prices)
	assert.False(t, valid[3])
}

func TestLeftJoinSuffixesCollidingColumns(t *testing.T) {
	mem := memory.NewGoAllocator()

	left := New(
		series.New("product_id", []string{"P1"}, mem),
		series.New("price_usd", []float64{12}, mem),
	)
	right := New(
		series.New("product_id", []string{"P1"}, mem),
		series.New("price_usd", []float64{20}, mem),
	)

	result, err := left.LeftJoin(right, "product_id")
	require.NoError(t, err)

	assert.Equal(t, []string{"product_id", "price_usd_x", "price_usd_y"}, result.Columns())

	leftPrice, _, err := result.Float64Column("price_usd_x")
	require.NoError(t, err)
	rightPrice, _, err := result.Float64Column("price_usd_y")
	require.NoError(t, err)
	assert.Equal(t, []float64{12}, leftPrice)
	assert.Equal(t, []float64{20}, rightPrice)
}

func TestLeftJoinDuplicateRightKeysMultiplyRows(t *testing.T) {
	mem := memory.NewGoAllocator()

	left := New(series.New("product_id", []string{"P1"}, mem))
	right := New(
		series.New("product_id", []string{"P1", "P1"}, mem),
		series.New("size", []string{"30ml", "50ml"}, mem),
	)

	result, err := left.LeftJoin(right, "product_id")
	require.NoError(t, err)

	require.Equal(t, 2, result.Len())
	sizes, _, err := result.StringColumn("size")
	require.NoError(t, err)
	assert.Equal(t, []string{"30ml", "50ml"}, sizes)
}

func TestLeftJoinNullKeysNeverMatch(t *testing.T) {
	mem := memory.NewGoAllocator()

	left := New(series.NewNullable("product_id", []string{"P1", ""}, []bool{true, false}, mem))
	right := New(
		series.NewNullable("product_id", []string{"P1", ""}, []bool{true, false}, mem),
		series.New("brand_name", []string{"glow", "ghost"}, mem),
	)

	result, err := left.LeftJoin(right, "product_id")
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())

	brands, valid, err := result.StringColumn("brand_name")
	require.NoError(t, err)
	assert.Equal(t, "glow", brands[0])
	assert.False(t, valid[1], "null key must not match the null-keyed right row")
}

func TestLeftJoinMissingKeyColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	left := New(series.New("product_id", []string{"P1"}, mem))
	right := New(series.New("brand_name", []string{"glow"}, mem))

	_, err := left.LeftJoin(right, "product_id")
	assert.Error(t, err)
}

func TestHashIndexResize(t *testing.T) {
	idx := newHashIndex(2)

	for i := 0; i < 100; i++ {
		idx.Put(fmt.Sprintf("key-%d", i), i)
	}

	for i := 0; i < 100; i++ {
		rows, ok := idx.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
		assert.Equal(t, []int{i}, rows)
	}

	_, ok := idx.Get("absent")
	assert.False(t, ok)
}

func TestHashIndexDuplicateKeys(t *testing.T) {
	idx := newHashIndex(8)
	idx.Put("P1", 0)
	idx.Put("P1", 3)

	rows, ok := idx.Get("P1")
	require.True(t, ok)
	assert.Equal(t, []int{0, 3}, rows)
}
