package series

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeries(t *testing.T) {
	mem := memory.NewGoAllocator()

	tests := []struct {
		name        string
		columnName  string
		build       func() interface{ Len() int }
		expectedLen int
	}{
		{
			name:       "string series",
			columnName: "brand_name",
			build: func() interface{ Len() int } {
				return New("brand_name", []string{"glow", "dew", "mist"}, mem)
			},
			expectedLen: 3,
		},
		{
			name:       "float64 series",
			columnName: "rating",
			build: func() interface{ Len() int } {
				return New("rating", []float64{5, 1, 3}, mem)
			},
			expectedLen: 3,
		},
		{
			name:       "bool series",
			columnName: "new",
			build: func() interface{ Len() int } {
				return New("new", []bool{true, false}, mem)
			},
			expectedLen: 2,
		},
		{
			name:       "empty series",
			columnName: "empty",
			build: func() interface{ Len() int } {
				return New("empty", []string{}, mem)
			},
			expectedLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.build()
			assert.Equal(t, tt.expectedLen, s.Len())
		})
	}
}

func TestSeriesValues(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := New("rating", []float64{5, 1, 3}, mem)
	defer s.Release()

	assert.Equal(t, "rating", s.Name())
	assert.Equal(t, []float64{5, 1, 3}, s.Values())
	assert.InDelta(t, 1.0, s.Value(1), 1e-9)
	assert.Zero(t, s.Value(99))
}

func TestNullableSeries(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := NewNullable("rating", []float64{4.5, 0, 2}, []bool{true, false, true}, mem)
	defer s.Release()

	require.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.NullCount())

	assert.False(t, s.IsNull(0))
	assert.True(t, s.IsNull(1))
	assert.False(t, s.IsNull(2))

	// Null entries read back as zero values.
	assert.Zero(t, s.Value(1))
	assert.Equal(t, "", s.GetAsString(1))
	assert.Equal(t, "2", s.GetAsString(2))
}

func TestNullableSeriesMaskMismatchPanics(t *testing.T) {
	mem := memory.NewGoAllocator()

	assert.Panics(t, func() {
		NewNullable("rating", []float64{1, 2}, []bool{true}, mem)
	})
}

func TestTimestampSeries(t *testing.T) {
	mem := memory.NewGoAllocator()

	times := []time.Time{
		time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC),
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	s := New("submission_time", times, mem)
	defer s.Release()

	require.Equal(t, 2, s.Len())
	assert.Equal(t, arrow.TIMESTAMP, s.DataType().ID())
	assert.True(t, times[0].Equal(s.Value(0)))
	assert.True(t, times[1].Equal(s.Value(1)))
	assert.Equal(t, "2023-02-01T00:00:00Z", s.GetAsString(1))
}

func TestUnsupportedTypePanics(t *testing.T) {
	mem := memory.NewGoAllocator()

	assert.Panics(t, func() {
		New("bad", []complex128{1 + 2i}, mem)
	})
}

func TestSeriesString(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := New("size", []string{"30ml"}, mem)
	defer s.Release()

	assert.Contains(t, s.String(), "size")
	assert.Contains(t, s.String(), "len=1")
}
