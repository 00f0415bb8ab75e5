//nolint:testpackage // requires internal access to unexported types and functions
package analytics

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/errors"
	"github.com/paveg/reviewlens/internal/schema"
	"github.com/paveg/reviewlens/internal/series"
)

func TestSummarizeEmptyView(t *testing.T) {
	view := dataframe.New()
	_, err := Summarize(view)
	require.ErrorIs(t, err, errors.ErrEmptyView)
}

func TestSummarizeExcludesAbsentValues(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.NewNullable(schema.ColRating,
			[]float64{5, 3, 0, 4},
			[]bool{true, true, false, true}, mem),
		series.NewNullable(schema.ColSentiment,
			[]float64{0.8, 0.4, 0.6, 0},
			[]bool{true, true, true, false}, mem),
	)

	s, err := Summarize(view)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.RatingCount)
	assert.InDelta(t, 4.0, s.AvgRating, 1e-9)
	assert.InDelta(t, 0.6, s.AvgSentiment, 1e-9)
	assert.Equal(t, LabelPositive, s.Label)
}

func TestSentimentLabelThresholds(t *testing.T) {
	tests := []struct {
		mean     float64
		expected string
	}{
		{0.9, LabelPositive},
		{0.51, LabelPositive},
		{0.5, LabelNeutral},
		{0.0, LabelNeutral},
		{-0.2, LabelNeutral},
		{-0.21, LabelNegative},
		{-0.9, LabelNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sentimentLabel(tt.mean), "mean %v", tt.mean)
	}
}

func TestGroupMeanTopN(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.NewNullable("brand_name",
			[]string{"glow", "dew", "glow", "", "mist", "dew"},
			[]bool{true, true, true, false, true, true}, mem),
		series.NewNullable(schema.ColRating,
			[]float64{5, 4, 3, 5, 4, 0},
			[]bool{true, true, true, true, true, false}, mem),
	)

	stats, err := GroupMeanTopN(view, "brand_name", schema.ColRating, 2)
	require.NoError(t, err)

	require.Len(t, stats, 2)
	// glow: (5+3)/2 = 4; dew: 4/1 = 4; mist: 4/1 = 4.
	// All tie at 4; first-encounter order wins and n truncates to 2.
	assert.Equal(t, GroupStat{Key: "glow", Mean: 4, Count: 2}, stats[0])
	assert.Equal(t, GroupStat{Key: "dew", Mean: 4, Count: 1}, stats[1])
}

func TestGroupMeanTopNDescending(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.New("brand_name", []string{"a", "b", "c"}, mem),
		series.New(schema.ColRating, []float64{1, 5, 3}, mem),
	)

	stats, err := GroupMeanTopN(view, "brand_name", schema.ColRating, 10)
	require.NoError(t, err)

	require.Len(t, stats, 3)
	assert.Equal(t, "b", stats[0].Key)
	assert.Equal(t, "c", stats[1].Key)
	assert.Equal(t, "a", stats[2].Key)
}

func TestRatingDistribution(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.NewNullable(schema.ColRating,
			[]float64{5, 1, 5, 3, 0, 5},
			[]bool{true, true, true, true, false, true}, mem),
	)

	distribution, err := RatingDistribution(view)
	require.NoError(t, err)

	assert.Equal(t, []RatingCount{
		{Rating: 1, Count: 1},
		{Rating: 3, Count: 1},
		{Rating: 5, Count: 3},
	}, distribution)
}

func TestMonthlyTrend(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.NewNullable(schema.ColSubmissionTime,
			[]time.Time{
				time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 28, 23, 0, 0, 0, time.UTC),
				{},
			},
			[]bool{true, true, true, false}, mem),
		series.New(schema.ColSentiment, []float64{0.4, 0.9, 0.6, 0.1}, mem),
	)

	trend, err := MonthlyTrend(view)
	require.NoError(t, err)

	require.Len(t, trend, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), trend[0].Month)
	assert.Equal(t, 1, trend[0].Count)
	assert.InDelta(t, 0.9, trend[0].AvgSentiment, 1e-9)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), trend[1].Month)
	assert.Equal(t, 2, trend[1].Count)
	assert.InDelta(t, 0.5, trend[1].AvgSentiment, 1e-9)
}

func TestTopRows(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.New(schema.ColProductID, []string{"P1", "P2", "P3", "P4"}, mem),
		series.NewNullable(schema.ColSentiment,
			[]float64{0.2, 0.9, 0, 0.9},
			[]bool{true, true, false, true}, mem),
	)

	top, err := TopRows(view, schema.ColSentiment, 2)
	require.NoError(t, err)

	ids, _, err := top.StringColumn(schema.ColProductID)
	require.NoError(t, err)
	// P2 and P4 tie; view order breaks the tie. P3's absent score
	// keeps it out entirely.
	assert.Equal(t, []string{"P2", "P4"}, ids)
}

func TestTopRowsFewerThanK(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.New(schema.ColProductID, []string{"P1"}, mem),
		series.New(schema.ColSentiment, []float64{0.5}, mem),
	)

	top, err := TopRows(view, schema.ColSentiment, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, top.Len())
}

func TestControversial(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.New(schema.ColProductID, []string{"P1", "P2", "P3", "P4"}, mem),
		series.New(schema.ColSentiment, []float64{0.8, 0.9, 0.4, 0.7}, mem),
		series.New(schema.ColRating, []float64{1, 2, 1, 5}, mem),
	)

	out, err := Controversial(view, 10)
	require.NoError(t, err)

	ids, _, err := out.StringColumn(schema.ColProductID)
	require.NoError(t, err)
	// P3's sentiment is too low and P4's rating too high.
	assert.Equal(t, []string{"P2", "P1"}, ids)
}

func TestPositiveText(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.New(schema.ColReviewText, []string{"love it", "meh", "so good"}, mem),
		series.New(schema.ColSentiment, []float64{0.8, 0.1, 0.6}, mem),
	)

	text, err := PositiveText(view, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "love it so good", text)
}

func TestPositiveTextEmptyResult(t *testing.T) {
	mem := memory.NewGoAllocator()

	view := dataframe.New(
		series.New(schema.ColReviewText, []string{"meh"}, mem),
		series.New(schema.ColSentiment, []float64{0.1}, mem),
	)

	text, err := PositiveText(view, 0.5)
	require.NoError(t, err)
	assert.Empty(t, text)
}
