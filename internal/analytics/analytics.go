// Package analytics computes read-only aggregates over a filtered
// review view: headline summary, grouped means, rating distribution,
// monthly sentiment trend, and ranked row extracts. Absent values are
// excluded from every statistic, never counted as zero.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/errors"
	"github.com/paveg/reviewlens/internal/schema"
)

// Sentiment label thresholds. Boundary means fall to neutral.
const (
	positiveLabelThreshold = 0.5
	negativeLabelThreshold = -0.2
)

// Headline labels for the mean sentiment of a view.
const (
	LabelPositive = "Overall Positive"
	LabelNegative = "Generally Negative"
	LabelNeutral  = "Mostly Neutral"
)

// Summary is the headline block for a filtered view.
type Summary struct {
	Rows         int
	AvgRating    float64
	RatingCount  int
	AvgSentiment float64
	Label        string
}

// GroupStat is one entry of a grouped-mean ranking.
type GroupStat struct {
	Key   string
	Mean  float64
	Count int
}

// RatingCount is one bucket of the rating distribution.
type RatingCount struct {
	Rating float64
	Count  int
}

// MonthPoint is one calendar-month bucket of the sentiment trend.
type MonthPoint struct {
	Month        time.Time
	AvgSentiment float64
	Count        int
}

// Summarize computes the headline summary of a view. Absent ratings
// and sentiment scores are excluded from their means; an empty view
// yields ErrEmptyView because its statistics are undefined.
func Summarize(view *dataframe.DataFrame) (Summary, error) {
	if view.Len() == 0 {
		return Summary{}, errors.ErrEmptyView
	}

	ratings, ratingsValid, err := view.Float64Column(schema.ColRating)
	if err != nil {
		return Summary{}, err
	}
	scores, scoresValid, err := view.Float64Column(schema.ColSentiment)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Rows: view.Len()}

	var ratingSum float64
	for i, ok := range ratingsValid {
		if ok {
			ratingSum += ratings[i]
			s.RatingCount++
		}
	}
	if s.RatingCount > 0 {
		s.AvgRating = ratingSum / float64(s.RatingCount)
	}

	var scoreSum float64
	var scoreCount int
	for i, ok := range scoresValid {
		if ok {
			scoreSum += scores[i]
			scoreCount++
		}
	}
	if scoreCount > 0 {
		s.AvgSentiment = scoreSum / float64(scoreCount)
	}
	s.Label = sentimentLabel(s.AvgSentiment)

	return s, nil
}

func sentimentLabel(mean float64) string {
	switch {
	case mean > positiveLabelThreshold:
		return LabelPositive
	case mean < negativeLabelThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// GroupMeanTopN groups the view by a string column, computes the mean
// of a numeric column per group, and returns at most n groups ranked
// by mean descending. Ties keep the order groups were first seen in
// the view. Rows with an absent key or value contribute nothing.
func GroupMeanTopN(view *dataframe.DataFrame, groupCol, valueCol string, n int) ([]GroupStat, error) {
	keys, keysValid, err := view.StringColumn(groupCol)
	if err != nil {
		return nil, err
	}
	values, valuesValid, err := view.Float64Column(valueCol)
	if err != nil {
		return nil, err
	}

	type accumulator struct {
		sum   float64
		count int
	}
	totals := make(map[string]*accumulator)
	order := make([]string, 0)

	for i := range keys {
		if !keysValid[i] || !valuesValid[i] {
			continue
		}
		acc, seen := totals[keys[i]]
		if !seen {
			acc = &accumulator{}
			totals[keys[i]] = acc
			order = append(order, keys[i])
		}
		acc.sum += values[i]
		acc.count++
	}

	stats := make([]GroupStat, 0, len(order))
	for _, key := range order {
		acc := totals[key]
		stats = append(stats, GroupStat{
			Key:   key,
			Mean:  acc.sum / float64(acc.count),
			Count: acc.count,
		})
	}

	dataframe.SortByDesc(stats, func(s GroupStat) float64 { return s.Mean })
	if n >= 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats, nil
}

// RatingDistribution counts rows per distinct rating value, ascending
// by rating. Absent ratings are excluded.
func RatingDistribution(view *dataframe.DataFrame) ([]RatingCount, error) {
	ratings, valid, err := view.Float64Column(schema.ColRating)
	if err != nil {
		return nil, err
	}

	counts := make(map[float64]int)
	for i, ok := range valid {
		if ok {
			counts[ratings[i]]++
		}
	}

	distribution := make([]RatingCount, 0, len(counts))
	for rating, count := range counts {
		distribution = append(distribution, RatingCount{Rating: rating, Count: count})
	}
	dataframe.SortByAsc(distribution, func(r RatingCount) float64 { return r.Rating })
	return distribution, nil
}

// MonthlyTrend buckets rows by the calendar month of their submission
// timestamp and averages sentiment per bucket, chronologically. Rows
// with an absent timestamp or sentiment score are excluded.
func MonthlyTrend(view *dataframe.DataFrame) ([]MonthPoint, error) {
	times, timesValid, err := view.TimeColumn(schema.ColSubmissionTime)
	if err != nil {
		return nil, err
	}
	scores, scoresValid, err := view.Float64Column(schema.ColSentiment)
	if err != nil {
		return nil, err
	}

	type accumulator struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*accumulator)

	for i := range times {
		if !timesValid[i] || !scoresValid[i] {
			continue
		}
		month := monthOf(times[i])
		acc, seen := buckets[month]
		if !seen {
			acc = &accumulator{}
			buckets[month] = acc
		}
		acc.sum += scores[i]
		acc.count++
	}

	trend := make([]MonthPoint, 0, len(buckets))
	for month, acc := range buckets {
		trend = append(trend, MonthPoint{
			Month:        month,
			AvgSentiment: acc.sum / float64(acc.count),
			Count:        acc.count,
		})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month.Before(trend[j].Month) })
	return trend, nil
}

func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TopRows returns a new view of the k highest rows ordered by the
// named numeric column, descending. Rows with an absent key are
// excluded; ties keep view order.
func TopRows(view *dataframe.DataFrame, key string, k int) (*dataframe.DataFrame, error) {
	indices, err := view.SortIndicesByFloat64Desc(key)
	if err != nil {
		return nil, err
	}
	if k >= 0 && len(indices) > k {
		indices = indices[:k]
	}
	return view.Take(indices), nil
}

// Controversial extracts reviews whose text reads positive but whose
// rating is low: sentiment above 0.5 with a rating of at most 2, then
// the top k of those by sentiment.
func Controversial(view *dataframe.DataFrame, k int) (*dataframe.DataFrame, error) {
	scores, scoresValid, err := view.Float64Column(schema.ColSentiment)
	if err != nil {
		return nil, err
	}
	ratings, ratingsValid, err := view.Float64Column(schema.ColRating)
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0)
	for i := range scores {
		if scoresValid[i] && ratingsValid[i] && scores[i] > 0.5 && ratings[i] <= 2 {
			indices = append(indices, i)
		}
	}

	candidates := view.Take(indices)
	return TopRows(candidates, schema.ColSentiment, k)
}

// PositiveText concatenates the review text of rows whose sentiment is
// strictly above the threshold, separated by single spaces. Rows with
// absent text or sentiment are skipped.
func PositiveText(view *dataframe.DataFrame, threshold float64) (string, error) {
	scores, scoresValid, err := view.Float64Column(schema.ColSentiment)
	if err != nil {
		return "", err
	}
	texts, textsValid, err := view.StringColumn(schema.ColReviewText)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0)
	for i := range scores {
		if scoresValid[i] && textsValid[i] && scores[i] > threshold && texts[i] != "" {
			parts = append(parts, texts[i])
		}
	}
	return strings.Join(parts, " "), nil
}
