// Package filter applies an ordered conjunction of user criteria to
// the enriched review table. Every active criterion contributes an
// independent row mask; the filtered view is the intersection of all
// masks, so predicate order never changes the result. The source table
// is never mutated.
package filter

import (
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/errors"
	"github.com/paveg/reviewlens/internal/schema"
)

// All is the sentinel selection that deactivates a categorical filter.
const All = "All"

// Criteria holds one interaction's worth of filter state. Zero values
// deactivate each criterion: empty string or All for categoricals,
// false for flags, nil for range bounds.
type Criteria struct {
	Brand    string
	SkinType string
	Category string

	ExclusiveOnly bool
	LimitedOnly   bool
	NewOnly       bool

	PriceMin *float64
	PriceMax *float64

	MinRating *float64

	DateFrom *time.Time
	DateTo   *time.Time

	Search string
}

// predicate pairs a column mask builder with its activity check.
type predicate struct {
	active bool
	mask   func(df *dataframe.DataFrame) ([]bool, error)
}

func (c Criteria) predicates() []predicate {
	return []predicate{
		{categoricalActive(c.Brand), categoricalMask(schema.ColBrand, c.Brand)},
		{categoricalActive(c.SkinType), categoricalMask(schema.ColSkinType, c.SkinType)},
		{categoricalActive(c.Category), categoricalMask(schema.ColCategory, c.Category)},
		{c.ExclusiveOnly, flagMask(schema.ColExclusive)},
		{c.LimitedOnly, flagMask(schema.ColLimited)},
		{c.NewOnly, flagMask(schema.ColNew)},
		{c.PriceMin != nil || c.PriceMax != nil, rangeMask(schema.ColPrice, c.PriceMin, c.PriceMax)},
		{c.MinRating != nil, thresholdMask(schema.ColRating, c.MinRating)},
		{c.DateFrom != nil || c.DateTo != nil, dateMask(schema.ColSubmissionTime, c.DateFrom, c.DateTo)},
		{c.Search != "", searchMask(schema.ColReviewText, c.Search)},
	}
}

// Mask returns the row mask of the conjunction of all active
// criteria. A Criteria with a single active field yields that one
// predicate's mask, so callers can verify that combined criteria are
// exactly the intersection of their parts.
func Mask(df *dataframe.DataFrame, c Criteria) ([]bool, error) {
	combined := make([]bool, df.Len())
	for i := range combined {
		combined[i] = true
	}

	for _, p := range c.predicates() {
		if !p.active {
			continue
		}
		mask, err := p.mask(df)
		if err != nil {
			return nil, err
		}
		for i := range combined {
			combined[i] = combined[i] && mask[i]
		}
	}
	return combined, nil
}

// Apply returns the subset of rows satisfying every active criterion.
// An empty result is a valid state, not an error.
func Apply(df *dataframe.DataFrame, c Criteria) (*dataframe.DataFrame, error) {
	combined, err := Mask(df, c)
	if err != nil {
		return nil, err
	}
	return df.Take(maskIndices(combined)), nil
}

// Narrow applies only the secondary category criterion to an existing
// view, so it can be toggled independently of the main filter pass.
func Narrow(view *dataframe.DataFrame, category string) (*dataframe.DataFrame, error) {
	if !categoricalActive(category) {
		return view, nil
	}
	return Apply(view, Criteria{Category: category})
}

func categoricalActive(selection string) bool {
	return selection != "" && selection != All
}

func maskIndices(mask []bool) []int {
	indices := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return indices
}

// categoricalMask matches rows whose column value equals the selection.
// Absent values never match.
func categoricalMask(column, selection string) func(*dataframe.DataFrame) ([]bool, error) {
	return func(df *dataframe.DataFrame) ([]bool, error) {
		values, valid, err := df.StringColumn(column)
		if err != nil {
			return nil, err
		}
		mask := make([]bool, len(values))
		for i := range values {
			mask[i] = valid[i] && values[i] == selection
		}
		return mask, nil
	}
}

// flagMask matches rows whose flag column is truthy. Boolean columns
// are the normal case; integer and string renditions of the flags are
// accepted because CSV sources are inconsistent about them.
func flagMask(column string) func(*dataframe.DataFrame) ([]bool, error) {
	return func(df *dataframe.DataFrame) ([]bool, error) {
		col, exists := df.Column(column)
		if !exists {
			return nil, errors.NewColumnNotFoundError("filter", column)
		}

		arr := col.Array()
		defer arr.Release()

		mask := make([]bool, arr.Len())
		switch typed := arr.(type) {
		case *array.Boolean:
			for i := range mask {
				mask[i] = !typed.IsNull(i) && typed.Value(i)
			}
		case *array.Int64:
			for i := range mask {
				mask[i] = !typed.IsNull(i) && typed.Value(i) != 0
			}
		case *array.String:
			for i := range mask {
				mask[i] = !typed.IsNull(i) && strings.EqualFold(typed.Value(i), "true")
			}
		default:
			return nil, errors.NewUnsupportedTypeError("filter", column, arr.DataType().String())
		}
		return mask, nil
	}
}

// rangeMask matches rows whose numeric value lies in [low, high], both
// bounds inclusive and individually optional. Absent values never match.
func rangeMask(column string, low, high *float64) func(*dataframe.DataFrame) ([]bool, error) {
	return func(df *dataframe.DataFrame) ([]bool, error) {
		values, valid, err := df.Float64Column(column)
		if err != nil {
			return nil, err
		}
		mask := make([]bool, len(values))
		for i := range values {
			if !valid[i] {
				continue
			}
			if low != nil && values[i] < *low {
				continue
			}
			if high != nil && values[i] > *high {
				continue
			}
			mask[i] = true
		}
		return mask, nil
	}
}

// thresholdMask matches rows whose numeric value is at least the
// threshold. Absent values never match.
func thresholdMask(column string, threshold *float64) func(*dataframe.DataFrame) ([]bool, error) {
	return func(df *dataframe.DataFrame) ([]bool, error) {
		values, valid, err := df.Float64Column(column)
		if err != nil {
			return nil, err
		}
		mask := make([]bool, len(values))
		for i := range values {
			mask[i] = valid[i] && values[i] >= *threshold
		}
		return mask, nil
	}
}

// dateMask matches rows whose timestamp falls within [from, to] at day
// granularity: both bounds and the row value are truncated to midnight
// UTC before comparison. Absent timestamps never match.
func dateMask(column string, from, to *time.Time) func(*dataframe.DataFrame) ([]bool, error) {
	return func(df *dataframe.DataFrame) ([]bool, error) {
		values, valid, err := df.TimeColumn(column)
		if err != nil {
			return nil, err
		}

		mask := make([]bool, len(values))
		for i := range values {
			if !valid[i] {
				continue
			}
			day := truncateToDay(values[i])
			if from != nil && day.Before(truncateToDay(*from)) {
				continue
			}
			if to != nil && day.After(truncateToDay(*to)) {
				continue
			}
			mask[i] = true
		}
		return mask, nil
	}
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// searchMask matches rows whose text column contains the query,
// case-insensitively. Absent text never matches.
func searchMask(column, query string) func(*dataframe.DataFrame) ([]bool, error) {
	return func(df *dataframe.DataFrame) ([]bool, error) {
		values, valid, err := df.StringColumn(column)
		if err != nil {
			return nil, err
		}

		needle := strings.ToLower(query)
		mask := make([]bool, len(values))
		for i := range values {
			mask[i] = valid[i] && strings.Contains(strings.ToLower(values[i]), needle)
		}
		return mask, nil
	}
}
