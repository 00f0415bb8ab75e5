package pipeline

import (
	stdio "io"
	"time"

	"github.com/paveg/reviewlens/internal/analytics"
	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/filter"
	csvio "github.com/paveg/reviewlens/internal/io"
	"github.com/paveg/reviewlens/internal/schema"
	"github.com/paveg/reviewlens/internal/sentiment"
)

// Session holds the enriched review table built once from the raw
// review and product tables. The table is immutable after
// construction; every filter pass derives a fresh view from it, so a
// Session can be shared read-only across callers.
type Session struct {
	data *dataframe.DataFrame
}

// NewSession normalizes both tables, merges them, and annotates the
// result with sentiment scores. A schema violation in either input is
// fatal and surfaces here.
func NewSession(reviews, products *dataframe.DataFrame, scorer sentiment.Scorer) (*Session, error) {
	normalizedReviews, err := schema.NormalizeReviews(reviews)
	if err != nil {
		return nil, err
	}
	normalizedProducts, err := schema.NormalizeProducts(products)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(normalizedReviews, normalizedProducts)
	if err != nil {
		return nil, err
	}

	return &Session{data: Annotate(merged, scorer)}, nil
}

// Data returns the full enriched table. Callers must treat it as
// read-only.
func (s *Session) Data() *dataframe.DataFrame {
	return s.data
}

// Len returns the number of enriched review rows.
func (s *Session) Len() int {
	return s.data.Len()
}

// View returns the subset of rows matching the criteria.
func (s *Session) View(c filter.Criteria) (*dataframe.DataFrame, error) {
	return filter.Apply(s.data, c)
}

// Narrow applies the secondary category selection to an existing view.
func (s *Session) Narrow(view *dataframe.DataFrame, category string) (*dataframe.DataFrame, error) {
	return filter.Narrow(view, category)
}

// Brands returns the sorted distinct brand names present in the data.
func (s *Session) Brands() []string {
	return s.distinctStrings(schema.ColBrand)
}

// SkinTypes returns the sorted distinct skin types present in the data.
func (s *Session) SkinTypes() []string {
	return s.distinctStrings(schema.ColSkinType)
}

// Categories returns the sorted distinct primary categories present in
// the data.
func (s *Session) Categories() []string {
	return s.distinctStrings(schema.ColCategory)
}

func (s *Session) distinctStrings(column string) []string {
	values, valid, err := s.data.StringColumn(column)
	if err != nil {
		return []string{}
	}

	seen := make(map[string]bool)
	distinct := make([]string, 0)
	for i, ok := range valid {
		if !ok || values[i] == "" || seen[values[i]] {
			continue
		}
		seen[values[i]] = true
		distinct = append(distinct, values[i])
	}
	dataframe.SortByAsc(distinct, func(v string) string { return v })
	return distinct
}

// PriceBounds returns the lowest and highest observed prices, so a
// caller can size a range control. A session with no priced rows
// reports (0, 0).
func (s *Session) PriceBounds() (min, max float64) {
	values, valid, err := s.data.Float64Column(schema.ColPrice)
	if err != nil {
		return 0, 0
	}

	first := true
	for i, ok := range valid {
		if !ok {
			continue
		}
		if first || values[i] < min {
			min = values[i]
		}
		if first || values[i] > max {
			max = values[i]
		}
		first = false
	}
	return min, max
}

// DateBounds returns the earliest and latest submission timestamps.
// ok is false when no row carries a parseable timestamp.
func (s *Session) DateBounds() (earliest, latest time.Time, ok bool) {
	values, valid, err := s.data.TimeColumn(schema.ColSubmissionTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	for i, v := range valid {
		if !v {
			continue
		}
		if !ok || values[i].Before(earliest) {
			earliest = values[i]
		}
		if !ok || values[i].After(latest) {
			latest = values[i]
		}
		ok = true
	}
	return earliest, latest, ok
}

// Summarize computes the headline summary for a view derived from this
// session.
func (s *Session) Summarize(view *dataframe.DataFrame) (analytics.Summary, error) {
	return analytics.Summarize(view)
}

// ExportCSV writes a view as CSV, header row included.
func (s *Session) ExportCSV(w stdio.Writer, view *dataframe.DataFrame) error {
	return csvio.NewCSVWriter(w, csvio.DefaultCSVOptions()).Write(view)
}
