// Package reviewlens provides an in-memory analytics engine for
// product review data: schema normalization, review/product merging,
// sentiment annotation, composable filtering, and aggregation.
// This package is the sole public API for the library.
package reviewlens

import (
	"io"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/paveg/reviewlens/internal/analytics"
	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/errors"
	"github.com/paveg/reviewlens/internal/filter"
	csvio "github.com/paveg/reviewlens/internal/io"
	"github.com/paveg/reviewlens/internal/pipeline"
	"github.com/paveg/reviewlens/internal/schema"
	"github.com/paveg/reviewlens/internal/sentiment"
	"github.com/paveg/reviewlens/internal/series"
)

// ISeries provides a type-erased interface for Series of any type
type ISeries interface {
	Name() string
	Len() int
	DataType() arrow.DataType
	IsNull(index int) bool
	String() string
	Array() arrow.Array
	Release()
	GetAsString(index int) string
}

// DataFrame is the public type for a table of review data.
// It wraps the internal dataframe.DataFrame to hide implementation details.
type DataFrame struct {
	df *dataframe.DataFrame
}

// Session is the public type for the enriched review table and its
// derived views.
type Session struct {
	session *pipeline.Session
}

// Criteria describes one filter pass over the enriched table.
type Criteria = filter.Criteria

// All is the sentinel selection that deactivates a categorical filter.
const All = filter.All

// Scorer computes a polarity score in [-1, 1] for review text.
type Scorer = sentiment.Scorer

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc = sentiment.ScorerFunc

// Aggregation result types.
type (
	Summary     = analytics.Summary
	GroupStat   = analytics.GroupStat
	RatingCount = analytics.RatingCount
	MonthPoint  = analytics.MonthPoint
)

// ErrEmptyView reports aggregation over a view with no rows. It is a
// state to branch on, not a failure.
var ErrEmptyView = errors.ErrEmptyView

// IsSchemaError reports whether err is a fatal schema violation.
func IsSchemaError(err error) bool {
	return errors.IsSchemaError(err)
}

// Canonical column names of the enriched table.
const (
	ColProductID      = schema.ColProductID
	ColReviewText     = schema.ColReviewText
	ColRating         = schema.ColRating
	ColSubmissionTime = schema.ColSubmissionTime
	ColSentiment      = schema.ColSentiment
	ColBrand          = schema.ColBrand
	ColPrice          = schema.ColPrice
	ColSkinType       = schema.ColSkinType
	ColCategory       = schema.ColCategory
	ColHelpful        = schema.ColHelpful
)

// NewSeries creates a new typed Series from values.
func NewSeries[T any](name string, values []T, mem memory.Allocator) ISeries {
	return series.New(name, values, mem)
}

// NewNullableSeries creates a typed Series with an explicit validity
// mask; entries whose mask is false are absent.
func NewNullableSeries[T any](name string, values []T, valid []bool, mem memory.Allocator) ISeries {
	return series.NewNullable(name, values, valid, mem)
}

// NewDataFrame creates a new DataFrame from ISeries.
func NewDataFrame(series ...ISeries) *DataFrame {
	internalSeries := make([]dataframe.ISeries, len(series))
	for i, s := range series {
		internalSeries[i] = s
	}
	return &DataFrame{df: dataframe.New(internalSeries...)}
}

// ReadCSV reads CSV data into a DataFrame with type inference.
func ReadCSV(r io.Reader) (*DataFrame, error) {
	df, err := csvio.NewCSVReader(r, csvio.DefaultCSVOptions(), memory.NewGoAllocator()).Read()
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: df}, nil
}

// ReadCSVFile reads a CSV file into a DataFrame with type inference.
func ReadCSVFile(path string) (*DataFrame, error) {
	df, err := csvio.ReadCSVFile(path, memory.NewGoAllocator())
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: df}, nil
}

// ReadCSVFileDelim reads a delimited text file into a DataFrame using
// the given field delimiter.
func ReadCSVFileDelim(path string, delimiter rune) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	options := csvio.DefaultCSVOptions()
	options.Delimiter = delimiter
	df, err := csvio.NewCSVReader(f, options, memory.NewGoAllocator()).Read()
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: df}, nil
}

// WriteCSV writes a DataFrame as CSV with a header row.
func (d *DataFrame) WriteCSV(w io.Writer) error {
	return csvio.NewCSVWriter(w, csvio.DefaultCSVOptions()).Write(d.df)
}

// DataFrame methods

// Columns returns the column names in order.
func (d *DataFrame) Columns() []string {
	return d.df.Columns()
}

// Len returns the number of rows.
func (d *DataFrame) Len() int {
	return d.df.Len()
}

// Width returns the number of columns.
func (d *DataFrame) Width() int {
	return d.df.Width()
}

// Column returns the column with the given name.
func (d *DataFrame) Column(name string) (ISeries, bool) {
	return d.df.Column(name)
}

// HasColumn checks if a column exists.
func (d *DataFrame) HasColumn(name string) bool {
	return d.df.HasColumn(name)
}

// Float64Column returns the values and validity mask of a float column.
func (d *DataFrame) Float64Column(name string) ([]float64, []bool, error) {
	return d.df.Float64Column(name)
}

// StringColumn returns the values and validity mask of a string column.
func (d *DataFrame) StringColumn(name string) ([]string, []bool, error) {
	return d.df.StringColumn(name)
}

// TimeColumn returns the values and validity mask of a timestamp column.
func (d *DataFrame) TimeColumn(name string) ([]time.Time, []bool, error) {
	return d.df.TimeColumn(name)
}

// String returns a string representation of the DataFrame.
func (d *DataFrame) String() string {
	return d.df.String()
}

// Release frees the memory held by the DataFrame's columns.
func (d *DataFrame) Release() {
	d.df.Release()
}

// NewLexiconScorer returns the built-in deterministic sentiment scorer.
func NewLexiconScorer() Scorer {
	return sentiment.NewLexiconScorer()
}

// NewSession normalizes, merges, and annotates the raw review and
// product tables into an immutable enriched table. Passing a nil
// scorer selects the built-in lexicon scorer.
func NewSession(reviews, products *DataFrame, scorer Scorer) (*Session, error) {
	if scorer == nil {
		scorer = sentiment.NewLexiconScorer()
	}
	session, err := pipeline.NewSession(reviews.df, products.df, scorer)
	if err != nil {
		return nil, err
	}
	return &Session{session: session}, nil
}

// Session methods

// Data returns the full enriched table, read-only.
func (s *Session) Data() *DataFrame {
	return &DataFrame{df: s.session.Data()}
}

// Len returns the number of enriched review rows.
func (s *Session) Len() int {
	return s.session.Len()
}

// View returns the subset of rows matching the criteria.
func (s *Session) View(c Criteria) (*DataFrame, error) {
	view, err := s.session.View(c)
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: view}, nil
}

// Narrow applies the secondary category selection to an existing view.
func (s *Session) Narrow(view *DataFrame, category string) (*DataFrame, error) {
	narrowed, err := s.session.Narrow(view.df, category)
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: narrowed}, nil
}

// Brands returns the sorted distinct brand names in the data.
func (s *Session) Brands() []string { return s.session.Brands() }

// SkinTypes returns the sorted distinct skin types in the data.
func (s *Session) SkinTypes() []string { return s.session.SkinTypes() }

// Categories returns the sorted distinct primary categories in the data.
func (s *Session) Categories() []string { return s.session.Categories() }

// PriceBounds returns the lowest and highest observed prices.
func (s *Session) PriceBounds() (float64, float64) {
	return s.session.PriceBounds()
}

// DateBounds returns the earliest and latest submission timestamps.
func (s *Session) DateBounds() (time.Time, time.Time, bool) {
	return s.session.DateBounds()
}

// ExportCSV writes a view as CSV, header row included.
func (s *Session) ExportCSV(w io.Writer, view *DataFrame) error {
	return s.session.ExportCSV(w, view.df)
}

// Aggregations

// Summarize computes the headline summary of a view.
func Summarize(view *DataFrame) (Summary, error) {
	return analytics.Summarize(view.df)
}

// GroupMeanTopN ranks groups of a string column by the mean of a
// numeric column, descending, at most n entries.
func GroupMeanTopN(view *DataFrame, groupCol, valueCol string, n int) ([]GroupStat, error) {
	return analytics.GroupMeanTopN(view.df, groupCol, valueCol, n)
}

// RatingDistribution counts rows per distinct rating, ascending.
func RatingDistribution(view *DataFrame) ([]RatingCount, error) {
	return analytics.RatingDistribution(view.df)
}

// MonthlyTrend averages sentiment per calendar month, chronologically.
func MonthlyTrend(view *DataFrame) ([]MonthPoint, error) {
	return analytics.MonthlyTrend(view.df)
}

// TopRows returns a view of the k highest rows by a numeric column.
func TopRows(view *DataFrame, key string, k int) (*DataFrame, error) {
	top, err := analytics.TopRows(view.df, key, k)
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: top}, nil
}

// Controversial returns up to k reviews with positive text but a low
// rating.
func Controversial(view *DataFrame, k int) (*DataFrame, error) {
	out, err := analytics.Controversial(view.df, k)
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: out}, nil
}

// PositiveText concatenates the text of reviews scoring above the
// threshold.
func PositiveText(view *DataFrame, threshold float64) (string, error) {
	return analytics.PositiveText(view.df, threshold)
}
