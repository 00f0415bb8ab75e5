// Package pipeline assembles the enriched review table: normalized
// reviews left-joined with product attributes, price collisions
// resolved, and each row annotated with a sentiment score. The result
// is wrapped in an immutable Session that hands out filtered views.
package pipeline

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/schema"
	"github.com/paveg/reviewlens/internal/sentiment"
	"github.com/paveg/reviewlens/internal/series"
)

// Merge left-joins product attributes onto the review table. Products
// are first projected to the attribute whitelist; review columns that
// would collide with the projection are dropped beforehand, except the
// join key and the price column, whose collision carries the
// resolution signal. Every review row survives; reviews without a
// matching product keep nulls for the product attributes and a zero
// price.
func Merge(reviews, products *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	mem := memory.NewGoAllocator()

	projected := products.Select(schema.ProductAttributeColumns...)

	drops := make([]string, 0)
	for _, name := range projected.Columns() {
		if name == schema.ColProductID || name == schema.ColPrice {
			continue
		}
		if reviews.HasColumn(name) {
			drops = append(drops, name)
		}
	}
	trimmed := reviews.Drop(drops...)

	merged, err := trimmed.LeftJoin(projected, schema.ColProductID)
	if err != nil {
		return nil, err
	}

	return resolvePrice(merged, mem), nil
}

// resolvePrice collapses the joined price columns into one canonical
// price. The choice is column-wise, not per-row: when the join produced
// a product-side price column it is used for every row, nulls included;
// the review-side column is consulted only when no product-side price
// column exists at all. Nulls, parse failures, and negative values
// resolve to 0.0 so the price column never carries nulls.
func resolvePrice(df *dataframe.DataFrame, mem memory.Allocator) *dataframe.DataFrame {
	candidates := []string{
		schema.ColPrice + dataframe.RightSuffix,
		schema.ColPrice,
		schema.ColPrice + dataframe.LeftSuffix,
	}

	for _, name := range candidates {
		values, ok := priceValues(df, name, mem)
		if !ok {
			continue
		}
		out := df.Drop(schema.ColPrice+dataframe.LeftSuffix, schema.ColPrice+dataframe.RightSuffix)
		return out.WithColumn(series.New(schema.ColPrice, values, mem))
	}

	return df.WithColumn(series.New(schema.ColPrice, priceDefaults(df.Len()), mem))
}

// priceValues reads a price column as floats with nulls, parse
// failures, and negative values flattened to 0.0.
func priceValues(df *dataframe.DataFrame, name string, mem memory.Allocator) ([]float64, bool) {
	col, exists := df.Column(name)
	if !exists {
		return nil, false
	}

	coerced := dataframe.ToFloat64(col, mem)
	floats, valid, err := dataframe.New(coerced).Float64Column(name)
	if err != nil {
		return nil, false
	}

	values := make([]float64, len(floats))
	for i := range values {
		if valid[i] && floats[i] > 0 {
			values[i] = floats[i]
		}
	}
	return values, true
}

func priceDefaults(n int) []float64 {
	return make([]float64, n)
}

// Annotate coerces the analytic columns to their canonical types and
// adds the sentiment score column. Ratings become nullable floats,
// submission times nullable timestamps, review text a null-free string
// column. The scorer runs exactly once per row; its output is stored,
// never recomputed.
func Annotate(df *dataframe.DataFrame, scorer sentiment.Scorer) *dataframe.DataFrame {
	mem := memory.NewGoAllocator()

	out := df
	if col, exists := out.Column(schema.ColRating); exists {
		out = out.WithColumn(dataframe.ToFloat64(col, mem))
	}
	if col, exists := out.Column(schema.ColSubmissionTime); exists {
		out = out.WithColumn(dataframe.ToTimestamp(col, mem))
	}
	if col, exists := out.Column(schema.ColHelpful); exists {
		out = out.WithColumn(dataframe.ToFloat64(col, mem))
	}

	if text, exists := out.Column(schema.ColReviewText); exists {
		out = out.WithColumn(dataframe.ToStringFilled(text, "", mem))
	}

	texts, _, err := out.StringColumn(schema.ColReviewText)
	if err != nil {
		texts = make([]string, out.Len())
	}
	scores := make([]float64, len(texts))
	for i, t := range texts {
		scores[i] = sentiment.Clamp(scorer.Score(t))
	}
	return out.WithColumn(series.New(schema.ColSentiment, scores, mem))
}
