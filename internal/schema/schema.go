// Package schema canonicalizes raw table schemas before the merge:
// column names are trimmed and lower-cased, required columns are
// enforced, and missing-but-expected product columns are backfilled
// with defaults.
package schema

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/paveg/reviewlens/internal/dataframe"
	"github.com/paveg/reviewlens/internal/errors"
	"github.com/paveg/reviewlens/internal/series"
)

// Normalize returns a new DataFrame whose column names are trimmed of
// whitespace and lower-cased. When two raw names collapse to the same
// canonical name, the first occurrence wins. The input is not mutated.
func Normalize(df *dataframe.DataFrame) *dataframe.DataFrame {
	seen := make(map[string]bool)
	normalized := make([]dataframe.ISeries, 0, df.Width())

	for _, name := range df.Columns() {
		canonical := strings.ToLower(strings.TrimSpace(name))
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		col, _ := df.Column(name)
		normalized = append(normalized, dataframe.Renamed(col, canonical))
	}

	return dataframe.New(normalized...)
}

// RequireColumns fails with a SchemaError if any of the named columns
// is absent. The table name only labels the error message.
func RequireColumns(df *dataframe.DataFrame, table string, columns ...string) error {
	for _, column := range columns {
		if !df.HasColumn(column) {
			return errors.NewSchemaError(table, column)
		}
	}
	return nil
}

// NormalizeReviews canonicalizes the review table. The product
// identifier and review text columns are required; the identifier is
// coerced to string so it can serve as the join key.
func NormalizeReviews(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	mem := memory.NewGoAllocator()

	normalized := Normalize(df)
	if err := RequireColumns(normalized, "review", ColProductID, ColReviewText); err != nil {
		return nil, err
	}

	return withStringKey(normalized, mem), nil
}

// NormalizeProducts canonicalizes the product table. The product
// identifier is required and coerced to string; a price column is
// guaranteed to exist (copied from the first available alternate, or a
// constant 0.0 column); optional attribute columns are backfilled with
// their defaults.
func NormalizeProducts(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	mem := memory.NewGoAllocator()

	normalized := Normalize(df)
	if err := RequireColumns(normalized, "product", ColProductID); err != nil {
		return nil, err
	}
	normalized = withStringKey(normalized, mem)

	normalized = ensurePrice(normalized, mem)

	for _, def := range productDefaults {
		if normalized.HasColumn(def.name) {
			continue
		}
		normalized = normalized.WithColumn(constantColumn(def.name, def.value, normalized.Len(), mem))
	}

	return normalized, nil
}

// withStringKey replaces the join key column with its string coercion.
func withStringKey(df *dataframe.DataFrame, mem memory.Allocator) *dataframe.DataFrame {
	key, _ := df.Column(ColProductID)
	return df.WithColumn(dataframe.ToString(key, mem))
}

// ensurePrice guarantees a canonical price column, consulting the
// alternate price columns in their fixed preference order.
func ensurePrice(df *dataframe.DataFrame, mem memory.Allocator) *dataframe.DataFrame {
	if df.HasColumn(ColPrice) {
		return df
	}

	for _, alternate := range priceFallbacks {
		if col, exists := df.Column(alternate); exists {
			return df.WithColumn(dataframe.Renamed(col, ColPrice))
		}
	}

	return df.WithColumn(constantColumn(ColPrice, 0.0, df.Len(), mem))
}

// constantColumn builds a column of n copies of a default value.
func constantColumn(name string, value interface{}, n int, mem memory.Allocator) dataframe.ISeries {
	switch v := value.(type) {
	case bool:
		values := make([]bool, n)
		for i := range values {
			values[i] = v
		}
		return series.New(name, values, mem)
	case float64:
		values := make([]float64, n)
		for i := range values {
			values[i] = v
		}
		return series.New(name, values, mem)
	case string:
		values := make([]string, n)
		for i := range values {
			values[i] = v
		}
		return series.New(name, values, mem)
	default:
		panic("unsupported default column type")
	}
}
