package schema

// Canonical column names after normalization. Every downstream stage
// addresses columns through these constants.
const (
	ColProductID      = "product_id"
	ColReviewText     = "review_text"
	ColRating         = "rating"
	ColSubmissionTime = "submission_time"
	ColSentiment      = "sentiment_score"
	ColSkinType       = "skin_type"
	ColHelpful        = "total_pos_feedback_count"

	ColBrand       = "brand_name"
	ColProductName = "product_name"
	ColPrice       = "price_usd"
	ColExclusive   = "sephora_exclusive"
	ColLimited     = "limited_edition"
	ColNew         = "new"
	ColSize        = "size"
	ColCategory    = "primary_category"
)

// Alternate price columns consulted, in order, when the canonical price
// column is missing from the product table.
var priceFallbacks = []string{"sale_price_usd", "value_price_usd"}

// ProductAttributeColumns is the whitelist of product columns carried
// into the enriched table by the merge.
var ProductAttributeColumns = []string{
	ColProductID,
	ColBrand,
	ColProductName,
	ColPrice,
	ColExclusive,
	ColLimited,
	ColNew,
	ColSize,
	ColCategory,
}

// productDefaults are inserted as constant columns when absent from the
// product table, so downstream stages can assume universal presence.
type columnDefault struct {
	name  string
	value interface{}
}

var productDefaults = []columnDefault{
	{ColExclusive, false},
	{ColLimited, false},
	{ColNew, false},
	{ColSize, "unknown"},
	{ColCategory, "unknown"},
}
