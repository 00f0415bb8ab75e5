package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"
	"unicode/utf8"

	reviewlens "github.com/paveg/reviewlens"
	"github.com/paveg/reviewlens/internal/config"
	"github.com/paveg/reviewlens/internal/version"
)

func customUsage() {
	fmt.Fprintf(os.Stderr, "reviewlens review analytics CLI (version %s)\n\n", version.Version)
	fmt.Fprintf(os.Stderr, "Usage: reviewlens-cli [options]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fmt.Fprintf(os.Stderr, "  --reviews PATH\n\t\tReview CSV file (required unless set in config)\n")
	fmt.Fprintf(os.Stderr, "  --products PATH\n\t\tProduct CSV file (required unless set in config)\n")
	fmt.Fprintf(os.Stderr, "  --config PATH\n\t\tYAML configuration file\n")
	fmt.Fprintf(os.Stderr, "  --brand NAME\n\t\tFilter: brand name (default: All)\n")
	fmt.Fprintf(os.Stderr, "  --skin-type NAME\n\t\tFilter: skin type (default: All)\n")
	fmt.Fprintf(os.Stderr, "  --category NAME\n\t\tFilter: primary category (default: All)\n")
	fmt.Fprintf(os.Stderr, "  --exclusive\n\t\tFilter: exclusive products only\n")
	fmt.Fprintf(os.Stderr, "  --limited\n\t\tFilter: limited-edition products only\n")
	fmt.Fprintf(os.Stderr, "  --new\n\t\tFilter: new products only\n")
	fmt.Fprintf(os.Stderr, "  --price-min N / --price-max N\n\t\tFilter: inclusive price range\n")
	fmt.Fprintf(os.Stderr, "  --min-rating N\n\t\tFilter: minimum rating\n")
	fmt.Fprintf(os.Stderr, "  --date-from / --date-to YYYY-MM-DD\n\t\tFilter: inclusive submission date range\n")
	fmt.Fprintf(os.Stderr, "  --search TEXT\n\t\tFilter: case-insensitive review text search\n")
	fmt.Fprintf(os.Stderr, "  --export PATH\n\t\tWrite the filtered view as CSV\n")
	fmt.Fprintf(os.Stderr, "  -v, --version\n\t\tPrint version information and exit\n")
	fmt.Fprintf(os.Stderr, "  -h, --help\n\t\tShow this help message and exit\n")
}

func main() {
	versionFlag := flag.Bool("v", false, "Print version and exit")
	flag.BoolVar(versionFlag, "version", false, "Print version and exit") // alias

	reviewsFlag := flag.String("reviews", "", "Review CSV file")
	productsFlag := flag.String("products", "", "Product CSV file")
	configFlag := flag.String("config", "", "YAML configuration file")

	brandFlag := flag.String("brand", reviewlens.All, "Brand filter")
	skinTypeFlag := flag.String("skin-type", reviewlens.All, "Skin type filter")
	categoryFlag := flag.String("category", reviewlens.All, "Primary category filter")
	exclusiveFlag := flag.Bool("exclusive", false, "Exclusive products only")
	limitedFlag := flag.Bool("limited", false, "Limited-edition products only")
	newFlag := flag.Bool("new", false, "New products only")
	priceMinFlag := flag.Float64("price-min", -1, "Minimum price")
	priceMaxFlag := flag.Float64("price-max", -1, "Maximum price")
	minRatingFlag := flag.Float64("min-rating", -1, "Minimum rating")
	dateFromFlag := flag.String("date-from", "", "Earliest submission date (YYYY-MM-DD)")
	dateToFlag := flag.String("date-to", "", "Latest submission date (YYYY-MM-DD)")
	searchFlag := flag.String("search", "", "Review text search")
	exportFlag := flag.String("export", "", "Export filtered view as CSV")

	//nolint:reassign // Standard Go pattern for customizing flag usage message
	flag.Usage = customUsage

	flag.Parse()

	if *versionFlag {
		fmt.Print(version.Info().String())
		return
	}

	cfg := loadConfig(*configFlag)
	if *reviewsFlag != "" {
		cfg.ReviewsPath = *reviewsFlag
	}
	if *productsFlag != "" {
		cfg.ProductsPath = *productsFlag
	}
	if cfg.ReviewsPath == "" || cfg.ProductsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	criteria := reviewlens.Criteria{
		Brand:         *brandFlag,
		SkinType:      *skinTypeFlag,
		Category:      *categoryFlag,
		ExclusiveOnly: *exclusiveFlag,
		LimitedOnly:   *limitedFlag,
		NewOnly:       *newFlag,
		Search:        *searchFlag,
	}
	if *priceMinFlag >= 0 {
		criteria.PriceMin = priceMinFlag
	}
	if *priceMaxFlag >= 0 {
		criteria.PriceMax = priceMaxFlag
	}
	if *minRatingFlag >= 0 {
		criteria.MinRating = minRatingFlag
	}
	criteria.DateFrom = parseDateFlag(*dateFromFlag)
	criteria.DateTo = parseDateFlag(*dateToFlag)

	run(cfg, criteria, *exportFlag)
}

func readTable(path, delimiter string) (*reviewlens.DataFrame, error) {
	delim := ','
	if len(delimiter) == 1 {
		delim = rune(delimiter[0])
	}
	return reviewlens.ReadCSVFileDelim(path, delim)
}

func loadConfig(path string) config.Config {
	if path == "" {
		return config.LoadFromEnv()
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func parseDateFlag(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return &t
}

func run(cfg config.Config, criteria reviewlens.Criteria, exportPath string) {
	reviews, err := readTable(cfg.ReviewsPath, cfg.Delimiter)
	if err != nil {
		log.Fatalf("reading reviews: %v", err)
	}
	products, err := readTable(cfg.ProductsPath, cfg.Delimiter)
	if err != nil {
		log.Fatalf("reading products: %v", err)
	}

	session, err := reviewlens.NewSession(reviews, products, nil)
	if err != nil {
		log.Fatalf("building session: %v", err)
	}
	fmt.Printf("Loaded %d reviews across %d brands\n", session.Len(), len(session.Brands()))

	view, err := session.View(criteria)
	if err != nil {
		log.Fatalf("applying filters: %v", err)
	}

	printSummary(view)
	printDistribution(view)
	printTopBrands(view, cfg.TopGroups)
	printTrend(view)
	printExtracts(view, cfg.TopExtracts)

	if exportPath != "" {
		exportView(session, view, exportPath)
	}
}

func printSummary(view *reviewlens.DataFrame) {
	summary, err := reviewlens.Summarize(view)
	if err != nil {
		if err == reviewlens.ErrEmptyView {
			fmt.Println("\nNo reviews match the current filters.")
			return
		}
		log.Fatalf("summarizing: %v", err)
	}

	fmt.Println("\nSummary")
	fmt.Println("-------")
	fmt.Printf("Reviews:        %d\n", summary.Rows)
	fmt.Printf("Average rating: %.2f (from %d rated reviews)\n", summary.AvgRating, summary.RatingCount)
	fmt.Printf("Sentiment:      %.3f (%s)\n", summary.AvgSentiment, summary.Label)
}

func printDistribution(view *reviewlens.DataFrame) {
	distribution, err := reviewlens.RatingDistribution(view)
	if err != nil {
		log.Fatalf("rating distribution: %v", err)
	}
	if len(distribution) == 0 {
		return
	}

	fmt.Println("\nRating distribution")
	fmt.Println("-------------------")
	for _, bucket := range distribution {
		fmt.Printf("%4.1f stars: %d\n", bucket.Rating, bucket.Count)
	}
}

func printTopBrands(view *reviewlens.DataFrame, n int) {
	stats, err := reviewlens.GroupMeanTopN(view, reviewlens.ColBrand, reviewlens.ColRating, n)
	if err != nil || len(stats) == 0 {
		return
	}

	fmt.Println("\nTop brands by average rating")
	fmt.Println("----------------------------")
	for i, stat := range stats {
		fmt.Printf("%2d. %-30s %.2f (%d reviews)\n", i+1, stat.Key, stat.Mean, stat.Count)
	}
}

func printTrend(view *reviewlens.DataFrame) {
	trend, err := reviewlens.MonthlyTrend(view)
	if err != nil || len(trend) == 0 {
		return
	}

	fmt.Println("\nMonthly sentiment trend")
	fmt.Println("-----------------------")
	for _, point := range trend {
		fmt.Printf("%s: %+.3f (%d reviews)\n", point.Month.Format("2006-01"), point.AvgSentiment, point.Count)
	}
}

func printExtracts(view *reviewlens.DataFrame, k int) {
	printReviewList(view, "Most positive reviews", reviewlens.ColSentiment, k)
	printReviewList(view, "Most helpful reviews", reviewlens.ColHelpful, k)

	controversial, err := reviewlens.Controversial(view, k)
	if err == nil && controversial.Len() > 0 {
		printReviews("Controversial reviews (positive text, low rating)", controversial)
	}
}

func printReviewList(view *reviewlens.DataFrame, title, key string, k int) {
	if !view.HasColumn(key) {
		return
	}
	top, err := reviewlens.TopRows(view, key, k)
	if err != nil || top.Len() == 0 {
		return
	}
	printReviews(title, top)
}

func printReviews(title string, rows *reviewlens.DataFrame) {
	fmt.Printf("\n%s\n", title)
	fmt.Println(dashes(len(title)))

	texts, valid, err := rows.StringColumn(reviewlens.ColReviewText)
	if err != nil {
		return
	}
	for i := range texts {
		if !valid[i] {
			continue
		}
		fmt.Printf("- %s\n", truncate(texts[i], 100))
	}
}

func dashes(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = '-'
	}
	return string(out)
}

// truncate shortens s to at most n runes. Cutting on rune boundaries
// keeps multibyte review text valid UTF-8.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

func exportView(session *reviewlens.Session, view *reviewlens.DataFrame, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("creating export file: %v", err)
	}
	defer f.Close()

	if err := session.ExportCSV(f, view); err != nil {
		log.Fatalf("exporting view: %v", err)
	}
	fmt.Printf("\nExported %d rows to %s\n", view.Len(), path)
}
