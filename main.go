package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"trends-go/pkg/export"
	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloatOrDefault returns environment variable as float or default
func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func main() {
	// Environment variable defaults (CI friendly)
	defaultEndpoint := getEnvOrDefault("TRENDS_API_URL", "")
	defaultAPIKey := getEnvOrDefault("TRENDS_API_KEY", "")
	defaultTerms := getEnvOrDefault("TRENDS_TERMS", "")
	defaultQPS := getEnvFloatOrDefault("TRENDS_API_QPS", 1.0)
	defaultBatchSize := getEnvIntOrDefault("TRENDS_BATCH_SIZE", trends.MaxTermsPerRequest)
	defaultDebug := getEnvBoolOrDefault("DEBUG", false)

	// Command line flags (override environment variables)
	var (
		termsArg  = flag.String("terms", defaultTerms, "Comma-separated query terms (env: TRENDS_TERMS)")
		termsFile = flag.String("terms-file", "", "File with one query term per line")
		startDate = flag.String("start", "2011-01-01", "Start date in YYYY-MM-DD form")
		endDate   = flag.String("end", "2015-01-01", "End date in YYYY-MM-DD form")
		geo       = flag.String("geo", "US", "Geography code, e.g. US, US-NY or 501")
		geoLevel  = flag.String("geo-level", "country", "Geography level: country, region or dma")
		frequency = flag.String("frequency", "week", "Time resolution: day, week, month or year")
		endpoint  = flag.String("api-url", defaultEndpoint, "Timelines API URL (env: TRENDS_API_URL)")
		apiKey    = flag.String("api-key", defaultAPIKey, "API key (env: TRENDS_API_KEY)")
		qps       = flag.Float64("qps", defaultQPS, "Paced API requests per second (env: TRENDS_API_QPS)")
		batchSize = flag.Int("batch-size", defaultBatchSize, "Terms per API request batch (env: TRENDS_BATCH_SIZE)")
		output    = flag.String("output", "", "Output CSV file (default: stdout)")
		debug     = flag.Bool("debug", defaultDebug, "Enable debug logging (env: DEBUG)")
		help      = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		printUsage()
		return
	}

	logLevel := "warn"
	if *debug {
		logLevel = "debug"
	}
	logger.SetLogger(logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stderr"}))
	log := logger.GetLogger().WithField("component", "main")

	if *endpoint == "" {
		fmt.Fprintln(os.Stderr, "ERROR: Timelines API URL is required.")
		fmt.Fprintln(os.Stderr, "Use -api-url flag or TRENDS_API_URL environment variable.")
		fmt.Fprintln(os.Stderr, "")
		printUsage()
		os.Exit(1)
	}

	if *apiKey == "" {
		fmt.Fprintln(os.Stderr, "ERROR: API key is required for authentication.")
		fmt.Fprintln(os.Stderr, "Use -api-key flag or TRENDS_API_KEY environment variable.")
		fmt.Fprintln(os.Stderr, "")
		printUsage()
		os.Exit(1)
	}

	terms, err := resolveTerms(*termsArg, *termsFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to read query terms")
	}
	if len(terms) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: No query terms given.")
		fmt.Fprintln(os.Stderr, "Use -terms, -terms-file or the TRENDS_TERMS environment variable.")
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"terms":      len(terms),
		"geo":        *geo,
		"geo_level":  *geoLevel,
		"frequency":  *frequency,
		"batch_size": *batchSize,
		"qps":        *qps,
	}).Info("Fetching query volumes")

	fetcher := trends.NewFetcher(trends.Config{
		Endpoint:  *endpoint,
		APIKey:    *apiKey,
		QPS:       *qps,
		Timeout:   30 * time.Second,
		BatchSize: *batchSize,
	})

	start := time.Now()
	table, err := fetcher.FetchVolumes(context.Background(), trends.FetchRequest{
		Terms:     terms,
		StartDate: *startDate,
		EndDate:   *endDate,
		Geo:       *geo,
		GeoLevel:  trends.GeoLevel(*geoLevel),
		Frequency: trends.Frequency(*frequency),
	})
	if err != nil {
		log.WithError(err).Fatal("Fetch failed")
	}

	log.WithFields(map[string]interface{}{
		"rows":     len(table.Rows),
		"duration": time.Since(start).String(),
	}).Info("Fetch completed")

	exporter := export.NewCSVExporter()
	if *output != "" {
		err = exporter.WriteFile(*output, table.Records())
	} else {
		err = exporter.Write(os.Stdout, table.Records())
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to write output")
	}
}

// resolveTerms returns the term list from the -terms-file when given,
// otherwise from the comma-separated -terms value. Duplicates are kept;
// they map to duplicate output columns on purpose.
func resolveTerms(termsArg, termsFile string) ([]string, error) {
	if termsFile != "" {
		return readTermsFile(termsFile)
	}

	var terms []string
	for _, term := range strings.Split(termsArg, ",") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// readTermsFile reads one term per line, skipping blanks and # comments.
func readTermsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open terms file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan terms file: %w", err)
	}
	return terms, nil
}

func printUsage() {
	fmt.Println("Trends-Go Query Volume Fetcher")
	fmt.Println("")
	fmt.Println("Fetches search-query volume timelines and writes them as CSV rows,")
	fmt.Println("one row per date with one column per requested term.")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./trends-go -api-url <URL> -api-key <KEY> -terms flu,cough [OPTIONS]")
	fmt.Println("    ./trends-go  # Uses environment variables")
	fmt.Println("")
	fmt.Println("REQUIRED:")
	fmt.Println("    -api-url string        Timelines API URL (env: TRENDS_API_URL)")
	fmt.Println("    -api-key string        API key (env: TRENDS_API_KEY)")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -terms string          Comma-separated query terms (env: TRENDS_TERMS)")
	fmt.Println("    -terms-file string     File with one query term per line")
	fmt.Println("    -start string          Start date (default: 2011-01-01)")
	fmt.Println("    -end string            End date (default: 2015-01-01)")
	fmt.Println("    -geo string            Geography code (default: US)")
	fmt.Println("    -geo-level string      country, region or dma (default: country)")
	fmt.Println("    -frequency string      day, week, month or year (default: week)")
	fmt.Println("    -qps float             API requests/sec (default: 1.0, env: TRENDS_API_QPS)")
	fmt.Println("    -batch-size int        Terms per request (default: 30, env: TRENDS_BATCH_SIZE)")
	fmt.Println("    -output string         Output CSV file (default: stdout)")
	fmt.Println("    -debug                 Enable debug logging (env: DEBUG)")
	fmt.Println("    -help                  Show this help message")
	fmt.Println("")
	fmt.Println("EXAMPLES:")
	fmt.Println("    # US weekly volumes for two terms")
	fmt.Println("    ./trends-go -api-url \"$URL\" -api-key \"$KEY\" -terms flu,cough")
	fmt.Println("")
	fmt.Println("    # Massachusetts daily volumes, written to a file")
	fmt.Println("    ./trends-go -terms flu,cough -geo US-MA -geo-level region \\")
	fmt.Println("        -frequency day -output out/volumes.csv")
	fmt.Println("")
	fmt.Println("    # Boston DMA monthly volumes")
	fmt.Println("    ./trends-go -terms flu,cough -geo 506 -geo-level dma -frequency month")
}
