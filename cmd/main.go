package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"vuadocau-analyzer/analytics"
	"vuadocau-analyzer/extractor"
	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/store"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var (
		outputFlag    = flag.String("output", "products", "Output base path (extension added per format)")
		formatsFlag   = flag.String("formats", "ndjson", "Comma-separated output formats: ndjson, csv, sqlite")
		reportFlag    = flag.String("report", "", "Report file path (default: stdout)")
		sampleRows    = flag.Int("samples", analytics.DefaultSampleRows, "Sample rows per report section")
		baseURL       = flag.String("base-url", "https://vuadocau.com/shop/", "Shop listing URL to crawl")
		targetSize    = flag.String("target-size", "4m5", "Size token used to resolve a single price for analytics")
		requestDelay  = flag.Duration("delay", 1*time.Second, "Delay between requests")
		maxRetries    = flag.Int("retries", 3, "Maximum retry attempts")
		timeout       = flag.Duration("timeout", 30*time.Second, "Request timeout")
		maxConcurrent = flag.Int("concurrent", 5, "Maximum concurrent requests")
		useBrowser    = flag.Bool("browser", true, "Use headless browser for JavaScript-heavy pages")
		httpOnly      = flag.Bool("http-only", false, "Use HTTP requests only (disable headless browser)")
		maxPages      = flag.Int("max-pages", 0, "Stop discovery after this many listing pages (0 = no limit)")
		maxProducts   = flag.Int("limit", 0, "Stop after this many products (0 = no limit)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := newLogger(*verbose)

	formats, err := parseFormats(*formatsFlag)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	config := types.DefaultConfig()
	config.BaseURL = *baseURL
	config.TargetSize = *targetSize
	config.RequestDelay = *requestDelay
	config.MaxRetries = *maxRetries
	config.Timeout = *timeout
	config.MaxConcurrentRequests = *maxConcurrent
	config.UseHeadlessBrowser = *useBrowser && !*httpOnly
	config.MaxPages = *maxPages
	config.MaxProducts = *maxProducts

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	ext := extractor.NewVuadocauExtractor(config, logger)
	defer ext.Close()

	result, err := ext.ExtractAll(ctx)
	if err != nil {
		logger.Fatalf("Extraction failed: %v", err)
	}

	records := result.Records()
	for _, format := range formats {
		path := *outputFlag + "." + extensionFor(format)
		var err error
		switch format {
		case "ndjson":
			err = store.SaveNDJSON(path, records)
		case "csv":
			err = store.SaveCSV(path, records)
		case "sqlite":
			err = store.SaveSQLite(path, records)
		}
		if err != nil {
			logger.Fatalf("Failed to save %s output: %v", format, err)
		}
		logger.Infof("Saved %d records to %s", len(records), path)
	}

	subset := analytics.ValidSubset(result.Clean, config.TargetSize)
	logger.Infof("Analytics subset: %d handheld rods with a resolvable price at size %s", len(subset), config.TargetSize)
	views := analytics.Views(subset)

	out := os.Stdout
	if *reportFlag != "" {
		f, err := os.Create(*reportFlag)
		if err != nil {
			logger.Fatalf("Failed to create report file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := analytics.WriteReport(out, views, *sampleRows); err != nil {
		logger.Fatalf("Failed to write report: %v", err)
	}
	if *reportFlag != "" {
		logger.Infof("Report written to: %s", *reportFlag)
	}

	logger.Infof("Run finished: %d clean, %d incomplete, %d errors",
		len(result.Clean), len(result.Incomplete), len(result.Errors))
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func parseFormats(s string) ([]string, error) {
	var formats []string
	for _, format := range strings.Split(s, ",") {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" {
			continue
		}
		switch format {
		case "ndjson", "csv", "sqlite":
			formats = append(formats, format)
		default:
			return nil, fmt.Errorf("unknown output format %q (want ndjson, csv or sqlite)", format)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	return formats, nil
}

func extensionFor(format string) string {
	if format == "sqlite" {
		return "db"
	}
	return format
}
