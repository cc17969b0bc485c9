// Command analyze rebuilds the analytics report from a saved NDJSON
// record file, without touching the network.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"vuadocau-analyzer/analytics"
	"vuadocau-analyzer/store"
)

func main() {
	_ = godotenv.Load()

	var (
		inputFlag  = flag.String("input", "products.ndjson", "NDJSON record file to analyze")
		reportFlag = flag.String("report", "", "Report file path (default: stdout)")
		sampleRows = flag.Int("samples", analytics.DefaultSampleRows, "Sample rows per report section")
		targetSize = flag.String("target-size", "4m5", "Size token used to resolve a single price")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	records, err := store.LoadNDJSON(*inputFlag)
	if err != nil {
		logger.Fatalf("Failed to load records: %v", err)
	}
	logger.Infof("Loaded %d records from %s", len(records), *inputFlag)

	subset := analytics.ValidSubset(records, *targetSize)
	logger.Infof("Analytics subset: %d handheld rods with a resolvable price at size %s", len(subset), *targetSize)

	out := os.Stdout
	if *reportFlag != "" {
		f, err := os.Create(*reportFlag)
		if err != nil {
			logger.Fatalf("Failed to create report file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := analytics.WriteReport(out, analytics.Views(subset), *sampleRows); err != nil {
		logger.Fatalf("Failed to write report: %v", err)
	}
}
