// Package extractor orchestrates a full extraction run: discovery,
// concurrent per-product extraction, deterministic ordering, dedup and
// the clean/incomplete split.
package extractor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"vuadocau-analyzer/adapters"
	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/record"
)

// VuadocauExtractor runs the extraction pipeline for vuadocau.com.
type VuadocauExtractor struct {
	adapter *adapters.VuadocauAdapter
	config  *types.Config
	logger  types.Logger
}

// NewVuadocauExtractor creates a new vuadocau extractor.
func NewVuadocauExtractor(config *types.Config, logger types.Logger) *VuadocauExtractor {
	return &VuadocauExtractor{
		adapter: adapters.NewVuadocauAdapter(config, logger),
		config:  config,
		logger:  logger,
	}
}

// ExtractAll discovers every product and extracts each one. Per-product
// extraction is a pure transform, so products run concurrently; results
// are re-sorted by product URL before dedup so the first-occurrence
// policy is deterministic regardless of worker completion order.
func (e *VuadocauExtractor) ExtractAll(ctx context.Context) (types.RunResult, error) {
	startTime := time.Now()
	e.logger.Infof("Starting vuadocau extraction at %v", startTime.Format("15:04:05.000"))

	e.logger.Info("Step 1: Discovering product URLs...")
	links, err := e.adapter.DiscoverProducts(ctx)
	if err != nil {
		return types.RunResult{}, fmt.Errorf("product discovery failed: %w", err)
	}

	e.logger.Infof("Step 2: Extracting %d products...", len(links))
	workers := e.config.MaxConcurrentRequests
	if workers < 1 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		records []types.ProductRecord
		errs    []types.ExtractionError
		wg      sync.WaitGroup
	)
	jobs := make(chan adapters.ProductLink)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobs {
				rec, err := e.extractOne(ctx, link)
				mu.Lock()
				if err != nil {
					errs = append(errs, types.ExtractionError{ProductURL: link.URL, Reason: err.Error()})
				} else {
					records = append(records, rec)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, link := range links {
		select {
		case jobs <- link:
		case <-ctx.Done():
			e.logger.Warnf("extraction interrupted: %v", ctx.Err())
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(records, func(i, j int) bool { return records[i].ProductURL < records[j].ProductURL })

	before := len(records)
	records = record.Dedup(records)
	clean, incomplete := record.Partition(records)

	e.logger.Infof("Extraction completed in %v", time.Since(startTime))
	e.logger.Infof("Products extracted: %d/%d (%d duplicates removed, %d errors)",
		len(records), len(links), before-len(records), len(errs))
	e.logSummary(records)

	return types.RunResult{Clean: clean, Incomplete: incomplete, Errors: errs}, nil
}

// extractOne fetches one product's candidates and assembles its record.
// Any error here is structural: the page or its candidates were
// unreadable, not merely missing a field.
func (e *VuadocauExtractor) extractOne(ctx context.Context, link adapters.ProductLink) (types.ProductRecord, error) {
	raw, err := e.adapter.FetchRawProduct(ctx, link)
	if err != nil {
		return types.ProductRecord{}, err
	}
	return record.Assemble(raw)
}

// logSummary reports per-field coverage over the final record set.
func (e *VuadocauExtractor) logSummary(records []types.ProductRecord) {
	if len(records) == 0 {
		return
	}
	var withPrice, withSize, withColor, withRating, withSold int
	for _, r := range records {
		if r.PriceRaw != "" {
			withPrice++
		}
		if r.SizeRaw != "" {
			withSize++
		}
		if r.ColorGroup != "" {
			withColor++
		}
		if r.RatingScore != nil {
			withRating++
		}
		if r.SoldCount != nil {
			withSold++
		}
	}
	pct := func(n int) float64 { return float64(n) * 100 / float64(len(records)) }
	e.logger.Infof("with price: %d (%.1f%%)", withPrice, pct(withPrice))
	e.logger.Infof("with size: %d (%.1f%%)", withSize, pct(withSize))
	e.logger.Infof("with color: %d (%.1f%%)", withColor, pct(withColor))
	e.logger.Infof("with rating: %d (%.1f%%)", withRating, pct(withRating))
	e.logger.Infof("with sold count: %d (%.1f%%)", withSold, pct(withSold))
}

// Close cleans up resources.
func (e *VuadocauExtractor) Close() {
	if e.adapter != nil {
		e.adapter.Close()
	}
}
