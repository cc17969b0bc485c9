// Package fields implements the per-field extractors. Each extractor is
// an ordered list of strategies tried first-hit-wins: structured data
// before rendered UI text, UI text before free-text patterns, free text
// before title heuristics. The ordering is a contract, not an accident.
package fields

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vuadocau-analyzer/internal/types"
)

// Candidates wraps a RawProduct with a lazily shared parse of its page
// markup so the selector-based strategies reuse one document.
type Candidates struct {
	types.RawProduct
	doc *goquery.Document
}

// NewCandidates builds the candidate bag for one product. A markup blob
// that fails to parse is treated the same as no markup at all.
func NewCandidates(raw types.RawProduct) *Candidates {
	c := &Candidates{RawProduct: raw}
	if raw.PageHTML != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw.PageHTML)); err == nil {
			c.doc = doc
		}
	}
	return c
}

// Doc returns the parsed page document, or nil when no usable markup
// candidate was supplied.
func (c *Candidates) Doc() *goquery.Document { return c.doc }

// A strategy is one way of locating a field value in the candidate bag.
type strategy[T any] func(c *Candidates) (T, bool)

// firstMatch folds the strategy list and adopts the first hit. Absence
// of all strategies is field absence, never an error.
func firstMatch[T any](c *Candidates, strategies []strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(c); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// sortedKeys gives attribute maps a stable iteration order so "first
// matching attribute" means the same thing on every run.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// uniq keeps the first occurrence of each value, preserving order.
func uniq(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
