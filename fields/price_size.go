package fields

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"vuadocau-analyzer/normalize"
)

// SizePrice is the index-aligned size/price output of the price+size
// extractor: Sizes[i] is sold at Prices[i]. Sizes is empty when only a
// single simple price could be found.
type SizePrice struct {
	Sizes  []string
	Prices []string
}

// SizeRaw joins the size tokens with the canonical delimiter.
func (sp SizePrice) SizeRaw() string { return strings.Join(sp.Sizes, "|") }

// PriceRaw joins the price strings with the canonical delimiter.
func (sp SizePrice) PriceRaw() string { return strings.Join(sp.Prices, "|") }

// Attribute keys that denote a size/length dimension, matched as
// case-insensitive substrings ("kich thuoc", "chieu dai", ...).
var sizeAttrKeywords = []string{"size", "kich", "chieu", "dai", "length"}

// WooCommerce price locations in decreasing reliability, sale price
// variants included.
var priceSelectors = []string{
	"p.price .woocommerce-Price-amount bdi",
	"p.price .woocommerce-Price-amount",
	"p.price .amount bdi",
	"p.price .amount",
	"span.woocommerce-Price-amount bdi",
	"span.woocommerce-Price-amount",
	".price bdi",
	".price .amount",
	"p.price ins .amount",
	"p.price span.amount",
}

var reCurrencyAmount = regexp.MustCompile(`([\d,\.]+)\s*VN[DĐ]`)

// ExtractSizePrice resolves the size→price mapping of a product:
// structured variations first, then the rendered simple-product price,
// then a currency-suffixed number anywhere in the page text.
func ExtractSizePrice(c *Candidates) (SizePrice, bool) {
	return firstMatch(c, []strategy[SizePrice]{
		sizePriceFromVariations,
		priceFromSelectors,
		priceFromCurrencyPattern,
	})
}

// sizePriceFromVariations walks the structured variation payload. The
// first variation seen for a size token wins; later duplicates of the
// same token are dropped, not overwritten. Entries come out sorted by
// the leading numeric magnitude of the size token, ties in insertion
// order.
func sizePriceFromVariations(c *Candidates) (SizePrice, bool) {
	type entry struct {
		size  string
		price string
	}
	var entries []entry
	seen := make(map[string]bool)

	for _, v := range c.Variations {
		if !v.Purchasable || v.Price == nil {
			continue
		}

		size := ""
		for _, key := range sortedKeys(v.Attributes) {
			lower := strings.ToLower(key)
			for _, kw := range sizeAttrKeywords {
				if strings.Contains(lower, kw) {
					size = strings.TrimSpace(v.Attributes[key])
					break
				}
			}
			if size != "" {
				break
			}
		}
		if size == "" {
			// No size-like attribute: fall back to the first
			// attribute value present.
			for _, key := range sortedKeys(v.Attributes) {
				if val := strings.TrimSpace(v.Attributes[key]); val != "" {
					size = val
					break
				}
			}
		}
		if size == "" || seen[size] {
			continue
		}
		seen[size] = true
		entries = append(entries, entry{size: size, price: formatPrice(*v.Price)})
	}

	if len(entries) == 0 {
		return SizePrice{}, false
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return normalize.LeadingNumber(entries[i].size) < normalize.LeadingNumber(entries[j].size)
	})

	sp := SizePrice{
		Sizes:  make([]string, len(entries)),
		Prices: make([]string, len(entries)),
	}
	for i, e := range entries {
		sp.Sizes[i] = e.size
		sp.Prices[i] = e.price
	}
	return sp, true
}

// priceFromSelectors reads the simple-product price from the rendered
// page, trying each selector in order, then the listing-page price text.
// A match is accepted only when its digit value is positive.
func priceFromSelectors(c *Candidates) (SizePrice, bool) {
	if doc := c.Doc(); doc != nil {
		for _, sel := range priceSelectors {
			text := strings.TrimSpace(doc.Find(sel).First().Text())
			if text == "" {
				continue
			}
			if n, ok := normalize.ToInt(text); ok && n > 0 {
				return SizePrice{Prices: []string{strconv.Itoa(n)}}, true
			}
		}
	}
	if n, ok := normalize.ToInt(c.ListingPrice); ok && n > 0 {
		return SizePrice{Prices: []string{strconv.Itoa(n)}}, true
	}
	return SizePrice{}, false
}

// priceFromCurrencyPattern scans the raw page text for a VND-suffixed
// amount. Small matches are rejected: anything at or below 1000 is more
// likely a quantity than a price in this currency.
func priceFromCurrencyPattern(c *Candidates) (SizePrice, bool) {
	for _, m := range reCurrencyAmount.FindAllStringSubmatch(c.PageHTML, -1) {
		if n, ok := normalize.ToInt(m[1]); ok && n > 1000 {
			return SizePrice{Prices: []string{strconv.Itoa(n)}}, true
		}
	}
	return SizePrice{}, false
}

// formatPrice renders a variation price the way the storefront shows it:
// integral amounts without a fractional part.
func formatPrice(p float64) string {
	if p == math.Trunc(p) && math.Abs(p) < 1e15 {
		return strconv.FormatInt(int64(p), 10)
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
