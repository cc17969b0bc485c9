package record

import (
	"strconv"
	"strings"

	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/normalize"
)

// PriceClean parses the digits of the whole price_raw field as one
// integer, the normalized price used for the dedup key and the
// clean/incomplete split. Overflow counts as malformed and is absent.
func PriceClean(priceRaw string) (int64, bool) {
	digits := normalize.ExtractDigits(priceRaw)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Dedup removes records whose (name, size_m, price_clean, product_url)
// tuple has been seen before, keeping the first occurrence. Input order
// is preserved, so callers must hand in a deterministically ordered set.
func Dedup(records []types.ProductRecord) []types.ProductRecord {
	seen := make(map[string]bool, len(records))
	out := make([]types.ProductRecord, 0, len(records))
	for _, r := range records {
		key := dedupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func dedupKey(r types.ProductRecord) string {
	sizeKey, priceKey := "-", "-"
	if v, ok := normalize.SizeMeters(r.SizeRaw); ok {
		sizeKey = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v, ok := PriceClean(r.PriceRaw); ok {
		priceKey = strconv.FormatInt(v, 10)
	}
	return strings.Join([]string{r.Name, sizeKey, priceKey, r.ProductURL}, "\x1f")
}

// Partition splits records into clean (both a parsed metric size and a
// parsed numeric price) and incomplete. The two halves are disjoint and
// together cover the input.
func Partition(records []types.ProductRecord) (clean, incomplete []types.ProductRecord) {
	for _, r := range records {
		_, sizeOK := normalize.SizeMeters(r.SizeRaw)
		_, priceOK := PriceClean(r.PriceRaw)
		if sizeOK && priceOK {
			clean = append(clean, r)
		} else {
			incomplete = append(incomplete, r)
		}
	}
	return clean, incomplete
}
