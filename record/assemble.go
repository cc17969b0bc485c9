// Package record assembles extractor outputs into canonical product
// records, classifies them, and deduplicates the final set.
package record

import (
	"fmt"
	"strings"

	"vuadocau-analyzer/fields"
	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/normalize"
)

// Assemble turns one product's raw candidates into a canonical record.
// Missing or malformed fields resolve to absent; the only error is a
// candidate bag with no URL or nothing in it at all.
func Assemble(raw types.RawProduct) (types.ProductRecord, error) {
	if strings.TrimSpace(raw.ProductURL) == "" {
		return types.ProductRecord{}, fmt.Errorf("raw product has no product URL")
	}
	if raw.Empty() {
		return types.ProductRecord{}, fmt.Errorf("no field candidates for %s", raw.ProductURL)
	}

	c := fields.NewCandidates(raw)

	rec := types.ProductRecord{
		ProductURL: strings.TrimSpace(raw.ProductURL),
		Name:       clean(raw.Title),
		ShortDesc:  clean(raw.ShortDesc),
		ImageURL:   strings.TrimSpace(raw.ImageURL),
	}

	if sp, ok := fields.ExtractSizePrice(c); ok {
		rec.SizeRaw = sp.SizeRaw()
		rec.PriceRaw = sp.PriceRaw()
	}
	if color, ok := fields.ExtractColorGroup(c); ok {
		rec.ColorGroup = clean(color)
	}
	rec.RatingScore, rec.ReviewCount = fields.ExtractRating(c)
	if sold, ok := fields.ExtractSoldCount(c); ok {
		rec.SoldCount = &sold
	}
	if comment, ok := fields.ExtractFirstComment(c); ok {
		rec.FirstComment = clean(comment)
	}

	rec.ProductType = Classify(rec.Name)
	return rec, nil
}

// clean collapses newlines and drops characters the spreadsheet output
// encoding cannot hold.
func clean(s string) string {
	return normalize.StripIllegalChars(normalize.CollapseWhitespace(s))
}
