package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"vuadocau-analyzer/internal/types"
)

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{
	"name", "size_raw", "price_raw", "color_group",
	"rating_score", "review_count", "sold_count",
	"first_comment", "short_description",
	"product_url", "image_url", "product_type",
}

// WriteCSV writes records as CSV with a header row. Absent numeric
// fields become empty cells.
func WriteCSV(w io.Writer, records []types.ProductRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Name, rec.SizeRaw, rec.PriceRaw, rec.ColorGroup,
			floatCell(rec.RatingScore), intCell(rec.ReviewCount), intCell(rec.SoldCount),
			rec.FirstComment, rec.ShortDesc,
			rec.ProductURL, rec.ImageURL, string(rec.ProductType),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", rec.ProductURL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records as CSV to path, replacing any existing file.
func SaveCSV(path string, records []types.ProductRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

func floatCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
