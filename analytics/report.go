package analytics

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// DefaultSampleRows is how many rows each view prints by default.
const DefaultSampleRows = 5

// WriteReport renders every view: its title, up to sampleRows sample
// rows and the total matching row count. Empty views print a "no data"
// line instead of a table.
func WriteReport(w io.Writer, views []View, sampleRows int) error {
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}
	for _, v := range views {
		if _, err := fmt.Fprintf(w, "\n=== %s ===\n", v.Title); err != nil {
			return err
		}
		if len(v.Items) == 0 {
			if _, err := fmt.Fprintln(w, "no data"); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "name\tprice\trating\treviews\tsold\trevenue")
		n := len(v.Items)
		if n > sampleRows {
			n = sampleRows
		}
		for _, it := range v.Items[:n] {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
				truncate(it.Record.Name, 45),
				it.Price,
				fmtFloat(it.Record.RatingScore),
				fmtInt(it.Record.ReviewCount),
				fmtInt(it.Record.SoldCount),
				fmtRevenue(it.Revenue),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "rows: %d\n", len(v.Items)); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func fmtFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func fmtRevenue(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
