package fields

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reFirstDecimal = regexp.MustCompile(`[\d.]+`)
	reFirstInt     = regexp.MustCompile(`\d+`)
)

// ExtractRating reads the star-rating score from the rating widget's
// accessibility label and the review count from the review link text.
// The two halves are independent: either may be absent on its own.
func ExtractRating(c *Candidates) (score *float64, reviews *int) {
	doc := c.Doc()
	if doc == nil {
		return nil, nil
	}

	label := doc.Find("div.star-rating").First().AttrOr("aria-label", "")
	if m := reFirstDecimal.FindString(label); m != "" {
		if v, err := strconv.ParseFloat(strings.Trim(m, "."), 64); err == nil && v >= 0 && v <= 5 {
			score = &v
		}
	}

	linkText := doc.Find("a.woocommerce-review-link").First().Text()
	if m := reFirstInt.FindString(linkText); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			reviews = &n
		}
	}
	return score, reviews
}
