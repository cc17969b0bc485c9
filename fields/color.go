package fields

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Swatch/option widgets in decreasing specificity. The first selector
// that yields any accepted value is used exclusively; later selectors
// never merge into or override it.
var swatchSelectors = []string{
	"ul.variable-items-wrapper span.variable-item-span",
	"div.variations select[name*='color'] option",
	"div.variations select[name*='mau'] option",
	"ul.color-variable-wrapper li",
	".tawcvs-swatches .swatch-item-wrapper",
	".variations td.value .select-wrapper option",
}

// Attribute keys that denote a color or product group.
var colorAttrKeywords = []string{"color", "mau", "colour", "nhom", "group"}

// Placeholder option labels that are never real colors.
var colorPlaceholders = map[string]bool{
	"choose an option":  true,
	"chọn một tùy chọn": true,
	"chọn":              true,
	"":                  true,
}

var (
	reColorLabel = regexp.MustCompile(`[Mm]àu\s*sắc\s*[:\-]\s*([^\n.]+)`)
	reColorSplit = regexp.MustCompile(`[,;–\-/]`)
	reGPCode     = regexp.MustCompile(`(?i)GP-(\d+)`)
	reGPInTitle  = regexp.MustCompile(`(?i)[\(\[\-\s]+(GP-\d+)`)
)

// ExtractColorGroup resolves the color/variant group through five
// strategies: swatch widgets, structured variation attributes, the
// "Màu sắc:" description label, GP product codes across the page, and a
// GP code adjacent to the title.
func ExtractColorGroup(c *Candidates) (string, bool) {
	return firstMatch(c, []strategy[string]{
		colorsFromSwatches,
		colorsFromVariations,
		colorsFromDescription,
		colorsFromGPCodes,
		colorFromTitleGPCode,
	})
}

func colorsFromSwatches(c *Candidates) (string, bool) {
	doc := c.Doc()
	if doc == nil {
		return "", false
	}
	for _, sel := range swatchSelectors {
		var colors []string
		doc.Find(sel).Each(func(_ int, el *goquery.Selection) {
			text := strings.TrimSpace(el.Text())
			if text == "" {
				text = strings.TrimSpace(el.AttrOr("title", el.AttrOr("data-value", "")))
			}
			if text == "" {
				text = strings.TrimSpace(el.AttrOr("value", ""))
			}
			if !colorPlaceholders[strings.ToLower(text)] {
				colors = append(colors, text)
			}
		})
		if len(colors) > 0 {
			return strings.Join(uniq(colors), "|"), true
		}
	}
	return "", false
}

func colorsFromVariations(c *Candidates) (string, bool) {
	var colors []string
	for _, v := range c.Variations {
		for _, key := range sortedKeys(v.Attributes) {
			lower := strings.ToLower(key)
			for _, kw := range colorAttrKeywords {
				if strings.Contains(lower, kw) {
					if val := strings.TrimSpace(v.Attributes[key]); val != "" {
						colors = append(colors, val)
					}
					break
				}
			}
		}
	}
	if len(colors) == 0 {
		return "", false
	}
	return strings.Join(uniq(colors), "|"), true
}

func colorsFromDescription(c *Candidates) (string, bool) {
	m := reColorLabel.FindStringSubmatch(c.ShortDesc)
	if m == nil {
		return "", false
	}
	var colors []string
	for _, part := range reColorSplit.Split(m[1], -1) {
		if p := strings.TrimSpace(part); p != "" {
			colors = append(colors, p)
		}
	}
	if len(colors) == 0 {
		return "", false
	}
	return strings.Join(uniq(colors), "|"), true
}

// colorsFromGPCodes collects the GP-<digits> product codes scattered in
// the page text, ordered by their integer value so mixed-width codes
// stay in sequence (GP-9 before GP-10). Three or more codes forming a
// contiguous integer run compress to a "GP-<min> ~ GP-<max>" range.
func colorsFromGPCodes(c *Candidates) (string, bool) {
	var nums []int
	seen := make(map[int]bool)
	for _, m := range reGPCode.FindAllStringSubmatch(c.PageHTML, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return "", false
	}
	sort.Ints(nums)

	if len(nums) > 2 && nums[len(nums)-1]-nums[0] == len(nums)-1 {
		return fmt.Sprintf("GP-%d ~ GP-%d", nums[0], nums[len(nums)-1]), true
	}
	codes := make([]string, len(nums))
	for i, n := range nums {
		codes[i] = fmt.Sprintf("GP-%d", n)
	}
	return strings.Join(codes, "|"), true
}

func colorFromTitleGPCode(c *Candidates) (string, bool) {
	m := reGPInTitle.FindStringSubmatch(c.Title)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}
