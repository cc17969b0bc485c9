package fields

import (
	"regexp"
	"strconv"

	"vuadocau-analyzer/normalize"
)

// The sold marker appears both as "120 đã bán" and "đã bán 120"
// depending on the theme widget, so the pattern accepts either side.
var (
	reSoldVietnamese = regexp.MustCompile(`(?i)(\d+)\s*đã\s*bán|đã\s*bán\D{0,3}?(\d+)`)
	reSoldEnglish    = regexp.MustCompile(`(?i)sold[:\s]*(\d+)`)
	reSoldFolded     = regexp.MustCompile(`(\d+)\s*da\s*ban|da\s*ban\D{0,3}?(\d+)`)
)

// ExtractSoldCount finds the units-sold counter: the Vietnamese
// "đã bán" marker in the raw page text, then the English "sold: <n>"
// form, then a diacritic-insensitive scan over the rendered text for
// themes that re-encode the marker.
func ExtractSoldCount(c *Candidates) (int, bool) {
	return firstMatch(c, []strategy[int]{
		soldFromVietnameseMarker,
		soldFromEnglishMarker,
		soldFromFoldedText,
	})
}

func soldFromVietnameseMarker(c *Candidates) (int, bool) {
	return firstCapturedInt(reSoldVietnamese, c.PageHTML)
}

func soldFromEnglishMarker(c *Candidates) (int, bool) {
	return firstCapturedInt(reSoldEnglish, c.PageHTML)
}

func soldFromFoldedText(c *Candidates) (int, bool) {
	text := c.PageHTML
	if doc := c.Doc(); doc != nil {
		text = doc.Text()
	}
	return firstCapturedInt(reSoldFolded, normalize.FoldDiacritics(text))
}

// firstCapturedInt returns the first non-empty capture group of the
// first match as an integer.
func firstCapturedInt(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
