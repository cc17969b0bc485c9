// Package normalize provides pure text-cleaning helpers used by the field
// extractors and the record assembler. Every function is idempotent.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNewlines = regexp.MustCompile(`[\r\n]+`)
	reDigits   = regexp.MustCompile(`\D`)
	reSizeM    = regexp.MustCompile(`(\d+)m(\d+)?`)
	reLeadNum  = regexp.MustCompile(`[\d.]+`)

	// Characters Excel refuses in cell values: C0 control characters
	// except tab, newline and carriage return.
	reIllegal = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f]")
)

// CollapseWhitespace replaces runs of CR/LF with a single space and trims
// the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(reNewlines.ReplaceAllString(s, " "))
}

// StripIllegalChars removes characters that the spreadsheet output format
// cannot encode.
func StripIllegalChars(s string) string {
	return reIllegal.ReplaceAllString(s, "")
}

// ExtractDigits removes every non-digit character from s.
func ExtractDigits(s string) string {
	return reDigits.ReplaceAllString(s, "")
}

// ToInt extracts the digits of s and parses them as an integer. The
// second return value is false when no digits remain or the digits do
// not fit an int.
func ToInt(s string) (int, bool) {
	digits := ExtractDigits(s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LeadingNumber returns the first numeric value embedded in s, used to
// order size tokens by magnitude. Tokens without a number sort as 0.
func LeadingNumber(s string) float64 {
	m := reLeadNum.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.Trim(m, "."), 64)
	if err != nil {
		return 0
	}
	return n
}

// SizeMeters parses a size token of the form "4m5" or "10m" into meters
// (4.5 and 10.0 respectively). The second return value is false for
// tokens that do not match the pattern.
func SizeMeters(s string) (float64, bool) {
	m := reSizeM.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	text := m[1]
	if m[2] != "" {
		text += "." + m[2]
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// đ/Đ do not decompose under NFD, so fold them explicitly before
// stripping combining marks.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics lowercases s and strips Vietnamese diacritics, so that
// "Đã Bán" and "da ban" compare equal.
func FoldDiacritics(s string) string {
	folded, _, err := transform.String(foldMarks, dReplacer.Replace(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
