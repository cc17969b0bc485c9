package fields

import "strings"

// ExtractFirstComment returns the text of the first review in the
// comment list, preferring the rendered markup over the pre-collected
// comment candidate.
func ExtractFirstComment(c *Candidates) (string, bool) {
	return firstMatch(c, []strategy[string]{
		commentFromMarkup,
		commentFromCandidateList,
	})
}

func commentFromMarkup(c *Candidates) (string, bool) {
	doc := c.Doc()
	if doc == nil {
		return "", false
	}
	text := strings.TrimSpace(doc.Find("ol.commentlist li.review:first-child p").First().Text())
	return text, text != ""
}

func commentFromCandidateList(c *Candidates) (string, bool) {
	if len(c.Comments) == 0 {
		return "", false
	}
	text := strings.TrimSpace(c.Comments[0])
	return text, text != ""
}
