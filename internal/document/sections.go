package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// headingSelector covers the elements a section announces itself with.
const headingSelector = "h1, h2, h3, [role='heading']"

// SectionByHeading scans the document's sections for one whose heading text
// contains any of the keywords (case-insensitive substring match). It is the
// second rung of a field cascade, used when structural selectors miss because
// the page variant renders different ids and attributes.
func SectionByHeading(doc *goquery.Document, keywords []string) *goquery.Selection {
	if doc == nil || len(keywords) == 0 {
		return nil
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	var match *goquery.Selection
	doc.Find("section").EachWithBreak(func(_ int, sec *goquery.Selection) bool {
		heading := Text(sec.Find(headingSelector).First())
		if heading == "" {
			return true
		}
		heading = strings.ToLower(heading)
		for _, kw := range lowered {
			if strings.Contains(heading, kw) {
				match = sec
				return false
			}
		}
		return true
	})
	return match
}

// ItemTexts collects normalized text from up to limit elements matching any
// of the selectors, first selector list that yields anything wins. Empty
// strings are skipped.
func ItemTexts(root *goquery.Selection, selectorLists [][]string, limit int) []string {
	if root == nil {
		return nil
	}
	for _, selectors := range selectorLists {
		var items []string
		for _, s := range selectors {
			root.Find(s).Each(func(_ int, el *goquery.Selection) {
				if len(items) >= limit {
					return
				}
				if txt := Text(el); txt != "" {
					items = append(items, txt)
				}
			})
			if len(items) > 0 {
				break
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

// Title returns the document's <title> text with any " | <site>" or
// " - <site>" suffix removed. It is the last-resort name source.
func Title(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	title := Text(doc.Find("title").First())
	for _, sep := range []string{" | ", " – ", " - "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return strings.TrimSpace(title)
}
