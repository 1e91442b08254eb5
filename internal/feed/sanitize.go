package feed

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobwall/internal/util"
)

var (
	reLineBreak = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>|</\s*p\s*>\s*<\s*p[^>]*>`)
	reTag       = regexp.MustCompile(`<[^>]*>`)
)

// Sanitize flattens HTML-embedded rich text into plain delimited text.
// When the fragment contains list items, only the items survive: the list
// structure takes total precedence over surrounding prose. Plain text
// passes through the collapse/trim fast path, which makes the whole
// function idempotent.
func Sanitize(input *string) *string {
	if input == nil {
		return nil
	}
	s := strings.TrimSpace(*input)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, "<") {
		return util.PtrOrNil(util.CollapseSpaces(s))
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		items := doc.Find("li")
		if items.Length() > 0 {
			parts := make([]string, 0, items.Length())
			items.Each(func(_ int, li *goquery.Selection) {
				if text := util.CollapseSpaces(li.Text()); text != "" {
					parts = append(parts, text)
				}
			})
			return util.PtrOrNil(strings.Join(parts, ", "))
		}
	}

	s = reLineBreak.ReplaceAllString(s, ", ")
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		s = doc.Text()
	} else {
		s = reTag.ReplaceAllString(s, " ")
	}
	return util.PtrOrNil(util.CollapseSpaces(s))
}
