// ABOUTME: Review text extraction from Letterboxd feed item descriptions
// ABOUTME: Keeps visible paragraph text, dropping poster-only and spoiler-warning paragraphs

package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SpoilerPreamble opens the paragraph Letterboxd inserts ahead of reviews
// flagged as containing spoilers.
const SpoilerPreamble = "This review may contain spoilers"

// ParagraphSeparator joins review paragraphs.
const ParagraphSeparator = "\n\n"

var whitespacePattern = regexp.MustCompile(`\s+`)

// ExtractReview converts a feed item's HTML description into plain review
// text, one paragraph per block in document order. Returns nil when no
// paragraph qualifies, never an empty string.
func ExtractReview(description string) *string {
	paragraphs := reviewParagraphs(description)
	if len(paragraphs) == 0 {
		return nil
	}

	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, p.text)
	}
	review := strings.Join(parts, ParagraphSeparator)
	return &review
}

type paragraph struct {
	sel  *goquery.Selection
	text string
}

// reviewParagraphs returns the description's <p> blocks that carry visible
// review text.
func reviewParagraphs(description string) []paragraph {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return nil
	}

	var out []paragraph
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := visibleText(p)
		if text == "" {
			// Poster paragraphs hold nothing but an <img>.
			return
		}
		if strings.HasPrefix(text, SpoilerPreamble) {
			return
		}
		out = append(out, paragraph{sel: p, text: text})
	})
	return out
}

// visibleText returns the paragraph's text with line breaks treated as
// spaces and whitespace runs collapsed.
func visibleText(p *goquery.Selection) string {
	var b strings.Builder
	p.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "br" {
			b.WriteString(" ")
			return
		}
		b.WriteString(s.Text())
	})
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}
