// ABOUTME: Markdown rendering of review paragraphs for terminal and MCP display
// ABOUTME: Applies the same paragraph filtering as ExtractReview but keeps inline formatting

package content

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// ReviewMarkdown converts the qualifying review paragraphs of a description
// to Markdown, preserving emphasis and links. Reports false when the
// description has no review text.
func ReviewMarkdown(description string) (string, bool) {
	paragraphs := reviewParagraphs(description)
	if len(paragraphs) == 0 {
		return "", false
	}

	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, paragraphMarkdown(p))
	}
	return strings.Join(parts, ParagraphSeparator), true
}

// paragraphMarkdown converts one paragraph, falling back to its plain text
// if conversion fails or yields nothing.
func paragraphMarkdown(p paragraph) string {
	html, err := goquery.OuterHtml(p.sel)
	if err != nil {
		return p.text
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return p.text
	}

	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return p.text
	}
	return markdown
}
