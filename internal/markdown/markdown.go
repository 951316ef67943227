// Package markdown derives read-only presentation artifacts (reading time,
// table of contents) from a post body. It never mutates the stored post and
// always returns a result, even for empty or malformed input.
package markdown

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"blog-backend/internal/shared/utils"
)

const wordsPerMinute = 200

var (
	reImage       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reLink        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reInlineCode  = regexp.MustCompile("`[^`]*`")
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnder   = regexp.MustCompile(`__(.+?)__`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnder = regexp.MustCompile(`_([^_]+)_`)
	reHeading     = regexp.MustCompile(`^#{1,6}\s+`)
	reBullet      = regexp.MustCompile(`^\s*([-*+]|\d+\.)\s+`)
)

// Heading is one table-of-contents entry.
type Heading struct {
	Level  int    `json:"level"`  // 2 or 3
	Text   string `json:"text"`   // inline formatting stripped
	Anchor string `json:"anchor"` // unique within the document
}

// ReadingTime approximates the prose reading time of a Markdown body in
// minutes: max(1, round(words / 200)).
func ReadingTime(body string) int {
	words := countProseWords(body)

	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ReadingTimeLabel formats ReadingTime for display, e.g. "2 min read".
func ReadingTimeLabel(body string) string {
	return fmt.Sprintf("%d min read", ReadingTime(body))
}

// TableOfContents scans body for level-2 and level-3 headings in document
// order and assigns each a deterministic, unique anchor. Duplicate heading
// slugs get a numeric suffix: slug, slug-2, slug-3, … Any renderer that
// walks the same document top to bottom with these anchors stays in sync
// with the links the table of contents emits.
func TableOfContents(body string) []Heading {
	headings := []Heading{}
	counts := map[string]int{}

	inCode := false
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		var level int
		var text string
		switch {
		case strings.HasPrefix(line, "## "):
			level, text = 2, line[3:]
		case strings.HasPrefix(line, "### "):
			level, text = 3, line[4:]
		default:
			continue
		}

		text = stripInline(text)
		headings = append(headings, Heading{
			Level:  level,
			Text:   text,
			Anchor: nextAnchor(counts, text),
		})
	}

	return headings
}

// nextAnchor produces the document-order anchor sequence. counts carries the
// per-slug occurrence tally across the whole document.
func nextAnchor(counts map[string]int, text string) string {
	slug := utils.GenerateSlug(text)
	if slug == "" {
		slug = "section"
	}

	counts[slug]++
	if n := counts[slug]; n > 1 {
		return slug + "-" + strconv.Itoa(n)
	}
	return slug
}

// stripInline removes inline Markdown syntax from heading text: links keep
// their text, images vanish, emphasis and backticks drop their markers.
func stripInline(s string) string {
	s = reImage.ReplaceAllString(s, "")
	s = reLink.ReplaceAllString(s, "$1")
	s = reInlineCode.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Trim(m, "`")
	})
	s = reBold.ReplaceAllString(s, "$1")
	s = reBoldUnder.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reItalicUnder.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// countProseWords strips Markdown syntax down to prose and counts
// whitespace-delimited words. Fenced code blocks and inline code spans are
// dropped entirely; link text survives, link targets and images do not.
func countProseWords(body string) int {
	words := 0

	inCode := false
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		line = reImage.ReplaceAllString(line, "")
		line = reInlineCode.ReplaceAllString(line, "")
		line = reLink.ReplaceAllString(line, "$1")
		line = reHeading.ReplaceAllString(line, "")
		line = reBullet.ReplaceAllString(line, "")
		line = strings.TrimPrefix(line, "> ")
		line = reBold.ReplaceAllString(line, "$1")
		line = reBoldUnder.ReplaceAllString(line, "$1")
		line = reItalic.ReplaceAllString(line, "$1")
		line = reItalicUnder.ReplaceAllString(line, "$1")

		words += len(strings.Fields(line))
	}

	return words
}
