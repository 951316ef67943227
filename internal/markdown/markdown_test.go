package markdown

import (
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestReadingTimeMinimumOneMinute(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", 1},
		{"fifty words", words(50), 1},
		{"only a code block", "```\nfunc main() {}\n```", 1},
		{"only an image", "![cover](posts/abc/cover.jpg)", 1},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.body); got != tt.want {
			t.Errorf("%s: ReadingTime = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestReadingTimeStripsNonProse(t *testing.T) {
	body := words(200) + "\n\n" +
		"```go\nfmt.Println(\"not prose not counted at all\")\n```\n\n" +
		"![diagram](posts/abc/diagram.png)\n\n" +
		words(200)

	if got := ReadingTime(body); got != 2 {
		t.Errorf("ReadingTime = %d, want 2", got)
	}
	if got := ReadingTimeLabel(body); got != "2 min read" {
		t.Errorf("ReadingTimeLabel = %q, want %q", got, "2 min read")
	}
}

func TestReadingTimeKeepsLinkText(t *testing.T) {
	// Link text counts as prose, the URL does not.
	body := "read [the full announcement here today](https://example.com/very/long/url/that/would/inflate/counts)"
	if got := countProseWords(body); got != 6 {
		t.Errorf("countProseWords = %d, want 6", got)
	}
}

func TestReadingTimeStripsMarkers(t *testing.T) {
	body := "## A Heading\n- bullet one\n1. numbered two\n> quoted three\n**bold** *italic* `code`"
	// code span is dropped: A Heading bullet one numbered two quoted three bold italic
	if got := countProseWords(body); got != 10 {
		t.Errorf("countProseWords = %d, want 10", got)
	}
}

func TestTableOfContentsDuplicateAnchors(t *testing.T) {
	body := "## Intro\n\ntext\n\n## Intro\n\n## Setup\n"
	toc := TableOfContents(body)

	wantAnchors := []string{"intro", "intro-2", "setup"}
	if len(toc) != len(wantAnchors) {
		t.Fatalf("len(toc) = %d, want %d", len(toc), len(wantAnchors))
	}
	for i, want := range wantAnchors {
		if toc[i].Anchor != want {
			t.Errorf("toc[%d].Anchor = %q, want %q", i, toc[i].Anchor, want)
		}
	}
}

func TestTableOfContentsLevels(t *testing.T) {
	body := "# Title\n## Section\n### Subsection\n#### Too Deep\n"
	toc := TableOfContents(body)

	if len(toc) != 2 {
		t.Fatalf("len(toc) = %d, want 2 (only h2/h3)", len(toc))
	}
	if toc[0].Level != 2 || toc[0].Text != "Section" {
		t.Errorf("toc[0] = %+v", toc[0])
	}
	if toc[1].Level != 3 || toc[1].Text != "Subsection" {
		t.Errorf("toc[1] = %+v", toc[1])
	}
}

func TestTableOfContentsStripsInlineSyntax(t *testing.T) {
	tests := []struct {
		line       string
		wantText   string
		wantAnchor string
	}{
		{"## **Bold** Heading", "Bold Heading", "bold-heading"},
		{"## Using `context.Context`", "Using context.Context", "using-contextcontext"},
		{"## See [the docs](https://example.com)", "See the docs", "see-the-docs"},
		{"## ![icon](x.png) Pictures", "Pictures", "pictures"},
		{"## *emphasis* here", "emphasis here", "emphasis-here"},
	}
	for _, tt := range tests {
		toc := TableOfContents(tt.line)
		if len(toc) != 1 {
			t.Fatalf("%q: len(toc) = %d, want 1", tt.line, len(toc))
		}
		if toc[0].Text != tt.wantText {
			t.Errorf("%q: Text = %q, want %q", tt.line, toc[0].Text, tt.wantText)
		}
		if toc[0].Anchor != tt.wantAnchor {
			t.Errorf("%q: Anchor = %q, want %q", tt.line, toc[0].Anchor, tt.wantAnchor)
		}
	}
}

func TestTableOfContentsSkipsCodeFences(t *testing.T) {
	body := "## Real\n```\n## Not A Heading\n```\n### Also Real\n"
	toc := TableOfContents(body)

	if len(toc) != 2 {
		t.Fatalf("len(toc) = %d, want 2", len(toc))
	}
	if toc[0].Anchor != "real" || toc[1].Anchor != "also-real" {
		t.Errorf("anchors = %q, %q", toc[0].Anchor, toc[1].Anchor)
	}
}

func TestTableOfContentsEmptyInput(t *testing.T) {
	if toc := TableOfContents(""); len(toc) != 0 {
		t.Errorf("TableOfContents(\"\") = %v, want empty", toc)
	}
	if toc := TableOfContents("plain paragraph, no headings"); len(toc) != 0 {
		t.Errorf("TableOfContents(no headings) = %v, want empty", toc)
	}
}
