package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNormalizeCurrentShape(t *testing.T) {
	id := uuid.New()
	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := Normalize(RawRow{
		ID:           id,
		Title:        "Hello World",
		Slug:         "hello-world",
		Excerpt:      strPtr("a greeting"),
		BodyMarkdown: strPtr("# Hi"),
		CoverPath:    strPtr("posts/x/cover.jpg"),
		ImagePaths:   []string{"posts/x/1.jpg"},
		Status:       "published",
		PublishedAt:  &published,
	})

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "# Hi", p.Body)
	assert.Equal(t, "a greeting", p.Excerpt)
	assert.Equal(t, StatusPublished, p.Status)
	assert.Equal(t, []string{"posts/x/1.jpg"}, p.ImagePaths)
	assert.Equal(t, &published, p.PublishedAt)
}

func TestNormalizeLegacyContentColumn(t *testing.T) {
	p := Normalize(RawRow{
		ID:      uuid.New(),
		Title:   "Old Post",
		Slug:    "old-post",
		Content: strPtr("body from the legacy column"),
		Status:  "draft",
	})

	assert.Equal(t, "body from the legacy column", p.Body)
}

func TestNormalizePrefersCurrentBodyColumn(t *testing.T) {
	p := Normalize(RawRow{
		ID:           uuid.New(),
		BodyMarkdown: strPtr("new"),
		Content:      strPtr("old"),
		Status:       "draft",
	})

	assert.Equal(t, "new", p.Body)
}

func TestNormalizeMissingImagePaths(t *testing.T) {
	p := Normalize(RawRow{
		ID:         uuid.New(),
		Title:      "No Gallery",
		Slug:       "no-gallery",
		ImagePaths: nil,
		Status:     "published",
	})

	assert.NotNil(t, p.ImagePaths, "image_paths must never be nil")
	assert.Equal(t, []string{}, p.ImagePaths)
}

func TestNormalizeNilOptionals(t *testing.T) {
	p := Normalize(RawRow{
		ID:     uuid.New(),
		Title:  "Bare",
		Slug:   "bare",
		Status: "draft",
	})

	assert.Equal(t, "", p.Excerpt)
	assert.Equal(t, "", p.Body)
	assert.Equal(t, "", p.CoverPath)
	assert.Nil(t, p.PublishedAt)
}

func TestNormalizeUnknownStatusFallsBackToDraft(t *testing.T) {
	p := Normalize(RawRow{ID: uuid.New(), Status: "archived"})
	assert.Equal(t, StatusDraft, p.Status)
}
