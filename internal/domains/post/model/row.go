package model

import (
	"time"

	"github.com/google/uuid"
)

// RawRow mirrors one posts row as the backend returns it, across schema
// versions. The schema grew in steps and old columns were kept during
// migration: the Markdown body started life in `content` before moving to
// `body_markdown`, and `image_paths` did not exist before the gallery
// feature. Normalize is the single place that reconciles all of that into
// the application's Post shape; the quirks never leak past this file.
type RawRow struct {
	ID           uuid.UUID
	Title        string
	Slug         string
	Excerpt      *string
	BodyMarkdown *string // current column
	Content      *string // legacy column, pre-migration rows only
	CoverPath    *string
	ImagePaths   []string // nil on rows predating the gallery feature
	Status       string
	PublishedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize converts a backend row into the application Post shape.
// Pure function: same row in, same post out, regardless of which schema
// version produced the row.
func Normalize(r RawRow) *Post {
	body := ""
	switch {
	case r.BodyMarkdown != nil && *r.BodyMarkdown != "":
		body = *r.BodyMarkdown
	case r.Content != nil:
		body = *r.Content
	}

	images := r.ImagePaths
	if images == nil {
		images = []string{}
	}

	status := Status(r.Status)
	if !status.Valid() {
		status = StatusDraft
	}

	return &Post{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Excerpt:     deref(r.Excerpt),
		Body:        body,
		CoverPath:   deref(r.CoverPath),
		ImagePaths:  images,
		Status:      status,
		PublishedAt: r.PublishedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
