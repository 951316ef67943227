package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the post lifecycle state. Drafts are excluded from public
// listings; published posts are visible everywhere.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post is the sole durable entity of the blog.
//
// CoverPath and ImagePaths hold opaque storage keys, never URLs; the
// storage collaborator resolves keys at render time. ImagePaths is always
// non-nil; absent array data normalizes to an empty slice.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	CoverPath   string     `json:"cover_path,omitempty"`
	ImagePaths  []string   `json:"image_paths"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StoragePrefix is the object-storage folder holding every asset of this
// post. The cleanup worker removes the whole prefix.
func (p *Post) StoragePrefix() string {
	return "posts/" + p.ID.String() + "/"
}
