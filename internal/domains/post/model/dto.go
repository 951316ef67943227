package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/markdown"
)

// CreatePostRequest is the authoring payload. Status omitted defaults to
// draft with a null published_at.
type CreatePostRequest struct {
	Title       string     `json:"title" binding:"required"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body" binding:"required"`
	CoverPath   string     `json:"cover_path,omitempty"`
	ImagePaths  []string   `json:"image_paths,omitempty"`
	Status      Status     `json:"status,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Body,
			validation.Required.Error("body is required"),
		),
		validation.Field(&r.Status,
			validation.In(Status(""), StatusDraft, StatusPublished).Error("status must be draft or published"),
		),
	)
}

// UpdatePostRequest is a partial patch: nil fields are left untouched,
// never cleared. Pointer-to-slice distinguishes "replace the image list"
// from "don't touch it".
type UpdatePostRequest struct {
	Title       *string    `json:"title,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Body        *string    `json:"body,omitempty"`
	CoverPath   *string    `json:"cover_path,omitempty"`
	ImagePaths  *[]string  `json:"image_paths,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be cleared"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Body,
			validation.NilOrNotEmpty.Error("body cannot be cleared"),
		),
		validation.Field(&r.Status,
			validation.By(func(value interface{}) error {
				s, _ := value.(*Status)
				if s == nil || s.Valid() {
					return nil
				}
				return validation.NewError("validation_status", "status must be draft or published")
			}),
		),
	)
}

// PostResponse is the read-surface shape: the stored post plus resolved
// asset URLs and the derived presentation artifacts.
type PostResponse struct {
	Post
	CoverURL    string             `json:"cover_url,omitempty"`
	ImageURLs   []string           `json:"image_urls"`
	ReadingTime string             `json:"reading_time"`
	Toc         []markdown.Heading `json:"toc"`
	Views       int                `json:"views,omitempty"`
}

// NewPostResponse assembles the response; resolve maps a storage key to a
// public URL.
func NewPostResponse(p *Post, resolve func(string) string) PostResponse {
	urls := make([]string, 0, len(p.ImagePaths))
	for _, key := range p.ImagePaths {
		urls = append(urls, resolve(key))
	}

	coverURL := ""
	if p.CoverPath != "" {
		coverURL = resolve(p.CoverPath)
	}

	return PostResponse{
		Post:        *p,
		CoverURL:    coverURL,
		ImageURLs:   urls,
		ReadingTime: markdown.ReadingTimeLabel(p.Body),
		Toc:         markdown.TableOfContents(p.Body),
	}
}
