package service

import (
	"context"
	"fmt"

	"blog-backend/internal/config"
)

// Gallery is one named collection of media objects resolved to public URLs.
type Gallery struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ObjectLister is the slice of object storage galleries need.
type ObjectLister interface {
	ListPrefix(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
}

// Service serves the standalone photo and video galleries. Gallery content
// lives directly in object storage under fixed prefixes; there is no
// database row behind it.
type Service interface {
	Gallery(ctx context.Context, name string) (*Gallery, error)
}

// ErrUnknownGallery rejects gallery names outside the configured set.
var ErrUnknownGallery = fmt.Errorf("unknown gallery")

type mediaService struct {
	storage  ObjectLister
	prefixes map[string]string
}

func NewMediaService(storage ObjectLister, cfg config.GalleryConfig) Service {
	return &mediaService{
		storage: storage,
		prefixes: map[string]string{
			"photos": cfg.PhotoPrefix,
			"videos": cfg.VideoPrefix,
		},
	}
}

// Gallery lists the objects under the gallery's prefix, sorted by key, so
// upload order (keys carry a sequence) is presentation order.
func (s *mediaService) Gallery(ctx context.Context, name string) (*Gallery, error) {
	prefix, ok := s.prefixes[name]
	if !ok {
		return nil, ErrUnknownGallery
	}

	keys, err := s.storage.ListPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery %s: %w", name, err)
	}

	items := make([]string, 0, len(keys))
	for _, key := range keys {
		items = append(items, s.storage.PublicURL(key))
	}

	return &Gallery{Name: name, Items: items}, nil
}
