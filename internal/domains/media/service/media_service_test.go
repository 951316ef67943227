package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/config"
)

type fakeLister struct {
	objects map[string][]string
}

func (f *fakeLister) ListPrefix(ctx context.Context, prefix string) ([]string, error) {
	return f.objects[prefix], nil
}

func (f *fakeLister) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func testConfig() config.GalleryConfig {
	return config.GalleryConfig{
		PhotoPrefix: "gallery/photos/",
		VideoPrefix: "gallery/videos/",
	}
}

func TestGalleryResolvesURLs(t *testing.T) {
	storage := &fakeLister{objects: map[string][]string{
		"gallery/photos/": {"gallery/photos/1_a.jpg", "gallery/photos/2_b.jpg"},
	}}
	svc := NewMediaService(storage, testConfig())

	gallery, err := svc.Gallery(context.Background(), "photos")

	require.NoError(t, err)
	assert.Equal(t, "photos", gallery.Name)
	assert.Equal(t, []string{
		"https://cdn.example.com/gallery/photos/1_a.jpg",
		"https://cdn.example.com/gallery/photos/2_b.jpg",
	}, gallery.Items)
}

func TestGalleryEmptyPrefix(t *testing.T) {
	svc := NewMediaService(&fakeLister{objects: map[string][]string{}}, testConfig())

	gallery, err := svc.Gallery(context.Background(), "videos")

	require.NoError(t, err)
	assert.NotNil(t, gallery.Items)
	assert.Empty(t, gallery.Items)
}

func TestGalleryUnknownName(t *testing.T) {
	svc := NewMediaService(&fakeLister{}, testConfig())

	_, err := svc.Gallery(context.Background(), "gifs")

	assert.ErrorIs(t, err, ErrUnknownGallery)
}
