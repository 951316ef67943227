package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/post/job"
	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/repository"
	"blog-backend/internal/session"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/viewcount"
	"blog-backend/pkg/cache"
)

const (
	publishedCacheKey = "posts:published"
	publishedCacheTTL = 5 * time.Minute
)

type postService struct {
	repo    repository.Repository
	cache   cache.Cache
	storage ObjectStorage
	tasks   TaskEnqueuer
	counter *viewcount.Counter
}

// NewPostService wires the post business layer.
func NewPostService(
	repo repository.Repository,
	c cache.Cache,
	storage ObjectStorage,
	tasks TaskEnqueuer,
	counter *viewcount.Counter,
) Service {
	return &postService{
		repo:    repo,
		cache:   c,
		storage: storage,
		tasks:   tasks,
		counter: counter,
	}
}

// ListPublished serves the public feed, cache-first. Cache failures fall
// through to the repository.
func (s *postService) ListPublished(ctx context.Context) ([]*model.Post, error) {
	var cached []*model.Post
	found, err := s.cache.Get(ctx, publishedCacheKey, &cached)
	if err != nil {
		log.Debug().Err(err).Msg("published posts cache read failed")
	}
	if found {
		return cached, nil
	}

	posts, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, publishedCacheKey, posts, publishedCacheTTL); err != nil {
		log.Debug().Err(err).Msg("published posts cache write failed")
	}

	return posts, nil
}

func (s *postService) ListAll(ctx context.Context) ([]*model.Post, error) {
	return s.repo.ListAll(ctx)
}

// GetByID returns any post regardless of status; drafts stay reachable by
// direct id so unlisted sharing works.
func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, model.ErrNotFound
	}
	return post, nil
}

// MostRead returns the published posts reordered by view count, most read
// first. Ties keep feed order.
func (s *postService) MostRead(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Post, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		byID[p.ID.String()] = p
		ids = append(ids, p.ID.String())
	}

	ranked := make([]*model.Post, 0, len(posts))
	for _, id := range s.counter.Rank(ids) {
		ranked = append(ranked, byID[id])
	}
	return ranked, nil
}

// RecordView bumps the local tally. Best-effort by design: it never touches
// the durable post row and never reports failure.
func (s *postService) RecordView(id uuid.UUID) {
	s.counter.Bump(id.String())
}

func (s *postService) Create(ctx context.Context, req model.CreatePostRequest) (*model.Post, error) {
	if _, ok := session.FromContext(ctx); !ok {
		return nil, model.ErrUnauthenticated
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	publishedAt := req.PublishedAt
	if status == model.StatusPublished && publishedAt == nil {
		now := time.Now().UTC()
		publishedAt = &now
	}

	imagePaths := req.ImagePaths
	if imagePaths == nil {
		imagePaths = []string{}
	}

	post := &model.Post{
		Title:       req.Title,
		Slug:        utils.GenerateSlug(req.Title),
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		CoverPath:   req.CoverPath,
		ImagePaths:  imagePaths,
		Status:      status,
		PublishedAt: publishedAt,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return created, nil
}

// Update merges the patch into the stored post and writes the full row.
// published_at is set exactly once, at the first transition to published,
// unless the patch carries an explicit value.
func (s *postService) Update(ctx context.Context, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	if _, ok := session.FromContext(ctx); !ok {
		return nil, model.ErrUnauthenticated
	}

	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = utils.GenerateSlug(*req.Title)
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.CoverPath != nil {
		post.CoverPath = *req.CoverPath
	}
	if req.ImagePaths != nil {
		post.ImagePaths = *req.ImagePaths
		if post.ImagePaths == nil {
			post.ImagePaths = []string{}
		}
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.PublishedAt != nil {
		post.PublishedAt = req.PublishedAt
	} else if post.Status == model.StatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return updated, nil
}

// Delete removes the row, then hands asset cleanup to the worker. Orphaned
// objects from a failed enqueue stay until the prefix is swept again.
func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := session.FromContext(ctx); !ok {
		return model.ErrUnauthenticated
	}

	post, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	task, err := job.NewDeleteImagesTask(post.ID.String(), post.StoragePrefix())
	if err == nil {
		_, err = s.tasks.Enqueue(task)
	}
	if err != nil {
		log.Error().Err(err).Str("post_id", post.ID.String()).Msg("Failed to enqueue image cleanup")
	}

	s.invalidateFeed(ctx)
	return nil
}

// UploadImages stores each file under the post's prefix and appends the new
// keys to the gallery. A mid-batch failure leaves earlier uploads in place
// as orphans; the delete sweep reclaims them.
func (s *postService) UploadImages(ctx context.Context, id uuid.UUID, uploads []ImageUpload) (*model.Post, error) {
	if _, ok := session.FromContext(ctx); !ok {
		return nil, model.ErrUnauthenticated
	}

	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(uploads))
	for i, upload := range uploads {
		seq := len(post.ImagePaths) + i + 1
		key := fmt.Sprintf("%s%d_%s", post.StoragePrefix(), seq, sanitizeFilename(upload.Filename))

		stored, err := s.storage.Upload(ctx, key, upload.Data, upload.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", upload.Filename, err)
		}
		keys = append(keys, stored)
	}

	post.ImagePaths = append(post.ImagePaths, keys...)

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return updated, nil
}

func (s *postService) ResolveURL(key string) string {
	return s.storage.PublicURL(key)
}

func (s *postService) invalidateFeed(ctx context.Context) {
	if err := s.cache.Delete(ctx, publishedCacheKey); err != nil {
		log.Debug().Err(err).Msg("published posts cache invalidation failed")
	}
}

// sanitizeFilename keeps the extension and slugs the base name so keys stay
// URL-safe.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	stem := utils.GenerateSlug(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "image"
	}
	return stem + ext
}
