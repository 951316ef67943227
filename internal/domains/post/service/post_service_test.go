package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/session"
	"blog-backend/internal/viewcount"
)

type fakeRepo struct {
	posts   map[uuid.UUID]*model.Post
	slugs   map[string]uuid.UUID
	creates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts: map[uuid.UUID]*model.Post{},
		slugs: map[string]uuid.UUID{},
	}
}

func (r *fakeRepo) ListPublished(ctx context.Context) ([]*model.Post, error) {
	var out []*model.Post
	for _, p := range r.posts {
		if p.Status == model.StatusPublished {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(ctx context.Context) ([]*model.Post, error) {
	var out []*model.Post
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	r.creates++
	if _, taken := r.slugs[post.Slug]; taken {
		return nil, model.ErrSlugTaken
	}
	stored := *post
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.posts[stored.ID] = &stored
	r.slugs[stored.Slug] = stored.ID
	clone := stored
	return &clone, nil
}

func (r *fakeRepo) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	old, ok := r.posts[post.ID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if owner, taken := r.slugs[post.Slug]; taken && owner != post.ID {
		return nil, model.ErrSlugTaken
	}
	delete(r.slugs, old.Slug)
	stored := *post
	stored.UpdatedAt = time.Now().UTC()
	r.posts[stored.ID] = &stored
	r.slugs[stored.Slug] = stored.ID
	clone := stored
	return &clone, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	p, ok := r.posts[id]
	if !ok {
		return model.ErrNotFound
	}
	delete(r.slugs, p.Slug)
	delete(r.posts, id)
	return nil
}

type fakeCache struct{}

func (fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (fakeCache) Ping(ctx context.Context) error                   { return nil }

type fakeStorage struct {
	uploaded []string
}

func (s *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.uploaded = append(s.uploaded, key)
	return key, nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

type memStore struct {
	data map[string][]byte
}

func (m *memStore) Get(key string, dest interface{}) (bool, error) { return false, nil }
func (m *memStore) Set(key string, value interface{}) error        { return nil }

func newService(repo *fakeRepo, storage *fakeStorage, enq *fakeEnqueuer) Service {
	return NewPostService(repo, fakeCache{}, storage, enq, viewcount.NewCounter(&memStore{}))
}

func authedContext() context.Context {
	return session.WithSession(context.Background(), &session.Session{
		UserID: uuid.New(),
		Email:  "author@example.com",
		Role:   "admin",
	})
}

func TestCreateDefaultsToDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})

	post, err := svc.Create(authedContext(), model.CreatePostRequest{
		Title: "Hello World",
		Body:  "# Hi",
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "hello-world", post.Slug)
	assert.NotNil(t, post.ImagePaths)
}

func TestCreatePublishedSetsPublishedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})

	post, err := svc.Create(authedContext(), model.CreatePostRequest{
		Title:  "Launch Day",
		Body:   "we shipped",
		Status: model.StatusPublished,
	})

	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.WithinDuration(t, time.Now().UTC(), *post.PublishedAt, 5*time.Second)
}

func TestCreateUnauthenticatedNeverReachesRepo(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})

	_, err := svc.Create(context.Background(), model.CreatePostRequest{
		Title: "Nope",
		Body:  "nope",
	})

	assert.ErrorIs(t, err, model.ErrUnauthenticated)
	assert.Zero(t, repo.creates)
}

func TestCreateDuplicateSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})
	ctx := authedContext()

	_, err := svc.Create(ctx, model.CreatePostRequest{Title: "Same Title", Body: "one"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, model.CreatePostRequest{Title: "Same Title", Body: "two"})
	assert.ErrorIs(t, err, model.ErrSlugTaken)
}

func TestUpdatePreservesPublishedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})
	ctx := authedContext()

	post, err := svc.Create(ctx, model.CreatePostRequest{
		Title:  "Stable Timestamp",
		Body:   "v1",
		Status: model.StatusPublished,
	})
	require.NoError(t, err)
	first := *post.PublishedAt

	time.Sleep(10 * time.Millisecond)

	body := "v2"
	status := model.StatusPublished
	updated, err := svc.Update(ctx, post.ID, model.UpdatePostRequest{
		Body:   &body,
		Status: &status,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, first, *updated.PublishedAt, "republishing must not move published_at")
}

func TestUpdateFirstPublishSetsPublishedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})
	ctx := authedContext()

	post, err := svc.Create(ctx, model.CreatePostRequest{Title: "Draft First", Body: "wip"})
	require.NoError(t, err)
	require.Nil(t, post.PublishedAt)

	status := model.StatusPublished
	updated, err := svc.Update(ctx, post.ID, model.UpdatePostRequest{Status: &status})

	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
}

func TestUpdateExplicitPublishedAtWins(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})
	ctx := authedContext()

	post, err := svc.Create(ctx, model.CreatePostRequest{
		Title:  "Backdated",
		Body:   "old news",
		Status: model.StatusPublished,
	})
	require.NoError(t, err)

	backdated := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, post.ID, model.UpdatePostRequest{PublishedAt: &backdated})

	require.NoError(t, err)
	assert.Equal(t, &backdated, updated.PublishedAt)
}

func TestUpdatePartialPatchKeepsOmittedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})
	ctx := authedContext()

	post, err := svc.Create(ctx, model.CreatePostRequest{
		Title:   "Keep Me",
		Excerpt: "the excerpt",
		Body:    "the body",
	})
	require.NoError(t, err)

	body := "rewritten"
	updated, err := svc.Update(ctx, post.ID, model.UpdatePostRequest{Body: &body})

	require.NoError(t, err)
	assert.Equal(t, "Keep Me", updated.Title)
	assert.Equal(t, "keep-me", updated.Slug)
	assert.Equal(t, "the excerpt", updated.Excerpt)
	assert.Equal(t, "rewritten", updated.Body)
}

func TestUpdateTitleRegeneratesSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})
	ctx := authedContext()

	post, err := svc.Create(ctx, model.CreatePostRequest{Title: "Old Title", Body: "b"})
	require.NoError(t, err)

	title := "New Title Here"
	updated, err := svc.Update(ctx, post.ID, model.UpdatePostRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "new-title-here", updated.Slug)
}

func TestUpdateMissingPost(t *testing.T) {
	svc := newService(newFakeRepo(), &fakeStorage{}, &fakeEnqueuer{})

	body := "x"
	_, err := svc.Update(authedContext(), uuid.New(), model.UpdatePostRequest{Body: &body})

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteEnqueuesImageCleanup(t *testing.T) {
	repo := newFakeRepo()
	enq := &fakeEnqueuer{}
	svc := newService(repo, &fakeStorage{}, enq)
	ctx := authedContext()

	post, err := svc.Create(ctx, model.CreatePostRequest{Title: "Doomed", Body: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, post.ID))

	_, err = svc.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, "post:delete_images", enq.tasks[0].Type())
}

func TestUploadImagesAppendsKeys(t *testing.T) {
	repo := newFakeRepo()
	storage := &fakeStorage{}
	svc := newService(repo, storage, &fakeEnqueuer{})
	ctx := authedContext()

	post, err := svc.Create(ctx, model.CreatePostRequest{Title: "Gallery", Body: "b"})
	require.NoError(t, err)

	updated, err := svc.UploadImages(ctx, post.ID, []ImageUpload{
		{Filename: "Sunset Photo.JPG", ContentType: "image/jpeg", Data: []byte("jpg")},
		{Filename: "beach.png", ContentType: "image/png", Data: []byte("png")},
	})

	require.NoError(t, err)
	require.Len(t, updated.ImagePaths, 2)
	prefix := "posts/" + post.ID.String() + "/"
	assert.Equal(t, prefix+"1_sunset-photo.jpg", updated.ImagePaths[0])
	assert.Equal(t, prefix+"2_beach.png", updated.ImagePaths[1])
	assert.Equal(t, updated.ImagePaths, storage.uploaded)
}

func TestMostReadOrdersByViews(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakeStorage{}, &fakeEnqueuer{})
	ctx := authedContext()

	quiet, err := svc.Create(ctx, model.CreatePostRequest{
		Title: "Quiet Post", Body: "b", Status: model.StatusPublished,
	})
	require.NoError(t, err)
	popular, err := svc.Create(ctx, model.CreatePostRequest{
		Title: "Popular Post", Body: "b", Status: model.StatusPublished,
	})
	require.NoError(t, err)

	svc.RecordView(popular.ID)
	svc.RecordView(popular.ID)
	svc.RecordView(quiet.ID)

	ranked, err := svc.MostRead(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, popular.ID, ranked[0].ID)
	assert.Equal(t, quiet.ID, ranked[1].ID)
}
