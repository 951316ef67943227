package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"blog-backend/internal/domains/post/model"
)

// Service carries the post business rules: slug derivation, the
// published_at set-once transition, partial-update merging, and the
// authenticated-write guard.
type Service interface {
	ListPublished(ctx context.Context) ([]*model.Post, error)
	ListAll(ctx context.Context) ([]*model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	MostRead(ctx context.Context) ([]*model.Post, error)
	RecordView(id uuid.UUID)

	Create(ctx context.Context, req model.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImages(ctx context.Context, id uuid.UUID, uploads []ImageUpload) (*model.Post, error)

	ResolveURL(key string) string
}

// ImageUpload is one incoming image file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ObjectStorage is the slice of the storage collaborator the service uses.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PublicURL(key string) string
}

// TaskEnqueuer enqueues background tasks; *asynq.Client satisfies it.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
