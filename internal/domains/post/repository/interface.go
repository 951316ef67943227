package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
)

// Repository is the single point of translation between the application
// post shape and the backend row shape.
//
// Not-found convention: GetByID returns (nil, nil) when no row exists; an
// error always means transport or backend failure.
type Repository interface {
	ListPublished(ctx context.Context) ([]*model.Post, error)
	ListAll(ctx context.Context) ([]*model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
