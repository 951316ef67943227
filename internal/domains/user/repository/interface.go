package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
)

// Repository reads author accounts. Accounts are provisioned by migration,
// not through the API, so there is no write surface here.
//
// Not-found convention: (nil, nil), same as the post repository.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
