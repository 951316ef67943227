package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post/model"
)

const uniqueViolation = "23505"

// selectColumns reads both the current and the legacy body column; rows
// from either schema version normalize to the same Post shape.
const selectColumns = `
    id, title, slug, excerpt,
    body_markdown, content,
    cover_path,
    COALESCE(image_paths, '{}') AS image_paths,
    status, published_at, created_at, updated_at
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres-backed post repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var r model.RawRow
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Slug,
		&r.Excerpt,
		&r.BodyMarkdown,
		&r.Content,
		&r.CoverPath,
		&r.ImagePaths,
		&r.Status,
		&r.PublishedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return model.Normalize(r), nil
}

func (repo *postgresRepository) list(ctx context.Context, query string) ([]*model.Post, error) {
	rows, err := repo.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// ListPublished returns every published post, newest first. Posts published
// before published_at existed fall back to created_at for ordering.
func (repo *postgresRepository) ListPublished(ctx context.Context) ([]*model.Post, error) {
	query := `
    SELECT ` + selectColumns + `
    FROM posts
    WHERE status = 'published'
    ORDER BY COALESCE(published_at, created_at) DESC
  `
	return repo.list(ctx, query)
}

// ListAll returns drafts too; admin surface only.
func (repo *postgresRepository) ListAll(ctx context.Context) ([]*model.Post, error) {
	query := `
    SELECT ` + selectColumns + `
    FROM posts
    ORDER BY COALESCE(published_at, created_at) DESC
  `
	return repo.list(ctx, query)
}

// GetByID returns (nil, nil) when the id has no row.
func (repo *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `
    SELECT ` + selectColumns + `
    FROM posts
    WHERE id = $1
  `
	post, err := scanPost(repo.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// Create inserts a new post and returns the stored row. A slug collision
// surfaces as model.ErrSlugTaken.
func (repo *postgresRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := `
    INSERT INTO posts (title, slug, excerpt, body_markdown, cover_path, image_paths, status, published_at)
    VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8)
    RETURNING ` + selectColumns + `
  `
	row := repo.pool.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Body,
		post.CoverPath,
		post.ImagePaths,
		post.Status,
		post.PublishedAt,
	)

	created, err := scanPost(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return created, nil
}

// Update writes the full merged post. The service owns the merge; omitted
// patch fields already carry their stored values here.
func (repo *postgresRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := `
    UPDATE posts
    SET title = $1, slug = $2, excerpt = NULLIF($3, ''), body_markdown = $4,
        cover_path = NULLIF($5, ''), image_paths = $6, status = $7,
        published_at = $8, updated_at = NOW()
    WHERE id = $9
    RETURNING ` + selectColumns + `
  `
	row := repo.pool.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Body,
		post.CoverPath,
		post.ImagePaths,
		post.Status,
		post.PublishedAt,
		post.ID,
	)

	updated, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, model.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return updated, nil
}

func (repo *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
