package model

import "errors"

var (
	// ErrNotFound: no row for the given id. Distinct from a transport
	// error; callers render an empty state, not an error banner.
	ErrNotFound = errors.New("post not found")

	// ErrSlugTaken: the derived slug collides with an existing post.
	// Surfaced with a specific message, never as a generic failure.
	ErrSlugTaken = errors.New("a post with this title already exists")

	// ErrUnauthenticated: write attempted without a valid session. The
	// operation aborts before any backend write.
	ErrUnauthenticated = errors.New("authentication required")
)
