package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// TypeDeleteImages removes every stored asset of a deleted post. Cleanup is
// best-effort: the post row is already gone when this runs, and a failure
// here is never surfaced to the user.
const TypeDeleteImages = "post:delete_images"

// DeleteImagesPayload carries the storage prefix of the deleted post.
type DeleteImagesPayload struct {
	PostID string `json:"post_id"`
	Prefix string `json:"prefix"`
}

// NewDeleteImagesTask builds the cleanup task enqueued on post delete.
func NewDeleteImagesTask(postID, prefix string) (*asynq.Task, error) {
	payload, err := json.Marshal(DeleteImagesPayload{PostID: postID, Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(TypeDeleteImages, payload), nil
}

// PrefixRemover is the slice of object storage the handler needs.
type PrefixRemover interface {
	RemovePrefix(ctx context.Context, prefix string) error
}

// DeleteImagesHandler processes TypeDeleteImages tasks.
type DeleteImagesHandler struct {
	storage PrefixRemover
}

func NewDeleteImagesHandler(storage PrefixRemover) *DeleteImagesHandler {
	return &DeleteImagesHandler{storage: storage}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload DeleteImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteImages payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Str("prefix", payload.Prefix).
		Msg("Deleting post images")

	if err := h.storage.RemovePrefix(ctx, payload.Prefix); err != nil {
		log.Error().
			Err(err).
			Str("post_id", payload.PostID).
			Msg("Failed to delete post images")
		return fmt.Errorf("delete images: %w", err)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Msg("Post images deleted")

	return nil
}
