package main

import (
	"github.com/hibiken/asynq"

	"blog-backend/internal/domains/post/job"
	"blog-backend/internal/infrastructure/storage"
)

// registerHandlers maps task types to their processors.
func registerHandlers(store *storage.MinIOStorage) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(job.TypeDeleteImages, job.NewDeleteImagesHandler(store))
	return mux
}
