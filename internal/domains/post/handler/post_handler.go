package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/service"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/viewcount"
)

// maxImageSize caps a single uploaded image at 10 MB.
const maxImageSize = 10 << 20

type PostHandler struct {
	service service.Service
	counter *viewcount.Counter
}

func NewPostHandler(svc service.Service, counter *viewcount.Counter) *PostHandler {
	return &PostHandler{service: svc, counter: counter}
}

// ListPublished handles GET /posts.
func (h *PostHandler) ListPublished(c *gin.Context) {
	posts, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to list posts")
		return
	}
	response.Success(c, http.StatusOK, h.toResponses(posts))
}

// ListAll handles GET /admin/posts, drafts included.
func (h *PostHandler) ListAll(c *gin.Context) {
	posts, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to list posts")
		return
	}
	response.Success(c, http.StatusOK, h.toResponses(posts))
}

// Get handles GET /posts/:id. Drafts resolve too; the id is the share link.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to get post")
		return
	}

	resp := model.NewPostResponse(post, h.service.ResolveURL)
	resp.Views = h.counter.Snapshot()[post.ID.String()]
	response.Success(c, http.StatusOK, resp)
}

// MostRead handles GET /posts/most-read.
func (h *PostHandler) MostRead(c *gin.Context) {
	posts, err := h.service.MostRead(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to rank posts")
		return
	}
	response.Success(c, http.StatusOK, h.toResponses(posts))
}

// RecordView handles POST /posts/:id/view. Always 204: view counting is
// best-effort and never blocks the reader.
func (h *PostHandler) RecordView(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.service.RecordView(id)
	c.Status(http.StatusNoContent)
}

// Create handles POST /posts.
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create post")
		return
	}
	response.Success(c, http.StatusCreated, model.NewPostResponse(post, h.service.ResolveURL))
}

// Update handles PUT /posts/:id. The body is a partial patch: omitted
// fields keep their stored values.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update post")
		return
	}
	response.Success(c, http.StatusOK, model.NewPostResponse(post, h.service.ResolveURL))
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete post")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImages handles POST /posts/:id/images with multipart form field
// "images".
func (h *PostHandler) UploadImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.BadRequest(c, "No images provided")
		return
	}

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, file := range files {
		if file.Size > maxImageSize {
			response.BadRequest(c, "Image too large: "+file.Filename)
			return
		}

		src, err := file.Open()
		if err != nil {
			response.BadRequest(c, "Unreadable image: "+file.Filename)
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			response.BadRequest(c, "Unreadable image: "+file.Filename)
			return
		}

		uploads = append(uploads, service.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	post, err := h.service.UploadImages(c.Request.Context(), id, uploads)
	if err != nil {
		h.fail(c, err, "Failed to upload images")
		return
	}
	response.Success(c, http.StatusOK, model.NewPostResponse(post, h.service.ResolveURL))
}

func (h *PostHandler) toResponses(posts []*model.Post) []model.PostResponse {
	views := h.counter.Snapshot()
	out := make([]model.PostResponse, 0, len(posts))
	for _, p := range posts {
		resp := model.NewPostResponse(p, h.service.ResolveURL)
		resp.Views = views[p.ID.String()]
		out = append(out, resp)
	}
	return out
}

func (h *PostHandler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		response.Unauthorized(c, "Authentication required")
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "Post not found")
	case errors.Is(err, model.ErrSlugTaken):
		response.Conflict(c, "SLUG_TAKEN", err.Error())
	default:
		log.Error().Err(err).Msg(msg)
		response.InternalServerError(c, msg)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post id")
		return uuid.Nil, false
	}
	return id, true
}
