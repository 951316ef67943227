package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/media/service"
	"blog-backend/internal/shared/response"
)

type MediaHandler struct {
	service service.Service
}

func NewMediaHandler(svc service.Service) *MediaHandler {
	return &MediaHandler{service: svc}
}

// Gallery handles GET /media/galleries/:name.
func (h *MediaHandler) Gallery(c *gin.Context) {
	gallery, err := h.service.Gallery(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownGallery) {
			response.NotFound(c, "Gallery not found")
			return
		}
		log.Error().Err(err).Msg("Failed to load gallery")
		response.InternalServerError(c, "Failed to load gallery")
		return
	}

	response.Success(c, http.StatusOK, gallery)
}
