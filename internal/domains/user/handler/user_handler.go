package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/domains/user/service"
	"blog-backend/internal/prefs"
	"blog-backend/internal/session"
	"blog-backend/internal/shared/response"
)

type UserHandler struct {
	service  service.Service
	sessions *session.Broadcaster
	prefs    *prefs.Manager
}

func NewUserHandler(svc service.Service, sessions *session.Broadcaster, preferences *prefs.Manager) *UserHandler {
	return &UserHandler{service: svc, sessions: sessions, prefs: preferences}
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Login failed")
		response.InternalServerError(c, "Failed to log in")
		return
	}

	userID, err := uuid.Parse(resp.User.ID)
	if err == nil {
		h.sessions.Set(&session.Session{
			UserID: userID,
			Email:  resp.User.Email,
			Role:   resp.User.Role,
		})
	}

	response.Success(c, http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh.
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid refresh token")
			return
		}
		log.Error().Err(err).Msg("Token refresh failed")
		response.InternalServerError(c, "Failed to refresh token")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		log.Error().Err(err).Msg("Failed to load profile")
		response.InternalServerError(c, "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, model.NewUserDTO(user))
}

// GetPreferences handles GET /users/me/preferences.
func (h *UserHandler) GetPreferences(c *gin.Context) {
	response.Success(c, http.StatusOK, h.prefs.Get())
}

// UpdatePreferences handles PUT /users/me/preferences.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var p prefs.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.prefs.Set(p); err != nil {
		log.Error().Err(err).Msg("Failed to save preferences")
		response.InternalServerError(c, "Failed to save preferences")
		return
	}

	response.Success(c, http.StatusOK, p)
}
