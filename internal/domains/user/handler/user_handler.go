package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/infrastructure/storage"
	"microblog-backend/internal/shared/response"
	"microblog-backend/pkg/logger"
)

// UserHandler serves the public profile endpoint.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile handles GET /user/:username
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.service.GetProfile(c.Request.Context(), username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, storage.ErrCorrupt):
		logger.Error("storage error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "STORAGE_ERROR", "Storage is unavailable")
	default:
		logger.Error("unhandled error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
