package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/infrastructure/storage"
	"microblog-backend/internal/shared/middleware"
	"microblog-backend/internal/shared/response"
	"microblog-backend/pkg/logger"
)

// PostHandler serves the public feed and the owner-scoped post CRUD.
type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Feed handles GET /posts
func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.service.Feed(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, posts)
}

// ListByUsername handles GET /posts/:username
func (h *PostHandler) ListByUsername(c *gin.Context) {
	posts, err := h.service.ListByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, posts)
}

// ListMine handles GET /my-posts (auth required)
func (h *PostHandler) ListMine(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		response.Unauthorized(c, "missing identity")
		return
	}

	posts, err := h.service.ListByUsername(c.Request.Context(), username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, posts)
}

// Create handles POST /post (auth required)
func (h *PostHandler) Create(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		response.Unauthorized(c, "missing identity")
		return
	}

	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), username, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Edit handles PUT /post/:id (auth required)
func (h *PostHandler) Edit(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		response.Unauthorized(c, "missing identity")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post id")
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	edited, err := h.service.Edit(c.Request.Context(), username, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, edited)
}

// Delete handles DELETE /post/:id (auth required)
func (h *PostHandler) Delete(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		response.Unauthorized(c, "missing identity")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), username, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, post.ErrEmptyContent):
		response.BadRequest(c, "Content required")
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, "Post not found")
	case errors.Is(err, storage.ErrCorrupt):
		logger.Error("storage error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "STORAGE_ERROR", "Storage is unavailable")
	default:
		logger.Error("unhandled post error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
