package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"microblog-backend/internal/domains/auth"
	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/infrastructure/storage"
	"microblog-backend/internal/shared/response"
	"microblog-backend/pkg/logger"
)

// AuthHandler serves the OTP signup/login endpoints and the username
// availability check.
type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// CheckUsername handles POST /auth/check-username
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	var req auth.CheckUsernameRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.service.CheckUsername(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// SendSignupOTP handles POST /auth/signup/send-otp
func (h *AuthHandler) SendSignupOTP(c *gin.Context) {
	var req auth.SignupOTPRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.service.SendSignupOTP(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth.MessageResponse{Message: "Verification code sent"})
}

// VerifySignup handles POST /auth/signup/verify
func (h *AuthHandler) VerifySignup(c *gin.Context) {
	var req auth.VerifyOTPRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.service.VerifySignup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// SendLoginOTP handles POST /auth/login/send-otp
func (h *AuthHandler) SendLoginOTP(c *gin.Context) {
	var req auth.LoginOTPRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.service.SendLoginOTP(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth.MessageResponse{Message: "Verification code sent"})
}

// VerifyLogin handles POST /auth/login/verify
func (h *AuthHandler) VerifyLogin(c *gin.Context) {
	var req auth.VerifyOTPRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.service.VerifyLogin(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// bind unmarshals the JSON body and reports a 400 on failure. DTO
// validation itself runs in the service layer.
func (h *AuthHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, auth.ErrEmailAlreadyRegistered),
		errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "Email is already registered")
	case errors.Is(err, auth.ErrUsernameTaken),
		errors.Is(err, user.ErrUsernameTaken):
		response.Conflict(c, "Username is already taken")
	case errors.Is(err, auth.ErrNotRegistered):
		response.NotFound(c, "Email is not registered")
	case errors.Is(err, auth.ErrNoPendingRequest):
		response.BadRequest(c, "No pending verification request")
	case errors.Is(err, auth.ErrOTPExpired):
		response.BadRequest(c, "Verification code has expired")
	case errors.Is(err, auth.ErrOTPMismatch):
		response.BadRequest(c, "Invalid OTP")
	case errors.Is(err, auth.ErrDeliveryFailed):
		response.ErrorResponse(c, http.StatusInternalServerError, "DELIVERY_FAILED", "Failed to send verification code")
	case errors.Is(err, storage.ErrCorrupt):
		logger.Error("storage error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "STORAGE_ERROR", "Storage is unavailable")
	default:
		logger.Error("unhandled auth error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
