package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/internal/domains/auth/registry"
	authService "microblog-backend/internal/domains/auth/service"
	userRepo "microblog-backend/internal/domains/user/repository"
	"microblog-backend/internal/infrastructure/email"
)

type captureMailer struct {
	last *email.OTPMessage
}

func (m *captureMailer) SendOTP(ctx context.Context, msg email.OTPMessage) error {
	m.last = &msg
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *captureMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mailer := &captureMailer{}
	svc := authService.NewAuthService(
		userRepo.NewJSONFileRepository(t.TempDir()),
		registry.NewMemoryOTPRegistry(),
		registry.NewMemorySessionRegistry(),
		mailer,
		10*time.Minute,
	)
	h := NewAuthHandler(svc)

	router := gin.New()
	authGroup := router.Group("/api/v1/auth")
	{
		authGroup.POST("/check-username", h.CheckUsername)
		authGroup.POST("/signup/send-otp", h.SendSignupOTP)
		authGroup.POST("/signup/verify", h.VerifySignup)
		authGroup.POST("/login/send-otp", h.SendLoginOTP)
		authGroup.POST("/login/verify", h.VerifyLogin)
	}
	return router, mailer
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSignupFlowOverHTTP(t *testing.T) {
	router, mailer := newTestRouter(t)

	// Username is available
	w := postJSON(t, router, "/api/v1/auth/check-username", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)

	// Request a code
	w = postJSON(t, router, "/api/v1/auth/signup/send-otp", gin.H{
		"email": "a@b.com", "username": "alice",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mailer.last)

	// Wrong code is a 400
	w = postJSON(t, router, "/api/v1/auth/signup/verify", gin.H{
		"email": "a@b.com", "otp": "000000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid OTP")

	// Correct code yields a token and the username
	w = postJSON(t, router, "/api/v1/auth/signup/verify", gin.H{
		"email": "a@b.com", "otp": mailer.last.Code,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Success bool `json:"success"`
		Data    struct {
			Token    string `json:"token"`
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "alice", res.Data.Username)
	assert.Len(t, res.Data.Token, 64)

	// Username is claimed now
	w = postJSON(t, router, "/api/v1/auth/check-username", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)

	// And a second signup with it conflicts
	w = postJSON(t, router, "/api/v1/auth/signup/send-otp", gin.H{
		"email": "other@b.com", "username": "alice",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendOTPValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"bad email", gin.H{"email": "nope", "username": "alice"}},
		{"short username", gin.H{"email": "a@b.com", "username": "ab"}},
		{"bad username chars", gin.H{"email": "a@b.com", "username": "al!ce"}},
		{"missing fields", gin.H{}},
	}
	for _, tc := range cases {
		w := postJSON(t, router, "/api/v1/auth/signup/send-otp", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.name)
	}
}

func TestLoginOverHTTP(t *testing.T) {
	router, mailer := newTestRouter(t)

	// Login for an unregistered email
	w := postJSON(t, router, "/api/v1/auth/login/send-otp", gin.H{"email": "a@b.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Register first
	w = postJSON(t, router, "/api/v1/auth/signup/send-otp", gin.H{
		"email": "a@b.com", "username": "alice",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, router, "/api/v1/auth/signup/verify", gin.H{
		"email": "a@b.com", "otp": mailer.last.Code,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Then log in
	w = postJSON(t, router, "/api/v1/auth/login/send-otp", gin.H{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/api/v1/auth/login/verify", gin.H{
		"email": "a@b.com", "otp": mailer.last.Code,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("%q", "alice"))

	// Verifying again replays a consumed code
	w = postJSON(t, router, "/api/v1/auth/login/verify", gin.H{
		"email": "a@b.com", "otp": mailer.last.Code,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No pending verification request")
}
