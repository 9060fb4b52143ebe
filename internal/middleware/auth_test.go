package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/config"
	"claimlens/internal/middleware"
	"claimlens/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(authSvc service.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(authSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": middleware.GetEmail(c)})
	})
	return r
}

func newTestAuthService() service.AuthService {
	return service.NewAuthService(
		config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: time.Hour,
			Issuer:             "claimlens-test",
		},
		config.AuthConfig{
			Email:    "operator@example.com",
			Password: "correct-horse",
		},
	)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authSvc := newTestAuthService()
	r := newTestRouter(authSvc)

	pair, err := authSvc.Login(service.LoginInput{
		Email:    "operator@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operator@example.com")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newTestRouter(newTestAuthService())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := newTestRouter(newTestAuthService())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := newTestRouter(newTestAuthService())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
