package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpin/notify/internal/api/handlers"
	"github.com/trendpin/notify/internal/api/middleware"
	"github.com/trendpin/notify/internal/config"
	"github.com/trendpin/notify/internal/services"
)

func authRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupHandlerDB(t)
	cfg := config.Config{JWTSecret: "test-secret", Environment: "test"}
	authService := services.NewAuthService(db, cfg)
	handler := handlers.NewAuthHandler(authService, cfg)

	router := gin.New()
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/register", handler.Register)
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(authService))
	protected.POST("/auth/logout", handler.Logout)
	protected.GET("/auth/me", handler.Me)
	return router
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	router := authRouter(t)

	w := doJSON(t, router, "POST", "/auth/register", map[string]string{
		"email": "admin@example.com", "password": "password123", "name": "Admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
	assert.NotContains(t, w.Body.String(), "password123")

	w = doJSON(t, router, "POST", "/auth/login", map[string]string{
		"email": "admin@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	// The login response also sets the auth cookie.
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "auth_token" && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "auth_token cookie must be set")
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	router := authRouter(t)

	w := doJSON(t, router, "POST", "/auth/register", map[string]string{
		"email": "admin@example.com", "password": "password123", "name": "Admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/auth/login", map[string]string{
		"email": "admin@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Short password fails validation before the service sees it.
	w = doJSON(t, router, "POST", "/auth/register", map[string]string{
		"email": "x@example.com", "password": "short", "name": "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	router := authRouter(t)

	w := doJSON(t, router, "POST", "/auth/register", map[string]string{
		"email": "admin@example.com", "password": "password123", "name": "Admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/auth/login", map[string]string{
		"email": "admin@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	req, _ := http.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@example.com")

	// Unauthenticated.
	req, _ = http.NewRequest("GET", "/auth/me", nil)
	rec = doRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
