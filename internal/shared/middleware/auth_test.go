package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/pkg/jwt"
)

func newAuthRouter(manager *jwt.Manager, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/protected")
	group.Use(AuthMiddleware(manager))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_name": ident.UserName, "role": ident.Role})
	})

	return router
}

func doGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(manager)

	token, err := manager.Generate(7, "jdoe", auth.RoleEditor)
	require.NoError(t, err)

	rec := doGet(router, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_name":"jdoe"`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newAuthRouter(jwt.NewManager("test-secret", time.Hour))

	rec := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newAuthRouter(jwt.NewManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := jwt.NewManager("test-secret", -time.Minute)
	router := newAuthRouter(jwt.NewManager("test-secret", time.Hour))

	token, err := expired.Generate(7, "jdoe", auth.RoleEditor)
	require.NoError(t, err)

	rec := doGet(router, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	other := jwt.NewManager("other-secret", time.Hour)
	router := newAuthRouter(jwt.NewManager("test-secret", time.Hour))

	token, err := other.Generate(7, "jdoe", auth.RoleEditor)
	require.NoError(t, err)

	rec := doGet(router, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"moderator allowed", auth.RoleModerator, []string{auth.RoleModerator, auth.RoleAdmin}, http.StatusOK},
		{"admin allowed", auth.RoleAdmin, []string{auth.RoleModerator, auth.RoleAdmin}, http.StatusOK},
		{"editor rejected", auth.RoleEditor, []string{auth.RoleModerator, auth.RoleAdmin}, http.StatusForbidden},
		{"admin only", auth.RoleModerator, []string{auth.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(manager, tt.allowed...)

			token, err := manager.Generate(7, "jdoe", tt.role)
			require.NoError(t, err)

			rec := doGet(router, token)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
