package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func testToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  uint(1),
		"username": "admin",
		"role":     role,
		"exp":      now.Add(expiresIn).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func testRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/", AuthMiddleware(testSecret))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})

	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := testRouter()

	t.Run("missing header", func(t *testing.T) {
		w := get(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		w := get(router, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get(router, "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		w := get(router, "Bearer "+testToken(t, "admin", -time.Hour))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		w := get(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := get(router, "Bearer "+testToken(t, "admin", time.Hour))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin")
	})
}

func TestRequireRole(t *testing.T) {
	adminOnly := testRouter("admin")

	t.Run("matching role", func(t *testing.T) {
		w := get(adminOnly, "Bearer "+testToken(t, "admin", time.Hour))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("insufficient role", func(t *testing.T) {
		w := get(adminOnly, "Bearer "+testToken(t, "editor", time.Hour))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("any of several roles", func(t *testing.T) {
		either := testRouter("admin", "editor")
		w := get(either, "Bearer "+testToken(t, "editor", time.Hour))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
