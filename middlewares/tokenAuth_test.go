package middlewares

import (
	"GestionClinique/models"
	"GestionClinique/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAuthMiddleware(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	gin.SetMode(gin.TestMode)

	var actorID *uint
	router := gin.New()
	router.GET("/ping", TokenAuthMiddleware(), func(c *gin.Context) {
		actorID = utils.ActorIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping?accessToken=not-a-token", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stores the authenticated user for audit attribution", func(t *testing.T) {
		access, _, err := utils.GenerateTokens(42, models.RoleMedecin)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping?accessToken="+access, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, actorID)
		assert.Equal(t, uint(42), *actorID)
	})
}

func TestRoleAuthMiddleware(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin", TokenAuthMiddleware(), RoleAuthMiddleware(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("forbids a token with the wrong role", func(t *testing.T) {
		access, _, err := utils.GenerateTokens(7, models.RoleMedecin)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin?accessToken="+access, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admits the allowed role", func(t *testing.T) {
		access, _, err := utils.GenerateTokens(1, models.RoleAdmin)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin?accessToken="+access, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
