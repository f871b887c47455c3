package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-platform/internal/models"
	"blog-platform/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newAuthRouter собирает роутер с одним защищенным маршрутом,
// отдающим claims из контекста
func newAuthRouter(jwtManager *auth.JWTManager, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(jwtManager)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "user_id": claims.UserID.Hex()})
	})
	router.GET("/protected", chain...)
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := newAuthRouter(jwtManager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := newAuthRouter(jwtManager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := newAuthRouter(jwtManager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := newAuthRouter(jwtManager)

	userID := primitive.NewObjectID()
	token, err := jwtManager.GenerateToken(userID, "a@b.com", models.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.Hex())
}

func TestOptionalAuthMiddleware_Anonymous(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	router := gin.New()
	router.GET("/open", OptionalAuthMiddleware(jwtManager), func(c *gin.Context) {
		// Анонимный запрос проходит, claims нет
		assert.Nil(t, GetClaims(c))
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthMiddleware_WithToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	userID := primitive.NewObjectID()

	router := gin.New()
	router.GET("/open", OptionalAuthMiddleware(jwtManager), func(c *gin.Context) {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, userID, claims.UserID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	token, err := jwtManager.GenerateToken(userID, "a@b.com", models.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := newAuthRouter(jwtManager, AdminMiddleware())

	// Обычному пользователю — 403
	userToken, err := jwtManager.GenerateToken(primitive.NewObjectID(), "u@b.com", models.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Админу — 200
	adminToken, err := jwtManager.GenerateToken(primitive.NewObjectID(), "a@b.com", models.RoleAdmin)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
