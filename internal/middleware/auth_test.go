package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/protected", Auth(secret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuth_OpenWhenNoSecret(t *testing.T) {
	router := authTestRouter("")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/protected", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RejectsMissingToken(t *testing.T) {
	router := authTestRouter("secret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RejectsBadToken(t *testing.T) {
	router := authTestRouter("secret")

	req := httptest.NewRequest(http.MethodDelete, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RejectsTokenSignedWithWrongSecret(t *testing.T) {
	router := authTestRouter("secret")

	token, err := IssueToken("other-secret", jwt.MapClaims{"sub": "cli"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_AcceptsValidToken(t *testing.T) {
	router := authTestRouter("secret")

	token, err := IssueToken("secret", jwt.MapClaims{"sub": "cli"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
