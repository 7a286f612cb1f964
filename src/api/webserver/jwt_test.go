package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func jwtTestRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", JWTMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   c.GetString(ctxUserID),
			"tenantId": c.GetString(ctxTenantID),
			"role":     c.GetString(ctxRole),
		})
	})
	return r
}

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := issueJWT(secret, "user-1", "tenant-1", "owner")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	jwtTestRouter(secret).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
	assert.Contains(t, w.Body.String(), `"tenantId":"tenant-1"`)
	assert.Contains(t, w.Body.String(), `"role":"owner"`)
}

func TestJWTTokenWithoutTenant(t *testing.T) {
	secret := []byte("test-secret")
	token, err := issueJWT(secret, "user-1", "", "customer")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	jwtTestRouter(secret).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tenantId":""`)
}

func TestJWTMissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	jwtTestRouter([]byte("s")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTWrongSecret(t *testing.T) {
	token, _ := issueJWT([]byte("other-secret"), "user-1", "", "customer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	jwtTestRouter([]byte("test-secret")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"userId": "user-1",
		"role":   "customer",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	jwtTestRouter(secret).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsMissingUserID(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"role": "customer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	jwtTestRouter(secret).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
