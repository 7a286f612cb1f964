package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
)

const tokenTTL = 7 * 24 * time.Hour

// Context keys set by JWTMiddleware.
const (
	ctxUserID   = "userID"
	ctxTenantID = "tenantID"
	ctxRole     = "role"
)

func issueJWT(secret []byte, userID, tenantID, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	}
	if tenantID != "" {
		claims["tenantId"] = tenantID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			abortError(c, apperr.New(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required"))
			return
		}
		tok, err := jwt.Parse(h[7:], func(t *jwt.Token) (interface{}, error) { return secret, nil },
			jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !tok.Valid {
			abortError(c, apperr.New(http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token"))
			return
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			abortError(c, apperr.New(http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token"))
			return
		}
		userID, _ := claims["userId"].(string)
		if userID == "" {
			abortError(c, apperr.New(http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token payload"))
			return
		}
		c.Set(ctxUserID, userID)
		if tenantID, _ := claims["tenantId"].(string); tenantID != "" {
			c.Set(ctxTenantID, tenantID)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Set(ctxRole, role)
		}
		c.Next()
	}
}
