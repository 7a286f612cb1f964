package webserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
)

// respondError maps a service error onto its status/code pair; anything
// untyped is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	if e, ok := apperr.As(err); ok {
		c.JSON(e.Status, gin.H{"error": e.Message, "code": e.Code})
		return
	}
	log.Printf("unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "INTERNAL_ERROR"})
}

func abortError(c *gin.Context, err error) {
	respondError(c, err)
	c.Abort()
}
