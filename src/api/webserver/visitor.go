package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/siiddhantt/ai-chat-assistant/src/api/data"
	"gorm.io/gorm"
)

// Visitor serves the cross-tenant endpoints keyed by the anonymous
// visitor id the widget generates client-side.
type Visitor struct {
	db *gorm.DB
}

func NewVisitor(db *gorm.DB) Visitor {
	return Visitor{db: db}
}

func (h Visitor) Conversations(c *gin.Context) {
	visitorID := c.Query("visitorId")
	if visitorID == "" {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_VISITOR_ID", "Visitor ID is required"))
		return
	}

	convs, err := data.Conversations{DB: h.db}.FindByVisitorAcrossTenants(visitorID, 5)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

func (h Visitor) DeleteConversation(c *gin.Context) {
	visitorID := c.Query("visitorId")
	if visitorID == "" {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_VISITOR_ID", "Visitor ID is required"))
		return
	}

	deleted, err := data.Conversations{DB: h.db}.DeleteByVisitor(c.Param("conversationId"), visitorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, apperr.New(http.StatusNotFound, "CONVERSATION_NOT_FOUND", "Conversation not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
