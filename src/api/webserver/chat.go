package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siiddhantt/ai-chat-assistant/src/api/ai"
	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/siiddhantt/ai-chat-assistant/src/api/data"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

// Chat serves the internal (tenant-less) chat endpoints used by the
// standalone assistant UI. Conversations here have no tenant or customer.
type Chat struct {
	db  *gorm.DB
	llm *ai.Service
}

func NewChat(db *gorm.DB, llm *ai.Service) Chat {
	return Chat{db: db, llm: llm}
}

func (h Chat) Message(c *gin.Context) {
	var req struct {
		Message        string `json:"message" binding:"required"`
		ConversationID string `json:"conversationId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_FIELDS", "Message is required"))
		return
	}

	conversations := data.Conversations{DB: h.db}
	var conv *types.Conversation
	if req.ConversationID != "" {
		found, err := conversations.Get(req.ConversationID)
		if err != nil {
			respondError(c, err)
			return
		}
		if found == nil {
			respondError(c, apperr.New(http.StatusNotFound, "CONVERSATION_NOT_FOUND", "Conversation not found"))
			return
		}
		conv = found
	} else {
		conv = &types.Conversation{}
		if err := conversations.Create(conv); err != nil {
			respondError(c, err)
			return
		}
	}

	messages := data.Messages{DB: h.db}
	if _, err := messages.Create(conv.ID, types.SenderUser, req.Message); err != nil {
		respondError(c, err)
		return
	}

	history, err := messages.ListByConversation(conv.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	reply, err := h.llm.GenerateReply(c, history, req.Message, ai.Options{MaxTokens: 500})
	if err != nil {
		if _, ok := apperr.As(err); ok {
			respondError(c, err)
			return
		}
		respondError(c, apperr.New(http.StatusInternalServerError, "LLM_GENERATION_FAILED",
			"Failed to generate response from AI"))
		return
	}

	aiMsg, err := messages.Create(conv.ID, types.SenderAI, reply.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = conversations.Touch(conv.ID)

	c.JSON(http.StatusOK, gin.H{
		"message":        aiMsg.View(),
		"conversationId": conv.ID,
	})
}

func (h Chat) History(c *gin.Context) {
	conv, err := data.Conversations{DB: h.db}.Get(c.Param("conversationId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if conv == nil {
		respondError(c, apperr.New(http.StatusNotFound, "CONVERSATION_NOT_FOUND", "Conversation not found"))
		return
	}

	msgs, err := data.Messages{DB: h.db}.ListByConversation(conv.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]types.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, m.View())
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}

func (h Chat) Conversations(c *gin.Context) {
	convs, err := data.Conversations{DB: h.db}.ListRecent(50)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(convs))
	for _, conv := range convs {
		out = append(out, gin.H{
			"id":        conv.ID,
			"createdAt": conv.CreatedAt.UTC().Format(time.RFC3339),
			"updatedAt": conv.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

func (h Chat) Delete(c *gin.Context) {
	conversations := data.Conversations{DB: h.db}
	conv, err := conversations.Get(c.Param("conversationId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if conv == nil {
		respondError(c, apperr.New(http.StatusNotFound, "CONVERSATION_NOT_FOUND", "Conversation not found"))
		return
	}
	if err := conversations.Delete(conv.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
