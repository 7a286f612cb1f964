package webserver

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/siiddhantt/ai-chat-assistant/src/api/ai"
	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/siiddhantt/ai-chat-assistant/src/api/data"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

const (
	maxMessageLen   = 5000
	chatRateLimit   = 10
	chatRateWindow  = time.Minute
	chatMaxTokens   = 1000
	chatTemperature = 0.7
)

// PublicChat serves the widget-facing endpoints: tenant resolved by slug,
// visitor identified by a client-generated id, no authentication.
type PublicChat struct {
	db        *gorm.DB
	rdb       *redis.Client
	llm       *ai.Service
	sanitizer *bluemonday.Policy
}

func NewPublicChat(db *gorm.DB, rdb *redis.Client, llm *ai.Service) PublicChat {
	return PublicChat{
		db:        db,
		rdb:       rdb,
		llm:       llm,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (h PublicChat) cleanMessage(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apperr.New(http.StatusBadRequest, "EMPTY_MESSAGE", "Message cannot be empty")
	}
	if len(trimmed) > maxMessageLen {
		return "", apperr.New(http.StatusBadRequest, "MESSAGE_TOO_LONG",
			"Message exceeds maximum length of 5000 characters")
	}
	if !utf8.ValidString(trimmed) {
		return "", apperr.New(http.StatusBadRequest, "INVALID_MESSAGE", "Invalid characters in message")
	}
	cleaned := strings.TrimSpace(h.sanitizer.Sanitize(trimmed))
	if cleaned == "" {
		return "", apperr.New(http.StatusBadRequest, "EMPTY_MESSAGE", "Message cannot be empty")
	}
	return cleaned, nil
}

func (h PublicChat) Message(c *gin.Context) {
	var req struct {
		VisitorID      string `json:"visitorId" binding:"required"`
		Message        string `json:"message" binding:"required"`
		ConversationID string `json:"conversationId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_FIELDS", "Visitor ID and message are required"))
		return
	}

	text, err := h.cleanMessage(req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	tenants := data.Tenants{DB: h.db}
	tenant, err := tenants.FindBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if tenant == nil {
		respondError(c, apperr.New(http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found"))
		return
	}

	customers := data.Customers{DB: h.db}
	customer, err := customers.FindOrCreate(tenant.ID, req.VisitorID)
	if err != nil {
		respondError(c, err)
		return
	}

	conversations := data.Conversations{DB: h.db}
	var conv *types.Conversation
	isNew := false

	if req.ConversationID != "" {
		conv, err = conversations.Get(req.ConversationID)
		if err != nil {
			respondError(c, err)
			return
		}
		if conv == nil {
			respondError(c, apperr.New(http.StatusNotFound, "CONVERSATION_NOT_FOUND", "Conversation not found"))
			return
		}
		if conv.TenantID == nil || *conv.TenantID != tenant.ID ||
			conv.CustomerID == nil || *conv.CustomerID != customer.ID {
			respondError(c, apperr.New(http.StatusForbidden, "FORBIDDEN", "Access denied"))
			return
		}
	} else {
		conv, err = conversations.FindActive(tenant.ID, customer.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if conv == nil {
			conv = &types.Conversation{
				TenantID:   &tenant.ID,
				CustomerID: &customer.ID,
				IsLead:     true,
			}
			if err := conversations.Create(conv); err != nil {
				respondError(c, err)
				return
			}
			isNew = true
		}
	}

	if !data.CheckRateLimit(c, h.rdb, tenant.ID+":"+customer.ID, chatRateLimit, chatRateWindow) {
		respondError(c, apperr.New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
			"Too many messages. Please wait a moment before sending another message."))
		return
	}

	messages := data.Messages{DB: h.db}
	if _, err := messages.Create(conv.ID, types.SenderUser, text); err != nil {
		respondError(c, err)
		return
	}

	history, err := messages.ListByConversation(conv.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	reply, err := h.llm.GenerateReply(c, history, text, ai.Options{
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
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

	view := aiMsg.View()
	view.ProposedActions = reply.ProposedActions

	resp := gin.H{
		"message":         view,
		"conversationId":  conv.ID,
		"proposedActions": reply.ProposedActions,
	}
	if isNew {
		resp["isNewConversation"] = true
	}
	if len(reply.ToolCalls) > 0 {
		calls := make([]gin.H, 0, len(reply.ToolCalls))
		for _, tc := range reply.ToolCalls {
			calls = append(calls, gin.H{"name": tc.Name, "arguments": tc.Arguments})
		}
		resp["toolCalls"] = calls
	}
	c.JSON(http.StatusOK, resp)
}

func (h PublicChat) History(c *gin.Context) {
	visitorID := c.Query("visitorId")
	if visitorID == "" {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_VISITOR_ID", "Visitor ID is required"))
		return
	}

	tenant, err := data.Tenants{DB: h.db}.FindBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if tenant == nil {
		respondError(c, apperr.New(http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found"))
		return
	}

	customer, err := data.Customers{DB: h.db}.FindByVisitor(tenant.ID, visitorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		respondError(c, apperr.New(http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found"))
		return
	}

	conv, err := data.Conversations{DB: h.db}.Get(c.Param("conversationId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if conv == nil {
		respondError(c, apperr.New(http.StatusNotFound, "CONVERSATION_NOT_FOUND", "Conversation not found"))
		return
	}
	if conv.TenantID == nil || *conv.TenantID != tenant.ID ||
		conv.CustomerID == nil || *conv.CustomerID != customer.ID {
		respondError(c, apperr.New(http.StatusForbidden, "FORBIDDEN", "Access denied"))
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

func (h PublicChat) Info(c *gin.Context) {
	tenant, err := data.Tenants{DB: h.db}.FindBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if tenant == nil {
		respondError(c, apperr.New(http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found"))
		return
	}
	settings := data.Settings(tenant)
	c.JSON(http.StatusOK, gin.H{
		"name":           tenant.Name,
		"slug":           tenant.Slug,
		"welcomeMessage": settings.WelcomeMessage,
		"brandColor":     settings.BrandColor,
	})
}

func (h PublicChat) Conversations(c *gin.Context) {
	visitorID := c.Query("visitorId")
	if visitorID == "" {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_VISITOR_ID", "Visitor ID is required"))
		return
	}

	tenant, err := data.Tenants{DB: h.db}.FindBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if tenant == nil {
		respondError(c, apperr.New(http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found"))
		return
	}

	customer, err := data.Customers{DB: h.db}.FindByVisitor(tenant.ID, visitorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		c.JSON(http.StatusOK, gin.H{"conversations": []gin.H{}})
		return
	}

	convs, err := data.Conversations{DB: h.db}.FindByCustomer(customer.ID)
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
