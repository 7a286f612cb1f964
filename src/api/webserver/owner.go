package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/siiddhantt/ai-chat-assistant/src/api/data"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

// Owner serves the business console: everything here is scoped to the
// tenant carried in the caller's token.
type Owner struct {
	db *gorm.DB
}

func NewOwner(db *gorm.DB) Owner {
	return Owner{db: db}
}

// requireOwner extracts the tenant for an owner/admin caller or aborts.
func requireOwner(c *gin.Context) (string, bool) {
	role := c.GetString(ctxRole)
	if role != types.RoleOwner && role != types.RoleAdmin {
		abortError(c, apperr.New(http.StatusForbidden, "FORBIDDEN", "Owner access required"))
		return "", false
	}
	tenantID := c.GetString(ctxTenantID)
	if tenantID == "" {
		abortError(c, apperr.New(http.StatusForbidden, "NO_TENANT", "No business associated with this account"))
		return "", false
	}
	return tenantID, true
}

func conversationPayload(conv *types.Conversation) gin.H {
	out := gin.H{
		"id":        conv.ID,
		"status":    conv.Status,
		"isLead":    conv.IsLead,
		"createdAt": conv.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt": conv.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if conv.LeadConvertedAt != nil {
		out["leadConvertedAt"] = conv.LeadConvertedAt.UTC().Format(time.RFC3339)
	}
	if conv.Customer != nil {
		out["customer"] = gin.H{
			"id":        conv.Customer.ID,
			"visitorId": conv.Customer.VisitorID,
			"name":      conv.Customer.Name,
			"email":     conv.Customer.Email,
		}
	}
	return out
}

func (h Owner) listConversations(c *gin.Context, f data.ConversationFilters) {
	tenantID, ok := requireOwner(c)
	if !ok {
		return
	}

	convs, total, err := data.Conversations{DB: h.db}.ListByTenant(tenantID, f)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(convs))
	for i := range convs {
		out = append(out, conversationPayload(&convs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out, "total": total})
}

func (h Owner) Conversations(c *gin.Context) {
	f := data.ConversationFilters{Status: c.Query("status")}
	if v := c.Query("isLead"); v != "" {
		isLead := v == "true"
		f.IsLead = &isLead
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))
	h.listConversations(c, f)
}

func (h Owner) Leads(c *gin.Context) {
	isLead := true
	h.listConversations(c, data.ConversationFilters{
		Status: types.StatusActive,
		IsLead: &isLead,
	})
}

// tenantConversation fetches a conversation and verifies tenant ownership.
func (h Owner) tenantConversation(c *gin.Context, tenantID string) (*types.Conversation, bool) {
	conv, err := data.Conversations{DB: h.db}.GetWithCustomer(c.Param("conversationId"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if conv == nil || conv.TenantID == nil || *conv.TenantID != tenantID {
		respondError(c, apperr.New(http.StatusNotFound, "CONVERSATION_NOT_FOUND", "Conversation not found"))
		return nil, false
	}
	return conv, true
}

func (h Owner) ConversationDetails(c *gin.Context) {
	tenantID, ok := requireOwner(c)
	if !ok {
		return
	}
	conv, ok := h.tenantConversation(c, tenantID)
	if !ok {
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
	c.JSON(http.StatusOK, gin.H{
		"conversation": conversationPayload(conv),
		"messages":     views,
	})
}

func (h Owner) UpdateStatus(c *gin.Context) {
	tenantID, ok := requireOwner(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_FIELDS", "Status is required"))
		return
	}
	switch req.Status {
	case types.StatusActive, types.StatusArchived, types.StatusResolved:
	default:
		respondError(c, apperr.New(http.StatusBadRequest, "INVALID_STATUS",
			"Status must be one of: active, archived, resolved"))
		return
	}

	conv, ok := h.tenantConversation(c, tenantID)
	if !ok {
		return
	}

	updated, err := data.Conversations{DB: h.db}.UpdateStatus(conv.ID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conversationPayload(updated)})
}

func (h Owner) ConvertLead(c *gin.Context) {
	tenantID, ok := requireOwner(c)
	if !ok {
		return
	}
	conv, ok := h.tenantConversation(c, tenantID)
	if !ok {
		return
	}
	if !conv.IsLead {
		respondError(c, apperr.New(http.StatusBadRequest, "NOT_A_LEAD", "Conversation is not a lead"))
		return
	}

	updated, err := data.Conversations{DB: h.db}.ConvertLead(conv.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conversationPayload(updated)})
}

func (h Owner) DashboardStats(c *gin.Context) {
	tenantID, ok := requireOwner(c)
	if !ok {
		return
	}

	conversations := data.Conversations{DB: h.db}
	stats, err := conversations.StatsByTenant(tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	recent, _, err := conversations.ListByTenant(tenantID, data.ConversationFilters{Limit: 10})
	if err != nil {
		respondError(c, err)
		return
	}
	messages := data.Messages{DB: h.db}
	activity := make([]gin.H, 0, len(recent))
	for i := range recent {
		entry := conversationPayload(&recent[i])
		last, err := messages.Last(recent[i].ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if last != nil {
			entry["lastMessage"] = last.View()
		}
		activity = append(activity, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"recentActivity": activity,
	})
}
