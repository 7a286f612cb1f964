package data

import (
	"errors"
	"time"

	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

type Conversations struct {
	DB *gorm.DB
}

// ConversationFilters narrows owner-side listings.
type ConversationFilters struct {
	Status string
	IsLead *bool
	Limit  int
	Offset int
}

// VisitorConversation is the cross-tenant listing row for a visitor.
type VisitorConversation struct {
	ID         string    `json:"id"`
	TenantSlug string    `json:"tenantSlug"`
	TenantName string    `json:"tenantName"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r Conversations) Create(conv *types.Conversation) error {
	if conv.Status == "" {
		conv.Status = types.StatusActive
	}
	return r.DB.Create(conv).Error
}

func (r Conversations) Get(id string) (*types.Conversation, error) {
	var c types.Conversation
	err := r.DB.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r Conversations) GetWithCustomer(id string) (*types.Conversation, error) {
	var c types.Conversation
	err := r.DB.Preload("Customer").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindActive returns the most recent active conversation between a tenant
// and a customer, if any.
func (r Conversations) FindActive(tenantID, customerID string) (*types.Conversation, error) {
	var c types.Conversation
	err := r.DB.
		Where("tenant_id = ? AND customer_id = ? AND status = ?", tenantID, customerID, types.StatusActive).
		Order("updated_at desc").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r Conversations) FindByCustomer(customerID string) ([]types.Conversation, error) {
	var out []types.Conversation
	err := r.DB.Where("customer_id = ?", customerID).Order("updated_at desc").Find(&out).Error
	return out, err
}

func (r Conversations) FindByVisitorAcrossTenants(visitorID string, limit int) ([]VisitorConversation, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []VisitorConversation
	err := r.DB.Model(&types.Conversation{}).
		Select("conversations.id, tenants.slug as tenant_slug, tenants.name as tenant_name, conversations.updated_at").
		Joins("INNER JOIN customers ON conversations.customer_id = customers.id").
		Joins("INNER JOIN tenants ON conversations.tenant_id = tenants.id").
		Where("customers.visitor_id = ? AND conversations.status = ?", visitorID, types.StatusActive).
		Order("conversations.updated_at desc").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r Conversations) ListByTenant(tenantID string, f ConversationFilters) ([]types.Conversation, int64, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.DB.Model(&types.Conversation{}).Where("conversations.tenant_id = ?", tenantID)
	if f.Status != "" {
		q = q.Where("conversations.status = ?", f.Status)
	}
	if f.IsLead != nil {
		q = q.Where("conversations.is_lead = ?", *f.IsLead)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []types.Conversation
	err := q.Preload("Customer").
		Order("conversations.updated_at desc").
		Limit(limit).Offset(f.Offset).
		Find(&out).Error
	return out, total, err
}

func (r Conversations) ListRecent(limit int) ([]types.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []types.Conversation
	err := r.DB.Order("updated_at desc").Limit(limit).Find(&out).Error
	return out, err
}

func (r Conversations) Touch(id string) error {
	return r.DB.Model(&types.Conversation{}).Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (r Conversations) UpdateStatus(id, status string) (*types.Conversation, error) {
	err := r.DB.Model(&types.Conversation{}).Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r Conversations) ConvertLead(id string) (*types.Conversation, error) {
	now := time.Now()
	err := r.DB.Model(&types.Conversation{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_lead": false, "lead_converted_at": now}).Error
	if err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r Conversations) Delete(id string) error {
	if err := r.DB.Delete(&types.Message{}, "conversation_id = ?", id).Error; err != nil {
		return err
	}
	return r.DB.Delete(&types.Conversation{}, "id = ?", id).Error
}

// DeleteByVisitor removes a conversation only when it belongs to the
// visitor; reports whether a row was deleted.
func (r Conversations) DeleteByVisitor(id, visitorID string) (bool, error) {
	var conv types.Conversation
	err := r.DB.
		Joins("INNER JOIN customers ON conversations.customer_id = customers.id").
		Where("conversations.id = ? AND customers.visitor_id = ?", id, visitorID).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := r.Delete(conv.ID); err != nil {
		return false, err
	}
	return true, nil
}

// TenantStats aggregates the owner dashboard counters.
type TenantStats struct {
	TotalConversations    int64 `json:"totalConversations"`
	ActiveLeads           int64 `json:"activeLeads"`
	ConvertedLeads        int64 `json:"convertedLeads"`
	ResolvedConversations int64 `json:"resolvedConversations"`
}

func (r Conversations) StatsByTenant(tenantID string) (TenantStats, error) {
	var s TenantStats
	base := func() *gorm.DB {
		return r.DB.Model(&types.Conversation{}).Where("tenant_id = ?", tenantID)
	}
	if err := base().Count(&s.TotalConversations).Error; err != nil {
		return s, err
	}
	if err := base().Where("is_lead = ? AND status = ?", true, types.StatusActive).Count(&s.ActiveLeads).Error; err != nil {
		return s, err
	}
	if err := base().Where("is_lead = ? AND lead_converted_at IS NOT NULL", false).Count(&s.ConvertedLeads).Error; err != nil {
		return s, err
	}
	err := base().Where("status = ?", types.StatusResolved).Count(&s.ResolvedConversations).Error
	return s, err
}
