package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles stored on users.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Conversation statuses.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusResolved = "resolved"
)

// Message senders as persisted. The API speaks user/assistant; the "ai"
// sender maps to the assistant role.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

type User struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	Email         *string `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Phone         string  `gorm:"size:50" json:"-"`
	PasswordHash  string  `gorm:"size:255" json:"-"`
	Name          string  `gorm:"size:255" json:"name,omitempty"`
	Role          string  `gorm:"size:50;not null;default:customer" json:"role"`
	AuthProvider  string  `gorm:"size:50;not null;default:credentials" json:"-"`
	FingerprintID string  `gorm:"size:255;index" json:"-"`
	EmailVerified bool    `gorm:"default:false" json:"-"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Tenant struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string `gorm:"size:36;index;not null" json:"ownerId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Slug      string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Settings  string `gorm:"type:json" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Settings == "" {
		t.Settings = "{}"
	}
	return nil
}

// TenantSettings is the decoded shape of Tenant.Settings.
type TenantSettings struct {
	WelcomeMessage string `json:"welcomeMessage,omitempty"`
	BrandColor     string `json:"brandColor,omitempty"`
	BusinessHours  string `json:"businessHours,omitempty"`
}

type Customer struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	TenantID  string  `gorm:"size:36;uniqueIndex:idx_tenant_visitor;not null" json:"tenantId"`
	UserID    *string `gorm:"size:36;index" json:"userId,omitempty"`
	VisitorID string  `gorm:"size:255;uniqueIndex:idx_tenant_visitor;not null" json:"visitorId"`
	Email     string  `gorm:"size:255" json:"email,omitempty"`
	Name      string  `gorm:"size:255" json:"name,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Conversation struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	TenantID        *string    `gorm:"size:36;index" json:"tenantId,omitempty"`
	CustomerID      *string    `gorm:"size:36;index" json:"customerId,omitempty"`
	Status          string     `gorm:"size:50;default:active" json:"status"`
	IsLead          bool       `gorm:"default:false" json:"isLead"`
	LeadConvertedAt *time.Time `json:"leadConvertedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Message struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string    `gorm:"size:36;index;not null" json:"conversationId"`
	Sender         string    `gorm:"size:50;not null" json:"-"`
	Text           string    `gorm:"type:text;not null" json:"-"`
	CreatedAt      time.Time `json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Role maps the persisted sender onto the API vocabulary.
func (m Message) Role() string {
	if m.Sender == SenderAI {
		return "assistant"
	}
	return "user"
}

// MessageView is the wire form of a Message.
type MessageView struct {
	ID              string   `json:"id"`
	ConversationID  string   `json:"conversationId"`
	Role            string   `json:"role"`
	Content         string   `json:"content"`
	Timestamp       string   `json:"timestamp"`
	ProposedActions []string `json:"proposedActions,omitempty"`
}

func (m Message) View() MessageView {
	return MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role(),
		Content:        m.Text,
		Timestamp:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
