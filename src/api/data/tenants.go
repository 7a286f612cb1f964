package data

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

type Tenants struct {
	DB *gorm.DB
}

func (r Tenants) FindByID(id string) (*types.Tenant, error) {
	var t types.Tenant
	err := r.DB.First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r Tenants) FindBySlug(slug string) (*types.Tenant, error) {
	var t types.Tenant
	err := r.DB.First(&t, "slug = ?", strings.ToLower(slug)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r Tenants) FindByOwner(ownerID string) (*types.Tenant, error) {
	var t types.Tenant
	err := r.DB.First(&t, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r Tenants) Create(t *types.Tenant, settings types.TenantSettings) error {
	t.Slug = strings.ToLower(t.Slug)
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	t.Settings = string(raw)
	return r.DB.Create(t).Error
}

// Settings decodes the tenant's settings JSON; malformed or empty settings
// decode to the zero value.
func Settings(t *types.Tenant) types.TenantSettings {
	var s types.TenantSettings
	if t.Settings != "" {
		_ = json.Unmarshal([]byte(t.Settings), &s)
	}
	return s
}
