package data

import (
	"errors"

	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

type Customers struct {
	DB *gorm.DB
}

func (r Customers) FindByVisitor(tenantID, visitorID string) (*types.Customer, error) {
	var c types.Customer
	err := r.DB.First(&c, "tenant_id = ? AND visitor_id = ?", tenantID, visitorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r Customers) FindOrCreate(tenantID, visitorID string) (*types.Customer, error) {
	var c types.Customer
	err := r.DB.Where(types.Customer{TenantID: tenantID, VisitorID: visitorID}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r Customers) CountByUser(userID string) (int64, error) {
	var n int64
	err := r.DB.Model(&types.Customer{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// LinkAllByVisitor attaches every unlinked customer record carrying the
// visitor fingerprint to the freshly registered user.
func (r Customers) LinkAllByVisitor(visitorID, userID string) error {
	return r.DB.Model(&types.Customer{}).
		Where("visitor_id = ? AND user_id IS NULL", visitorID).
		Update("user_id", userID).Error
}
