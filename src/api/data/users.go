package data

import (
	"errors"
	"strings"

	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

type Users struct {
	DB *gorm.DB
}

func (r Users) FindByID(id string) (*types.User, error) {
	var u types.User
	err := r.DB.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r Users) FindByEmail(email string) (*types.User, error) {
	var u types.User
	err := r.DB.First(&u, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r Users) Create(u *types.User) error {
	if u.Email != nil {
		lower := strings.ToLower(*u.Email)
		u.Email = &lower
	}
	return r.DB.Create(u).Error
}
