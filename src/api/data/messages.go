package data

import (
	"errors"

	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"gorm.io/gorm"
)

type Messages struct {
	DB *gorm.DB
}

func (r Messages) Create(conversationID, sender, text string) (*types.Message, error) {
	msg := types.Message{
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
	}
	if err := r.DB.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r Messages) ListByConversation(conversationID string) ([]types.Message, error) {
	var out []types.Message
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc").Find(&out).Error
	return out, err
}

func (r Messages) Last(conversationID string) (*types.Message, error) {
	var m types.Message
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at desc").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
