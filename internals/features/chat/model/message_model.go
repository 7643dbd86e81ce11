package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageModel struct {
	MessageID uuid.UUID `json:"message_id" gorm:"column:message_id;type:uuid;primaryKey"`

	MessageTeamID   uuid.UUID `json:"message_team_id" gorm:"column:message_team_id;type:uuid;not null;index"`
	MessageSenderID uuid.UUID `json:"message_sender_id" gorm:"column:message_sender_id;type:uuid;not null"`
	MessageContent  string    `json:"message_content" gorm:"column:message_content;type:text;not null"`

	MessageCreatedAt time.Time `json:"message_created_at" gorm:"column:message_created_at;autoCreateTime;index"`
}

func (MessageModel) TableName() string {
	return "messages"
}

func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
