package dto

import (
	"time"

	"github.com/google/uuid"
)

// InboundMessage is what a websocket client sends.
type InboundMessage struct {
	Content string `json:"content" validate:"required"`
}

// MessageResponse is the broadcast and history row shape.
type MessageResponse struct {
	MessageID  uuid.UUID `json:"message_id"`
	TeamID     uuid.UUID `json:"team_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}
