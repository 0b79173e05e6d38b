// internal/models/conversation.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationChannel string
type ConversationStatus string

const (
	ChannelWeb      ConversationChannel = "web"
	ChannelWhatsApp ConversationChannel = "whatsapp"
	ChannelVoice    ConversationChannel = "voice"
	ChannelSMS      ConversationChannel = "sms"

	ConversationActive    ConversationStatus = "active"
	ConversationClosed    ConversationStatus = "closed"
	ConversationEscalated ConversationStatus = "escalated"
)

// Conversation groups an append-only ordered list of Messages.
type Conversation struct {
	ID         uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CustomerID *uuid.UUID          `json:"customer_id" gorm:"type:uuid;index"`
	Channel    ConversationChannel `json:"channel" gorm:"type:varchar(20);not null;default:'web'"`
	Status     ConversationStatus  `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `json:"-" gorm:"index"`

	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
