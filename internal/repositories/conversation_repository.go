// internal/repositories/conversation_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// ConversationRepository implements interfaces.ConversationRepositoryInterface.
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) interfaces.ConversationRepositoryInterface {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) GetOrCreate(ctx context.Context, conversationID *uuid.UUID, customerID *uuid.UUID, channel models.ConversationChannel) (*models.Conversation, error) {
	if conversationID != nil {
		var conv models.Conversation
		if err := r.db.WithContext(ctx).Where("id = ?", *conversationID).First(&conv).Error; err == nil {
			return &conv, nil
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	conv := &models.Conversation{
		CustomerID: customerID,
		Channel:    channel,
		Status:     models.ConversationActive,
	}
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *ConversationRepository) AppendMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *ConversationRepository) RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// reverse to chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
