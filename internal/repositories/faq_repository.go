// internal/repositories/faq_repository.go
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// FAQRepository implements interfaces.FAQRepositoryInterface.
type FAQRepository struct {
	db *gorm.DB
}

func NewFAQRepository(db *gorm.DB) interfaces.FAQRepositoryInterface {
	return &FAQRepository{db: db}
}

func (r *FAQRepository) ListApproved(ctx context.Context) ([]*models.FAQ, error) {
	var faqs []*models.FAQ
	if err := r.db.WithContext(ctx).Where("approved = ?", true).Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *FAQRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.FAQ{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}

func (r *FAQRepository) SuggestAnswer(ctx context.Context, faq *models.FAQ) error {
	faq.Approved = false
	now := time.Now().UTC()
	faq.SuggestedAnswer = faq.Answer
	faq.CreatedAt = now
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *FAQRepository) ListPending(ctx context.Context) ([]*models.FAQ, error) {
	var faqs []*models.FAQ
	if err := r.db.WithContext(ctx).Where("approved = ?", false).Order("created_at DESC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *FAQRepository) ListAll(ctx context.Context) ([]*models.FAQ, error) {
	var faqs []*models.FAQ
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *FAQRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	var faq models.FAQ
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

// Approve flips approved and, when question/answer are non-empty, lets the
// reviewer edit the suggestion before it goes live.
func (r *FAQRepository) Approve(ctx context.Context, id uuid.UUID, approved bool, question, answer string) (*models.FAQ, error) {
	updates := map[string]interface{}{"approved": approved}
	now := time.Now().UTC()
	if approved {
		updates["approved_at"] = &now
	}
	if question != "" {
		updates["question"] = question
	}
	if answer != "" {
		updates["answer"] = answer
	}
	if err := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *FAQRepository) Update(ctx context.Context, id uuid.UUID, question, answer string) (*models.FAQ, error) {
	updates := map[string]interface{}{}
	if question != "" {
		updates["question"] = question
	}
	if answer != "" {
		updates["answer"] = answer
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *FAQRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FAQ{}).Error
}
