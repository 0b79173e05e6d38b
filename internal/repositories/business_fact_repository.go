// internal/repositories/business_fact_repository.go
package repositories

import (
	"context"

	"gorm.io/gorm"

	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// BusinessFactRepository implements interfaces.BusinessFactRepositoryInterface.
type BusinessFactRepository struct {
	db *gorm.DB
}

func NewBusinessFactRepository(db *gorm.DB) interfaces.BusinessFactRepositoryInterface {
	return &BusinessFactRepository{db: db}
}

func (r *BusinessFactRepository) GetByKey(ctx context.Context, key string) (*models.BusinessFact, error) {
	var fact models.BusinessFact
	if err := r.db.WithContext(ctx).Where("fact_key = ? AND is_active = ?", key, true).First(&fact).Error; err != nil {
		return nil, err
	}
	return &fact, nil
}

func (r *BusinessFactRepository) ListActive(ctx context.Context) ([]*models.BusinessFact, error) {
	var facts []*models.BusinessFact
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&facts).Error; err != nil {
		return nil, err
	}
	return facts, nil
}

func (r *BusinessFactRepository) ListAll(ctx context.Context, category string) ([]*models.BusinessFact, error) {
	query := r.db.WithContext(ctx).Order("category, fact_key")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var facts []*models.BusinessFact
	if err := query.Find(&facts).Error; err != nil {
		return nil, err
	}
	return facts, nil
}

// Upsert creates the fact if FactKey is new, otherwise updates its value,
// category, description, and reactivates it.
func (r *BusinessFactRepository) Upsert(ctx context.Context, fact *models.BusinessFact) (*models.BusinessFact, error) {
	var existing models.BusinessFact
	err := r.db.WithContext(ctx).Where("fact_key = ?", fact.FactKey).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"fact_value":  fact.FactValue,
			"category":    fact.Category,
			"description": fact.Description,
			"is_active":   true,
		}
		if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return r.GetByKey(ctx, fact.FactKey)
	case err == gorm.ErrRecordNotFound:
		fact.IsActive = true
		if err := r.db.WithContext(ctx).Create(fact).Error; err != nil {
			return nil, err
		}
		return fact, nil
	default:
		return nil, err
	}
}

func (r *BusinessFactRepository) Deactivate(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Model(&models.BusinessFact{}).Where("fact_key = ?", key).Update("is_active", false).Error
}
