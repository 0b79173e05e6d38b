// internal/repositories/cabin_repository.go
package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// CabinRepository implements interfaces.CabinRepositoryInterface.
type CabinRepository struct {
	db *gorm.DB
}

func NewCabinRepository(db *gorm.DB) interfaces.CabinRepositoryInterface {
	return &CabinRepository{db: db}
}

func (r *CabinRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Cabin, error) {
	var cabin models.Cabin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cabin).Error; err != nil {
		return nil, err
	}
	return &cabin, nil
}

func (r *CabinRepository) GetByShortCode(ctx context.Context, shortCode string) (*models.Cabin, error) {
	var cabin models.Cabin
	err := r.db.WithContext(ctx).
		Where("UPPER(short_code) = UPPER(?)", strings.TrimSpace(shortCode)).
		First(&cabin).Error
	if err != nil {
		return nil, err
	}
	return &cabin, nil
}

func (r *CabinRepository) GetByName(ctx context.Context, name string) (*models.Cabin, error) {
	var cabin models.Cabin
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&cabin).Error
	if err != nil {
		return nil, err
	}
	return &cabin, nil
}

func (r *CabinRepository) GetByCalendarRefSuffix(ctx context.Context, suffix string) (*models.Cabin, error) {
	var cabin models.Cabin
	err := r.db.WithContext(ctx).
		Where("calendar_ref LIKE ?", "%"+suffix).
		First(&cabin).Error
	if err != nil {
		return nil, err
	}
	return &cabin, nil
}

func (r *CabinRepository) List(ctx context.Context) ([]*models.Cabin, error) {
	var cabins []*models.Cabin
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cabins).Error; err != nil {
		return nil, err
	}
	return cabins, nil
}
