// internal/repositories/booking_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// BookingRepository implements interfaces.BookingRepositoryInterface.
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) interfaces.BookingRepositoryInterface {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Cabin").Preload("Customer").Preload("Transactions").
		Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status).Error
}

func (r *BookingRepository) ListActiveForCabin(ctx context.Context, cabinID uuid.UUID) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("cabin_id = ? AND status != ?", cabinID, models.BookingStatusCancelled).
		Order("check_in_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) ListAll(ctx context.Context, statusFilter string) ([]*models.Booking, error) {
	query := r.db.WithContext(ctx).Preload("Cabin").Preload("Customer").Order("created_at DESC")
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}
	var bookings []*models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
