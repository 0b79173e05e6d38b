// internal/repositories/customer_repository.go
package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// CustomerRepository implements interfaces.CustomerRepositoryInterface.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) interfaces.CustomerRepositoryInterface {
	return &CustomerRepository{db: db}
}

// UpsertByEmailOrPhone looks the customer up by email, then phone, updating
// whichever fields were supplied; if no match is found it creates a new
// customer row.
func (r *CustomerRepository) UpsertByEmailOrPhone(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	var existing models.Customer

	query := r.db.WithContext(ctx)
	found := false

	if customer.Email != "" {
		if err := query.Where("email = ?", customer.Email).First(&existing).Error; err == nil {
			found = true
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	if !found && customer.Phone != "" {
		if err := query.Where("phone = ?", customer.Phone).First(&existing).Error; err == nil {
			found = true
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	if found {
		updates := map[string]interface{}{}
		if customer.Name != "" {
			updates["name"] = customer.Name
		}
		if customer.Email != "" {
			updates["email"] = customer.Email
		}
		if customer.Phone != "" {
			updates["phone"] = customer.Phone
		}
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &existing, nil
	}

	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
