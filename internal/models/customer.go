// internal/models/customer.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is deduplicated on non-empty email first, then non-empty phone.
type Customer struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string         `json:"name" gorm:"size:200"`
	Email     string         `json:"email" gorm:"size:200;index"`
	Phone     string         `json:"phone" gorm:"size:50;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasIdentity reports whether at least one of name/email/phone is set, the
// minimum required on first insert.
func (c *Customer) HasIdentity() bool {
	return c.Name != "" || c.Email != "" || c.Phone != ""
}
