// internal/models/business_fact.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessFact is a single piece of operator-maintained knowledge (check-in
// time, cancellation policy, wifi password, ...) that the agent can quote
// verbatim when a customer asks about it.
type BusinessFact struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FactKey     string    `json:"fact_key" gorm:"size:100;uniqueIndex;not null"`
	FactValue   string    `json:"fact_value" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"size:50;index"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (BusinessFact) TableName() string {
	return "business_facts"
}

func (b *BusinessFact) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
