// internal/models/faq.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FAQ is a canned question/answer pair. Only Approved entries are served to
// end-users; unapproved entries are suggestions awaiting host review.
type FAQ struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Question        string     `json:"question" gorm:"type:text;not null"`
	Answer          string     `json:"answer" gorm:"type:text;not null"`
	Approved        bool       `json:"approved" gorm:"default:false;index"`
	SuggestedAnswer string     `json:"suggested_answer" gorm:"type:text"`
	SuggestedBy     *uuid.UUID `json:"suggested_by" gorm:"type:uuid"`
	ApprovedBy      *uuid.UUID `json:"approved_by" gorm:"type:uuid"`
	ApprovedAt      *time.Time `json:"approved_at"`
	UsageCount      int64      `json:"usage_count" gorm:"default:0"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (FAQ) TableName() string {
	return "faqs"
}

func (f *FAQ) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
