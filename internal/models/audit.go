// internal/models/audit.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditActionInsert AuditAction = "INSERT"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditEntry is an append-only record of a mutation against a tracked table.
// Rows are never updated or deleted once written.
type AuditEntry struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TableName_ string         `json:"table_name" gorm:"column:table_name;size:100;not null;index"`
	RecordID   string         `json:"record_id" gorm:"size:100;not null;index"`
	Action     AuditAction    `json:"action" gorm:"type:varchar(10);not null"`
	OldValues  datatypes.JSON `json:"old_values,omitempty" gorm:"type:jsonb"`
	NewValues  datatypes.JSON `json:"new_values,omitempty" gorm:"type:jsonb"`
	UserID     *uuid.UUID     `json:"user_id,omitempty" gorm:"type:uuid"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

func (a *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
