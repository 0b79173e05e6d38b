// internal/repositories/audit_repository.go
package repositories

import (
	"context"

	"gorm.io/gorm"

	"cabinreserve/internal/models"
	"cabinreserve/internal/repositories/interfaces"
)

// AuditRepository implements interfaces.AuditRepositoryInterface. Rows are
// append-only; this repository never updates or deletes.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) interfaces.AuditRepositoryInterface {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) List(ctx context.Context, tableName, recordID string, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if tableName != "" {
		query = query.Where("table_name = ?", tableName)
	}
	if recordID != "" {
		query = query.Where("record_id = ?", recordID)
	}
	var entries []*models.AuditEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
