package repository

import (
	"research-portal-backend/internal/database/models"

	"gorm.io/gorm"
)

// ActivityLogRepository handles database operations for the audit trail.
// Entries are append-only; there is no update or delete.
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Append writes a single audit entry
func (r *ActivityLogRepository) Append(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// List retrieves audit entries newest first by insertion order
func (r *ActivityLogRepository) List(limit, offset int) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog
	var total int64

	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err := query.Find(&entries).Error
	return entries, total, err
}
