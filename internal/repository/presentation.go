package repository

import (
	"time"

	"research-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresentationFilter narrows List results. Nil fields are ignored. A zero
// Limit returns every matching row.
type PresentationFilter struct {
	DepartmentID *uuid.UUID
	DateFrom     *time.Time
	DateTo       *time.Time
	Descending   bool
	Limit        int
	Offset       int
}

// PresentationRepository handles database operations for presentations. Every
// mutation takes its audit entry and writes both in one transaction, so the
// booking and its trail record never diverge.
type PresentationRepository struct {
	db *gorm.DB
}

// NewPresentationRepository creates a new presentation repository
func NewPresentationRepository(db *gorm.DB) *PresentationRepository {
	return &PresentationRepository{db: db}
}

// CreateWithAudit inserts a presentation and appends its ADDED entry atomically
func (r *PresentationRepository) CreateWithAudit(presentation *models.Presentation, entry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(presentation).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// UpdateWithAudit saves a presentation and appends its UPDATED entry atomically
func (r *PresentationRepository) UpdateWithAudit(presentation *models.Presentation, entry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(presentation).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// DeleteWithAudit removes a presentation and appends its DELETED entry
// atomically. Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *PresentationRepository) DeleteWithAudit(id uuid.UUID, entry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Presentation{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(entry).Error
	})
}

// GetByID retrieves a presentation by ID with its department
func (r *PresentationRepository) GetByID(id uuid.UUID) (*models.Presentation, error) {
	var presentation models.Presentation
	err := r.db.Preload("Department").First(&presentation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &presentation, nil
}

// List retrieves presentations matching the filter ordered by (date, time)
func (r *PresentationRepository) List(filter PresentationFilter) ([]models.Presentation, int64, error) {
	var presentations []models.Presentation
	var total int64

	query := r.db.Model(&models.Presentation{})
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "date ASC, slot_minutes ASC"
	if filter.Descending {
		order = "date DESC, slot_minutes DESC"
	}
	query = query.Preload("Department").Order(order)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err := query.Find(&presentations).Error
	return presentations, total, err
}

// GetByDateAndVenue retrieves the bookings holding slots at a venue on a date
func (r *PresentationRepository) GetByDateAndVenue(date time.Time, venue string) ([]models.Presentation, error) {
	var presentations []models.Presentation
	err := r.db.Where("date = ? AND venue = ?", date, venue).
		Order("slot_minutes ASC").Find(&presentations).Error
	return presentations, err
}

// FindBySlot returns the presentation holding an exact (date, time, venue)
// tuple, skipping excludeID when a booking is being edited in place. Returns
// gorm.ErrRecordNotFound when the slot is free.
func (r *PresentationRepository) FindBySlot(date time.Time, slotMinutes int, venue string, excludeID *uuid.UUID) (*models.Presentation, error) {
	query := r.db.Where("date = ? AND slot_minutes = ? AND venue = ?", date, slotMinutes, venue)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var presentation models.Presentation
	if err := query.First(&presentation).Error; err != nil {
		return nil, err
	}
	return &presentation, nil
}
