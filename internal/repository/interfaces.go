package repository

import (
	"time"

	"research-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// DepartmentRepositoryInterface defines the interface for department repository operations
type DepartmentRepositoryInterface interface {
	Create(department *models.Department) error
	GetByID(id uuid.UUID) (*models.Department, error)
	GetByName(name string) (*models.Department, error)
	GetAll() ([]models.Department, error)
	Update(department *models.Department) error
}

// PresentationRepositoryInterface defines the interface for presentation repository operations
type PresentationRepositoryInterface interface {
	CreateWithAudit(presentation *models.Presentation, entry *models.ActivityLog) error
	UpdateWithAudit(presentation *models.Presentation, entry *models.ActivityLog) error
	DeleteWithAudit(id uuid.UUID, entry *models.ActivityLog) error
	GetByID(id uuid.UUID) (*models.Presentation, error)
	List(filter PresentationFilter) ([]models.Presentation, int64, error)
	GetByDateAndVenue(date time.Time, venue string) ([]models.Presentation, error)
	FindBySlot(date time.Time, slotMinutes int, venue string, excludeID *uuid.UUID) (*models.Presentation, error)
}

// SubscriptionRepositoryInterface defines the interface for subscription repository operations
type SubscriptionRepositoryInterface interface {
	Create(subscription *models.Subscription) error
	GetByEmail(email string) (*models.Subscription, error)
	GetAll() ([]models.Subscription, error)
	Delete(id uuid.UUID) error
}

// ActivityLogRepositoryInterface defines the interface for audit trail operations
type ActivityLogRepositoryInterface interface {
	Append(entry *models.ActivityLog) error
	List(limit, offset int) ([]models.ActivityLog, int64, error)
}
