package repository

import (
	"research-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionRepository handles database operations for broadcast subscribers
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(subscription *models.Subscription) error {
	return r.db.Create(subscription).Error
}

// GetByEmail retrieves a subscription by its unique email
func (r *SubscriptionRepository) GetByEmail(email string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.First(&subscription, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// GetAll retrieves all subscriptions ordered by email
func (r *SubscriptionRepository) GetAll() ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Order("email ASC").Find(&subscriptions).Error
	return subscriptions, err
}

// Delete deletes a subscription. Returns gorm.ErrRecordNotFound when the id
// does not exist.
func (r *SubscriptionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
