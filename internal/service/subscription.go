package service

import (
	"errors"
	"fmt"

	"research-portal-backend/internal/database/models"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService handles business logic for broadcast subscribers
type SubscriptionService struct {
	repo      repository.SubscriptionRepositoryInterface
	validator *validator.Validate
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(repo repository.SubscriptionRepositoryInterface, validator *validator.Validate) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		validator: validator,
	}
}

// CreateSubscriptionRequest represents the request to subscribe an email
type CreateSubscriptionRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// SubscriptionResponse represents the response for subscription operations
type SubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt string    `json:"created_at"`
}

// SubscriptionListResponse represents the list of subscribers
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Total         int                    `json:"total"`
}

// Create subscribes an email address to schedule broadcasts
func (s *SubscriptionService) Create(req *CreateSubscriptionRequest) (*SubscriptionResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Check if subscription with same email exists
	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrSubscriptionExists
	}

	subscription := &models.Subscription{Email: req.Email}
	if err := s.repo.Create(subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return s.toResponse(subscription), nil
}

// List retrieves all subscribers ordered by email
func (s *SubscriptionService) List() (*SubscriptionListResponse, error) {
	subscriptions, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	responses := make([]SubscriptionResponse, len(subscriptions))
	for i, subscription := range subscriptions {
		responses[i] = *s.toResponse(&subscription)
	}

	return &SubscriptionListResponse{
		Subscriptions: responses,
		Total:         len(responses),
	}, nil
}

// Delete removes a subscriber
func (s *SubscriptionService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSubscriptionNotFound
		}
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}

// toResponse converts a subscription model to response
func (s *SubscriptionService) toResponse(subscription *models.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:        subscription.ID,
		Email:     subscription.Email,
		CreatedAt: subscription.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
