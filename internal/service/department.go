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

// DepartmentService handles business logic for departments
type DepartmentService struct {
	repo      repository.DepartmentRepositoryInterface
	validator *validator.Validate
}

// NewDepartmentService creates a new department service
func NewDepartmentService(repo repository.DepartmentRepositoryInterface, validator *validator.Validate) *DepartmentService {
	return &DepartmentService{
		repo:      repo,
		validator: validator,
	}
}

// CreateDepartmentRequest represents the request to register a department
type CreateDepartmentRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	HeadEmail  string `json:"head_email" validate:"required,email,max=255"`
	CoordEmail string `json:"coord_email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateDepartmentRequest represents the request to update department contacts
// or reset the coordinator credential
type UpdateDepartmentRequest struct {
	HeadEmail  *string `json:"head_email,omitempty" validate:"omitempty,email,max=255"`
	CoordEmail *string `json:"coord_email,omitempty" validate:"omitempty,email,max=255"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// DepartmentResponse represents the response for department operations. The
// credential hash is never included.
type DepartmentResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	HeadEmail  string    `json:"head_email"`
	CoordEmail string    `json:"coord_email"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}

// DepartmentListResponse represents the list of registered departments
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}

// Create registers a new department with a hashed coordinator credential
func (s *DepartmentService) Create(req *CreateDepartmentRequest) (*DepartmentResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Check if department with same name exists
	existing, err := s.repo.GetByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing department: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDepartmentExists
	}

	department := &models.Department{
		Name:       req.Name,
		HeadEmail:  req.HeadEmail,
		CoordEmail: req.CoordEmail,
	}
	if err := department.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.Create(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return s.toResponse(department), nil
}

// Authenticate verifies a coordinator credential. Unknown department names
// and wrong passwords both fail with the same error so callers cannot probe
// which departments exist.
func (s *DepartmentService) Authenticate(name, password string) (*models.Department, error) {
	department, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	if !department.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return department, nil
}

// GetByID retrieves a department by ID
func (s *DepartmentService) GetByID(id uuid.UUID) (*DepartmentResponse, error) {
	department, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return s.toResponse(department), nil
}

// List retrieves all departments ordered by name
func (s *DepartmentService) List() (*DepartmentListResponse, error) {
	departments, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]DepartmentResponse, len(departments))
	for i, department := range departments {
		responses[i] = *s.toResponse(&department)
	}

	return &DepartmentListResponse{
		Departments: responses,
		Total:       len(responses),
	}, nil
}

// Update edits department contact addresses or resets the credential
func (s *DepartmentService) Update(id uuid.UUID, req *UpdateDepartmentRequest) (*DepartmentResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	department, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	// Update fields if provided
	if req.HeadEmail != nil {
		department.HeadEmail = *req.HeadEmail
	}
	if req.CoordEmail != nil {
		department.CoordEmail = *req.CoordEmail
	}
	if req.Password != nil {
		if err := department.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.repo.Update(department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	return s.toResponse(department), nil
}

// toResponse converts a department model to response
func (s *DepartmentService) toResponse(department *models.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:         department.ID,
		Name:       department.Name,
		HeadEmail:  department.HeadEmail,
		CoordEmail: department.CoordEmail,
		CreatedAt:  department.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  department.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
