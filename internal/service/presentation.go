package service

import (
	"errors"
	"fmt"
	"time"

	"research-portal-backend/internal/database/models"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/repository"
	"research-portal-backend/internal/timeslot"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the wire format for booking dates
const DateLayout = "2006-01-02"

// PresentationService handles booking logic for presentations: slot grid
// validation, conflict detection and the audited mutations behind them.
type PresentationService struct {
	repo           repository.PresentationRepositoryInterface
	departmentRepo repository.DepartmentRepositoryInterface
	validator      *validator.Validate
}

// NewPresentationService creates a new presentation service
func NewPresentationService(repo repository.PresentationRepositoryInterface, departmentRepo repository.DepartmentRepositoryInterface, validator *validator.Validate) *PresentationService {
	return &PresentationService{
		repo:           repo,
		departmentRepo: departmentRepo,
		validator:      validator,
	}
}

// CreatePresentationRequest represents the request to book a presentation
type CreatePresentationRequest struct {
	Presenter   string             `json:"presenter" validate:"required,max=100"`
	Designation models.Designation `json:"designation" validate:"required"`
	GuideName   string             `json:"guide_name,omitempty" validate:"max=100"`
	Title       string             `json:"title" validate:"required,max=200"`
	Abstract    string             `json:"abstract,omitempty"`
	Date        string             `json:"date" validate:"required"`
	Time        string             `json:"time" validate:"required"`
	Duration    models.Duration    `json:"duration" validate:"required"`
	Venue       string             `json:"venue" validate:"required,max=100"`
}

// UpdatePresentationRequest represents the request to edit a booking. Only
// title, venue, time and duration are editable after creation.
type UpdatePresentationRequest struct {
	Title    *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Venue    *string          `json:"venue,omitempty" validate:"omitempty,min=1,max=100"`
	Time     *string          `json:"time,omitempty"`
	Duration *models.Duration `json:"duration,omitempty"`
}

// PresentationResponse represents the response for presentation operations
type PresentationResponse struct {
	ID             uuid.UUID          `json:"id"`
	Presenter      string             `json:"presenter"`
	Designation    models.Designation `json:"designation"`
	GuideName      string             `json:"guide_name,omitempty"`
	Title          string             `json:"title"`
	Abstract       string             `json:"abstract,omitempty"`
	Date           string             `json:"date"`
	Time           string             `json:"time"`
	Duration       models.Duration    `json:"duration"`
	Venue          string             `json:"venue"`
	DepartmentID   uuid.UUID          `json:"department_id"`
	DepartmentName string             `json:"department_name,omitempty"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}

// PresentationListResponse represents a list of presentations
type PresentationListResponse struct {
	Presentations []PresentationResponse `json:"presentations"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// FreeSlotsResponse lists the grid slots still open at a venue on a date
type FreeSlotsResponse struct {
	Date  string   `json:"date"`
	Venue string   `json:"venue"`
	Slots []string `json:"slots"`
}

// Create books a presentation for the coordinator's department. The slot is
// validated against the fixed grid and checked for collisions before the
// booking and its ADDED audit entry are written in one transaction.
func (s *PresentationService) Create(departmentID uuid.UUID, actor string, req *CreatePresentationRequest) (*PresentationResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.Designation.IsValid() {
		return nil, apperrors.ErrInvalidDesignation
	}
	if !req.Duration.IsValid() {
		return nil, apperrors.ErrInvalidDuration
	}

	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date", "must be formatted YYYY-MM-DD")
	}
	slotMinutes, ok := timeslot.Minutes(req.Time)
	if !ok {
		return nil, apperrors.ErrInvalidTimeSlot
	}

	// Validate department exists
	department, err := s.departmentRepo.GetByID(departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to verify department: %w", err)
	}

	// Check slot availability
	if err := s.checkSlotFree(date, slotMinutes, req.Venue, nil); err != nil {
		return nil, err
	}

	presentation := &models.Presentation{
		Presenter:    req.Presenter,
		Designation:  req.Designation,
		GuideName:    req.GuideName,
		Title:        req.Title,
		Abstract:     req.Abstract,
		Date:         date,
		StartTime:    req.Time,
		SlotMinutes:  slotMinutes,
		Duration:     req.Duration,
		Venue:        req.Venue,
		DepartmentID: departmentID,
	}
	entry := auditEntry(models.AuditActionAdded, presentation, department.Name, actor)

	if err := s.repo.CreateWithAudit(presentation, entry); err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	presentation.Department = *department
	return s.toResponse(presentation), nil
}

// GetByID retrieves a presentation by ID
func (s *PresentationService) GetByID(id uuid.UUID) (*PresentationResponse, error) {
	presentation, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPresentationNotFound
		}
		return nil, fmt.Errorf("failed to get presentation: %w", err)
	}

	return s.toResponse(presentation), nil
}

// Update edits a booking owned by the coordinator's department and appends
// the UPDATED audit entry in the same transaction. Changing the time or the
// venue re-runs conflict validation with the booking itself excluded.
func (s *PresentationService) Update(id, departmentID uuid.UUID, actor string, req *UpdatePresentationRequest) (*PresentationResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	presentation, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPresentationNotFound
		}
		return nil, fmt.Errorf("failed to get presentation: %w", err)
	}
	if presentation.DepartmentID != departmentID {
		return nil, apperrors.ErrDepartmentMismatch
	}

	// Update fields if provided
	if req.Title != nil {
		presentation.Title = *req.Title
	}
	if req.Venue != nil {
		presentation.Venue = *req.Venue
	}
	if req.Time != nil {
		slotMinutes, ok := timeslot.Minutes(*req.Time)
		if !ok {
			return nil, apperrors.ErrInvalidTimeSlot
		}
		presentation.StartTime = *req.Time
		presentation.SlotMinutes = slotMinutes
	}
	if req.Duration != nil {
		if !req.Duration.IsValid() {
			return nil, apperrors.ErrInvalidDuration
		}
		presentation.Duration = *req.Duration
	}

	// Check slot availability, excluding the booking being edited
	excludeID := presentation.ID
	if err := s.checkSlotFree(presentation.Date, presentation.SlotMinutes, presentation.Venue, &excludeID); err != nil {
		return nil, err
	}

	entry := auditEntry(models.AuditActionUpdated, presentation, presentation.Department.Name, actor)
	if err := s.repo.UpdateWithAudit(presentation, entry); err != nil {
		return nil, fmt.Errorf("failed to update presentation: %w", err)
	}

	return s.toResponse(presentation), nil
}

// Delete removes a booking owned by the coordinator's department. The DELETED
// audit entry is appended in the same transaction; earlier entries for the
// booking survive.
func (s *PresentationService) Delete(id, departmentID uuid.UUID, actor string) error {
	presentation, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPresentationNotFound
		}
		return fmt.Errorf("failed to get presentation: %w", err)
	}
	if presentation.DepartmentID != departmentID {
		return apperrors.ErrDepartmentMismatch
	}

	entry := auditEntry(models.AuditActionDeleted, presentation, presentation.Department.Name, actor)
	if err := s.repo.DeleteWithAudit(id, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPresentationNotFound
		}
		return fmt.Errorf("failed to delete presentation: %w", err)
	}

	return nil
}

// ListByDepartment retrieves a department's bookings ordered by (date, time)
func (s *PresentationService) ListByDepartment(departmentID uuid.UUID, dateFrom, dateTo string, page, pageSize int) (*PresentationListResponse, error) {
	filter, err := buildDateFilter(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	filter.DepartmentID = &departmentID

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	presentations, total, err := s.repo.List(*filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}

	return s.toListResponse(presentations, total, page, pageSize), nil
}

// Upcoming retrieves today's and future presentations in chronological order
func (s *PresentationService) Upcoming() (*PresentationListResponse, error) {
	today := startOfToday()
	filter := repository.PresentationFilter{DateFrom: &today}

	presentations, total, err := s.repo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming presentations: %w", err)
	}

	return s.toListResponse(presentations, total, 1, len(presentations)), nil
}

// Previous retrieves past presentations, most recent first
func (s *PresentationService) Previous() (*PresentationListResponse, error) {
	yesterday := startOfToday().AddDate(0, 0, -1)
	filter := repository.PresentationFilter{DateTo: &yesterday, Descending: true}

	presentations, total, err := s.repo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list previous presentations: %w", err)
	}

	return s.toListResponse(presentations, total, 1, len(presentations)), nil
}

// FreeSlots returns the grid slots still open at a venue on a date
func (s *PresentationService) FreeSlots(dateStr, venue string) (*FreeSlotsResponse, error) {
	if venue == "" {
		return nil, apperrors.NewValidationError("venue", "is required")
	}
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, apperrors.NewValidationError("date", "must be formatted YYYY-MM-DD")
	}

	booked, err := s.repo.GetByDateAndVenue(date, venue)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	taken := make(map[int]bool, len(booked))
	for _, p := range booked {
		taken[p.SlotMinutes] = true
	}

	free := make([]string, 0, len(timeslot.Grid()))
	for _, slot := range timeslot.Grid() {
		minutes, _ := timeslot.Minutes(slot)
		if !taken[minutes] {
			free = append(free, slot)
		}
	}

	return &FreeSlotsResponse{
		Date:  dateStr,
		Venue: venue,
		Slots: free,
	}, nil
}

// checkSlotFree rejects a booking whose exact (date, time, venue) tuple is
// already held by another presentation. Duration is deliberately ignored:
// two talks starting at the same slot in the same hall collide whatever
// their lengths.
func (s *PresentationService) checkSlotFree(date time.Time, slotMinutes int, venue string, excludeID *uuid.UUID) error {
	holder, err := s.repo.FindBySlot(date, slotMinutes, venue, excludeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check slot availability: %w", err)
	}
	return apperrors.NewConflictError(holder.ID.String())
}

// auditEntry builds the trail record written alongside a booking mutation
func auditEntry(action models.AuditAction, presentation *models.Presentation, departmentName, actor string) *models.ActivityLog {
	return &models.ActivityLog{
		Action:         action,
		Title:          presentation.Title,
		Presenter:      presentation.Presenter,
		DepartmentName: departmentName,
		DoneBy:         actor,
	}
}

// buildDateFilter parses optional range bounds into a repository filter
func buildDateFilter(dateFrom, dateTo string) (*repository.PresentationFilter, error) {
	filter := &repository.PresentationFilter{}
	if dateFrom != "" {
		from, err := time.Parse(DateLayout, dateFrom)
		if err != nil {
			return nil, apperrors.NewValidationError("date_from", "must be formatted YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if dateTo != "" {
		to, err := time.Parse(DateLayout, dateTo)
		if err != nil {
			return nil, apperrors.NewValidationError("date_to", "must be formatted YYYY-MM-DD")
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, apperrors.ErrInvalidDateRange
	}
	return filter, nil
}

// startOfToday returns midnight UTC of the current day, the boundary between
// the previous and upcoming schedule views
func startOfToday() time.Time {
	year, month, day := time.Now().UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// toResponse converts a presentation model to response
func (s *PresentationService) toResponse(presentation *models.Presentation) *PresentationResponse {
	return &PresentationResponse{
		ID:             presentation.ID,
		Presenter:      presentation.Presenter,
		Designation:    presentation.Designation,
		GuideName:      presentation.GuideName,
		Title:          presentation.Title,
		Abstract:       presentation.Abstract,
		Date:           presentation.Date.Format(DateLayout),
		Time:           presentation.StartTime,
		Duration:       presentation.Duration,
		Venue:          presentation.Venue,
		DepartmentID:   presentation.DepartmentID,
		DepartmentName: presentation.Department.Name,
		CreatedAt:      presentation.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      presentation.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// toListResponse converts presentations to a list response
func (s *PresentationService) toListResponse(presentations []models.Presentation, total int64, page, pageSize int) *PresentationListResponse {
	responses := make([]PresentationResponse, len(presentations))
	for i, presentation := range presentations {
		responses[i] = *s.toResponse(&presentation)
	}

	return &PresentationListResponse{
		Presentations: responses,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}
}
