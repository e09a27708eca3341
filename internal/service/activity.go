package service

import (
	"fmt"

	"research-portal-backend/internal/database/models"
	"research-portal-backend/internal/repository"
)

// ActivityLogService exposes the audit trail of booking mutations
type ActivityLogService struct {
	repo repository.ActivityLogRepositoryInterface
}

// NewActivityLogService creates a new activity log service
func NewActivityLogService(repo repository.ActivityLogRepositoryInterface) *ActivityLogService {
	return &ActivityLogService{repo: repo}
}

// ActivityLogResponse represents a single audit entry
type ActivityLogResponse struct {
	ID             uint               `json:"id"`
	Action         models.AuditAction `json:"action"`
	Title          string             `json:"title"`
	Presenter      string             `json:"presenter"`
	DepartmentName string             `json:"department_name"`
	DoneBy         string             `json:"done_by"`
	Timestamp      string             `json:"timestamp"`
}

// ActivityLogListResponse represents a page of the audit trail, newest first
type ActivityLogListResponse struct {
	Entries  []ActivityLogResponse `json:"entries"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// List retrieves audit entries newest first by insertion order
func (s *ActivityLogService) List(page, pageSize int) (*ActivityLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	offset := (page - 1) * pageSize
	entries, total, err := s.repo.List(pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}

	responses := make([]ActivityLogResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ActivityLogResponse{
			ID:             entry.ID,
			Action:         entry.Action,
			Title:          entry.Title,
			Presenter:      entry.Presenter,
			DepartmentName: entry.DepartmentName,
			DoneBy:         entry.DoneBy,
			Timestamp:      entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return &ActivityLogListResponse{
		Entries:  responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
