package service

import (
	"bytes"
	"context"

	"research-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// DepartmentServiceInterface defines the interface for department service
type DepartmentServiceInterface interface {
	Create(req *CreateDepartmentRequest) (*DepartmentResponse, error)
	Authenticate(name, password string) (*models.Department, error)
	GetByID(id uuid.UUID) (*DepartmentResponse, error)
	List() (*DepartmentListResponse, error)
	Update(id uuid.UUID, req *UpdateDepartmentRequest) (*DepartmentResponse, error)
}

// PresentationServiceInterface defines the interface for presentation service
type PresentationServiceInterface interface {
	Create(departmentID uuid.UUID, actor string, req *CreatePresentationRequest) (*PresentationResponse, error)
	GetByID(id uuid.UUID) (*PresentationResponse, error)
	Update(id, departmentID uuid.UUID, actor string, req *UpdatePresentationRequest) (*PresentationResponse, error)
	Delete(id, departmentID uuid.UUID, actor string) error
	ListByDepartment(departmentID uuid.UUID, dateFrom, dateTo string, page, pageSize int) (*PresentationListResponse, error)
	Upcoming() (*PresentationListResponse, error)
	Previous() (*PresentationListResponse, error)
	FreeSlots(dateStr, venue string) (*FreeSlotsResponse, error)
}

// SubscriptionServiceInterface defines the interface for subscription service
type SubscriptionServiceInterface interface {
	Create(req *CreateSubscriptionRequest) (*SubscriptionResponse, error)
	List() (*SubscriptionListResponse, error)
	Delete(id uuid.UUID) error
}

// ActivityLogServiceInterface defines the interface for activity log service
type ActivityLogServiceInterface interface {
	List(page, pageSize int) (*ActivityLogListResponse, error)
}

// AnalyticsServiceInterface defines the interface for analytics service
type AnalyticsServiceInterface interface {
	Summary(dateFrom, dateTo string) (*AnalyticsSummary, error)
}

// ExportServiceInterface defines the interface for spreadsheet export service
type ExportServiceInterface interface {
	ExportExcel(ctx context.Context, dateFrom, dateTo string) (*bytes.Buffer, string, error)
}

// ReportServiceInterface defines the interface for PDF report service
type ReportServiceInterface interface {
	ExportPDF(ctx context.Context, dateFrom, dateTo string) (*bytes.Buffer, string, error)
}

// BroadcastServiceInterface defines the interface for schedule broadcast service
type BroadcastServiceInterface interface {
	Broadcast(ctx context.Context) (*BroadcastResult, error)
}
