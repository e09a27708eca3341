package testutils

import (
	"time"

	"research-portal-backend/internal/database/models"
	"research-portal-backend/internal/timeslot"

	"github.com/google/uuid"
)

// DepartmentFactory provides methods to create test Department data
type DepartmentFactory struct{}

// NewDepartmentFactory creates a new DepartmentFactory
func NewDepartmentFactory() *DepartmentFactory {
	return &DepartmentFactory{}
}

// Create creates a test Department with default values
func (f *DepartmentFactory) Create() *models.Department {
	department := &models.Department{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:       "Test Department",
		HeadEmail:  "head@test.edu",
		CoordEmail: "coordinator@test.edu",
	}
	_ = department.SetPassword("changeme123")
	return department
}

// WithName sets a custom name for the department
func (f *DepartmentFactory) WithName(name string) *models.Department {
	department := f.Create()
	department.Name = name
	return department
}

// WithPassword sets a custom coordinator password for the department
func (f *DepartmentFactory) WithPassword(clear string) *models.Department {
	department := f.Create()
	_ = department.SetPassword(clear)
	return department
}

// PresentationFactory provides methods to create test Presentation data
type PresentationFactory struct{}

// NewPresentationFactory creates a new PresentationFactory
func NewPresentationFactory() *PresentationFactory {
	return &PresentationFactory{}
}

// Create creates a test Presentation booked one week out with default values
func (f *PresentationFactory) Create() *models.Presentation {
	slot := "10:00 AM"
	minutes, _ := timeslot.Minutes(slot)
	in7days := time.Now().AddDate(0, 0, 7)

	return &models.Presentation{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Presenter:    "Asha Raman",
		Designation:  models.DesignationScholar,
		GuideName:    "Dr. Priya Nair",
		Title:        "Approximation Algorithms for Facility Location",
		Abstract:     "A survey of approximation techniques for metric facility location.",
		Date:         time.Date(in7days.Year(), in7days.Month(), in7days.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:    slot,
		SlotMinutes:  minutes,
		Duration:     models.DurationHour,
		Venue:        "Seminar Hall A",
		DepartmentID: uuid.New(),
	}
}

// WithDepartment sets the department ID for the presentation
func (f *PresentationFactory) WithDepartment(departmentID uuid.UUID) *models.Presentation {
	presentation := f.Create()
	presentation.DepartmentID = departmentID
	return presentation
}

// WithDate sets a custom date for the presentation
func (f *PresentationFactory) WithDate(date time.Time) *models.Presentation {
	presentation := f.Create()
	presentation.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return presentation
}

// WithSlot sets the start time for the presentation and keeps the
// sort column in sync
func (f *PresentationFactory) WithSlot(slot string) *models.Presentation {
	presentation := f.Create()
	minutes, _ := timeslot.Minutes(slot)
	presentation.StartTime = slot
	presentation.SlotMinutes = minutes
	return presentation
}

// WithVenue sets a custom venue for the presentation
func (f *PresentationFactory) WithVenue(venue string) *models.Presentation {
	presentation := f.Create()
	presentation.Venue = venue
	return presentation
}

// WithDesignation sets a custom presenter designation for the presentation
func (f *PresentationFactory) WithDesignation(designation models.Designation) *models.Presentation {
	presentation := f.Create()
	presentation.Designation = designation
	return presentation
}

// SubscriptionFactory provides methods to create test Subscription data
type SubscriptionFactory struct{}

// NewSubscriptionFactory creates a new SubscriptionFactory
func NewSubscriptionFactory() *SubscriptionFactory {
	return &SubscriptionFactory{}
}

// Create creates a test Subscription with a unique email
func (f *SubscriptionFactory) Create() *models.Subscription {
	id := uuid.New()
	// Generate unique email using part of UUID to avoid unique index conflicts
	email := "subscriber-" + id.String()[:8] + "@test.edu"

	return &models.Subscription{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email: email,
	}
}

// WithEmail sets a custom email for the subscription
func (f *SubscriptionFactory) WithEmail(email string) *models.Subscription {
	subscription := f.Create()
	subscription.Email = email
	return subscription
}

// ActivityLogFactory provides methods to create test ActivityLog data
type ActivityLogFactory struct{}

// NewActivityLogFactory creates a new ActivityLogFactory
func NewActivityLogFactory() *ActivityLogFactory {
	return &ActivityLogFactory{}
}

// Create creates a test ActivityLog entry with default values
func (f *ActivityLogFactory) Create() *models.ActivityLog {
	return &models.ActivityLog{
		Action:         models.AuditActionAdded,
		Title:          "Approximation Algorithms for Facility Location",
		Presenter:      "Asha Raman",
		DepartmentName: "Test Department",
		DoneBy:         "Test Department",
		CreatedAt:      time.Now(),
	}
}

// WithAction sets a custom audit action for the entry
func (f *ActivityLogFactory) WithAction(action models.AuditAction) *models.ActivityLog {
	entry := f.Create()
	entry.Action = action
	return entry
}

// FactorySet provides access to all factories
type FactorySet struct {
	Department   *DepartmentFactory
	Presentation *PresentationFactory
	Subscription *SubscriptionFactory
	ActivityLog  *ActivityLogFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Department:   NewDepartmentFactory(),
		Presentation: NewPresentationFactory(),
		Subscription: NewSubscriptionFactory(),
		ActivityLog:  NewActivityLogFactory(),
	}
}

// CreateFullSchedule creates a department with a booked presentation and a
// mailing list subscriber
func (fs *FactorySet) CreateFullSchedule() (*models.Department, *models.Presentation, *models.Subscription) {
	department := fs.Department.Create()
	presentation := fs.Presentation.WithDepartment(department.ID)
	subscription := fs.Subscription.Create()
	return department, presentation, subscription
}
