package models

import (
	"time"

	"github.com/google/uuid"
)

// Presentation represents a talk booked by a department coordinator.
// SlotMinutes mirrors StartTime as minutes since midnight so listings can be
// ordered by (date, time) in SQL; the 12-hour display string does not sort.
type Presentation struct {
	BaseModel
	Presenter    string      `json:"presenter" gorm:"not null;size:100" validate:"required,max=100"`
	Designation  Designation `json:"designation" gorm:"type:varchar(20);not null" validate:"required"`
	GuideName    string      `json:"guide_name" gorm:"size:100" validate:"max=100"`
	Title        string      `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Abstract     string      `json:"abstract" gorm:"type:text"`
	Date         time.Time   `json:"date" gorm:"type:date;not null;index" validate:"required"`
	StartTime    string      `json:"time" gorm:"size:10;not null" validate:"required"`
	SlotMinutes  int         `json:"-" gorm:"not null"`
	Duration     Duration    `json:"duration" gorm:"type:varchar(20);not null" validate:"required"`
	Venue        string      `json:"venue" gorm:"not null;size:100" validate:"required,max=100"`
	DepartmentID uuid.UUID   `json:"department_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName returns the table name for Presentation
func (Presentation) TableName() string {
	return "presentations"
}
