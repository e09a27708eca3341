package models

import "time"

// ActivityLog is an append-only record of a presentation mutation. It is
// written in the same transaction as the mutation it describes and is never
// updated or deleted. The integer primary key provides insertion order; audit
// views sort by it, never by timestamp, so clock skew cannot reorder the
// trail.
type ActivityLog struct {
	ID             uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	Action         AuditAction `json:"action" gorm:"type:varchar(10);not null"`
	Title          string      `json:"title" gorm:"size:200;not null"`
	Presenter      string      `json:"presenter" gorm:"size:100;not null"`
	DepartmentName string      `json:"department_name" gorm:"size:100;not null"`
	DoneBy         string      `json:"done_by" gorm:"size:100;not null"`
	CreatedAt      time.Time   `json:"created_at"`
}

// TableName returns the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}
