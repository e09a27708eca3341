package models

// Designation defines the presenter categories
type Designation string

const (
	DesignationFaculty Designation = "Faculty"
	DesignationScholar Designation = "Scholar"
	DesignationStudent Designation = "Student"
)

// Duration defines the allowed presentation lengths. The value is
// informational only; booking conflicts are decided by the start slot.
type Duration string

const (
	DurationHalfHour      Duration = "30 mins"
	DurationThreeQuarters Duration = "45 mins"
	DurationHour          Duration = "1 hour"
	DurationNinetyMinutes Duration = "1.5 hours"
	DurationTwoHours      Duration = "2 hours"
)

// AuditAction defines the recorded mutation kinds
type AuditAction string

const (
	AuditActionAdded   AuditAction = "ADDED"
	AuditActionDeleted AuditAction = "DELETED"
	AuditActionUpdated AuditAction = "UPDATED"
)

// IsValid checks if the Designation is valid
func (d Designation) IsValid() bool {
	switch d {
	case DesignationFaculty, DesignationScholar, DesignationStudent:
		return true
	}
	return false
}

// IsValid checks if the Duration is valid
func (d Duration) IsValid() bool {
	switch d {
	case DurationHalfHour, DurationThreeQuarters, DurationHour, DurationNinetyMinutes, DurationTwoHours:
		return true
	}
	return false
}

// IsValid checks if the AuditAction is valid
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionAdded, AuditActionDeleted, AuditActionUpdated:
		return true
	}
	return false
}

// Designations lists the presenter categories in display order
func Designations() []Designation {
	return []Designation{DesignationFaculty, DesignationScholar, DesignationStudent}
}

// Durations lists the allowed presentation lengths in menu order
func Durations() []Duration {
	return []Duration{DurationHalfHour, DurationThreeQuarters, DurationHour, DurationNinetyMinutes, DurationTwoHours}
}
