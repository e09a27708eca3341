package models

import "golang.org/x/crypto/bcrypt"

// Department represents an academic department and its coordinator credential
type Department struct {
	BaseModel
	Name         string `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	HeadEmail    string `json:"head_email" gorm:"not null;size:255" validate:"required,email,max=255"`
	CoordEmail   string `json:"coord_email" gorm:"not null;size:255" validate:"required,email,max=255"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	// Relationships
	Presentations []Presentation `json:"presentations,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName returns the table name for Department
func (Department) TableName() string {
	return "departments"
}

// SetPassword hashes the clear text password and stores the hash
func (d *Department) SetPassword(clear string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(clear), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a clear text password against the stored hash
func (d *Department) CheckPassword(clear string) bool {
	return bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(clear)) == nil
}
