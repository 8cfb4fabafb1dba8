package models

import (
	"time"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Teacher is an authenticated staff account. The Department string is the
// only multi-tenancy boundary: a teacher only sees students whose department
// matches their own. Teachers are never deleted in-app.
type Teacher struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	Name         string `json:"name" gorm:"not null;size:100"`
	Department   string `json:"department" gorm:"not null;size:100;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Teacher) TableName() string {
	return "teachers"
}
