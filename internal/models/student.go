package models

import (
	"time"
)

// Student is a roster row. Department is assigned at creation from the
// creating teacher and never comes from the client. StudentUsername and
// StudentPasswordHash stay NULL until a teacher provisions self-service
// login for the student.
type Student struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	RollNo   string  `json:"roll_no" gorm:"not null;size:50;index"`
	Name     string  `json:"name" gorm:"not null;size:100"`
	Email    string  `json:"email" gorm:"size:255"`
	Course   string  `json:"course" gorm:"size:100;index"`
	Semester *int    `json:"semester"`
	Phone    string  `json:"phone" gorm:"size:30"`

	Department string `json:"department" gorm:"not null;size:100;index"`

	StudentUsername     *string `json:"student_username" gorm:"uniqueIndex;size:100"`
	StudentPasswordHash *string `json:"-" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// HasLogin reports whether self-service login has been provisioned.
func (s *Student) HasLogin() bool {
	return s.StudentUsername != nil && s.StudentPasswordHash != nil
}
