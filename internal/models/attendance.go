package models

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"

	// StatusNotMarked never hits the database; it is the derived state of a
	// student with no row for a given date in the by-date report.
	StatusNotMarked AttendanceStatus = "Not Marked"
)

// AttendanceRecord is one (student, date) status entry. Dates are stored as
// ISO calendar-date strings ("2006-01-02"). There is deliberately no
// uniqueness constraint on (student_id, date): the save operation deletes and
// reinserts the whole date/scope inside one transaction, which keeps saves
// idempotent without one.
type AttendanceRecord struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID uint             `json:"student_id" gorm:"not null;index"`
	Student   *Student         `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Date      string           `json:"date" gorm:"not null;size:10;index"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:10"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}
