package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campus-track/attendance-service/internal/models"
)

// Store-level sentinels. Services translate these into their own taxonomy.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrForeignKeyViolated = errors.New("foreign key violated")
)

type TeacherRepository interface {
	Create(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Teacher, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.Teacher, error)
}

// StudentFilters narrows roster listings. Department is always set for
// teacher-initiated reads; the scoping invariant lives here, not in handlers.
type StudentFilters struct {
	Department string
	Course     *string // exact match
	Query      *string // substring match on roll_no/name/course

	// OrderByCourse orders by (course, roll_no) instead of roll_no alone.
	OrderByCourse bool
}

type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error

	// GetByID is department-scoped: a foreign-department id yields
	// ErrNotFound, indistinguishable from a missing row.
	GetByID(ctx context.Context, tx *gorm.DB, id uint, department string) (*models.Student, error)

	// GetSelf fetches without department scoping, for the student's own
	// dashboard.
	GetSelf(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error)

	GetByLoginUsername(ctx context.Context, tx *gorm.DB, username string) (*models.Student, error)

	List(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *models.Student) error

	// Delete is scoped by department and silently succeeds when nothing
	// matches (observed behavior, kept deliberately).
	Delete(ctx context.Context, tx *gorm.DB, id uint, department string) error

	SetLogin(ctx context.Context, tx *gorm.DB, id uint, department, username, passwordHash string) error

	DistinctCourses(ctx context.Context, tx *gorm.DB, department string) ([]string, error)
	CountByDepartment(ctx context.Context, tx *gorm.DB, department string) (int64, error)
}

type AttendanceRepository interface {
	// ListByStudent returns all records for one student, newest date first.
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.AttendanceRecord, error)

	// DeleteForDate removes the date's rows restricted to the given student
	// ids. Callers run this and CreateBatch inside one transaction.
	DeleteForDate(ctx context.Context, tx *gorm.DB, date string, studentIDs []uint) error

	CreateBatch(ctx context.Context, tx *gorm.DB, records []*models.AttendanceRecord) error
}

// SummaryRow is one student's grouped attendance totals.
type SummaryRow struct {
	StudentID uint   `json:"student_id"`
	RollNo    string `json:"roll_no"`
	Name      string `json:"name"`
	Presents  int64  `json:"presents"`
	Absents   int64  `json:"absents"`
	TotalDays int64  `json:"total_days"`
}

// DayStatusRow is one student's status on a specific date; Status is nil when
// no row exists for that date.
type DayStatusRow struct {
	StudentID uint    `json:"student_id"`
	RollNo    string  `json:"roll_no"`
	Name      string  `json:"name"`
	Status    *string `json:"status"`
}

type ReportRepository interface {
	// StudentTotals left-joins every department student to their attendance
	// rows and returns grouped presents/absents/total counts, ordered by
	// roll number.
	StudentTotals(ctx context.Context, tx *gorm.DB, department string) ([]SummaryRow, error)

	// DayStatuses left-joins department students to one date's rows.
	DayStatuses(ctx context.Context, tx *gorm.DB, date, department string) ([]DayStatusRow, error)

	CountMarkedOn(ctx context.Context, tx *gorm.DB, date, department string) (int64, error)
	CountPresentOn(ctx context.Context, tx *gorm.DB, date, department string) (int64, error)
	CountRecords(ctx context.Context, tx *gorm.DB, department string) (int64, error)
}
