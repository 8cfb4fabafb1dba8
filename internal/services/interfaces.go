package services

import (
	"context"
	"time"

	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/validator"
)

// ===== AUTH DTOS =====

// LoginResult carries the signed token plus the identity echoed back to the
// client.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Principal models.Principal `json:"principal"`
}

// TeacherInfo is the public projection of a teacher account.
type TeacherInfo struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ===== ROSTER DTOS =====

// StudentListResult bundles the filtered roster with the department's course
// values for the filter dropdown.
type StudentListResult struct {
	Students []*models.Student `json:"students"`
	Courses  []string          `json:"courses"`
	Total    int               `json:"total"`
}

// ===== ATTENDANCE DTOS =====

// SheetEntry is one roster row on the marking sheet with the status already
// recorded for the requested date, or "Not Marked".
type SheetEntry struct {
	Student *models.Student         `json:"student"`
	Status  models.AttendanceStatus `json:"status"`
}

// AttendanceSheet is the marking view for one date and course scope. Entries
// stay empty until a course is selected; Courses always lists the
// department's course values for the selector.
type AttendanceSheet struct {
	Date    string       `json:"date"`
	Course  string       `json:"course,omitempty"`
	Courses []string     `json:"courses"`
	Entries []SheetEntry `json:"entries"`
}

// SaveAttendanceResult reports what one save wrote.
type SaveAttendanceResult struct {
	Date         string `json:"date"`
	Course       string `json:"course,omitempty"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
}

// StudentHistory is one student's full attendance record with derived totals.
type StudentHistory struct {
	Student    *models.Student            `json:"student"`
	Records    []*models.AttendanceRecord `json:"records"`
	Presents   int                        `json:"presents"`
	Absents    int                        `json:"absents"`
	TotalDays  int                        `json:"total_days"`
	Percentage float64                    `json:"percentage"`
	Category   string                     `json:"category"`
}

// ===== REPORT DTOS =====

// HomeStats is the teacher dashboard snapshot.
type HomeStats struct {
	Department    string `json:"department"`
	TotalStudents int64  `json:"total_students"`
	TotalRecords  int64  `json:"total_records"`
	Today         string `json:"today"`
	TodayMarked   int64  `json:"today_marked"`
	TodayPresent  int64  `json:"today_present"`

	// TodayPercentage is today's presents over the whole department roster,
	// zero until attendance has been marked.
	TodayPercentage float64 `json:"today_percentage"`
}

// SummaryEntry is one student's aggregate line on the department summary.
type SummaryEntry struct {
	StudentID  uint    `json:"student_id"`
	RollNo     string  `json:"roll_no"`
	Name       string  `json:"name"`
	Presents   int64   `json:"presents"`
	Absents    int64   `json:"absents"`
	TotalDays  int64   `json:"total_days"`
	Percentage float64 `json:"percentage"`
	Category   string  `json:"category"`
}

// SummaryReport is the whole-department summary plus the below-threshold list.
type SummaryReport struct {
	Department    string         `json:"department"`
	Entries       []SummaryEntry `json:"entries"`
	LowAttendance []SummaryEntry `json:"low_attendance"`
}

// DayEntry is one student's status on the queried date, "Not Marked" when no
// row exists.
type DayEntry struct {
	RollNo string                  `json:"roll_no"`
	Name   string                  `json:"name"`
	Status models.AttendanceStatus `json:"status"`
}

// DayReport lists every department student's status for one date.
type DayReport struct {
	Department string     `json:"department"`
	Date       string     `json:"date"`
	Entries    []DayEntry `json:"entries"`
	Marked     int64      `json:"marked"`
	Present    int64      `json:"present"`
	Absent     int64      `json:"absent"`
	NotMarked  int64      `json:"not_marked"`
}

// ExportFile is a generated spreadsheet ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	RegisterTeacher(ctx context.Context, req *validator.TeacherRegisterRequest) (*TeacherInfo, error)
	LoginTeacher(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error)
	LoginStudent(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error)

	// Logout revokes the principal's token id until the token would have
	// expired on its own.
	Logout(ctx context.Context, principal *models.Principal) error

	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RosterService interface {
	CreateStudent(ctx context.Context, department string, req *validator.StudentCreateRequest) (*models.Student, error)
	GetStudent(ctx context.Context, department string, id uint) (*models.Student, error)
	ListStudents(ctx context.Context, department string, course, query string) (*StudentListResult, error)
	UpdateStudent(ctx context.Context, department string, id uint, req *validator.StudentUpdateRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, department string, id uint) error
	SetStudentLogin(ctx context.Context, department string, id uint, req *validator.SetStudentLoginRequest) error
}

type AttendanceService interface {
	// GetSheet returns the marking view for a date, optionally narrowed to one
	// course.
	GetSheet(ctx context.Context, department, date, course string) (*AttendanceSheet, error)

	// Save replaces the date's records for every student in scope: ids in
	// PresentIDs become Present, the rest Absent. Re-saving the same date is
	// idempotent.
	Save(ctx context.Context, principal *models.Principal, req *validator.SaveAttendanceRequest) (*SaveAttendanceResult, error)

	// HistoryForTeacher is the department-scoped view of one student's record.
	HistoryForTeacher(ctx context.Context, department string, studentID uint) (*StudentHistory, error)

	// HistoryForStudent is the student's own dashboard view.
	HistoryForStudent(ctx context.Context, studentID uint) (*StudentHistory, error)
}

type ReportService interface {
	HomeStats(ctx context.Context, department string) (*HomeStats, error)
	Summary(ctx context.Context, department string) (*SummaryReport, error)
	ByDate(ctx context.Context, department, date string) (*DayReport, error)
}

type ExportService interface {
	// SummaryXLSX renders the department summary as a spreadsheet.
	SummaryXLSX(ctx context.Context, department string) (*ExportFile, error)
}

// ServiceManager owns service construction and lifecycle.
type ServiceManager interface {
	Initialize() error
	Auth() AuthService
	Roster() RosterService
	Attendance() AttendanceService
	Report() ReportService
	Export() ExportService
	Shutdown(ctx context.Context) error
}
