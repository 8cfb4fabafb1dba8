package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
)

// fakeRepo is an in-memory Repository for service tests. Only the methods the
// tests exercise have real behavior; everything else returns zero values.
type fakeRepo struct {
	teachers []*models.Teacher
	students []*models.Student
	records  []*models.AttendanceRecord
	totals   []repositories.SummaryRow
	dayRows  []repositories.DayStatusRow

	deleteForDateCalls int
	txCalls            int
}

func (f *fakeRepo) Teacher() repositories.TeacherRepository       { return &fakeTeacherRepo{f} }
func (f *fakeRepo) Student() repositories.StudentRepository       { return &fakeStudentRepo{f} }
func (f *fakeRepo) Attendance() repositories.AttendanceRepository { return &fakeAttendanceRepo{f} }
func (f *fakeRepo) Report() repositories.ReportRepository         { return &fakeReportRepo{f} }

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	f.txCalls++
	return fn(f)
}

func (f *fakeRepo) Ping(ctx context.Context) error { return nil }
func (f *fakeRepo) Close() error                   { return nil }

type fakeTeacherRepo struct{ f *fakeRepo }

func (r *fakeTeacherRepo) Create(_ context.Context, _ *gorm.DB, teacher *models.Teacher) error {
	for _, t := range r.f.teachers {
		if t.Username == teacher.Username {
			return repositories.ErrDuplicateKey
		}
	}
	teacher.ID = uint(len(r.f.teachers) + 1)
	r.f.teachers = append(r.f.teachers, teacher)
	return nil
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.Teacher, error) {
	for _, t := range r.f.teachers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTeacherRepo) GetByUsername(_ context.Context, _ *gorm.DB, username string) (*models.Teacher, error) {
	for _, t := range r.f.teachers {
		if t.Username == username {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeStudentRepo struct{ f *fakeRepo }

func (r *fakeStudentRepo) Create(_ context.Context, _ *gorm.DB, student *models.Student) error {
	student.ID = uint(len(r.f.students) + 1)
	r.f.students = append(r.f.students, student)
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, _ *gorm.DB, id uint, department string) (*models.Student, error) {
	for _, s := range r.f.students {
		if s.ID == id && s.Department == department {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) GetSelf(_ context.Context, _ *gorm.DB, id uint) (*models.Student, error) {
	for _, s := range r.f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) GetByLoginUsername(_ context.Context, _ *gorm.DB, username string) (*models.Student, error) {
	for _, s := range r.f.students {
		if s.StudentUsername != nil && *s.StudentUsername == username {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) List(_ context.Context, _ *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range r.f.students {
		if s.Department != filters.Department {
			continue
		}
		if filters.Course != nil && s.Course != *filters.Course {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, _ *gorm.DB, _ *models.Student) error { return nil }

func (r *fakeStudentRepo) Delete(_ context.Context, _ *gorm.DB, id uint, department string) error {
	kept := r.f.students[:0]
	for _, s := range r.f.students {
		if s.ID == id && s.Department == department {
			continue
		}
		kept = append(kept, s)
	}
	r.f.students = kept
	return nil
}

func (r *fakeStudentRepo) SetLogin(_ context.Context, _ *gorm.DB, id uint, department, username, passwordHash string) error {
	for _, s := range r.f.students {
		if s.ID == id && s.Department == department {
			s.StudentUsername = &username
			s.StudentPasswordHash = &passwordHash
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeStudentRepo) DistinctCourses(_ context.Context, _ *gorm.DB, department string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, s := range r.f.students {
		if s.Department == department && s.Course != "" && !seen[s.Course] {
			seen[s.Course] = true
			out = append(out, s.Course)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) CountByDepartment(_ context.Context, _ *gorm.DB, department string) (int64, error) {
	var n int64
	for _, s := range r.f.students {
		if s.Department == department {
			n++
		}
	}
	return n, nil
}

type fakeAttendanceRepo struct{ f *fakeRepo }

func (r *fakeAttendanceRepo) ListByStudent(_ context.Context, _ *gorm.DB, studentID uint) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, rec := range r.f.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) DeleteForDate(_ context.Context, _ *gorm.DB, date string, studentIDs []uint) error {
	r.f.deleteForDateCalls++
	ids := map[uint]bool{}
	for _, id := range studentIDs {
		ids[id] = true
	}
	kept := r.f.records[:0]
	for _, rec := range r.f.records {
		if rec.Date == date && ids[rec.StudentID] {
			continue
		}
		kept = append(kept, rec)
	}
	r.f.records = kept
	return nil
}

func (r *fakeAttendanceRepo) CreateBatch(_ context.Context, _ *gorm.DB, records []*models.AttendanceRecord) error {
	r.f.records = append(r.f.records, records...)
	return nil
}

type fakeReportRepo struct{ f *fakeRepo }

func (r *fakeReportRepo) StudentTotals(_ context.Context, _ *gorm.DB, _ string) ([]repositories.SummaryRow, error) {
	return r.f.totals, nil
}

func (r *fakeReportRepo) DayStatuses(_ context.Context, _ *gorm.DB, _, _ string) ([]repositories.DayStatusRow, error) {
	return r.f.dayRows, nil
}

func (r *fakeReportRepo) CountMarkedOn(_ context.Context, _ *gorm.DB, date, department string) (int64, error) {
	var n int64
	for _, rec := range r.f.records {
		if rec.Date == date {
			n++
		}
	}
	return n, nil
}

func (r *fakeReportRepo) CountPresentOn(_ context.Context, _ *gorm.DB, date, department string) (int64, error) {
	var n int64
	for _, rec := range r.f.records {
		if rec.Date == date && rec.Status == models.StatusPresent {
			n++
		}
	}
	return n, nil
}

func (r *fakeReportRepo) CountRecords(_ context.Context, _ *gorm.DB, _ string) (int64, error) {
	return int64(len(r.f.records)), nil
}
