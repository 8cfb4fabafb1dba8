package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/validator"
)

func newRosterService(repo *fakeRepo) RosterService {
	return NewRosterService(repo, cache.NewCacheHelper(nil, "report:"), validator.New(), testLogger())
}

func TestCreateStudentForcesDepartment(t *testing.T) {
	repo := &fakeRepo{}
	svc := newRosterService(repo)

	student, err := svc.CreateStudent(context.Background(), "CS", &validator.StudentCreateRequest{
		RollNo: "CS01",
		Name:   "A",
		Course: "BCA",
	})
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if student.Department != "CS" {
		t.Errorf("expected department CS, got %s", student.Department)
	}
}

func TestGetStudentCrossDepartmentIsNotFound(t *testing.T) {
	repo := &fakeRepo{
		students: []*models.Student{{ID: 1, RollNo: "EE01", Name: "X", Department: "EE"}},
	}
	svc := newRosterService(repo)

	if _, err := svc.GetStudent(context.Background(), "CS", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteStudentIsSilentNoOp(t *testing.T) {
	repo := &fakeRepo{
		students: []*models.Student{{ID: 1, RollNo: "CS01", Name: "A", Department: "CS"}},
	}
	svc := newRosterService(repo)
	ctx := context.Background()

	// Deleting a missing id succeeds.
	if err := svc.DeleteStudent(ctx, "CS", 99); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	// Deleting across departments succeeds without touching the row.
	if err := svc.DeleteStudent(ctx, "EE", 1); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if len(repo.students) != 1 {
		t.Fatal("foreign-department delete must not remove the row")
	}

	if err := svc.DeleteStudent(ctx, "CS", 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(repo.students) != 0 {
		t.Fatal("expected the row to be gone")
	}
}

func TestSetStudentLoginScopesDepartment(t *testing.T) {
	repo := &fakeRepo{
		students: []*models.Student{{ID: 1, RollNo: "CS01", Name: "A", Department: "CS"}},
	}
	svc := newRosterService(repo)
	ctx := context.Background()

	req := &validator.SetStudentLoginRequest{StudentUsername: "stud01", StudentPassword: "pass1234"}

	if err := svc.SetStudentLogin(ctx, "EE", 1, req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across departments, got %v", err)
	}

	if err := svc.SetStudentLogin(ctx, "CS", 1, req); err != nil {
		t.Fatalf("SetStudentLogin failed: %v", err)
	}
	if !repo.students[0].HasLogin() {
		t.Error("expected credentials to be provisioned")
	}
}

func TestListStudentsIncludesCourseFilterValues(t *testing.T) {
	repo := &fakeRepo{
		students: []*models.Student{
			{ID: 1, RollNo: "CS01", Name: "A", Course: "BCA", Department: "CS"},
			{ID: 2, RollNo: "CS02", Name: "B", Course: "MCA", Department: "CS"},
			{ID: 3, RollNo: "EE01", Name: "X", Course: "EEE", Department: "EE"},
		},
	}
	svc := newRosterService(repo)

	result, err := svc.ListStudents(context.Background(), "CS", "", "")
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("expected 2 students, got %d", result.Total)
	}
	if len(result.Courses) != 2 {
		t.Errorf("expected 2 courses, got %v", result.Courses)
	}
}
