package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
	"github.com/campus-track/attendance-service/internal/utils"
	"github.com/campus-track/attendance-service/internal/validator"
)

type rosterService struct {
	repo      repositories.Repository
	reports   *cache.CacheHelper
	validator *validator.Validator
	logger    utils.Logger
}

func NewRosterService(
	repo repositories.Repository,
	reports *cache.CacheHelper,
	v *validator.Validator,
	logger utils.Logger,
) RosterService {
	return &rosterService{repo: repo, reports: reports, validator: v, logger: logger}
}

func (s *rosterService) CreateStudent(ctx context.Context, department string, req *validator.StudentCreateRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	student := &models.Student{
		RollNo:     req.RollNo,
		Name:       req.Name,
		Email:      req.Email,
		Course:     req.Course,
		Semester:   req.Semester,
		Phone:      req.Phone,
		Department: department,
	}
	if err := s.repo.Student().Create(ctx, nil, student); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, department)
	s.logger.Info("student created", "student_id", student.ID, "department", department)
	return student, nil
}

func (s *rosterService) GetStudent(ctx context.Context, department string, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, nil, id, department)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, id)
		}
		return nil, err
	}
	return student, nil
}

func (s *rosterService) ListStudents(ctx context.Context, department string, course, query string) (*StudentListResult, error) {
	filters := repositories.StudentFilters{Department: department, OrderByCourse: true}
	if course != "" {
		filters.Course = &course
	}
	if query != "" {
		filters.Query = &query
	}

	students, err := s.repo.Student().List(ctx, nil, filters)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.Student().DistinctCourses(ctx, nil, department)
	if err != nil {
		return nil, err
	}

	return &StudentListResult{
		Students: students,
		Courses:  courses,
		Total:    len(students),
	}, nil
}

func (s *rosterService) UpdateStudent(ctx context.Context, department string, id uint, req *validator.StudentUpdateRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	student, err := s.repo.Student().GetByID(ctx, nil, id, department)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, id)
		}
		return nil, err
	}

	student.RollNo = req.RollNo
	student.Name = req.Name
	student.Email = req.Email
	student.Course = req.Course
	student.Semester = req.Semester
	student.Phone = req.Phone

	if err := s.repo.Student().Update(ctx, nil, student); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, department)
	s.logger.Info("student updated", "student_id", student.ID, "department", department)
	return student, nil
}

func (s *rosterService) DeleteStudent(ctx context.Context, department string, id uint) error {
	// Deleting a missing or foreign-department id succeeds silently.
	if err := s.repo.Student().Delete(ctx, nil, id, department); err != nil {
		// The cascade on attendance makes this unreachable in practice, but a
		// constraint failure should surface as a conflict, not a server error.
		if errors.Is(err, repositories.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: student %d has attendance records", ErrConflict, id)
		}
		return err
	}
	s.invalidateReports(ctx, department)
	s.logger.Info("student deleted", "student_id", id, "department", department)
	return nil
}

func (s *rosterService) SetStudentLogin(ctx context.Context, department string, id uint, req *validator.SetStudentLoginRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.StudentPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.Student().SetLogin(ctx, nil, id, department, req.StudentUsername, string(hash)); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("%w: student %d", ErrNotFound, id)
		case errors.Is(err, repositories.ErrDuplicateKey):
			return fmt.Errorf("%w: username already taken", ErrConflict)
		}
		return err
	}

	s.logger.Info("student login provisioned", "student_id", id, "department", department)
	return nil
}

// invalidateReports drops the department's cached report entries after any
// roster mutation. Failures only log; the write already succeeded.
func (s *rosterService) invalidateReports(ctx context.Context, department string) {
	for _, key := range reportCacheKeys(department) {
		if err := s.reports.Delete(ctx, key); err != nil {
			s.logger.Warn("report cache invalidation failed", "key", key, "error", err)
		}
	}
}
