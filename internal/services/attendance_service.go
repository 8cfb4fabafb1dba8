package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/events"
	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
	"github.com/campus-track/attendance-service/internal/utils"
	"github.com/campus-track/attendance-service/internal/validator"
)

type attendanceService struct {
	repo      repositories.Repository
	reports   *cache.CacheHelper
	publisher events.EventPublisher
	validator *validator.Validator
	logger    utils.Logger
}

func NewAttendanceService(
	repo repositories.Repository,
	reports *cache.CacheHelper,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger utils.Logger,
) AttendanceService {
	return &attendanceService{
		repo:      repo,
		reports:   reports,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

func (s *attendanceService) GetSheet(ctx context.Context, department, date, course string) (*AttendanceSheet, error) {
	courses, err := s.repo.Student().DistinctCourses(ctx, nil, department)
	if err != nil {
		return nil, err
	}

	// The sheet stays empty until a course is picked.
	if course == "" {
		return &AttendanceSheet{Date: date, Courses: courses, Entries: []SheetEntry{}}, nil
	}

	students, err := s.repo.Student().List(ctx, nil, repositories.StudentFilters{
		Department: department,
		Course:     &course,
	})
	if err != nil {
		return nil, err
	}

	// Pre-fill statuses already recorded for the date so a re-opened sheet
	// shows what was saved. Keyed by student id; roll numbers are free text
	// and not guaranteed unique across the department.
	recorded := map[uint]models.AttendanceStatus{}
	if date != "" {
		rows, err := s.repo.Report().DayStatuses(ctx, nil, date, department)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.Status != nil {
				recorded[row.StudentID] = models.AttendanceStatus(*row.Status)
			}
		}
	}

	entries := make([]SheetEntry, 0, len(students))
	for _, st := range students {
		status, ok := recorded[st.ID]
		if !ok {
			status = models.StatusNotMarked
		}
		entries = append(entries, SheetEntry{Student: st, Status: status})
	}

	return &AttendanceSheet{Date: date, Course: course, Courses: courses, Entries: entries}, nil
}

func (s *attendanceService) Save(ctx context.Context, principal *models.Principal, req *validator.SaveAttendanceRequest) (*SaveAttendanceResult, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	filters := repositories.StudentFilters{Department: principal.Department}
	if req.Course != "" {
		filters.Course = &req.Course
	}
	students, err := s.repo.Student().List(ctx, nil, filters)
	if err != nil {
		return nil, err
	}

	present := make(map[uint]bool, len(req.PresentIDs))
	for _, id := range req.PresentIDs {
		present[id] = true
	}

	studentIDs := make([]uint, 0, len(students))
	records := make([]*models.AttendanceRecord, 0, len(students))
	presentCount := 0
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)

		status := models.StatusAbsent
		if present[st.ID] {
			status = models.StatusPresent
			presentCount++
		}
		records = append(records, &models.AttendanceRecord{
			StudentID: st.ID,
			Date:      req.Date,
			Status:    status,
		})
	}

	// Delete-then-reinsert inside one transaction keeps re-saves of the same
	// date idempotent.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Attendance().DeleteForDate(ctx, nil, req.Date, studentIDs); err != nil {
			return err
		}
		return tx.Attendance().CreateBatch(ctx, nil, records)
	})
	if err != nil {
		return nil, err
	}

	result := &SaveAttendanceResult{
		Date:         req.Date,
		Course:       req.Course,
		PresentCount: presentCount,
		AbsentCount:  len(students) - presentCount,
	}

	s.invalidateReports(ctx, principal.Department)
	s.publishSaved(ctx, principal, result)

	s.logger.Info("attendance saved",
		"department", principal.Department,
		"date", req.Date,
		"present", result.PresentCount,
		"absent", result.AbsentCount,
	)
	return result, nil
}

func (s *attendanceService) HistoryForTeacher(ctx context.Context, department string, studentID uint) (*StudentHistory, error) {
	student, err := s.repo.Student().GetByID(ctx, nil, studentID, department)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, studentID)
		}
		return nil, err
	}
	return s.buildHistory(ctx, student)
}

func (s *attendanceService) HistoryForStudent(ctx context.Context, studentID uint) (*StudentHistory, error) {
	student, err := s.repo.Student().GetSelf(ctx, nil, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, studentID)
		}
		return nil, err
	}
	return s.buildHistory(ctx, student)
}

func (s *attendanceService) buildHistory(ctx context.Context, student *models.Student) (*StudentHistory, error) {
	records, err := s.repo.Attendance().ListByStudent(ctx, nil, student.ID)
	if err != nil {
		return nil, err
	}

	presents := 0
	for _, r := range records {
		if r.Status == models.StatusPresent {
			presents++
		}
	}
	total := len(records)

	return &StudentHistory{
		Student:    student,
		Records:    records,
		Presents:   presents,
		Absents:    total - presents,
		TotalDays:  total,
		Percentage: attendancePercentage(int64(presents), int64(total)),
		Category:   categorize(int64(presents), int64(total)),
	}, nil
}

func (s *attendanceService) invalidateReports(ctx context.Context, department string) {
	for _, key := range reportCacheKeys(department) {
		if err := s.reports.Delete(ctx, key); err != nil {
			s.logger.Warn("report cache invalidation failed", "key", key, "error", err)
		}
	}
}

func (s *attendanceService) publishSaved(ctx context.Context, principal *models.Principal, result *SaveAttendanceResult) {
	if s.publisher == nil {
		return
	}
	event := events.NewEvent(events.TypeAttendanceSaved, events.AttendanceSavedEvent{
		Department:   principal.Department,
		Course:       result.Course,
		Date:         result.Date,
		PresentCount: result.PresentCount,
		AbsentCount:  result.AbsentCount,
		SavedBy:      principal.TeacherID,
	})
	if err := s.publisher.Publish(ctx, events.TopicAttendance, event); err != nil {
		s.logger.Warn("event publish failed", "type", events.TypeAttendanceSaved, "error", err)
	}
}
