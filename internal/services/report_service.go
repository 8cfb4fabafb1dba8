package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
	"github.com/campus-track/attendance-service/internal/utils"
)

// Attendance categories derived from a student's percentage.
const (
	CategoryNoData           = "No Data"
	CategoryExcellent        = "Excellent"
	CategoryGood             = "Good"
	CategoryNeedsImprovement = "Needs Improvement"

	// LowAttendanceThreshold is the cutoff below which a student appears on
	// the low-attendance list.
	LowAttendanceThreshold = 75.0
)

type reportService struct {
	repo    repositories.Repository
	reports *cache.CacheHelper
	logger  utils.Logger
}

func NewReportService(repo repositories.Repository, reports *cache.CacheHelper, logger utils.Logger) ReportService {
	return &reportService{repo: repo, reports: reports, logger: logger}
}

func (s *reportService) HomeStats(ctx context.Context, department string) (*HomeStats, error) {
	cacheKey := homeCacheKey(department)

	var cached HomeStats
	if err := s.reports.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	today := time.Now().Format("2006-01-02")

	totalStudents, err := s.repo.Student().CountByDepartment(ctx, nil, department)
	if err != nil {
		return nil, err
	}
	totalRecords, err := s.repo.Report().CountRecords(ctx, nil, department)
	if err != nil {
		return nil, err
	}
	todayMarked, err := s.repo.Report().CountMarkedOn(ctx, nil, today, department)
	if err != nil {
		return nil, err
	}
	todayPresent, err := s.repo.Report().CountPresentOn(ctx, nil, today, department)
	if err != nil {
		return nil, err
	}

	stats := &HomeStats{
		Department:    department,
		TotalStudents: totalStudents,
		TotalRecords:  totalRecords,
		Today:         today,
		TodayMarked:   todayMarked,
		TodayPresent:  todayPresent,
	}
	if todayMarked > 0 && totalStudents > 0 {
		stats.TodayPercentage = roundFloat(float64(todayPresent)/float64(totalStudents)*100, 1)
	}

	s.cacheSet(ctx, cacheKey, stats)
	return stats, nil
}

func (s *reportService) Summary(ctx context.Context, department string) (*SummaryReport, error) {
	cacheKey := summaryCacheKey(department)

	var cached SummaryReport
	if err := s.reports.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	rows, err := s.repo.Report().StudentTotals(ctx, nil, department)
	if err != nil {
		return nil, err
	}
	report := buildSummary(department, rows)

	s.cacheSet(ctx, cacheKey, report)
	return report, nil
}

func (s *reportService) ByDate(ctx context.Context, department, date string) (*DayReport, error) {
	rows, err := s.repo.Report().DayStatuses(ctx, nil, date, department)
	if err != nil {
		return nil, err
	}

	report := &DayReport{
		Department: department,
		Date:       date,
		Entries:    make([]DayEntry, 0, len(rows)),
	}
	for _, row := range rows {
		status := classifyDay(row.Status)
		switch status {
		case models.StatusPresent:
			report.Marked++
			report.Present++
		case models.StatusAbsent:
			report.Marked++
			report.Absent++
		default:
			report.NotMarked++
		}
		report.Entries = append(report.Entries, DayEntry{
			RollNo: row.RollNo,
			Name:   row.Name,
			Status: status,
		})
	}
	return report, nil
}

func (s *reportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.reports.Set(ctx, key, value, cache.ReportCacheConfig.TTL); err != nil && !errors.Is(err, cache.ErrCacheNotAvailable) {
		s.logger.Warn("report cache write failed", "key", key, "error", err)
	}
}

// ===== DERIVATION HELPERS =====

func summaryCacheKey(department string) string { return "summary:" + department }
func homeCacheKey(department string) string    { return "home:" + department }

// reportCacheKeys lists every cached report entry for one department, for
// invalidation after writes.
func reportCacheKeys(department string) []string {
	return []string{summaryCacheKey(department), homeCacheKey(department)}
}

// buildSummary derives percentages and categories from grouped totals and
// splits out the low-attendance list.
func buildSummary(department string, rows []repositories.SummaryRow) *SummaryReport {
	report := &SummaryReport{
		Department:    department,
		Entries:       make([]SummaryEntry, 0, len(rows)),
		LowAttendance: []SummaryEntry{},
	}
	for _, row := range rows {
		entry := SummaryEntry{
			StudentID:  row.StudentID,
			RollNo:     row.RollNo,
			Name:       row.Name,
			Presents:   row.Presents,
			Absents:    row.Absents,
			TotalDays:  row.TotalDays,
			Percentage: attendancePercentage(row.Presents, row.TotalDays),
			Category:   categorize(row.Presents, row.TotalDays),
		}
		report.Entries = append(report.Entries, entry)

		if row.TotalDays > 0 && rawPercentage(row.Presents, row.TotalDays) < LowAttendanceThreshold {
			report.LowAttendance = append(report.LowAttendance, entry)
		}
	}
	return report
}

func rawPercentage(presents, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(presents) / float64(total) * 100
}

// attendancePercentage returns the percentage rounded to one decimal place.
func attendancePercentage(presents, total int64) float64 {
	return roundFloat(rawPercentage(presents, total), 1)
}

// categorize bands a student by their exact percentage, before rounding.
func categorize(presents, total int64) string {
	if total == 0 {
		return CategoryNoData
	}
	pct := rawPercentage(presents, total)
	switch {
	case pct >= 90:
		return CategoryExcellent
	case pct >= 75:
		return CategoryGood
	default:
		return CategoryNeedsImprovement
	}
}

// classifyDay maps a nullable stored status to the reported one.
func classifyDay(status *string) models.AttendanceStatus {
	if status == nil {
		return models.StatusNotMarked
	}
	return models.AttendanceStatus(*status)
}

func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
