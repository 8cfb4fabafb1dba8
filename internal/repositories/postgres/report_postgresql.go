package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) repositories.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *reportRepository) StudentTotals(ctx context.Context, tx *gorm.DB, department string) ([]repositories.SummaryRow, error) {
	db := r.getDB(tx)
	var rows []repositories.SummaryRow

	if err := db.WithContext(ctx).
		Table("students s").
		Select(`s.id AS student_id,
			s.roll_no,
			s.name,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS presents,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS absents,
			COUNT(a.id) AS total_days`,
			models.StatusPresent, models.StatusAbsent).
		Joins("LEFT JOIN attendance a ON a.student_id = s.id").
		Where("s.department = ?", department).
		Group("s.id, s.roll_no, s.name").
		Order("s.roll_no").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "get student totals")
	}
	return rows, nil
}

func (r *reportRepository) DayStatuses(ctx context.Context, tx *gorm.DB, date, department string) ([]repositories.DayStatusRow, error) {
	db := r.getDB(tx)
	var rows []repositories.DayStatusRow

	if err := db.WithContext(ctx).
		Table("students s").
		Select("s.id AS student_id, s.roll_no, s.name, a.status").
		Joins("LEFT JOIN attendance a ON a.student_id = s.id AND a.date = ?", date).
		Where("s.department = ?", department).
		Order("s.roll_no").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "get day statuses")
	}
	return rows, nil
}

func (r *reportRepository) CountMarkedOn(ctx context.Context, tx *gorm.DB, date, department string) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Table("attendance a").
		Joins("JOIN students s ON a.student_id = s.id").
		Where("a.date = ? AND s.department = ?", date, department).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count marked on date")
	}
	return count, nil
}

func (r *reportRepository) CountPresentOn(ctx context.Context, tx *gorm.DB, date, department string) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Table("attendance a").
		Joins("JOIN students s ON a.student_id = s.id").
		Where("a.date = ? AND s.department = ? AND a.status = ?", date, department, models.StatusPresent).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count present on date")
	}
	return count, nil
}

func (r *reportRepository) CountRecords(ctx context.Context, tx *gorm.DB, department string) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Table("attendance a").
		Joins("JOIN students s ON a.student_id = s.id").
		Where("s.department = ?", department).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count attendance records")
	}
	return count, nil
}
