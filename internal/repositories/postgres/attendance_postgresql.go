package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
)

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) repositories.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.AttendanceRecord, error) {
	db := r.getDB(tx)
	var records []*models.AttendanceRecord

	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, handleDBError(err, "list attendance by student")
	}
	return records, nil
}

func (r *attendanceRepository) DeleteForDate(ctx context.Context, tx *gorm.DB, date string, studentIDs []uint) error {
	if len(studentIDs) == 0 {
		return nil
	}

	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Where("date = ? AND student_id IN ?", date, studentIDs).
		Delete(&models.AttendanceRecord{}).Error; err != nil {
		return handleDBError(err, "delete attendance for date")
	}
	return nil
}

func (r *attendanceRepository) CreateBatch(ctx context.Context, tx *gorm.DB, records []*models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(&records).Error; err != nil {
		return handleDBError(err, "create attendance batch")
	}
	return nil
}
