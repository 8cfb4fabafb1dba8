package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
)

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) repositories.TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *teacherRepository) Create(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(teacher).Error; err != nil {
		return handleDBError(err, "create teacher")
	}
	return nil
}

func (r *teacherRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Teacher, error) {
	db := r.getDB(tx)
	var teacher models.Teacher

	if err := db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, handleDBError(err, "get teacher by id")
	}
	return &teacher, nil
}

func (r *teacherRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.Teacher, error) {
	db := r.getDB(tx)
	var teacher models.Teacher

	if err := db.WithContext(ctx).
		Where("username = ?", username).
		First(&teacher).Error; err != nil {
		return nil, handleDBError(err, "get teacher by username")
	}
	return &teacher, nil
}
