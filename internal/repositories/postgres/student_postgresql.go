package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *studentRepository) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint, department string) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).
		Where("id = ? AND department = ?", id, department).
		First(&student).Error; err != nil {
		return nil, handleDBError(err, "get student by id")
	}
	return &student, nil
}

func (r *studentRepository) GetSelf(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, handleDBError(err, "get student")
	}
	return &student, nil
}

func (r *studentRepository) GetByLoginUsername(ctx context.Context, tx *gorm.DB, username string) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).
		Where("student_username = ?", username).
		First(&student).Error; err != nil {
		return nil, handleDBError(err, "get student by login username")
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, error) {
	db := r.getDB(tx)
	var students []*models.Student

	query := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("department = ?", filters.Department)

	if filters.Course != nil && *filters.Course != "" {
		query = query.Where("course = ?", *filters.Course)
	}
	if filters.Query != nil && *filters.Query != "" {
		like := "%" + *filters.Query + "%"
		query = query.Where("roll_no ILIKE ? OR name ILIKE ? OR course ILIKE ?", like, like, like)
	}

	if filters.OrderByCourse {
		query = query.Order("course, roll_no")
	} else {
		query = query.Order("roll_no")
	}

	if err := query.Find(&students).Error; err != nil {
		return nil, handleDBError(err, "list students")
	}
	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(student).Error; err != nil {
		return handleDBError(err, "update student")
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, tx *gorm.DB, id uint, department string) error {
	db := r.getDB(tx)

	// Zero rows affected is success: deleting a nonexistent or
	// foreign-department id is a silent no-op.
	if err := db.WithContext(ctx).
		Where("id = ? AND department = ?", id, department).
		Delete(&models.Student{}).Error; err != nil {
		return handleDBError(err, "delete student")
	}
	return nil
}

func (r *studentRepository) SetLogin(ctx context.Context, tx *gorm.DB, id uint, department, username, passwordHash string) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ? AND department = ?", id, department).
		Updates(map[string]interface{}{
			"student_username":      username,
			"student_password_hash": passwordHash,
		})
	if result.Error != nil {
		return handleDBError(result.Error, "set student login")
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *studentRepository) DistinctCourses(ctx context.Context, tx *gorm.DB, department string) ([]string, error) {
	db := r.getDB(tx)
	var courses []string

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("department = ? AND course <> ''", department).
		Distinct("course").
		Order("course").
		Pluck("course", &courses).Error; err != nil {
		return nil, handleDBError(err, "list distinct courses")
	}
	return courses, nil
}

func (r *studentRepository) CountByDepartment(ctx context.Context, tx *gorm.DB, department string) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("department = ?", department).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count students")
	}
	return count, nil
}
