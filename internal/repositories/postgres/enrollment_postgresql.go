package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

var enrollmentSortColumns = map[string]bool{
	"enrolled_at": true,
	"id":          true,
}

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (r *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	// No wrapping here: the service layer needs to see gorm.ErrDuplicatedKey
	// when the (student, course) unique index fires under a race.
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *EnrollmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) Update(ctx context.Context, enrollment *models.Enrollment) error {
	// EnrolledAt carries <-:create and is never rewritten by Save
	return r.db.WithContext(ctx).Save(enrollment).Error
}

func (r *EnrollmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Enrollment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete enrollment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EnrollmentPostgreSQL) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Enrollment{})
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	var enrollments []*models.Enrollment
	if err := applyPageFilters(query, filters.PageFilters, enrollmentSortColumns, "enrolled_at").Find(&enrollments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return enrollments, total, nil
}

func (r *EnrollmentPostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments by student: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments by course: %w", err)
	}
	return enrollments, nil
}

// ListByCourseWithStudents preloads the student rows for roster export
func (r *EnrollmentPostgreSQL) ListByCourseWithStudents(ctx context.Context, courseID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("course_id = ?", courseID).
		Order("enrolled_at asc").
		Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments with students: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentPostgreSQL) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) DeleteByStudent(ctx context.Context, studentID uint) error {
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.Enrollment{}).Error; err != nil {
		return fmt.Errorf("failed to delete enrollments by student: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) DeleteByCourse(ctx context.Context, courseID uint) error {
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
		return fmt.Errorf("failed to delete enrollments by course: %w", err)
	}
	return nil
}
