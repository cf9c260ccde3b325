package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

var lessonSortColumns = map[string]bool{
	"created_at": true,
	"title":      true,
}

type LessonPostgreSQL struct {
	db *gorm.DB
}

func NewLessonPostgreSQL(db *gorm.DB) repositories.LessonRepository {
	return &LessonPostgreSQL{db: db}
}

func (r *LessonPostgreSQL) Create(ctx context.Context, lesson *models.Lesson) error {
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

func (r *LessonPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonPostgreSQL) Update(ctx context.Context, lesson *models.Lesson) error {
	if err := r.db.WithContext(ctx).Save(lesson).Error; err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}
	return nil
}

func (r *LessonPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Lesson{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lesson: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LessonPostgreSQL) List(ctx context.Context, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Lesson{})
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	var lessons []*models.Lesson
	if err := applyPageFilters(query, filters.PageFilters, lessonSortColumns, "created_at").Find(&lessons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list lessons: %w", err)
	}

	return lessons, total, nil
}

func (r *LessonPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("id asc").Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("failed to list lessons by course: %w", err)
	}
	return lessons, nil
}

func (r *LessonPostgreSQL) GetByTitleAndCourse(ctx context.Context, title string, courseID uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).Where("title = ? AND course_id = ?", title, courseID).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonPostgreSQL) DeleteByCourse(ctx context.Context, courseID uint) error {
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Delete(&models.Lesson{}).Error; err != nil {
		return fmt.Errorf("failed to delete lessons by course: %w", err)
	}
	return nil
}
