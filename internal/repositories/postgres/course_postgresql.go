package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mateoAlonso06/educatech-api/internal/cache"
	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

var courseSortColumns = map[string]bool{
	"created_at": true,
	"title":      true,
}

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.List, "courses:*")
	return nil
}

// GetByID retrieves a course by ID with read-through caching
func (r *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var course models.Course

	err := r.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := r.db.WithContext(ctx).First(&dbCourse, id).Error; err != nil {
			return nil, err
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	cache.InvalidateCourseCache(ctx, r.cacheManager, course.ID)
	return nil
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateCourseCache(ctx, r.cacheManager, id)
	return nil
}

func (r *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var courses []*models.Course
	if err := applyPageFilters(query, filters.PageFilters, courseSortColumns, "created_at").Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

func (r *CoursePostgreSQL) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	var courses []*models.Course
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Order("title asc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses by teacher: %w", err)
	}
	return courses, nil
}

// SearchByTitle performs a case-insensitive substring match on the title
func (r *CoursePostgreSQL) SearchByTitle(ctx context.Context, keyword string, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{}).
		Where("title ILIKE ?", "%"+escapeLikePattern(keyword)+"%")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count course search results: %w", err)
	}

	var courses []*models.Course
	if err := applyPageFilters(query, filters.PageFilters, courseSortColumns, "created_at").Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search courses: %w", err)
	}

	return courses, total, nil
}

func (r *CoursePostgreSQL) DeleteByTeacher(ctx context.Context, teacherID uint) error {
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Delete(&models.Course{}).Error; err != nil {
		return fmt.Errorf("failed to delete courses by teacher: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Course, "id:*")
	cache.SafeInvalidatePattern(ctx, r.cacheManager.List, "courses:*")
	return nil
}
