package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests. It counts
// calls per operation so tests can assert that invalid input never reaches
// the store, and returns the same sentinel errors the postgres layer does.
type mockRepository struct {
	mu sync.Mutex

	users       map[uint]*models.User
	courses     map[uint]*models.Course
	lessons     map[uint]*models.Lesson
	enrollments map[uint]*models.Enrollment
	events      []*models.DomainEvent

	nextUserID       uint
	nextCourseID     uint
	nextLessonID     uint
	nextEnrollmentID uint

	calls map[string]int

	// forced errors, keyed by operation name
	failWith map[string]error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:       make(map[uint]*models.User),
		courses:     make(map[uint]*models.Course),
		lessons:     make(map[uint]*models.Lesson),
		enrollments: make(map[uint]*models.Enrollment),
		calls:       make(map[string]int),
		failWith:    make(map[string]error),
	}
}

func (m *mockRepository) record(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	return m.failWith[op]
}

func (m *mockRepository) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockRepository) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *mockRepository) failOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith[op] = err
}

// ===== SEED HELPERS =====

func (m *mockRepository) addUser(user *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		m.nextUserID++
		user.ID = m.nextUserID
	} else if user.ID > m.nextUserID {
		m.nextUserID = user.ID
	}
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = user
	return user
}

func (m *mockRepository) addCourse(course *models.Course) *models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	if course.ID == 0 {
		m.nextCourseID++
		course.ID = m.nextCourseID
	} else if course.ID > m.nextCourseID {
		m.nextCourseID = course.ID
	}
	course.CreatedAt = time.Now().UTC()
	m.courses[course.ID] = course
	return course
}

func (m *mockRepository) addLesson(lesson *models.Lesson) *models.Lesson {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lesson.ID == 0 {
		m.nextLessonID++
		lesson.ID = m.nextLessonID
	}
	m.lessons[lesson.ID] = lesson
	return lesson
}

func (m *mockRepository) addEnrollment(enrollment *models.Enrollment) *models.Enrollment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if enrollment.ID == 0 {
		m.nextEnrollmentID++
		enrollment.ID = m.nextEnrollmentID
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	m.enrollments[enrollment.ID] = enrollment
	return enrollment
}

// ===== AGGREGATOR =====

func (m *mockRepository) User() repositories.UserRepository             { return &mockUserRepo{m} }
func (m *mockRepository) Course() repositories.CourseRepository         { return &mockCourseRepo{m} }
func (m *mockRepository) Lesson() repositories.LessonRepository         { return &mockLessonRepo{m} }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return &mockEnrollmentRepo{m} }
func (m *mockRepository) Event() repositories.EventRepository           { return &mockEventRepo{m} }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	if err := m.record("WithTransaction"); err != nil {
		return err
	}
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error {
	return m.record("Ping")
}

func (m *mockRepository) Close() error { return nil }

// ===== USER =====

type mockUserRepo struct{ m *mockRepository }

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if err := r.m.record("User.Create"); err != nil {
		return err
	}
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.m.addUser(user)
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if err := r.m.record("User.GetByID"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	user, ok := r.m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := r.m.record("User.GetByEmail"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if err := r.m.record("User.Update"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, u := range r.m.users {
		if u.ID != user.ID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *user
	r.m.users[user.ID] = &copied
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, id uint) error {
	if err := r.m.record("User.Delete"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.users, id)
	return nil
}

func (r *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if err := r.m.record("User.List"); err != nil {
		return nil, 0, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, u := range r.m.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *mockUserRepo) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	if err := r.m.record("User.ListByRole"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, u := range r.m.users {
		if u.Role == role {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	if err := r.m.record("User.ExistsByEmail"); err != nil {
		return false, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ===== COURSE =====

type mockCourseRepo struct{ m *mockRepository }

func (r *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if err := r.m.record("Course.Create"); err != nil {
		return err
	}
	r.m.addCourse(course)
	return nil
}

func (r *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	if err := r.m.record("Course.GetByID"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	course, ok := r.m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *course
	return &copied, nil
}

func (r *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if err := r.m.record("Course.Update"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *course
	r.m.courses[course.ID] = &copied
	return nil
}

func (r *mockCourseRepo) Delete(ctx context.Context, id uint) error {
	if err := r.m.record("Course.Delete"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.courses, id)
	return nil
}

func (r *mockCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	if err := r.m.record("Course.List"); err != nil {
		return nil, 0, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Course
	for _, c := range r.m.courses {
		if filters.TeacherID != nil && c.TeacherID != *filters.TeacherID {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *mockCourseRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	if err := r.m.record("Course.ListByTeacher"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Course
	for _, c := range r.m.courses {
		if c.TeacherID == teacherID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockCourseRepo) SearchByTitle(ctx context.Context, keyword string, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	if err := r.m.record("Course.SearchByTitle"); err != nil {
		return nil, 0, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Course
	for _, c := range r.m.courses {
		if strings.Contains(strings.ToLower(c.Title), strings.ToLower(keyword)) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockCourseRepo) DeleteByTeacher(ctx context.Context, teacherID uint) error {
	if err := r.m.record("Course.DeleteByTeacher"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, c := range r.m.courses {
		if c.TeacherID == teacherID {
			delete(r.m.courses, id)
		}
	}
	return nil
}

// ===== LESSON =====

type mockLessonRepo struct{ m *mockRepository }

func (r *mockLessonRepo) Create(ctx context.Context, lesson *models.Lesson) error {
	if err := r.m.record("Lesson.Create"); err != nil {
		return err
	}
	r.m.mu.Lock()
	for _, l := range r.m.lessons {
		if l.Title == lesson.Title && l.CourseID == lesson.CourseID {
			r.m.mu.Unlock()
			return gorm.ErrDuplicatedKey
		}
	}
	r.m.mu.Unlock()
	r.m.addLesson(lesson)
	return nil
}

func (r *mockLessonRepo) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	if err := r.m.record("Lesson.GetByID"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	lesson, ok := r.m.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (r *mockLessonRepo) Update(ctx context.Context, lesson *models.Lesson) error {
	if err := r.m.record("Lesson.Update"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.lessons[lesson.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, l := range r.m.lessons {
		if l.ID != lesson.ID && l.Title == lesson.Title && l.CourseID == lesson.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *lesson
	r.m.lessons[lesson.ID] = &copied
	return nil
}

func (r *mockLessonRepo) Delete(ctx context.Context, id uint) error {
	if err := r.m.record("Lesson.Delete"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.lessons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.lessons, id)
	return nil
}

func (r *mockLessonRepo) List(ctx context.Context, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	if err := r.m.record("Lesson.List"); err != nil {
		return nil, 0, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Lesson
	for _, l := range r.m.lessons {
		if filters.CourseID != nil && l.CourseID != *filters.CourseID {
			continue
		}
		copied := *l
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *mockLessonRepo) ListByCourse(ctx context.Context, courseID uint) ([]*models.Lesson, error) {
	if err := r.m.record("Lesson.ListByCourse"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Lesson
	for _, l := range r.m.lessons {
		if l.CourseID == courseID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockLessonRepo) GetByTitleAndCourse(ctx context.Context, title string, courseID uint) (*models.Lesson, error) {
	if err := r.m.record("Lesson.GetByTitleAndCourse"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, l := range r.m.lessons {
		if l.Title == title && l.CourseID == courseID {
			copied := *l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockLessonRepo) DeleteByCourse(ctx context.Context, courseID uint) error {
	if err := r.m.record("Lesson.DeleteByCourse"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, l := range r.m.lessons {
		if l.CourseID == courseID {
			delete(r.m.lessons, id)
		}
	}
	return nil
}

// ===== ENROLLMENT =====

type mockEnrollmentRepo struct{ m *mockRepository }

func (r *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.m.record("Enrollment.Create"); err != nil {
		return err
	}
	r.m.mu.Lock()
	for _, e := range r.m.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			r.m.mu.Unlock()
			return gorm.ErrDuplicatedKey
		}
	}
	r.m.mu.Unlock()
	r.m.addEnrollment(enrollment)
	return nil
}

func (r *mockEnrollmentRepo) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	if err := r.m.record("Enrollment.GetByID"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	enrollment, ok := r.m.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *enrollment
	return &copied, nil
}

func (r *mockEnrollmentRepo) Update(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.m.record("Enrollment.Update"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.enrollments[enrollment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, e := range r.m.enrollments {
		if e.ID != enrollment.ID && e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *enrollment
	r.m.enrollments[enrollment.ID] = &copied
	return nil
}

func (r *mockEnrollmentRepo) Delete(ctx context.Context, id uint) error {
	if err := r.m.record("Enrollment.Delete"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.enrollments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.enrollments, id)
	return nil
}

func (r *mockEnrollmentRepo) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	if err := r.m.record("Enrollment.List"); err != nil {
		return nil, 0, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Enrollment
	for _, e := range r.m.enrollments {
		if filters.StudentID != nil && e.StudentID != *filters.StudentID {
			continue
		}
		if filters.CourseID != nil && e.CourseID != *filters.CourseID {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	if err := r.m.record("Enrollment.ListByStudent"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Enrollment
	for _, e := range r.m.enrollments {
		if e.StudentID == studentID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockEnrollmentRepo) ListByCourse(ctx context.Context, courseID uint) ([]*models.Enrollment, error) {
	if err := r.m.record("Enrollment.ListByCourse"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Enrollment
	for _, e := range r.m.enrollments {
		if e.CourseID == courseID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockEnrollmentRepo) ListByCourseWithStudents(ctx context.Context, courseID uint) ([]*models.Enrollment, error) {
	if err := r.m.record("Enrollment.ListByCourseWithStudents"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Enrollment
	for _, e := range r.m.enrollments {
		if e.CourseID == courseID {
			copied := *e
			if student, ok := r.m.users[e.StudentID]; ok {
				s := *student
				copied.Student = &s
			}
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockEnrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	if err := r.m.record("Enrollment.GetByStudentAndCourse"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, e := range r.m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockEnrollmentRepo) DeleteByStudent(ctx context.Context, studentID uint) error {
	if err := r.m.record("Enrollment.DeleteByStudent"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, e := range r.m.enrollments {
		if e.StudentID == studentID {
			delete(r.m.enrollments, id)
		}
	}
	return nil
}

func (r *mockEnrollmentRepo) DeleteByCourse(ctx context.Context, courseID uint) error {
	if err := r.m.record("Enrollment.DeleteByCourse"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, e := range r.m.enrollments {
		if e.CourseID == courseID {
			delete(r.m.enrollments, id)
		}
	}
	return nil
}

// ===== EVENTS =====

type mockEventRepo struct{ m *mockRepository }

func (r *mockEventRepo) Create(ctx context.Context, event *models.DomainEvent) error {
	if err := r.m.record("Event.Create"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.events = append(r.m.events, event)
	return nil
}
