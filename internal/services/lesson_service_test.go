package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

func newTestLessonService(t *testing.T) (LessonService, *mockRepository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	service := NewLessonService(repo, logger, validator.New())
	return service, repo
}

func seedCourse(repo *mockRepository) *models.Course {
	teacher := repo.addUser(&models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Role:      models.RoleTeacher,
	})
	return repo.addCourse(&models.Course{
		Title:       "Compilers",
		Description: "From source to machine code",
		TeacherID:   teacher.ID,
	})
}

func TestLessonService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates lesson in an existing course", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)

		resp, err := service.Create(ctx, &CreateLessonRequest{
			Title:    "Lexing",
			Content:  "Tokens and lexemes",
			CourseID: course.ID,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if resp.CourseID != course.ID {
			t.Errorf("Expected course %d, got %d", course.ID, resp.CourseID)
		}
	})

	t.Run("duplicate title within a course is a conflict", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)
		repo.addLesson(&models.Lesson{Title: "Lexing", Content: "Tokens", CourseID: course.ID})

		_, err := service.Create(ctx, &CreateLessonRequest{
			Title:    "Lexing",
			Content:  "Other content",
			CourseID: course.ID,
		})
		if !IsConflict(err) {
			t.Fatalf("Expected conflict, got %v", err)
		}
	})

	t.Run("same title in another course is allowed", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)
		other := repo.addCourse(&models.Course{
			Title:       "Databases",
			Description: "Relational theory",
			TeacherID:   course.TeacherID,
		})
		repo.addLesson(&models.Lesson{Title: "Lexing", Content: "Tokens", CourseID: course.ID})

		if _, err := service.Create(ctx, &CreateLessonRequest{
			Title:    "Lexing",
			Content:  "Tokens",
			CourseID: other.ID,
		}); err != nil {
			t.Fatalf("Cross-course duplicate title should be allowed, got %v", err)
		}
	})

	t.Run("unknown course is not found", func(t *testing.T) {
		service, _ := newTestLessonService(t)
		_, err := service.Create(ctx, &CreateLessonRequest{
			Title:    "Lexing",
			Content:  "Tokens",
			CourseID: 404,
		})
		if !IsNotFound(err) {
			t.Fatalf("Expected not found, got %v", err)
		}
	})
}

func TestLessonService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("lesson may keep its own title", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)
		lesson := repo.addLesson(&models.Lesson{Title: "Lexing", Content: "Tokens", CourseID: course.ID})

		resp, err := service.Update(ctx, lesson.ID, &UpdateLessonRequest{
			Title:    "Lexing",
			Content:  "Tokens, revisited",
			CourseID: course.ID,
		})
		if err != nil {
			t.Fatalf("Self-title update should succeed, got %v", err)
		}
		if resp.Content != "Tokens, revisited" {
			t.Errorf("Content was not replaced: %+v", resp)
		}
	})

	t.Run("taking a sibling lesson's title is a conflict", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)
		repo.addLesson(&models.Lesson{Title: "Parsing", Content: "Grammars", CourseID: course.ID})
		lesson := repo.addLesson(&models.Lesson{Title: "Lexing", Content: "Tokens", CourseID: course.ID})

		_, err := service.Update(ctx, lesson.ID, &UpdateLessonRequest{
			Title:    "Parsing",
			Content:  "Tokens",
			CourseID: course.ID,
		})
		if !IsConflict(err) {
			t.Fatalf("Expected conflict, got %v", err)
		}
	})

	t.Run("can move to another course when the title is free there", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)
		other := repo.addCourse(&models.Course{
			Title:       "Databases",
			Description: "Relational theory",
			TeacherID:   course.TeacherID,
		})
		lesson := repo.addLesson(&models.Lesson{Title: "Lexing", Content: "Tokens", CourseID: course.ID})

		resp, err := service.Update(ctx, lesson.ID, &UpdateLessonRequest{
			Title:    "Lexing",
			Content:  "Tokens",
			CourseID: other.ID,
		})
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if resp.CourseID != other.ID {
			t.Errorf("Expected course %d, got %d", other.ID, resp.CourseID)
		}
	})
}

func TestLessonService_DeleteAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("delete then get is not found", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)
		lesson := repo.addLesson(&models.Lesson{Title: "Lexing", Content: "Tokens", CourseID: course.ID})

		if err := service.Delete(ctx, lesson.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := service.GetByID(ctx, lesson.ID); !IsNotFound(err) {
			t.Fatalf("Expected not found, got %v", err)
		}
	})

	t.Run("list by course requires an existing course", func(t *testing.T) {
		service, _ := newTestLessonService(t)
		if _, err := service.ListByCourse(ctx, 404); !IsNotFound(err) {
			t.Fatalf("Expected not found, got %v", err)
		}
	})

	t.Run("list by course returns its lessons", func(t *testing.T) {
		service, repo := newTestLessonService(t)
		course := seedCourse(repo)
		repo.addLesson(&models.Lesson{Title: "Lexing", Content: "Tokens", CourseID: course.ID})
		repo.addLesson(&models.Lesson{Title: "Parsing", Content: "Grammars", CourseID: course.ID})

		out, err := service.ListByCourse(ctx, course.ID)
		if err != nil {
			t.Fatalf("ListByCourse failed: %v", err)
		}
		if len(out) != 2 {
			t.Errorf("Expected 2 lessons, got %d", len(out))
		}
	})
}
