package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var rosterHeaders = []string{"Enrollment ID", "Student ID", "First Name", "Last Name", "Email", "Enrolled At"}

// CourseRoster builds an xlsx workbook listing every student enrolled in
// the course, one row per enrollment.
func (s *exportService) CourseRoster(ctx context.Context, courseID uint) ([]byte, string, error) {
	course, err := resolveCourse(ctx, s.repo, courseID)
	if err != nil {
		return nil, "", err
	}

	enrollments, err := s.repo.Enrollment().ListByCourseWithStudents(ctx, course.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load roster: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Roster"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range rosterHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, e := range enrollments {
		row := i + 2
		values := []interface{}{
			e.ID,
			e.StudentID,
			e.Student.FirstName,
			e.Student.LastName,
			e.Student.Email,
			e.EnrolledAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("course_%d_roster.xlsx", course.ID)
	s.logger.Info("Roster exported", "course_id", course.ID, "rows", len(enrollments))
	return buf.Bytes(), filename, nil
}
