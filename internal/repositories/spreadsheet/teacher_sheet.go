package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

type teacherSheet struct {
	w *Workbook
}

func (s *teacherSheet) List(ctx context.Context) ([]*models.Teacher, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	return s.listLocked()
}

func (s *teacherSheet) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	teachers, err := s.listLocked()
	if err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	for _, t := range teachers {
		if t.Username == username {
			return t, nil
		}
	}
	return nil, fmt.Errorf("teacher %s: %w", username, repositories.ErrNotFound)
}

// Upsert replaces the row of an existing username, or appends a new one
func (s *teacherSheet) Upsert(ctx context.Context, teacher *models.Teacher) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	if _, err := s.w.deleteWhere(SheetTeachers, colUsername, teacher.Username); err != nil {
		return err
	}
	r := row{
		colUsername:     teacher.Username,
		colPassword:     teacher.Password,
		colFullName:     teacher.FullName,
		colRole:         string(teacher.Role),
		colTeacherClass: teacher.Class,
	}
	if err := s.w.appendRows(SheetTeachers, []row{r}); err != nil {
		return err
	}
	return s.w.saveLocked()
}

func (s *teacherSheet) listLocked() ([]*models.Teacher, error) {
	records, _, err := s.w.readRecords(SheetTeachers)
	if err != nil {
		return nil, err
	}
	teachers := make([]*models.Teacher, 0, len(records))
	for _, rec := range records {
		role := models.TeacherRole(strings.TrimSpace(rec[colRole]))
		if role == "" {
			role = models.RoleTeacher
		}
		teachers = append(teachers, &models.Teacher{
			Username: strings.TrimSpace(rec[colUsername]),
			Password: strings.TrimSpace(rec[colPassword]),
			FullName: rec[colFullName],
			Role:     role,
			Class:    strings.TrimSpace(rec[colTeacherClass]),
		})
	}
	return teachers, nil
}
