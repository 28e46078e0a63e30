package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeacherPostgreSQL struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{db: db}
}

func (t *TeacherPostgreSQL) List(ctx context.Context) ([]*models.Teacher, error) {
	var recs []TeacherRecord
	if err := t.db.WithContext(ctx).Order("username ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	teachers := make([]*models.Teacher, 0, len(recs))
	for i := range recs {
		teachers = append(teachers, teacherFromRecord(&recs[i]))
	}
	return teachers, nil
}

func (t *TeacherPostgreSQL) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	username = strings.TrimSpace(username)
	var rec TeacherRecord
	err := t.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("teacher %s: %w", username, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return teacherFromRecord(&rec), nil
}

func (t *TeacherPostgreSQL) Upsert(ctx context.Context, teacher *models.Teacher) error {
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(teacherToRecord(teacher)).Error
	if err != nil {
		return fmt.Errorf("failed to save teacher: %w", err)
	}
	return nil
}
