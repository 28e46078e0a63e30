package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

// Create inserts a quiz, failing with ErrDuplicate when the id is taken
func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	rec, err := quizToRecord(quiz)
	if err != nil {
		return err
	}
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&QuizRecord{}).Where("id = ?", quiz.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check quiz id: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("quiz %s: %w", quiz.ID, repositories.ErrDuplicate)
		}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		return nil
	})
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	var rec QuizRecord
	err := q.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("quiz %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quizFromRecord(&rec)
}

func (q *QuizPostgreSQL) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	query := q.db.WithContext(ctx).Model(&QuizRecord{})
	if filters.ClassLevel != "" {
		query = query.Where("class_level = ?", filters.ClassLevel)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	var recs []QuizRecord
	if err := query.Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes := make([]*models.Quiz, 0, len(recs))
	for i := range recs {
		quiz, err := quizFromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func (q *QuizPostgreSQL) Update(ctx context.Context, quiz *models.Quiz) error {
	rec, err := quizToRecord(quiz)
	if err != nil {
		return err
	}
	result := q.db.WithContext(ctx).Model(&QuizRecord{}).Where("id = ?", quiz.ID).Updates(map[string]interface{}{
		"title":        rec.Title,
		"class_level":  rec.ClassLevel,
		"category":     rec.Category,
		"time_limit":   rec.TimeLimit,
		"access_code":  rec.AccessCode,
		"require_code": rec.RequireCode,
		"questions":    rec.Questions,
		"created_at":   rec.CreatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update quiz: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("quiz %s: %w", quiz.ID, repositories.ErrNotFound)
	}
	return nil
}

func (q *QuizPostgreSQL) Delete(ctx context.Context, id string) error {
	result := q.db.WithContext(ctx).Where("id = ?", id).Delete(&QuizRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete quiz: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("quiz %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}
