package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// QuizRepository stores quizzes together with their questions
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, error)
	// Update replaces the stored quiz and all of its questions
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error
}

// MatchesQuiz reports whether quiz passes the filters
func (f QuizFilters) MatchesQuiz(quiz *models.Quiz) bool {
	if f.ClassLevel != "" && quiz.ClassLevel != f.ClassLevel {
		return false
	}
	if f.Category != "" && quiz.Category != f.Category {
		return false
	}
	return true
}
