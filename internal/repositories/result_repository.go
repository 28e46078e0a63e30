package repositories

import (
	"context"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// ResultRepository is append-only: results are never updated
type ResultRepository interface {
	Create(ctx context.Context, result *models.StudentResult) error
	GetByID(ctx context.Context, id string) (*models.StudentResult, error)
	// List returns matching results in submission order
	List(ctx context.Context, filters ResultFilters) ([]*models.StudentResult, error)
}

// MatchesResult reports whether result passes the filters. Classes compare
// case-insensitively.
func (f ResultFilters) MatchesResult(result *models.StudentResult) bool {
	if f.QuizID != "" && result.QuizID != f.QuizID {
		return false
	}
	if f.StudentClass != "" && !strings.EqualFold(strings.TrimSpace(result.StudentClass), strings.TrimSpace(f.StudentClass)) {
		return false
	}
	if f.DateFrom != nil && result.SubmittedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && result.SubmittedAt.After(*f.DateTo) {
		return false
	}
	return true
}
