package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// TeacherRepository is read-mostly; accounts are provisioned out of band
type TeacherRepository interface {
	List(ctx context.Context) ([]*models.Teacher, error)
	GetByUsername(ctx context.Context, username string) (*models.Teacher, error)
	Upsert(ctx context.Context, teacher *models.Teacher) error
}
