package postgres

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository migrates the schema and returns the postgres backend
func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&QuizRecord{}, &ResultRecord{}, &TeacherRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Quiz() repositories.QuizRepository {
	return NewQuizPostgreSQL(r.db)
}

func (r *Repository) Result() repositories.ResultRepository {
	return NewResultPostgreSQL(r.db)
}

func (r *Repository) Teacher() repositories.TeacherRepository {
	return NewTeacherPostgreSQL(r.db)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
