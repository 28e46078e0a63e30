package repositories

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no record
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when creating a record whose id already exists
	ErrDuplicate = errors.New("record already exists")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	ClassLevel string `json:"classLevel" form:"classLevel"`
	Category   string `json:"category" form:"category"`
}

type ResultFilters struct {
	QuizID       string     `json:"quizId" form:"quizId"`
	StudentClass string     `json:"studentClass" form:"studentClass"`
	DateFrom     *time.Time `json:"dateFrom" form:"dateFrom"`
	DateTo       *time.Time `json:"dateTo" form:"dateTo"`
}

// Repository groups the stores of one backend
type Repository interface {
	Quiz() QuizRepository
	Result() ResultRepository
	Teacher() TeacherRepository
	Close() error
}
