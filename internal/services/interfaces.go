package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/grading"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

// QuizService manages quizzes on behalf of teachers.
type QuizService interface {
	Create(ctx context.Context, quiz *models.Quiz, actor string) (*models.Quiz, error)
	// CreateFromJSON checks the raw document against the quiz schema before
	// decoding it.
	CreateFromJSON(ctx context.Context, data []byte, actor string) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz, actor string) (*models.Quiz, error)
	Delete(ctx context.Context, id string, actor string) error

	Get(ctx context.Context, id string) (*models.Quiz, error)
	List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, error)
	Search(ctx context.Context, query string) ([]*models.Quiz, error)
	Questions(ctx context.Context, quizID string) ([]models.Question, error)
}

// ResultService grades submissions and reports on stored results.
type ResultService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*models.StudentResult, error)
	// Record grades an already decoded answer set and stores the result.
	Record(ctx context.Context, quiz *models.Quiz, answers models.Answers, meta grading.StudentMeta) (*models.StudentResult, error)

	Get(ctx context.Context, id string) (*models.StudentResult, error)
	List(ctx context.Context, query ResultQuery) ([]*models.StudentResult, error)
	Overview(ctx context.Context, query ResultQuery) (*ResultsOverview, error)
}

// AuthService checks teacher credentials.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.AuthSession, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	SaveTeacher(ctx context.Context, teacher *models.Teacher) error
}

// ExportService renders results as downloadable files.
type ExportService interface {
	ExportResultsExcel(ctx context.Context, query ResultQuery) (*ExportFile, error)
	ExportResultsCSV(ctx context.Context, query ResultQuery) (*ExportFile, error)
}

// ===== REQUEST / RESPONSE TYPES =====

// SubmitRequest is a one-shot submission. Answers use the plain per-question
// shapes a quiz client sends, keyed by question id.
type SubmitRequest struct {
	QuizID       string                     `json:"quizId" validate:"required"`
	StudentName  string                     `json:"studentName"`
	StudentClass string                     `json:"studentClass"`
	AccessCode   string                     `json:"accessCode,omitempty"`
	Answers      map[string]json.RawMessage `json:"answers"`
	StartedAt    *time.Time                 `json:"startedAt,omitempty"`
	TimeTaken    *int                       `json:"timeTaken,omitempty"`
}

// ResultQuery narrows and orders a result listing.
type ResultQuery struct {
	QuizID    string     `form:"quizId" json:"quizId,omitempty"`
	Class     string     `form:"class" json:"class,omitempty"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02" json:"dateFrom,omitempty"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02" json:"dateTo,omitempty"`
	SortField SortField  `form:"sortField" json:"sortField,omitempty"`
	SortOrder SortOrder  `form:"sortOrder" json:"sortOrder,omitempty"`
}

func (q ResultQuery) filters() repositories.ResultFilters {
	filters := repositories.ResultFilters{
		QuizID:   q.QuizID,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	}
	if q.Class != AllClasses {
		filters.StudentClass = q.Class
	}
	return filters
}

// ResultsOverview backs the teacher results dashboard.
type ResultsOverview struct {
	Stats            ResultStats             `json:"stats"`
	Distribution     []ScoreBucket           `json:"distribution"`
	AvailableClasses []string                `json:"availableClasses"`
	Bands            map[string]int          `json:"bands"`
	Results          []*models.StudentResult `json:"results"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
