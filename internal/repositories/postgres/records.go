package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"gorm.io/datatypes"
)

// QuizRecord stores a quiz with its questions as one JSONB document
type QuizRecord struct {
	ID          string         `gorm:"primaryKey;size:100"`
	Title       string         `gorm:"size:200;not null"`
	ClassLevel  string         `gorm:"size:1;not null;index"`
	Category    string         `gorm:"size:100;index"`
	TimeLimit   int            `gorm:"not null"`
	AccessCode  string         `gorm:"size:6"`
	RequireCode bool           `gorm:"not null;default:false"`
	Questions   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time
}

func (QuizRecord) TableName() string { return "quizzes" }

type ResultRecord struct {
	ID             string         `gorm:"primaryKey;size:36"`
	QuizID         string         `gorm:"size:100;not null;index"`
	QuizTitle      string         `gorm:"size:200"`
	StudentName    string         `gorm:"size:50;not null"`
	StudentClass   string         `gorm:"size:20;not null;index"`
	Score          int            `gorm:"not null"`
	CorrectCount   int            `gorm:"not null"`
	TotalQuestions int            `gorm:"not null"`
	TimeTaken      int            `gorm:"not null;default:0"`
	SubmittedAt    time.Time      `gorm:"not null;index"`
	Answers        datatypes.JSON `gorm:"type:jsonb"`
	Verdicts       datatypes.JSON `gorm:"type:jsonb"`
}

func (ResultRecord) TableName() string { return "student_results" }

type TeacherRecord struct {
	Username string `gorm:"primaryKey;size:50"`
	Password string `gorm:"size:100;not null"`
	FullName string `gorm:"size:100;not null"`
	Role     string `gorm:"size:20;not null;default:teacher"`
	Class    string `gorm:"size:20"`
}

func (TeacherRecord) TableName() string { return "teachers" }

// ===== CONVERSIONS =====

func quizToRecord(quiz *models.Quiz) (*QuizRecord, error) {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions of quiz %s: %w", quiz.ID, err)
	}
	return &QuizRecord{
		ID:          quiz.ID,
		Title:       quiz.Title,
		ClassLevel:  quiz.ClassLevel,
		Category:    quiz.Category,
		TimeLimit:   quiz.TimeLimit,
		AccessCode:  quiz.AccessCode,
		RequireCode: quiz.RequireCode,
		Questions:   datatypes.JSON(questions),
		CreatedAt:   quiz.CreatedAt,
	}, nil
}

func quizFromRecord(rec *QuizRecord) (*models.Quiz, error) {
	quiz := &models.Quiz{
		ID:          rec.ID,
		Title:       rec.Title,
		ClassLevel:  rec.ClassLevel,
		Category:    rec.Category,
		TimeLimit:   rec.TimeLimit,
		AccessCode:  rec.AccessCode,
		RequireCode: rec.RequireCode,
		CreatedAt:   rec.CreatedAt.UTC(),
		Questions:   []models.Question{},
	}
	if len(rec.Questions) > 0 {
		if err := json.Unmarshal(rec.Questions, &quiz.Questions); err != nil {
			return nil, fmt.Errorf("failed to decode questions of quiz %s: %w", rec.ID, err)
		}
	}
	return quiz, nil
}

func resultToRecord(result *models.StudentResult) (*ResultRecord, error) {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers of result %s: %w", result.ID, err)
	}
	verdicts, err := json.Marshal(result.Verdicts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode verdicts of result %s: %w", result.ID, err)
	}
	return &ResultRecord{
		ID:             result.ID,
		QuizID:         result.QuizID,
		QuizTitle:      result.QuizTitle,
		StudentName:    result.StudentName,
		StudentClass:   result.StudentClass,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		TimeTaken:      result.TimeTaken,
		SubmittedAt:    result.SubmittedAt,
		Answers:        datatypes.JSON(answers),
		Verdicts:       datatypes.JSON(verdicts),
	}, nil
}

func resultFromRecord(rec *ResultRecord) (*models.StudentResult, error) {
	result := &models.StudentResult{
		ID:             rec.ID,
		QuizID:         rec.QuizID,
		QuizTitle:      rec.QuizTitle,
		StudentName:    rec.StudentName,
		StudentClass:   rec.StudentClass,
		Score:          rec.Score,
		CorrectCount:   rec.CorrectCount,
		TotalQuestions: rec.TotalQuestions,
		TimeTaken:      rec.TimeTaken,
		SubmittedAt:    rec.SubmittedAt.UTC(),
	}
	if len(rec.Answers) > 0 {
		if err := json.Unmarshal(rec.Answers, &result.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers of result %s: %w", rec.ID, err)
		}
	}
	if len(rec.Verdicts) > 0 && string(rec.Verdicts) != "null" {
		if err := json.Unmarshal(rec.Verdicts, &result.Verdicts); err != nil {
			return nil, fmt.Errorf("failed to decode verdicts of result %s: %w", rec.ID, err)
		}
	}
	return result, nil
}

func teacherToRecord(t *models.Teacher) *TeacherRecord {
	role := string(t.Role)
	if role == "" {
		role = string(models.RoleTeacher)
	}
	return &TeacherRecord{
		Username: t.Username,
		Password: t.Password,
		FullName: t.FullName,
		Role:     role,
		Class:    t.Class,
	}
}

func teacherFromRecord(rec *TeacherRecord) *models.Teacher {
	return &models.Teacher{
		Username: rec.Username,
		Password: rec.Password,
		FullName: rec.FullName,
		Role:     models.TeacherRole(rec.Role),
		Class:    rec.Class,
	}
}
