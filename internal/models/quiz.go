package models

import "time"

const (
	// AccessCodeLength is the exact length of a quiz access code.
	AccessCodeLength = 6
	// DefaultTimeLimit in minutes applies when a quiz does not set one.
	DefaultTimeLimit = 15
)

// Quiz is an ordered set of questions for one class level.
type Quiz struct {
	ID          string     `json:"id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	ClassLevel  string     `json:"classLevel" validate:"required,class_level"`
	Category    string     `json:"category,omitempty"`
	TimeLimit   int        `json:"timeLimit" validate:"min=1,max=180"`
	Questions   []Question `json:"questions" validate:"min=1"`
	CreatedAt   time.Time  `json:"createdAt" validate:"required"`
	AccessCode  string     `json:"accessCode,omitempty" validate:"omitempty,access_code"`
	RequireCode bool       `json:"requireCode,omitempty"`
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(id string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}

// QuizSummary is the listing view of a quiz, without its questions.
type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ClassLevel    string    `json:"classLevel"`
	Category      string    `json:"category,omitempty"`
	TimeLimit     int       `json:"timeLimit"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
	RequireCode   bool      `json:"requireCode,omitempty"`
}

func (q *Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		ClassLevel:    q.ClassLevel,
		Category:      q.Category,
		TimeLimit:     q.TimeLimit,
		QuestionCount: len(q.Questions),
		CreatedAt:     q.CreatedAt,
		RequireCode:   q.RequireCode,
	}
}
