package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType names the kind of change a QuizEvent reports
type EventType string

const (
	EventQuizCreated     EventType = "quiz.created"
	EventQuizUpdated     EventType = "quiz.updated"
	EventQuizDeleted     EventType = "quiz.deleted"
	EventResultSubmitted EventType = "result.submitted"
)

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// QuizEvent is the envelope every published event shares
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type QuizChangedEvent struct {
	QuizID        string `json:"quiz_id"`
	Title         string `json:"title,omitempty"`
	ClassLevel    string `json:"class_level,omitempty"`
	QuestionCount int    `json:"question_count"`
	ChangedBy     string `json:"changed_by,omitempty"`
}

type ResultSubmittedEvent struct {
	ResultID       string    `json:"result_id"`
	QuizID         string    `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	StudentName    string    `json:"student_name"`
	StudentClass   string    `json:"student_class"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correct_count"`
	TotalQuestions int       `json:"total_questions"`
	Passed         bool      `json:"passed"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Event factory functions

func NewQuizChangedEvent(eventType EventType, data QuizChangedEvent) *QuizEvent {
	return newEvent(eventType, data)
}

func NewResultSubmittedEvent(data ResultSubmittedEvent) *QuizEvent {
	return newEvent(EventResultSubmitted, data)
}

func newEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a fresh random event id
func GenerateEventID() string {
	return uuid.NewString()
}
