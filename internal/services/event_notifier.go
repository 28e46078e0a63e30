package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// EventNotifier turns completed writes into published events. Publishing is
// best effort: the write has already happened, so failures are only logged.
type EventNotifier interface {
	NotifyQuizChanged(ctx context.Context, eventType events.EventType, quiz *models.Quiz, actor string)
	NotifyQuizDeleted(ctx context.Context, quizID, actor string)
	NotifyResultSubmitted(ctx context.Context, result *models.StudentResult)
}

type eventNotifier struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

// NewEventNotifier returns a notifier that drops every event when publisher
// is nil.
func NewEventNotifier(publisher events.EventPublisher, logger *slog.Logger) EventNotifier {
	return &eventNotifier{
		publisher: publisher,
		logger:    logger,
	}
}

func (n *eventNotifier) NotifyQuizChanged(ctx context.Context, eventType events.EventType, quiz *models.Quiz, actor string) {
	n.publish(ctx, events.NewQuizChangedEvent(eventType, events.QuizChangedEvent{
		QuizID:        quiz.ID,
		Title:         quiz.Title,
		ClassLevel:    quiz.ClassLevel,
		QuestionCount: len(quiz.Questions),
		ChangedBy:     actor,
	}))
}

func (n *eventNotifier) NotifyQuizDeleted(ctx context.Context, quizID, actor string) {
	n.publish(ctx, events.NewQuizChangedEvent(events.EventQuizDeleted, events.QuizChangedEvent{
		QuizID:    quizID,
		ChangedBy: actor,
	}))
}

func (n *eventNotifier) NotifyResultSubmitted(ctx context.Context, result *models.StudentResult) {
	n.publish(ctx, events.NewResultSubmittedEvent(events.ResultSubmittedEvent{
		ResultID:       result.ID,
		QuizID:         result.QuizID,
		QuizTitle:      result.QuizTitle,
		StudentName:    result.StudentName,
		StudentClass:   result.StudentClass,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Passed:         result.Passed(),
		SubmittedAt:    result.SubmittedAt,
	}))
}

func (n *eventNotifier) publish(ctx context.Context, event *events.QuizEvent) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
	}
}
