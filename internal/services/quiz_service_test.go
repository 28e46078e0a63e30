package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/fixtures"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createSampleQuiz(t, nil)
	assert.Equal(t, "quiz-khoa-hoc-3", created.ID)

	got, err := env.manager.Quiz().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Len(t, got.Questions, 10)
	assert.True(t, got.CreatedAt.Equal(fixtures.CreatedAt))

	published := env.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventQuizCreated, published[0].Type)
	data, ok := published[0].Data.(events.QuizChangedEvent)
	require.True(t, ok)
	assert.Equal(t, 10, data.QuestionCount)
	assert.Equal(t, "co_lan", data.ChangedBy)
}

func TestQuizService_CreateCleansInput(t *testing.T) {
	env := newTestEnv(t)

	created := env.createSampleQuiz(t, func(q *models.Quiz) {
		q.ID = ""
		q.Title = "  Ôn tập <tuần 1>  "
		q.TimeLimit = 0
		q.CreatedAt = fixtures.CreatedAt.AddDate(0, 0, 1)
		q.AccessCode = " abc123 "
		q.RequireCode = true
	})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ôn tập tuần 1", created.Title)
	assert.Equal(t, models.DefaultTimeLimit, created.TimeLimit)
	assert.Equal(t, "ABC123", created.AccessCode)
}

func TestQuizService_CreateRejectsInvalidQuiz(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Quiz)
		field  string
	}{
		{"short title", func(q *models.Quiz) { q.Title = "Toán" }, "title"},
		{"no questions", func(q *models.Quiz) { q.Questions = nil }, "questions"},
		{"time limit too long", func(q *models.Quiz) { q.TimeLimit = 181 }, "timeLimit"},
		{"negative time limit", func(q *models.Quiz) { q.TimeLimit = -5 }, "timeLimit"},
		{"bad class level", func(q *models.Quiz) { q.ClassLevel = "6" }, "classLevel"},
		{"code required but missing", func(q *models.Quiz) { q.RequireCode = true }, "accessCode"},
		{"bad access code", func(q *models.Quiz) { q.AccessCode = "ABC" }, "accessCode"},
		{"mcq letter out of range", func(q *models.Quiz) {
			q.Questions[0].Content.(*models.MCQContent).CorrectAnswer = "E"
		}, "questions[0].correctAnswer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			quiz := fixtures.SampleQuiz()
			tt.mutate(quiz)

			_, err := env.manager.Quiz().Create(context.Background(), quiz, "co_lan")
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Contains(t, errs.Fields(), tt.field)
			assert.Empty(t, env.publisher.GetPublishedEvents())
		})
	}
}

func TestQuizService_TimeLimitMessage(t *testing.T) {
	env := newTestEnv(t)
	quiz := fixtures.SampleQuiz()
	quiz.TimeLimit = 240

	_, err := env.manager.Quiz().Create(context.Background(), quiz, "co_lan")

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	var messages []string
	for _, e := range errs {
		if e.Field == "timeLimit" {
			messages = append(messages, e.Message)
		}
	}
	assert.Equal(t, []string{"Time limit must be between 1 and 180 minutes"}, messages)
}

func TestQuizService_DeleteSlashedID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := env.createSampleQuiz(t, func(q *models.Quiz) { q.ID = "lop3/tuan1" })

	_, err := env.manager.Quiz().Get(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, env.manager.Quiz().Delete(ctx, created.ID, "co_lan"))

	_, err = env.manager.Quiz().Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrQuizNotFound)

	_, err = env.manager.Sessions().Start(ctx, created.ID, StudentInfo{Name: "Nguyễn An", Class: "3A1"})
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizService_CreateDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.createSampleQuiz(t, nil)

	_, err := env.manager.Quiz().Create(context.Background(), fixtures.SampleQuiz(), "co_lan")
	assert.ErrorIs(t, err, ErrQuizAlreadyExists)
	assert.True(t, IsConflict(err))
}

func TestQuizService_CreateFromJSON(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("schema violation", func(t *testing.T) {
		_, err := env.manager.Quiz().CreateFromJSON(ctx, []byte(`{"title": "Ôn tập"}`), "co_lan")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := env.manager.Quiz().CreateFromJSON(ctx, []byte(`quiz`), "co_lan")
		assert.True(t, IsValidation(err))
	})

	t.Run("valid document", func(t *testing.T) {
		data, err := json.Marshal(fixtures.SampleQuiz())
		require.NoError(t, err)

		created, err := env.manager.Quiz().CreateFromJSON(ctx, data, "co_lan")
		require.NoError(t, err)
		assert.Len(t, created.Questions, 10)
	})
}

func TestQuizService_UpdateKeepsCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createSampleQuiz(t, nil)

	update := fixtures.SampleQuiz()
	update.Title = "Ôn tập Khoa học (sửa)"
	update.CreatedAt = fixtures.CreatedAt.AddDate(1, 0, 0)
	update.Questions = update.Questions[:3]

	updated, err := env.manager.Quiz().Update(ctx, update, "co_lan")
	require.NoError(t, err)
	assert.True(t, updated.CreatedAt.Equal(fixtures.CreatedAt))

	got, err := env.manager.Quiz().Get(ctx, update.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ôn tập Khoa học (sửa)", got.Title)
	assert.Len(t, got.Questions, 3)
	assert.True(t, got.CreatedAt.Equal(fixtures.CreatedAt))

	assert.Equal(t, []events.EventType{events.EventQuizCreated, events.EventQuizUpdated}, env.eventTypes())
}

func TestQuizService_UpdateMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.manager.Quiz().Update(context.Background(), fixtures.SampleQuiz(), "co_lan")
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.True(t, IsNotFound(err))
}

func TestQuizService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := env.createSampleQuiz(t, nil)

	// warm the cache so deletion has to invalidate it
	_, err := env.manager.Quiz().Get(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, env.manager.Quiz().Delete(ctx, created.ID, "co_lan"))

	_, err = env.manager.Quiz().Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrQuizNotFound)

	err = env.manager.Quiz().Delete(ctx, created.ID, "co_lan")
	assert.ErrorIs(t, err, ErrQuizNotFound)

	assert.Equal(t, []events.EventType{events.EventQuizCreated, events.EventQuizDeleted}, env.eventTypes())
}

func TestQuizService_ListInvalidatesCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createSampleQuiz(t, nil)

	quizzes, err := env.manager.Quiz().List(ctx, repositories.QuizFilters{})
	require.NoError(t, err)
	require.Len(t, quizzes, 1)

	env.createSampleQuiz(t, func(q *models.Quiz) {
		q.ID = "quiz-toan-5"
		q.Title = "Kiểm tra Toán lớp 5"
		q.ClassLevel = "5"
		q.Category = "Toán"
	})

	quizzes, err = env.manager.Quiz().List(ctx, repositories.QuizFilters{})
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)

	filtered, err := env.manager.Quiz().List(ctx, repositories.QuizFilters{ClassLevel: "5"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "quiz-toan-5", filtered[0].ID)
}

func TestQuizService_SearchIgnoresDiacritics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createSampleQuiz(t, nil)
	env.createSampleQuiz(t, func(q *models.Quiz) {
		q.ID = "quiz-toan-5"
		q.Title = "Kiểm tra Toán lớp 5"
		q.Category = "Toán"
	})

	found, err := env.manager.Quiz().Search(ctx, "khoa hoc")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "quiz-khoa-hoc-3", found[0].ID)

	found, err = env.manager.Quiz().Search(ctx, "TOAN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "quiz-toan-5", found[0].ID)

	found, err = env.manager.Quiz().Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestQuizService_Questions(t *testing.T) {
	env := newTestEnv(t)
	created := env.createSampleQuiz(t, nil)

	questions, err := env.manager.Quiz().Questions(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, questions, 10)
	assert.Equal(t, models.QuestionDragDrop, questions[5].Type)

	_, err = env.manager.Quiz().Questions(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}
