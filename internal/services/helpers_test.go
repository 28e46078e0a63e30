package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/fixtures"
	"github.com/SAP-F-2025/quiz-service/internal/grading"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/spreadsheet"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	manager   ServiceManager
	publisher *events.MockEventPublisher
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	workbook, err := spreadsheet.NewInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = workbook.Close() })

	publisher := events.NewMockEventPublisher(logger)
	return &testEnv{
		manager:   NewServiceManager(workbook, cache.NewMemoryCache(), publisher, validator.New(), logger),
		publisher: publisher,
		logger:    logger,
	}
}

func (e *testEnv) createSampleQuiz(t *testing.T, mutate func(*models.Quiz)) *models.Quiz {
	t.Helper()
	quiz := fixtures.SampleQuiz()
	if mutate != nil {
		mutate(quiz)
	}
	created, err := e.manager.Quiz().Create(context.Background(), quiz, "co_lan")
	require.NoError(t, err)
	return created
}

func (e *testEnv) eventTypes() []events.EventType {
	var types []events.EventType
	for _, event := range e.publisher.GetPublishedEvents() {
		types = append(types, event.Type)
	}
	return types
}

// sampleSubmission returns the plain correct submission limited to ids.
// With no ids every answer is kept.
func sampleSubmission(t *testing.T, ids ...string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(fixtures.SampleSubmissionJSON), &raw))
	if len(ids) == 0 {
		return raw
	}
	kept := make(map[string]json.RawMessage, len(ids))
	for _, id := range ids {
		kept[id] = raw[id]
	}
	return kept
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// mockRecorder is a testify mock of ResultRecorder
type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, quiz *models.Quiz, answers models.Answers, meta grading.StudentMeta) (*models.StudentResult, error) {
	args := m.Called(ctx, quiz, answers, meta)
	result, _ := args.Get(0).(*models.StudentResult)
	return result, args.Error(1)
}

func discardServiceLogger() *ServiceLogger {
	return NewServiceLogger(slog.New(slog.NewTextHandler(io.Discard, nil)), LogConfig{Service: "quiz-service", Component: "test"})
}
