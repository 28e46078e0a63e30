package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResultFilters_MatchesResult(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	result := &models.StudentResult{QuizID: "quiz-1", StudentClass: "3A1", SubmittedAt: at}

	before := at.Add(-time.Hour)
	after := at.Add(time.Hour)

	tests := []struct {
		filters ResultFilters
		want    bool
	}{
		{ResultFilters{}, true},
		{ResultFilters{QuizID: "quiz-1"}, true},
		{ResultFilters{QuizID: "quiz-2"}, false},
		{ResultFilters{StudentClass: " 3a1 "}, true},
		{ResultFilters{StudentClass: "3A2"}, false},
		{ResultFilters{DateFrom: &before, DateTo: &after}, true},
		{ResultFilters{DateFrom: &after}, false},
		{ResultFilters{DateTo: &before}, false},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.MatchesResult(result))
		})
	}
}

func TestQuizFilters_MatchesQuiz(t *testing.T) {
	quiz := &models.Quiz{ClassLevel: "3", Category: "on-tap"}

	assert.True(t, QuizFilters{}.MatchesQuiz(quiz))
	assert.True(t, QuizFilters{ClassLevel: "3", Category: "on-tap"}.MatchesQuiz(quiz))
	assert.False(t, QuizFilters{ClassLevel: "4"}.MatchesQuiz(quiz))
	assert.False(t, QuizFilters{Category: "vioedu"}.MatchesQuiz(quiz))
}
