package models_test

import (
	"encoding/json"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/fixtures"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContent_CoversEveryType(t *testing.T) {
	for _, qt := range models.AllQuestionTypes {
		t.Run(string(qt), func(t *testing.T) {
			content, err := models.NewContent(qt)
			require.NoError(t, err)
			assert.Equal(t, qt, content.QuestionType())
		})
	}

	_, err := models.NewContent("ESSAY")
	assert.Error(t, err)
	assert.False(t, models.QuestionType("ESSAY").IsValid())
}

func TestQuestion_JSONIsFlat(t *testing.T) {
	q := models.NewQuestion("q1", &models.MCQContent{
		Question:      "2 + 2 = ?",
		Options:       []string{"3", "4"},
		CorrectAnswer: "B",
	})

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "q1", fields["id"])
	assert.Equal(t, "MCQ", fields["type"])
	assert.Equal(t, "B", fields["correctAnswer"])
	assert.NotContains(t, fields, "image")
}

func TestQuiz_JSONKeepsVariants(t *testing.T) {
	quiz := fixtures.SampleQuiz()

	data, err := json.Marshal(quiz)
	require.NoError(t, err)

	var decoded models.Quiz
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Questions, len(quiz.Questions))
	for i, q := range decoded.Questions {
		assert.Equal(t, quiz.Questions[i].Type, q.Type)
		assert.Equal(t, quiz.Questions[i].Content, q.Content)
	}
	assert.Equal(t, "https://example.com/images/shapes.png", decoded.Questions[7].Image)
}

func TestQuestion_UnmarshalRejectsUnknownType(t *testing.T) {
	var q models.Question
	err := json.Unmarshal([]byte(`{"id":"x","type":"ESSAY","question":"?"}`), &q)
	assert.Error(t, err)
}

func TestTrueFalseContent_ItemKey(t *testing.T) {
	c := &models.TrueFalseContent{Items: []models.TrueFalseItem{{ID: "a"}, {}}}
	assert.Equal(t, "a", c.ItemKey(0))
	assert.Equal(t, "item-1", c.ItemKey(1))
}

func TestDecodeAnswers(t *testing.T) {
	quiz := fixtures.SampleQuiz()

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(fixtures.SampleSubmissionJSON), &raw))

	answers := models.DecodeAnswers(quiz, raw)
	assert.Len(t, answers, len(quiz.Questions))
	assert.Equal(t, models.MCQAnswer("B"), answers["q1"])
	assert.Equal(t, models.DragDropAnswer{1: "đồng", 3: "xoan"}, answers["q6"])
	assert.Equal(t, models.OrderingAnswer{0: 2, 1: 1, 2: 3}, answers["q7"])

	t.Run("shape mismatch is dropped", func(t *testing.T) {
		raw := map[string]json.RawMessage{
			"q1":      json.RawMessage(`["B"]`),
			"q2":      json.RawMessage(`"A"`),
			"unknown": json.RawMessage(`"A"`),
		}
		answers := models.DecodeAnswers(quiz, raw)
		assert.Empty(t, answers)
	})

	t.Run("bad map entries are skipped", func(t *testing.T) {
		raw := map[string]json.RawMessage{
			"q3": json.RawMessage(`{"i1": false, "i2": "yes"}`),
			"q7": json.RawMessage(`{"0": 2, "x": 1}`),
		}
		answers := models.DecodeAnswers(quiz, raw)
		assert.Equal(t, models.TrueFalseAnswer{"i1": false}, answers["q3"])
		assert.Equal(t, models.OrderingAnswer{0: 2}, answers["q7"])
	})
}

func TestAnswers_StoredFormRoundTrips(t *testing.T) {
	answers := fixtures.SampleAnswers()

	data, err := json.Marshal(answers)
	require.NoError(t, err)

	var decoded models.Answers
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, answers, decoded)
}

func TestStudentResult_Band(t *testing.T) {
	tests := []struct {
		score  int
		band   models.ScoreBand
		passed bool
	}{
		{10, models.BandExcellent, true},
		{9, models.BandExcellent, true},
		{7, models.BandGood, true},
		{5, models.BandPass, true},
		{4, models.BandFail, false},
		{0, models.BandFail, false},
	}
	for _, tt := range tests {
		r := models.StudentResult{Score: tt.score}
		assert.Equal(t, tt.band, r.Band(), "score %d", tt.score)
		assert.Equal(t, tt.passed, r.Passed(), "score %d", tt.score)
	}
}

func TestDragDropBlankKeys(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"two blanks", "Mưa giăng trên [đồng]. Hoa [xoan] theo gió", []int{1, 3}},
		{"leading blank", "[Nước] sôi ở 100 độ", []int{1}},
		{"adjacent blanks", "[a][b]", []int{1, 3}},
		{"empty marker", "x [] y", []int{1}},
		{"no blanks", "không có chỗ trống", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.DragDropBlankKeys(tt.text))
		})
	}
}
