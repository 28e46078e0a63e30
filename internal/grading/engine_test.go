package grading

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/fixtures"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(id string, content models.QuestionContent) *models.Question {
	q := models.NewQuestion(id, content)
	return &q
}

func TestGradeQuestion_MCQ(t *testing.T) {
	q := question("q1", &models.MCQContent{Question: "?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "B"})

	assert.True(t, GradeQuestion(q, models.MCQAnswer("B")))
	for _, letter := range []string{"A", "C", "D", "b", ""} {
		assert.False(t, GradeQuestion(q, models.MCQAnswer(letter)), letter)
	}
	assert.False(t, GradeQuestion(q, nil))
	assert.False(t, GradeQuestion(q, models.ShortAnswer("B")), "wrong answer shape")
}

func TestGradeQuestion_ImageQuestion(t *testing.T) {
	q := &models.Question{
		ID:      "img",
		Type:    models.QuestionImage,
		Image:   "https://example.com/a.png",
		Content: &models.ImageQuestionContent{Question: "?", Options: []string{"1", "2"}, CorrectAnswer: "A"},
	}
	assert.True(t, GradeQuestion(q, models.ImageAnswer("A")))
	assert.False(t, GradeQuestion(q, models.ImageAnswer("B")))
	assert.False(t, GradeQuestion(q, models.MCQAnswer("A")))
}

func TestGradeQuestion_TrueFalse(t *testing.T) {
	q := question("tf", &models.TrueFalseContent{
		MainQuestion: "Về nước:",
		Items: []models.TrueFalseItem{
			{ID: "i1", Statement: "s1", IsCorrect: false},
			{ID: "i2", Statement: "s2", IsCorrect: true},
		},
	})

	assert.True(t, GradeQuestion(q, models.TrueFalseAnswer{"i1": false, "i2": true}))
	assert.False(t, GradeQuestion(q, models.TrueFalseAnswer{"i1": true, "i2": true}))
	assert.False(t, GradeQuestion(q, models.TrueFalseAnswer{}))
	assert.False(t, GradeQuestion(q, models.TrueFalseAnswer{"i2": true}), "missing item")

	empty := question("tf0", &models.TrueFalseContent{MainQuestion: "?"})
	assert.False(t, GradeQuestion(empty, models.TrueFalseAnswer{}))
}

func TestGradeQuestion_TrueFalseItemWithoutID(t *testing.T) {
	q := question("tf", &models.TrueFalseContent{
		MainQuestion: "?",
		Items:        []models.TrueFalseItem{{Statement: "s", IsCorrect: true}},
	})
	assert.True(t, GradeQuestion(q, models.TrueFalseAnswer{"item-0": true}))
	assert.False(t, GradeQuestion(q, models.TrueFalseAnswer{"": true}))
}

func TestGradeQuestion_MultipleSelect(t *testing.T) {
	q := question("ms", &models.MultipleSelectContent{
		Question:       "?",
		Options:        []string{"a", "b", "c", "d"},
		CorrectAnswers: []string{"A", "C"},
	})

	tests := []struct {
		answer models.MultipleSelectAnswer
		want   bool
	}{
		{models.MultipleSelectAnswer{"A", "C"}, true},
		{models.MultipleSelectAnswer{"C", "A"}, true},
		{models.MultipleSelectAnswer{"A"}, false},
		{models.MultipleSelectAnswer{"A", "B", "C"}, false},
		{models.MultipleSelectAnswer{"A", "A"}, false},
		{models.MultipleSelectAnswer{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeQuestion(q, tt.answer), "%v", tt.answer)
	}
}

func TestGradeQuestion_ShortAnswer(t *testing.T) {
	q := question("sa", &models.ShortAnswerContent{Question: "?", CorrectAnswer: "Hà Nội"})

	assert.True(t, GradeQuestion(q, models.ShortAnswer("Hà Nội")))
	assert.True(t, GradeQuestion(q, models.ShortAnswer("  HÀ NỘI ")))
	assert.False(t, GradeQuestion(q, models.ShortAnswer("Ha Noi")))
	assert.False(t, GradeQuestion(q, models.ShortAnswer("")))
}

func TestGradeQuestion_Matching(t *testing.T) {
	q := question("m", &models.MatchingContent{
		Question: "?",
		Pairs:    []models.MatchingPair{{Left: "a", Right: "1"}, {Left: "b", Right: "2"}},
	})

	assert.True(t, GradeQuestion(q, models.MatchingAnswer{"a": "1", "b": "2"}))
	assert.True(t, GradeQuestion(q, models.MatchingAnswer{"a": "1", "b": "2", "selectedLeft": ""}), "extra lefts are ignored")
	assert.False(t, GradeQuestion(q, models.MatchingAnswer{"a": "2", "b": "1"}))
	assert.False(t, GradeQuestion(q, models.MatchingAnswer{"a": "1"}))
}

func TestGradeQuestion_DragDrop(t *testing.T) {
	q := question("dd", &models.DragDropContent{
		Question:    "?",
		Text:        "Mưa giăng trên [đồng]. Hoa [xoan] theo gió",
		Blanks:      []string{"đồng", "xoan"},
		Distractors: []string{"suối"},
	})

	assert.True(t, GradeQuestion(q, models.DragDropAnswer{1: "đồng", 3: "xoan"}))
	assert.False(t, GradeQuestion(q, models.DragDropAnswer{1: "xoan", 3: "đồng"}))
	assert.False(t, GradeQuestion(q, models.DragDropAnswer{0: "đồng", 1: "xoan"}), "keys are split positions, not ordinals")
	assert.False(t, GradeQuestion(q, models.DragDropAnswer{1: "đồng"}))

	noBlanks := question("dd0", &models.DragDropContent{Question: "?", Text: "không có chỗ trống"})
	assert.False(t, GradeQuestion(noBlanks, models.DragDropAnswer{}))

	shortKey := question("dd1", &models.DragDropContent{Question: "?", Text: "[a] [b]", Blanks: []string{"a"}})
	assert.False(t, GradeQuestion(shortKey, models.DragDropAnswer{1: "a", 3: ""}))
}

func TestGradeQuestion_Ordering(t *testing.T) {
	q := question("o", &models.OrderingContent{
		Question:     "?",
		Items:        []string{"Câu 2", "Câu 1", "Câu 3"},
		CorrectOrder: []int{1, 0, 2},
	})

	assert.True(t, GradeQuestion(q, models.OrderingAnswer{1: 1, 0: 2, 2: 3}))
	assert.False(t, GradeQuestion(q, models.OrderingAnswer{0: 1, 1: 2, 2: 3}))
	assert.False(t, GradeQuestion(q, models.OrderingAnswer{1: 1, 0: 2}))
	assert.False(t, GradeQuestion(q, models.OrderingAnswer{}))
}

func TestGradeQuestion_Dropdown(t *testing.T) {
	q := question("dr", &models.DropdownContent{
		Question: "?",
		Text:     "[1] và [2]",
		Blanks: []models.DropdownBlank{
			{ID: "blank-1", Options: []string{"x", "y"}, CorrectAnswer: "x"},
			{ID: "blank-2", Options: []string{"x", "y"}, CorrectAnswer: "y"},
		},
	})

	assert.True(t, GradeQuestion(q, models.DropdownAnswer{"blank-1": "x", "blank-2": "y"}))
	assert.False(t, GradeQuestion(q, models.DropdownAnswer{"blank-1": "x", "blank-2": "x"}))
	assert.False(t, GradeQuestion(q, models.DropdownAnswer{"blank-1": "x"}))
}

func TestGradeQuestion_Underline(t *testing.T) {
	q := question("u", &models.UnderlineContent{
		Question:           "?",
		Sentence:           "Mặt trời ngả nắng đằng tây",
		Words:              []string{"Mặt trời", "ngả", "nắng", "đằng tây"},
		CorrectWordIndexes: []int{1, 2},
	})

	assert.True(t, GradeQuestion(q, models.UnderlineAnswer{2, 1}))
	assert.False(t, GradeQuestion(q, models.UnderlineAnswer{1}))
	assert.False(t, GradeQuestion(q, models.UnderlineAnswer{1, 2, 3}))
	assert.False(t, GradeQuestion(q, models.UnderlineAnswer{}))
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 10, 0},
		{10, 10, 10},
		{1, 4, 3}, // 2.5 rounds up
		{3, 4, 8}, // 7.5 rounds up
		{1, 3, 3}, // 3.33
		{2, 3, 7}, // 6.67
		{1, 20, 1}, // 0.5 rounds up
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Score(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

func TestMinutesBetween(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, MinutesBetween(start, start.Add(29*time.Second)))
	assert.Equal(t, 1, MinutesBetween(start, start.Add(30*time.Second)))
	assert.Equal(t, 12, MinutesBetween(start, start.Add(12*time.Minute+10*time.Second)))
	assert.Equal(t, 0, MinutesBetween(start, start.Add(-time.Minute)))
}

func TestGradeQuiz_FullMarks(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	require.Empty(t, validator.New().ValidateQuiz(quiz))

	meta := StudentMeta{ResultID: "r1", StudentName: "Nguyễn An", StudentClass: "3A1", TimeTaken: 7, SubmittedAt: fixtures.CreatedAt}
	result := GradeQuiz(quiz, fixtures.SampleAnswers(), meta)

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, len(quiz.Questions), result.CorrectCount)
	assert.Equal(t, len(quiz.Questions), result.TotalQuestions)
	assert.Equal(t, "r1", result.ID)
	assert.Equal(t, quiz.ID, result.QuizID)
	assert.Equal(t, quiz.Title, result.QuizTitle)
	assert.Equal(t, 7, result.TimeTaken)
	for _, v := range result.Verdicts {
		assert.True(t, v.Correct, v.QuestionID)
	}
}

func TestGradeQuiz_AnswerKeyRoundTrip(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	result := GradeQuiz(quiz, AnswerKeys(quiz), StudentMeta{})

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, result.TotalQuestions, result.CorrectCount)
}

func TestGradeQuiz_PlainSubmission(t *testing.T) {
	quiz := fixtures.SampleQuiz()

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(fixtures.SampleSubmissionJSON), &raw))

	result := GradeQuiz(quiz, models.DecodeAnswers(quiz, raw), StudentMeta{})
	assert.Equal(t, 10, result.Score)
}

func TestGradeQuiz_PartialAndMissing(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	answers := fixtures.SampleAnswers()
	delete(answers, "q2")
	answers["q4"] = models.MCQAnswer("Hà Nội")
	answers["q7"] = models.OrderingAnswer{0: 1, 1: 2, 2: 3}

	result := GradeQuiz(quiz, answers, StudentMeta{})

	assert.Equal(t, 7, result.CorrectCount)
	assert.Equal(t, 10, result.TotalQuestions)
	assert.Equal(t, 7, result.Score)
	require.Len(t, result.Verdicts, 10)
	assert.False(t, result.Verdicts[1].Correct)
	assert.False(t, result.Verdicts[3].Correct)
	assert.False(t, result.Verdicts[6].Correct)
}

func TestGradeQuiz_NoAnswers(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	result := GradeQuiz(quiz, nil, StudentMeta{})

	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 10, result.TotalQuestions)
}

func TestGradeQuiz_VerdictsFollowQuizOrder(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	result := GradeQuiz(quiz, fixtures.SampleAnswers(), StudentMeta{})

	require.Len(t, result.Verdicts, len(quiz.Questions))
	for i, q := range quiz.Questions {
		assert.Equal(t, q.ID, result.Verdicts[i].QuestionID)
		assert.Equal(t, q.Type, result.Verdicts[i].Type)
	}
}

func TestGradeQuiz_IsIdempotentAndPure(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	answers := fixtures.SampleAnswers()
	delete(answers, "q5")

	quizBefore, err := json.Marshal(quiz)
	require.NoError(t, err)
	answersBefore, err := json.Marshal(answers)
	require.NoError(t, err)

	first := GradeQuiz(quiz, answers, StudentMeta{ResultID: "a"})
	second := GradeQuiz(quiz, answers, StudentMeta{ResultID: "b"})
	first.ID, second.ID = "", ""
	assert.Equal(t, first, second)

	quizAfter, _ := json.Marshal(quiz)
	answersAfter, _ := json.Marshal(answers)
	assert.JSONEq(t, string(quizBefore), string(quizAfter))
	assert.JSONEq(t, string(answersBefore), string(answersAfter))
}

func TestGradeQuiz_CountsStayInRange(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	full := fixtures.SampleAnswers()

	// Drop answers one at a time and check the invariants on every prefix.
	ids := []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10"}
	for n := 0; n <= len(ids); n++ {
		answers := models.Answers{}
		for _, id := range ids[:n] {
			answers[id] = full[id]
		}
		result := GradeQuiz(quiz, answers, StudentMeta{})
		assert.Equal(t, n, result.CorrectCount)
		assert.LessOrEqual(t, result.CorrectCount, result.TotalQuestions)
		assert.Equal(t, len(quiz.Questions), result.TotalQuestions)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, models.MaxScore)
	}
}

func TestGradingCoversEveryType(t *testing.T) {
	quiz := fixtures.SampleQuiz()
	byType := map[models.QuestionType]*models.Question{}
	for i := range quiz.Questions {
		byType[quiz.Questions[i].Type] = &quiz.Questions[i]
	}

	for _, qt := range models.AllQuestionTypes {
		t.Run(string(qt), func(t *testing.T) {
			q, ok := byType[qt]
			require.True(t, ok, "no sample question")
			key := AnswerKey(q)
			require.NotNil(t, key)
			assert.Equal(t, qt, key.QuestionType())
			assert.True(t, GradeQuestion(q, key))
		})
	}
}
