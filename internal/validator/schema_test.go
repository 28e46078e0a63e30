package validator

import (
	"encoding/json"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuizDocument(t *testing.T) {
	sample, err := json.Marshal(fixtures.SampleQuiz())
	require.NoError(t, err)

	t.Run("sample quiz", func(t *testing.T) {
		assert.Nil(t, ValidateQuizDocument(sample))
	})

	t.Run("missing questions and bad class level", func(t *testing.T) {
		doc := `{"id": "q", "title": "Ôn tập", "classLevel": "9", "timeLimit": 10}`
		errs := ValidateQuizDocument([]byte(doc))
		require.NotEmpty(t, errs)
		assert.Contains(t, errs.Fields(), "classLevel")
		assert.Contains(t, errs.Fields(), "(root)")
	})

	t.Run("unknown question type", func(t *testing.T) {
		doc := `{"id": "q", "title": "Ôn tập", "classLevel": "3", "timeLimit": 10,
			"questions": [{"id": "q1", "type": "ESSAY"}]}`
		errs := ValidateQuizDocument([]byte(doc))
		require.Len(t, errs, 1)
		assert.Equal(t, "questions.0.type", errs[0].Field)
	})

	t.Run("time limit as string", func(t *testing.T) {
		doc := `{"id": "q", "title": "Ôn tập", "classLevel": "3", "timeLimit": "10",
			"questions": [{"id": "q1", "type": "MCQ"}]}`
		errs := ValidateQuizDocument([]byte(doc))
		require.NotEmpty(t, errs)
		assert.Equal(t, "timeLimit", errs[0].Field)
	})

	t.Run("not json", func(t *testing.T) {
		errs := ValidateQuizDocument([]byte("not json"))
		require.Len(t, errs, 1)
		assert.Equal(t, "(root)", errs[0].Field)
	})
}
