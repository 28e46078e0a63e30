package validator

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// ValidateQuiz is the structural gate run before a quiz is stored or graded.
// Every problem is reported; a quiz with any error is rejected as a whole.
func (v *Validator) ValidateQuiz(quiz *models.Quiz) ValidationErrors {
	var errs ValidationErrors
	if quiz == nil {
		errs.Add("quiz", "is required", nil)
		return errs
	}

	if err := v.structValidator.Struct(quiz); err != nil {
		errs = append(errs, ToValidationErrors(err)...)
	}

	if quiz.RequireCode && quiz.AccessCode == "" {
		errs.Add("accessCode", "is required when requireCode is set", quiz.AccessCode)
	}

	seen := make(map[string]int, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		prefix := fmt.Sprintf("questions[%d].", i)

		if first, dup := seen[q.ID]; dup && q.ID != "" {
			errs.Add(prefix+"id", fmt.Sprintf("duplicates questions[%d].id", first), q.ID)
		} else {
			seen[q.ID] = i
		}

		if qErrs := v.questionValidator.ValidateQuestion(q); len(qErrs) > 0 {
			errs = append(errs, qErrs.Prefixed(prefix)...)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
