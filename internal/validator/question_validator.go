package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct {
	structValidator *validator.Validate
}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator(structValidator *validator.Validate) *QuestionValidator {
	return &QuestionValidator{structValidator: structValidator}
}

// ValidateQuestion checks the common fields, the struct tags of the content
// and the rules specific to the question type. It returns nil when the
// question is well formed.
func (v *QuestionValidator) ValidateQuestion(q *models.Question) ValidationErrors {
	var errs ValidationErrors

	if err := v.structValidator.Struct(q); err != nil {
		errs = append(errs, ToValidationErrors(err)...)
	}
	if q.Content == nil {
		errs.Add("content", "is required", nil)
		return errs
	}
	if q.Content.QuestionType() != q.Type {
		errs.Add("type", fmt.Sprintf("does not match content of type %s", q.Content.QuestionType()), q.Type)
		return errs
	}

	if err := v.structValidator.Struct(q.Content); err != nil {
		errs = append(errs, ToValidationErrors(err)...)
	}
	errs = append(errs, v.ValidateContent(q)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateContent applies the semantic rules for the question's type.
func (v *QuestionValidator) ValidateContent(q *models.Question) ValidationErrors {
	var errs ValidationErrors

	switch c := q.Content.(type) {
	case *models.MCQContent:
		validateOptionLetter(&errs, "correctAnswer", c.CorrectAnswer, len(c.Options))
	case *models.ImageQuestionContent:
		if strings.TrimSpace(q.Image) == "" {
			errs.Add("image", "is required for an image question", q.Image)
		}
		validateOptionLetter(&errs, "correctAnswer", c.CorrectAnswer, len(c.Options))
	case *models.MultipleSelectContent:
		seen := map[string]bool{}
		for i, letter := range c.CorrectAnswers {
			validateOptionLetter(&errs, fmt.Sprintf("correctAnswers[%d]", i), letter, len(c.Options))
			if seen[letter] {
				errs.Add(fmt.Sprintf("correctAnswers[%d]", i), "is duplicated", letter)
			}
			seen[letter] = true
		}
	case *models.TrueFalseContent:
		seen := map[string]bool{}
		for i := range c.Items {
			key := c.ItemKey(i)
			if seen[key] {
				errs.Add(fmt.Sprintf("items[%d].id", i), "is duplicated", key)
			}
			seen[key] = true
		}
	case *models.ShortAnswerContent:
		if strings.TrimSpace(c.CorrectAnswer) == "" {
			errs.Add("correctAnswer", "must not be blank", c.CorrectAnswer)
		}
	case *models.MatchingContent:
		seen := map[string]bool{}
		for i, pair := range c.Pairs {
			if seen[pair.Left] {
				errs.Add(fmt.Sprintf("pairs[%d].left", i), "is duplicated", pair.Left)
			}
			seen[pair.Left] = true
		}
	case *models.DragDropContent:
		if markers := len(c.BlankKeys()); markers != len(c.Blanks) {
			errs.Add("blanks", fmt.Sprintf("has %d entries but text has %d blanks", len(c.Blanks), markers), len(c.Blanks))
		}
	case *models.OrderingContent:
		if !isPermutation(c.CorrectOrder, len(c.Items)) {
			errs.Add("correctOrder", "must be a permutation of the item indexes", c.CorrectOrder)
		}
	case *models.DropdownContent:
		seen := map[string]bool{}
		for i, blank := range c.Blanks {
			if seen[blank.ID] {
				errs.Add(fmt.Sprintf("blanks[%d].id", i), "is duplicated", blank.ID)
			}
			seen[blank.ID] = true
			if !contains(blank.Options, blank.CorrectAnswer) {
				errs.Add(fmt.Sprintf("blanks[%d].correctAnswer", i), "must be one of the options", blank.CorrectAnswer)
			}
		}
	case *models.UnderlineContent:
		seen := map[int]bool{}
		for i, idx := range c.CorrectWordIndexes {
			field := fmt.Sprintf("correctWordIndexes[%d]", i)
			if idx < 0 || idx >= len(c.Words) {
				errs.Add(field, "is out of range", idx)
			}
			if seen[idx] {
				errs.Add(field, "is duplicated", idx)
			}
			seen[idx] = true
		}
	default:
		errs.Add("type", "unsupported question type", q.Type)
	}

	return errs
}

// OptionLetter returns the letter for option i: 0 is "A".
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

func validateOptionLetter(errs *ValidationErrors, field, letter string, optionCount int) {
	if optionCount < 1 {
		errs.Add(field, "has no options to refer to", letter)
		return
	}
	if len(letter) != 1 || letter[0] < 'A' || int(letter[0]-'A') >= optionCount {
		errs.Add(field, fmt.Sprintf("must be one of the option letters A-%s", OptionLetter(optionCount-1)), letter)
	}
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
