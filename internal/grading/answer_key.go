package grading

import "github.com/SAP-F-2025/quiz-service/internal/models"

// AnswerKey builds the answer a fully correct student would submit for q.
// It returns nil for content it does not know.
func AnswerKey(q *models.Question) models.Answer {
	switch c := q.Content.(type) {
	case *models.MCQContent:
		return models.MCQAnswer(c.CorrectAnswer)
	case *models.ImageQuestionContent:
		return models.ImageAnswer(c.CorrectAnswer)
	case *models.MultipleSelectContent:
		return models.MultipleSelectAnswer(append([]string(nil), c.CorrectAnswers...))
	case *models.TrueFalseContent:
		a := make(models.TrueFalseAnswer, len(c.Items))
		for i, item := range c.Items {
			a[c.ItemKey(i)] = item.IsCorrect
		}
		return a
	case *models.ShortAnswerContent:
		return models.ShortAnswer(c.CorrectAnswer)
	case *models.MatchingContent:
		a := make(models.MatchingAnswer, len(c.Pairs))
		for _, pair := range c.Pairs {
			a[pair.Left] = pair.Right
		}
		return a
	case *models.DragDropContent:
		a := models.DragDropAnswer{}
		for i, key := range c.BlankKeys() {
			if i < len(c.Blanks) {
				a[key] = c.Blanks[i]
			}
		}
		return a
	case *models.OrderingContent:
		a := make(models.OrderingAnswer, len(c.CorrectOrder))
		for pos, itemIdx := range c.CorrectOrder {
			a[itemIdx] = pos + 1
		}
		return a
	case *models.DropdownContent:
		a := make(models.DropdownAnswer, len(c.Blanks))
		for _, blank := range c.Blanks {
			a[blank.ID] = blank.CorrectAnswer
		}
		return a
	case *models.UnderlineContent:
		return models.UnderlineAnswer(append([]int(nil), c.CorrectWordIndexes...))
	default:
		return nil
	}
}

// AnswerKeys returns AnswerKey for every question of quiz.
func AnswerKeys(quiz *models.Quiz) models.Answers {
	answers := make(models.Answers, len(quiz.Questions))
	for i := range quiz.Questions {
		if a := AnswerKey(&quiz.Questions[i]); a != nil {
			answers[quiz.Questions[i].ID] = a
		}
	}
	return answers
}
