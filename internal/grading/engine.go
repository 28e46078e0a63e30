// Package grading turns a quiz and a student's answers into a result. Every
// function here is pure: nothing is logged, stored or mutated.
package grading

import (
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// StudentMeta carries the fields of a result that do not come from grading.
type StudentMeta struct {
	ResultID     string
	StudentName  string
	StudentClass string
	TimeTaken    int
	SubmittedAt  time.Time
}

// GradeQuiz grades every question in quiz order. A missing answer, or one of
// the wrong shape, makes that question incorrect; grading itself never fails.
func GradeQuiz(quiz *models.Quiz, answers models.Answers, meta StudentMeta) models.StudentResult {
	verdicts := make([]models.Verdict, len(quiz.Questions))
	correct := 0
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		ok := GradeQuestion(q, answers[q.ID])
		if ok {
			correct++
		}
		verdicts[i] = models.Verdict{QuestionID: q.ID, Type: q.Type, Correct: ok}
	}

	stored := make(models.Answers, len(answers))
	for id, a := range answers {
		stored[id] = a
	}

	total := len(quiz.Questions)
	return models.StudentResult{
		ID:             meta.ResultID,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		StudentName:    meta.StudentName,
		StudentClass:   meta.StudentClass,
		Score:          Score(correct, total),
		CorrectCount:   correct,
		TotalQuestions: total,
		TimeTaken:      meta.TimeTaken,
		SubmittedAt:    meta.SubmittedAt,
		Answers:        stored,
		Verdicts:       verdicts,
	}
}

// Score maps correct/total onto 0..10, rounding to the nearest integer with
// halves rounded up.
func Score(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	if correct > total {
		correct = total
	}
	return (20*correct + total) / (2 * total)
}

// MinutesBetween returns the elapsed whole minutes from start to end, with
// halves rounded up. A negative span counts as zero.
func MinutesBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int((d + 30*time.Second) / time.Minute)
}

// GradeQuestion reports whether answer is fully correct for q.
func GradeQuestion(q *models.Question, answer models.Answer) bool {
	if q == nil || answer == nil {
		return false
	}

	switch c := q.Content.(type) {
	case *models.MCQContent:
		a, ok := answer.(models.MCQAnswer)
		return ok && string(a) == c.CorrectAnswer
	case *models.ImageQuestionContent:
		a, ok := answer.(models.ImageAnswer)
		return ok && string(a) == c.CorrectAnswer
	case *models.MultipleSelectContent:
		a, ok := answer.(models.MultipleSelectAnswer)
		return ok && len(c.CorrectAnswers) > 0 && setEqual(toSet(c.CorrectAnswers), toSet(a))
	case *models.TrueFalseContent:
		a, ok := answer.(models.TrueFalseAnswer)
		return ok && gradeTrueFalse(c, a)
	case *models.ShortAnswerContent:
		a, ok := answer.(models.ShortAnswer)
		return ok && normalizeShort(string(a)) == normalizeShort(c.CorrectAnswer)
	case *models.MatchingContent:
		a, ok := answer.(models.MatchingAnswer)
		return ok && gradeMatching(c, a)
	case *models.DragDropContent:
		a, ok := answer.(models.DragDropAnswer)
		return ok && gradeDragDrop(c, a)
	case *models.OrderingContent:
		a, ok := answer.(models.OrderingAnswer)
		return ok && gradeOrdering(c, a)
	case *models.DropdownContent:
		a, ok := answer.(models.DropdownAnswer)
		return ok && gradeDropdown(c, a)
	case *models.UnderlineContent:
		a, ok := answer.(models.UnderlineAnswer)
		return ok && len(c.CorrectWordIndexes) > 0 && setEqual(toSet(c.CorrectWordIndexes), toSet(a))
	default:
		return false
	}
}

// --- per-type rules ---

func gradeTrueFalse(c *models.TrueFalseContent, a models.TrueFalseAnswer) bool {
	if len(c.Items) == 0 {
		return false
	}
	allCorrect := true
	for i, item := range c.Items {
		got, ok := a[c.ItemKey(i)]
		if !ok || got != item.IsCorrect {
			allCorrect = false
		}
	}
	return allCorrect
}

// gradeMatching ignores lefts that are not part of any pair.
func gradeMatching(c *models.MatchingContent, a models.MatchingAnswer) bool {
	if len(c.Pairs) == 0 {
		return false
	}
	for _, pair := range c.Pairs {
		got, ok := a[pair.Left]
		if !ok || got != pair.Right {
			return false
		}
	}
	return true
}

// gradeDragDrop matches the k-th blank in the text against Blanks[k]. Blanks
// are positional and carry no id.
func gradeDragDrop(c *models.DragDropContent, a models.DragDropAnswer) bool {
	keys := c.BlankKeys()
	if len(keys) == 0 {
		return false
	}
	for i, key := range keys {
		if i >= len(c.Blanks) {
			return false
		}
		got, ok := a[key]
		if !ok || got != c.Blanks[i] {
			return false
		}
	}
	return true
}

func gradeOrdering(c *models.OrderingContent, a models.OrderingAnswer) bool {
	if len(c.Items) == 0 || len(c.CorrectOrder) == 0 {
		return false
	}
	for pos, itemIdx := range c.CorrectOrder {
		rank, ok := a[itemIdx]
		if !ok || rank != pos+1 {
			return false
		}
	}
	return true
}

func gradeDropdown(c *models.DropdownContent, a models.DropdownAnswer) bool {
	if len(c.Blanks) == 0 {
		return false
	}
	for _, blank := range c.Blanks {
		got, ok := a[blank.ID]
		if !ok || got != blank.CorrectAnswer {
			return false
		}
	}
	return true
}

func normalizeShort(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func setEqual[T comparable](a, b map[T]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
