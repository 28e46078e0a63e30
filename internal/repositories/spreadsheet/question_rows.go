package spreadsheet

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// questionRow flattens a question into the Questions sheet. The legacy columns
// hold what a teacher reading the sheet needs; the data column carries the
// whole question and wins on read.
func questionRow(quizID string, q *models.Question) (row, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode question %s: %w", q.ID, err)
	}

	r := row{
		colID:     q.ID,
		colQuizID: quizID,
		colType:   string(q.Type),
		colData:   string(data),
	}

	switch c := q.Content.(type) {
	case *models.MCQContent:
		r[colQuestion] = c.Question
		r[colOptions] = strings.Join(c.Options, optionSeparator)
		r[colCorrectAnswer] = c.CorrectAnswer
	case *models.ImageQuestionContent:
		r[colQuestion] = c.Question
		r[colOptions] = strings.Join(c.Options, optionSeparator)
		r[colCorrectAnswer] = c.CorrectAnswer
	case *models.MultipleSelectContent:
		r[colQuestion] = c.Question
		r[colOptions] = strings.Join(c.Options, optionSeparator)
		r[colCorrectAnswer] = mustJSON(c.CorrectAnswers)
	case *models.TrueFalseContent:
		r[colQuestion] = c.MainQuestion
		r[colItems] = mustJSON(c.Items)
	case *models.ShortAnswerContent:
		r[colQuestion] = c.Question
		r[colCorrectAnswer] = c.CorrectAnswer
	case *models.MatchingContent:
		r[colQuestion] = c.Question
		r[colItems] = mustJSON(c.Pairs)
	case *models.DragDropContent:
		r[colQuestion] = c.Question
		r[colText] = c.Text
		r[colBlanks] = mustJSON(nonNil(c.Blanks))
		r[colDistractors] = mustJSON(nonNil(c.Distractors))
	case *models.OrderingContent:
		r[colQuestion] = c.Question
		r[colItems] = mustJSON(c.Items)
	case *models.DropdownContent:
		r[colQuestion] = c.Question
		r[colText] = c.Text
	case *models.UnderlineContent:
		r[colQuestion] = c.Question
		r[colText] = c.Sentence
	}
	return r, nil
}

// questionFromRecord rebuilds a question. Rows without a data column are read
// the way the legacy sheet stored them, which only covers the types listed in
// legacyQuestion.
func questionFromRecord(rec record) (*models.Question, error) {
	if data := rec[colData]; data != "" {
		var q models.Question
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, fmt.Errorf("question %s: %w", rec[colID], err)
		}
		return &q, nil
	}
	return legacyQuestion(rec)
}

func legacyQuestion(rec record) (*models.Question, error) {
	var content models.QuestionContent
	switch models.QuestionType(rec[colType]) {
	case models.QuestionMCQ:
		content = &models.MCQContent{
			Question:      rec[colQuestion],
			Options:       splitOptions(rec[colOptions]),
			CorrectAnswer: rec[colCorrectAnswer],
		}
	case models.QuestionMultipleSelect:
		c := &models.MultipleSelectContent{Question: rec[colQuestion], Options: splitOptions(rec[colOptions])}
		if err := decodeCell(rec, colCorrectAnswer, &c.CorrectAnswers); err != nil {
			return nil, err
		}
		content = c
	case models.QuestionTrueFalse:
		c := &models.TrueFalseContent{MainQuestion: rec[colQuestion]}
		if err := decodeCell(rec, colItems, &c.Items); err != nil {
			return nil, err
		}
		content = c
	case models.QuestionShortAnswer:
		content = &models.ShortAnswerContent{Question: rec[colQuestion], CorrectAnswer: rec[colCorrectAnswer]}
	case models.QuestionMatching:
		c := &models.MatchingContent{Question: rec[colQuestion]}
		if err := decodeCell(rec, colItems, &c.Pairs); err != nil {
			return nil, err
		}
		content = c
	case models.QuestionDragDrop:
		c := &models.DragDropContent{Question: rec[colQuestion], Text: rec[colText]}
		if err := decodeCell(rec, colBlanks, &c.Blanks); err != nil {
			return nil, err
		}
		if err := decodeCell(rec, colDistractors, &c.Distractors); err != nil {
			return nil, err
		}
		content = c
	default:
		return nil, fmt.Errorf("question %s: type %q cannot be read without a data column", rec[colID], rec[colType])
	}

	q := models.NewQuestion(rec[colID], content)
	return &q, nil
}

func decodeCell(rec record, column string, dest interface{}) error {
	raw := rec[column]
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("question %s: bad %s cell: %w", rec[colID], column, err)
	}
	return nil
}

func splitOptions(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, optionSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
