package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type QuestionType string

const (
	QuestionMCQ            QuestionType = "MCQ"
	QuestionMultipleSelect QuestionType = "MULTIPLE_SELECT"
	QuestionTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionShortAnswer    QuestionType = "SHORT_ANSWER"
	QuestionMatching       QuestionType = "MATCHING"
	QuestionDragDrop       QuestionType = "DRAG_DROP"
	QuestionOrdering       QuestionType = "ORDERING"
	QuestionImage          QuestionType = "IMAGE_QUESTION"
	QuestionDropdown       QuestionType = "DROPDOWN"
	QuestionUnderline      QuestionType = "UNDERLINE"
)

// AllQuestionTypes lists every variant. Code that switches on QuestionType is
// tested against this list so a new variant cannot be added silently.
var AllQuestionTypes = []QuestionType{
	QuestionMCQ,
	QuestionMultipleSelect,
	QuestionTrueFalse,
	QuestionShortAnswer,
	QuestionMatching,
	QuestionDragDrop,
	QuestionOrdering,
	QuestionImage,
	QuestionDropdown,
	QuestionUnderline,
}

func (t QuestionType) IsValid() bool {
	for _, known := range AllQuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// QuestionContent is the variant-specific part of a question. The set of
// implementations is closed to this package.
type QuestionContent interface {
	QuestionType() QuestionType
	isQuestionContent()
}

// Question is a single quiz item. Type always agrees with Content.
type Question struct {
	ID          string          `json:"id" validate:"required"`
	Type        QuestionType    `json:"type" validate:"required,question_type"`
	Image       string          `json:"image,omitempty" validate:"omitempty,url"`
	Explanation string          `json:"explanation,omitempty"`
	Content     QuestionContent `json:"-" validate:"-"`
}

// NewQuestion builds a question whose Type is taken from its content.
func NewQuestion(id string, content QuestionContent) Question {
	q := Question{ID: id, Content: content}
	if content != nil {
		q.Type = content.QuestionType()
	}
	return q
}

// ===== VARIANT CONTENT =====

type MCQContent struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,max=6"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type MultipleSelectContent struct {
	Question       string   `json:"question" validate:"required"`
	Options        []string `json:"options" validate:"min=2,max=6"`
	CorrectAnswers []string `json:"correctAnswers" validate:"min=1"`
}

type TrueFalseItem struct {
	ID        string `json:"id"`
	Statement string `json:"statement" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type TrueFalseContent struct {
	MainQuestion string          `json:"mainQuestion" validate:"required"`
	Items        []TrueFalseItem `json:"items" validate:"min=1,max=10,dive"`
}

// ItemKey is the answer key for the item at idx. Items without an id are
// keyed by position.
func (c *TrueFalseContent) ItemKey(idx int) string {
	if id := c.Items[idx].ID; id != "" {
		return id
	}
	return fmt.Sprintf("item-%d", idx)
}

type ShortAnswerContent struct {
	Question      string `json:"question" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
}

type MatchingPair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

type MatchingContent struct {
	Question string         `json:"question" validate:"required"`
	Pairs    []MatchingPair `json:"pairs" validate:"min=2,max=10,dive"`
}

// DragDropContent marks each blank in Text with the correct word in square
// brackets. Blanks holds the correct words in text order.
type DragDropContent struct {
	Question    string   `json:"question" validate:"required"`
	Text        string   `json:"text" validate:"required"`
	Blanks      []string `json:"blanks" validate:"min=1"`
	Distractors []string `json:"distractors"`
}

var blankMarker = regexp.MustCompile(`\[.*?\]`)

// DragDropBlankKeys returns the answer key of every blank in text, in text
// order. The text is split around "[...]" markers, keeping the markers, and
// a blank's key is the index of its marker in that split. The k-th blank is
// therefore normally keyed 2k+1.
func DragDropBlankKeys(text string) []int {
	var parts []string
	last := 0
	for _, loc := range blankMarker.FindAllStringIndex(text, -1) {
		parts = append(parts, text[last:loc[0]], text[loc[0]:loc[1]])
		last = loc[1]
	}
	parts = append(parts, text[last:])

	var keys []int
	for i, part := range parts {
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			keys = append(keys, i)
		}
	}
	return keys
}

// BlankKeys returns DragDropBlankKeys for the content's text.
func (c *DragDropContent) BlankKeys() []int {
	return DragDropBlankKeys(c.Text)
}

// OrderingContent holds shuffled items. CorrectOrder[i] is the index of the
// item that belongs at position i+1.
type OrderingContent struct {
	Question     string   `json:"question" validate:"required"`
	Items        []string `json:"items" validate:"min=2,dive,required"`
	CorrectOrder []int    `json:"correctOrder" validate:"min=2"`
}

type ImageQuestionContent struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,max=6"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type DropdownBlank struct {
	ID            string   `json:"id" validate:"required"`
	Options       []string `json:"options" validate:"min=2"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type DropdownContent struct {
	Question string          `json:"question" validate:"required"`
	Text     string          `json:"text" validate:"required"`
	Blanks   []DropdownBlank `json:"blanks" validate:"min=1,dive"`
}

type UnderlineContent struct {
	Question           string   `json:"question" validate:"required"`
	Sentence           string   `json:"sentence" validate:"required"`
	Words              []string `json:"words" validate:"min=1"`
	CorrectWordIndexes []int    `json:"correctWordIndexes" validate:"min=1"`
}

func (*MCQContent) QuestionType() QuestionType            { return QuestionMCQ }
func (*MultipleSelectContent) QuestionType() QuestionType { return QuestionMultipleSelect }
func (*TrueFalseContent) QuestionType() QuestionType      { return QuestionTrueFalse }
func (*ShortAnswerContent) QuestionType() QuestionType    { return QuestionShortAnswer }
func (*MatchingContent) QuestionType() QuestionType       { return QuestionMatching }
func (*DragDropContent) QuestionType() QuestionType       { return QuestionDragDrop }
func (*OrderingContent) QuestionType() QuestionType       { return QuestionOrdering }
func (*ImageQuestionContent) QuestionType() QuestionType  { return QuestionImage }
func (*DropdownContent) QuestionType() QuestionType       { return QuestionDropdown }
func (*UnderlineContent) QuestionType() QuestionType      { return QuestionUnderline }

func (*MCQContent) isQuestionContent()            {}
func (*MultipleSelectContent) isQuestionContent() {}
func (*TrueFalseContent) isQuestionContent()      {}
func (*ShortAnswerContent) isQuestionContent()    {}
func (*MatchingContent) isQuestionContent()       {}
func (*DragDropContent) isQuestionContent()       {}
func (*OrderingContent) isQuestionContent()       {}
func (*ImageQuestionContent) isQuestionContent()  {}
func (*DropdownContent) isQuestionContent()       {}
func (*UnderlineContent) isQuestionContent()      {}

// NewContent returns an empty content value for the given type.
func NewContent(t QuestionType) (QuestionContent, error) {
	switch t {
	case QuestionMCQ:
		return &MCQContent{}, nil
	case QuestionMultipleSelect:
		return &MultipleSelectContent{}, nil
	case QuestionTrueFalse:
		return &TrueFalseContent{}, nil
	case QuestionShortAnswer:
		return &ShortAnswerContent{}, nil
	case QuestionMatching:
		return &MatchingContent{}, nil
	case QuestionDragDrop:
		return &DragDropContent{}, nil
	case QuestionOrdering:
		return &OrderingContent{}, nil
	case QuestionImage:
		return &ImageQuestionContent{}, nil
	case QuestionDropdown:
		return &DropdownContent{}, nil
	case QuestionUnderline:
		return &UnderlineContent{}, nil
	default:
		return nil, fmt.Errorf("unsupported question type: %q", t)
	}
}

// ===== JSON =====

type questionHeader struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Image       string       `json:"image,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
}

// MarshalJSON writes the question as one flat object: the common fields plus
// the fields of its content.
func (q Question) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if q.Content != nil {
		contentBytes, err := json.Marshal(q.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s content: %w", q.Type, err)
		}
		if err := json.Unmarshal(contentBytes, &fields); err != nil {
			return nil, err
		}
	}

	headerBytes, err := json.Marshal(questionHeader{
		ID:          q.ID,
		Type:        q.Type,
		Image:       q.Image,
		Explanation: q.Explanation,
	})
	if err != nil {
		return nil, err
	}
	var header map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, err
	}
	for k, v := range header {
		fields[k] = v
	}
	return json.Marshal(fields)
}

// UnmarshalJSON dispatches on the "type" field. Unknown types are rejected.
func (q *Question) UnmarshalJSON(data []byte) error {
	var header questionHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}
	content, err := NewContent(header.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, content); err != nil {
		return fmt.Errorf("invalid %s question %q: %w", header.Type, header.ID, err)
	}

	q.ID = header.ID
	q.Type = header.Type
	q.Image = header.Image
	q.Explanation = header.Explanation
	q.Content = content
	return nil
}
