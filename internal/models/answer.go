package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Answer is a student's submitted value for one question. Each question type
// has exactly one answer type.
type Answer interface {
	QuestionType() QuestionType
	isAnswer()
}

// MCQAnswer is a single option letter.
type MCQAnswer string

// MultipleSelectAnswer is a set of option letters; order is not significant.
type MultipleSelectAnswer []string

// TrueFalseAnswer maps item key to the chosen truth value.
type TrueFalseAnswer map[string]bool

type ShortAnswer string

// MatchingAnswer maps a left-hand entry to the chosen right-hand entry.
type MatchingAnswer map[string]string

// DragDropAnswer maps a blank key (see DragDropBlankKeys) to the dropped word.
type DragDropAnswer map[int]string

// OrderingAnswer maps an item index to its 1-based rank.
type OrderingAnswer map[int]int

type ImageAnswer string

// DropdownAnswer maps a blank id to the chosen option.
type DropdownAnswer map[string]string

// UnderlineAnswer is the set of underlined word indexes.
type UnderlineAnswer []int

func (MCQAnswer) QuestionType() QuestionType            { return QuestionMCQ }
func (MultipleSelectAnswer) QuestionType() QuestionType { return QuestionMultipleSelect }
func (TrueFalseAnswer) QuestionType() QuestionType      { return QuestionTrueFalse }
func (ShortAnswer) QuestionType() QuestionType          { return QuestionShortAnswer }
func (MatchingAnswer) QuestionType() QuestionType       { return QuestionMatching }
func (DragDropAnswer) QuestionType() QuestionType       { return QuestionDragDrop }
func (OrderingAnswer) QuestionType() QuestionType       { return QuestionOrdering }
func (ImageAnswer) QuestionType() QuestionType          { return QuestionImage }
func (DropdownAnswer) QuestionType() QuestionType       { return QuestionDropdown }
func (UnderlineAnswer) QuestionType() QuestionType      { return QuestionUnderline }

func (MCQAnswer) isAnswer()            {}
func (MultipleSelectAnswer) isAnswer() {}
func (TrueFalseAnswer) isAnswer()      {}
func (ShortAnswer) isAnswer()          {}
func (MatchingAnswer) isAnswer()       {}
func (DragDropAnswer) isAnswer()       {}
func (OrderingAnswer) isAnswer()       {}
func (ImageAnswer) isAnswer()          {}
func (DropdownAnswer) isAnswer()       {}
func (UnderlineAnswer) isAnswer()      {}

// Answers maps question id to the submitted answer.
type Answers map[string]Answer

type answerEnvelope struct {
	Type  QuestionType    `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON stores every answer together with its question type so the
// mapping can be decoded without the quiz.
func (a Answers) MarshalJSON() ([]byte, error) {
	out := make(map[string]answerEnvelope, len(a))
	for id, answer := range a {
		if answer == nil {
			continue
		}
		value, err := json.Marshal(answer)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal answer for %s: %w", id, err)
		}
		out[id] = answerEnvelope{Type: answer.QuestionType(), Value: value}
	}
	return json.Marshal(out)
}

func (a *Answers) UnmarshalJSON(data []byte) error {
	var raw map[string]answerEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Answers, len(raw))
	for id, env := range raw {
		answer, err := DecodeAnswer(env.Type, env.Value)
		if err != nil {
			return fmt.Errorf("answer %s: %w", id, err)
		}
		out[id] = answer
	}
	*a = out
	return nil
}

// DecodeAnswers reads a plain submission (question id to raw value, as sent
// by the quiz taker) using each question's type. Values that do not fit the
// expected shape are left out and therefore grade as incorrect.
func DecodeAnswers(quiz *Quiz, raw map[string]json.RawMessage) Answers {
	answers := make(Answers, len(raw))
	for _, q := range quiz.Questions {
		value, ok := raw[q.ID]
		if !ok {
			continue
		}
		answer, err := DecodeAnswer(q.Type, value)
		if err != nil {
			continue
		}
		answers[q.ID] = answer
	}
	return answers
}

// DecodeAnswer decodes a single raw value as the answer type for t. Map
// shaped answers keep the entries that decode and drop the rest.
func DecodeAnswer(t QuestionType, raw json.RawMessage) (Answer, error) {
	switch t {
	case QuestionMCQ:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return MCQAnswer(s), nil
	case QuestionImage:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return ImageAnswer(s), nil
	case QuestionShortAnswer:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return ShortAnswer(s), nil
	case QuestionMultipleSelect:
		var values []string
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, err
		}
		return MultipleSelectAnswer(values), nil
	case QuestionUnderline:
		var values []int
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, err
		}
		return UnderlineAnswer(values), nil
	case QuestionTrueFalse:
		entries, err := rawEntries(raw)
		if err != nil {
			return nil, err
		}
		out := TrueFalseAnswer{}
		for k, v := range entries {
			var b bool
			if json.Unmarshal(v, &b) == nil {
				out[k] = b
			}
		}
		return out, nil
	case QuestionMatching, QuestionDropdown:
		entries, err := rawEntries(raw)
		if err != nil {
			return nil, err
		}
		out := map[string]string{}
		for k, v := range entries {
			var s string
			if json.Unmarshal(v, &s) == nil {
				out[k] = s
			}
		}
		if t == QuestionMatching {
			return MatchingAnswer(out), nil
		}
		return DropdownAnswer(out), nil
	case QuestionDragDrop:
		entries, err := rawEntries(raw)
		if err != nil {
			return nil, err
		}
		out := DragDropAnswer{}
		for k, v := range entries {
			idx, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			var s string
			if json.Unmarshal(v, &s) == nil {
				out[idx] = s
			}
		}
		return out, nil
	case QuestionOrdering:
		entries, err := rawEntries(raw)
		if err != nil {
			return nil, err
		}
		out := OrderingAnswer{}
		for k, v := range entries {
			idx, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			var rank int
			if json.Unmarshal(v, &rank) == nil {
				out[idx] = rank
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported question type: %q", t)
	}
}

func rawEntries(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
