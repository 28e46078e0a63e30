package models

import "time"

const (
	MaxScore = 10

	ScoreExcellent = 9
	ScoreGood      = 7
	ScorePass      = 5
)

// Verdict is the grading outcome of one question.
type Verdict struct {
	QuestionID string       `json:"questionId"`
	Type       QuestionType `json:"type"`
	Correct    bool         `json:"correct"`
}

// StudentResult is one graded submission. Results are append-only.
type StudentResult struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	QuizTitle      string    `json:"quizTitle,omitempty"`
	StudentName    string    `json:"studentName"`
	StudentClass   string    `json:"studentClass"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correctCount"`
	TotalQuestions int       `json:"totalQuestions"`
	TimeTaken      int       `json:"timeTaken"`
	SubmittedAt    time.Time `json:"submittedAt"`
	Answers        Answers   `json:"answers"`
	Verdicts       []Verdict `json:"verdicts,omitempty"`
}

type ScoreBand string

const (
	BandExcellent ScoreBand = "EXCELLENT"
	BandGood      ScoreBand = "GOOD"
	BandPass      ScoreBand = "PASS"
	BandFail      ScoreBand = "FAIL"
)

func (r *StudentResult) Passed() bool {
	return r.Score >= ScorePass
}

func (r *StudentResult) Band() ScoreBand {
	switch {
	case r.Score >= ScoreExcellent:
		return BandExcellent
	case r.Score >= ScoreGood:
		return BandGood
	case r.Score >= ScorePass:
		return BandPass
	default:
		return BandFail
	}
}
