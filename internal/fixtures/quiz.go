// Package fixtures holds sample quizzes shared by tests.
package fixtures

import (
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

var CreatedAt = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// SampleQuiz returns a fresh quiz with one question of every type.
func SampleQuiz() *models.Quiz {
	return &models.Quiz{
		ID:         "quiz-khoa-hoc-3",
		Title:      "Ôn tập Khoa học lớp 3",
		ClassLevel: "3",
		Category:   "Khoa học",
		TimeLimit:  15,
		CreatedAt:  CreatedAt,
		Questions: []models.Question{
			models.NewQuestion("q1", &models.MCQContent{
				Question:      "Nước sôi ở bao nhiêu độ C?",
				Options:       []string{"90", "100", "110", "120"},
				CorrectAnswer: "B",
			}),
			models.NewQuestion("q2", &models.MultipleSelectContent{
				Question:       "Chọn các chất lỏng",
				Options:        []string{"Nước", "Đá", "Dầu ăn", "Muối"},
				CorrectAnswers: []string{"A", "C"},
			}),
			models.NewQuestion("q3", &models.TrueFalseContent{
				MainQuestion: "Về nước:",
				Items: []models.TrueFalseItem{
					{ID: "i1", Statement: "Nước có màu trắng", IsCorrect: false},
					{ID: "i2", Statement: "Nước không có mùi", IsCorrect: true},
					{Statement: "Nước có thể hòa tan muối", IsCorrect: true},
				},
			}),
			models.NewQuestion("q4", &models.ShortAnswerContent{
				Question:      "Thủ đô của Việt Nam là gì?",
				CorrectAnswer: "Hà Nội",
			}),
			models.NewQuestion("q5", &models.MatchingContent{
				Question: "Nối cột A với cột B",
				Pairs: []models.MatchingPair{
					{Left: "Nước", Right: "Lỏng"},
					{Left: "Đá", Right: "Rắn"},
					{Left: "Hơi nước", Right: "Khí"},
				},
			}),
			models.NewQuestion("q6", &models.DragDropContent{
				Question:    "Điền từ (suối, đồng, xoan) vào chỗ trống",
				Text:        "Mưa giăng trên [đồng]. Hoa [xoan] theo gió",
				Blanks:      []string{"đồng", "xoan"},
				Distractors: []string{"suối"},
			}),
			models.NewQuestion("q7", &models.OrderingContent{
				Question:     "Sắp xếp các câu theo thứ tự đúng",
				Items:        []string{"Câu 2", "Câu 1", "Câu 3"},
				CorrectOrder: []int{1, 0, 2},
			}),
			{
				ID:    "q8",
				Type:  models.QuestionImage,
				Image: "https://example.com/images/shapes.png",
				Content: &models.ImageQuestionContent{
					Question:      "Dựa vào hình bên, có bao nhiêu hình tam giác?",
					Options:       []string{"2", "3", "4", "5"},
					CorrectAnswer: "C",
				},
			},
			models.NewQuestion("q9", &models.DropdownContent{
				Question: "Chọn từ đúng điền vào chỗ trống",
				Text:     "Thủ đô Việt Nam là [1]. Dân số khoảng [2] triệu người.",
				Blanks: []models.DropdownBlank{
					{ID: "blank-1", Options: []string{"Hà Nội", "TP.HCM", "Đà Nẵng"}, CorrectAnswer: "Hà Nội"},
					{ID: "blank-2", Options: []string{"90", "100", "80"}, CorrectAnswer: "100"},
				},
			}),
			models.NewQuestion("q10", &models.UnderlineContent{
				Question:           "Gạch chân động từ trong câu sau",
				Sentence:           "Mặt trời ngả nắng đằng tây",
				Words:              []string{"Mặt trời", "ngả", "nắng", "đằng tây"},
				CorrectWordIndexes: []int{1},
			}),
		},
	}
}

// SampleAnswers is a fully correct answer set for SampleQuiz.
func SampleAnswers() models.Answers {
	return models.Answers{
		"q1":  models.MCQAnswer("B"),
		"q2":  models.MultipleSelectAnswer{"C", "A"},
		"q3":  models.TrueFalseAnswer{"i1": false, "i2": true, "item-2": true},
		"q4":  models.ShortAnswer("  hà nội "),
		"q5":  models.MatchingAnswer{"Nước": "Lỏng", "Đá": "Rắn", "Hơi nước": "Khí"},
		"q6":  models.DragDropAnswer{1: "đồng", 3: "xoan"},
		"q7":  models.OrderingAnswer{1: 1, 0: 2, 2: 3},
		"q8":  models.ImageAnswer("C"),
		"q9":  models.DropdownAnswer{"blank-1": "Hà Nội", "blank-2": "100"},
		"q10": models.UnderlineAnswer{1},
	}
}

// SampleSubmissionJSON is SampleAnswers in the plain shape a quiz taker sends.
const SampleSubmissionJSON = `{
	"q1": "B",
	"q2": ["C", "A"],
	"q3": {"i1": false, "i2": true, "item-2": true},
	"q4": "  hà nội ",
	"q5": {"Nước": "Lỏng", "Đá": "Rắn", "Hơi nước": "Khí", "selectedLeft": null},
	"q6": {"1": "đồng", "3": "xoan"},
	"q7": {"0": 2, "1": 1, "2": 3},
	"q8": "C",
	"q9": {"blank-1": "Hà Nội", "blank-2": "100"},
	"q10": [1]
}`
