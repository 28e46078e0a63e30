package spreadsheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

type quizSheet struct {
	w *Workbook
}

func (s *quizSheet) Create(ctx context.Context, quiz *models.Quiz) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	exists, err := s.existsLocked(quiz.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("quiz %s: %w", quiz.ID, repositories.ErrDuplicate)
	}
	if err := s.appendLocked(quiz); err != nil {
		return err
	}
	return s.w.saveLocked()
}

func (s *quizSheet) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	quizzes, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, q := range quizzes {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, fmt.Errorf("quiz %s: %w", id, repositories.ErrNotFound)
}

func (s *quizSheet) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	quizzes, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	out := make([]*models.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if filters.MatchesQuiz(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// Update deletes the quiz rows and question rows, then appends the new ones
func (s *quizSheet) Update(ctx context.Context, quiz *models.Quiz) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	removed, err := s.deleteLocked(quiz.ID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("quiz %s: %w", quiz.ID, repositories.ErrNotFound)
	}
	if err := s.appendLocked(quiz); err != nil {
		return err
	}
	return s.w.saveLocked()
}

func (s *quizSheet) Delete(ctx context.Context, id string) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	removed, err := s.deleteLocked(id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("quiz %s: %w", id, repositories.ErrNotFound)
	}
	return s.w.saveLocked()
}

func (s *quizSheet) existsLocked(id string) (bool, error) {
	records, _, err := s.w.readRecords(SheetQuizzes)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec[colID] == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *quizSheet) appendLocked(quiz *models.Quiz) error {
	requireCode := sheetFalse
	if quiz.RequireCode {
		requireCode = sheetTrue
	}
	quizRow := row{
		colID:          quiz.ID,
		colTitle:       quiz.Title,
		colClassLevel:  quiz.ClassLevel,
		colCategory:    quiz.Category,
		colTimeLimit:   quiz.TimeLimit,
		colCreatedAt:   quiz.CreatedAt.UTC().Format(time.RFC3339),
		colAccessCode:  quiz.AccessCode,
		colRequireCode: requireCode,
	}

	questionRows := make([]row, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		r, err := questionRow(quiz.ID, &quiz.Questions[i])
		if err != nil {
			return err
		}
		questionRows = append(questionRows, r)
	}

	if err := s.w.appendRows(SheetQuizzes, []row{quizRow}); err != nil {
		return err
	}
	return s.w.appendRows(SheetQuestions, questionRows)
}

func (s *quizSheet) deleteLocked(id string) (int, error) {
	removed, err := s.w.deleteWhere(SheetQuizzes, colID, id)
	if err != nil {
		return removed, err
	}
	if _, err := s.w.deleteWhere(SheetQuestions, colQuizID, id); err != nil {
		return removed, err
	}
	return removed, nil
}

// loadLocked joins quiz rows with their question rows in sheet order.
// Unreadable question rows are logged and skipped.
func (s *quizSheet) loadLocked() ([]*models.Quiz, error) {
	questionRecords, _, err := s.w.readRecords(SheetQuestions)
	if err != nil {
		return nil, err
	}
	byQuiz := make(map[string][]models.Question)
	for _, rec := range questionRecords {
		q, err := questionFromRecord(rec)
		if err != nil {
			s.w.logger.Warn("Skipping unreadable question row", "quiz_id", rec[colQuizID], "error", err)
			continue
		}
		byQuiz[rec[colQuizID]] = append(byQuiz[rec[colQuizID]], *q)
	}

	quizRecords, _, err := s.w.readRecords(SheetQuizzes)
	if err != nil {
		return nil, err
	}
	quizzes := make([]*models.Quiz, 0, len(quizRecords))
	for _, rec := range quizRecords {
		quiz := quizFromRecord(rec)
		quiz.Questions = byQuiz[quiz.ID]
		if quiz.Questions == nil {
			quiz.Questions = []models.Question{}
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func quizFromRecord(rec record) *models.Quiz {
	timeLimit, err := strconv.Atoi(strings.TrimSpace(rec[colTimeLimit]))
	if err != nil || timeLimit <= 0 {
		timeLimit = models.DefaultTimeLimit
	}
	return &models.Quiz{
		ID:          rec[colID],
		Title:       rec[colTitle],
		ClassLevel:  rec[colClassLevel],
		Category:    rec[colCategory],
		TimeLimit:   timeLimit,
		CreatedAt:   parseTime(rec[colCreatedAt]),
		AccessCode:  rec[colAccessCode],
		RequireCode: strings.EqualFold(rec[colRequireCode], sheetTrue),
	}
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// parseTime accepts the layouts found in the sheet and returns the zero time
// for anything else.
func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
