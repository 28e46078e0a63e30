package spreadsheet

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

type resultSheet struct {
	w *Workbook
}

func (s *resultSheet) Create(ctx context.Context, result *models.StudentResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers of result %s: %w", result.ID, err)
	}
	verdicts := ""
	if len(result.Verdicts) > 0 {
		verdicts = mustJSON(result.Verdicts)
	}

	r := row{
		colID:             result.ID,
		colQuizID:         result.QuizID,
		colStudentName:    result.StudentName,
		colClass:          result.StudentClass,
		colQuizTitle:      result.QuizTitle,
		colScore:          result.Score,
		colCorrectCount:   result.CorrectCount,
		colTotalQuestions: result.TotalQuestions,
		colTimeTaken:      result.TimeTaken,
		colSubmittedAt:    result.SubmittedAt.UTC().Format(time.RFC3339),
		colAnswers:        string(answers),
		colVerdicts:       verdicts,
	}

	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	if err := s.w.appendRows(SheetResults, []row{r}); err != nil {
		return err
	}
	return s.w.saveLocked()
}

func (s *resultSheet) GetByID(ctx context.Context, id string) (*models.StudentResult, error) {
	results, err := s.List(ctx, repositories.ResultFilters{})
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.ID == id && id != "" {
			return r, nil
		}
	}
	return nil, fmt.Errorf("result %s: %w", id, repositories.ErrNotFound)
}

func (s *resultSheet) List(ctx context.Context, filters repositories.ResultFilters) ([]*models.StudentResult, error) {
	s.w.mu.Lock()
	records, _, err := s.w.readRecords(SheetResults)
	s.w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	results := make([]*models.StudentResult, 0, len(records))
	for _, rec := range records {
		r := s.fromRecord(rec)
		if filters.MatchesResult(r) {
			results = append(results, r)
		}
	}
	return results, nil
}

// fromRecord reads a result row. Rows written by hand, or before answers were
// kept, simply come back without answers.
func (s *resultSheet) fromRecord(rec record) *models.StudentResult {
	r := &models.StudentResult{
		ID:             rec[colID],
		QuizID:         rec[colQuizID],
		QuizTitle:      rec[colQuizTitle],
		StudentName:    rec[colStudentName],
		StudentClass:   rec[colClass],
		Score:          parseScore(rec[colScore]),
		CorrectCount:   parseInt(rec[colCorrectCount]),
		TotalQuestions: parseInt(rec[colTotalQuestions]),
		TimeTaken:      parseInt(rec[colTimeTaken]),
		SubmittedAt:    parseTime(rec[colSubmittedAt]),
	}
	if raw := rec[colAnswers]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &r.Answers); err != nil {
			s.w.logger.Warn("Ignoring unreadable answers cell", "result_id", r.ID, "error", err)
			r.Answers = nil
		}
	}
	if raw := rec[colVerdicts]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &r.Verdicts); err != nil {
			r.Verdicts = nil
		}
	}
	return r
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// parseScore also accepts the one-decimal scores of older rows
func parseScore(value string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return int(math.Floor(f + 0.5))
}
