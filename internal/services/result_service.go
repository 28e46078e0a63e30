package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/grading"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/google/uuid"
)

type resultService struct {
	repo     repositories.Repository
	quizzes  QuizService
	cache    cache.CacheService
	notifier EventNotifier
	log      *ServiceLogger
	now      func() time.Time
}

func NewResultService(
	repo repositories.Repository,
	quizzes QuizService,
	cacheService cache.CacheService,
	notifier EventNotifier,
	logger *ServiceLogger,
) ResultService {
	return &resultService{
		repo:     repo,
		quizzes:  quizzes,
		cache:    cacheService,
		notifier: notifier,
		log:      logger,
		now:      time.Now,
	}
}

// Submit validates the student, checks the access code of a gated quiz and
// grades the answers on the server. Scores sent by a client are never
// trusted.
func (s *resultService) Submit(ctx context.Context, req *SubmitRequest) (*models.StudentResult, error) {
	op := s.log.start(ctx, "submit_result", "result")

	if req == nil || strings.TrimSpace(req.QuizID) == "" {
		err := NewValidationError("quizId", "is required", nil)
		op.done("", err)
		return nil, err
	}

	if errs := ValidateStudent(req.StudentName, req.StudentClass); len(errs) > 0 {
		op.done(req.QuizID, errs)
		return nil, errs
	}

	quiz, err := s.quizzes.Get(ctx, req.QuizID)
	if err != nil {
		op.done(req.QuizID, err)
		return nil, err
	}

	if err := CheckAccessCode(quiz, req.AccessCode); err != nil {
		s.log.LogSecurityEvent(ctx, SecurityEvent{
			Type:        SecurityEventAccessCodeMismatch,
			Subject:     strings.TrimSpace(req.StudentName),
			Description: "submission rejected by access code",
			Metadata:    map[string]interface{}{"quiz_id": quiz.ID},
		})
		op.done(quiz.ID, err)
		return nil, err
	}

	now := s.now().UTC()
	timeTaken := 0
	switch {
	case req.StartedAt != nil:
		timeTaken = grading.MinutesBetween(*req.StartedAt, now)
	case req.TimeTaken != nil && *req.TimeTaken > 0:
		timeTaken = *req.TimeTaken
	}

	answers := models.DecodeAnswers(quiz, req.Answers)
	result, err := s.record(ctx, quiz, answers, grading.StudentMeta{
		StudentName:  strings.TrimSpace(req.StudentName),
		StudentClass: strings.TrimSpace(req.StudentClass),
		TimeTaken:    timeTaken,
		SubmittedAt:  now,
	})
	if err != nil {
		op.done(quiz.ID, err)
		return nil, err
	}

	op.done(result.ID, nil)
	return result, nil
}

func (s *resultService) Record(ctx context.Context, quiz *models.Quiz, answers models.Answers, meta grading.StudentMeta) (*models.StudentResult, error) {
	op := s.log.start(ctx, "record_result", "result")
	result, err := s.record(ctx, quiz, answers, meta)
	if err != nil {
		op.done(quizID(quiz), err)
		return nil, err
	}
	op.done(result.ID, nil)
	return result, nil
}

func (s *resultService) record(ctx context.Context, quiz *models.Quiz, answers models.Answers, meta grading.StudentMeta) (*models.StudentResult, error) {
	if meta.ResultID == "" {
		meta.ResultID = uuid.NewString()
	}
	if meta.SubmittedAt.IsZero() {
		meta.SubmittedAt = s.now().UTC()
	}

	result := grading.GradeQuiz(quiz, answers, meta)
	if err := s.repo.Result().Create(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, cache.ResultsPattern()); err != nil {
			s.log.Logger().Warn("Failed to invalidate result cache", "error", err)
		}
	}
	s.notifier.NotifyResultSubmitted(ctx, &result)

	s.log.Logger().Info("Result recorded",
		"result_id", result.ID,
		"quiz_id", result.QuizID,
		"score", result.Score,
		"correct_count", result.CorrectCount,
		"total_questions", result.TotalQuestions)
	return &result, nil
}

// ===== READ OPERATIONS =====

func (s *resultService) Get(ctx context.Context, id string) (*models.StudentResult, error) {
	result, err := s.repo.Result().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrResultNotFound)
	}
	return result, nil
}

// List applies the query filters and sort. Without an explicit sort the
// newest submissions come first.
func (s *resultService) List(ctx context.Context, query ResultQuery) ([]*models.StudentResult, error) {
	results, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}

	results = FilterByClass(results, query.Class)
	field, order := query.SortField, query.SortOrder
	if field == "" {
		field = SortBySubmittedAt
	}
	if order == "" {
		order = SortDesc
	}
	SortResults(results, field, order)
	return results, nil
}

func (s *resultService) Overview(ctx context.Context, query ResultQuery) (*ResultsOverview, error) {
	all, err := s.load(ctx, ResultQuery{QuizID: query.QuizID, DateFrom: query.DateFrom, DateTo: query.DateTo})
	if err != nil {
		return nil, err
	}

	results, err := s.List(ctx, query)
	if err != nil {
		return nil, err
	}

	bands := map[string]int{
		string(models.BandExcellent): 0,
		string(models.BandGood):      0,
		string(models.BandPass):      0,
		string(models.BandFail):      0,
	}
	for _, r := range results {
		bands[string(r.Band())]++
	}

	return &ResultsOverview{
		Stats:            ComputeResultStats(results),
		Distribution:     ScoreDistribution(results),
		AvailableClasses: AvailableClasses(all),
		Bands:            bands,
		Results:          results,
	}, nil
}

// load reads results through the cache. Only quiz-level queries are cached;
// the returned slice is always a fresh copy the caller may reorder.
func (s *resultService) load(ctx context.Context, query ResultQuery) ([]*models.StudentResult, error) {
	filters := query.filters()
	cacheable := filters.StudentClass == "" && filters.DateFrom == nil && filters.DateTo == nil

	key := cache.ResultListKey()
	if filters.QuizID != "" {
		key = cache.ResultsByQuizKey(filters.QuizID)
	}

	if cacheable && s.cache != nil {
		var cached []*models.StudentResult
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Logger().Warn("Cache read failed", "key", key, "error", err)
		}
	}

	results, err := s.repo.Result().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	if cacheable && s.cache != nil {
		if err := s.cache.Set(ctx, key, results, cache.ResultsTTL); err != nil {
			s.log.Logger().Warn("Cache write failed", "key", key, "error", err)
		}
	}
	return append([]*models.StudentResult(nil), results...), nil
}

// ===== SHARED CHECKS =====

// ValidateStudent checks the name and class a student enters before a quiz.
func ValidateStudent(name, class string) ValidationErrors {
	var errs ValidationErrors
	if r := validator.ValidateStudentName(name); !r.Valid {
		errs.Add("studentName", r.Error, name)
	}
	if r := validator.ValidateClassName(class); !r.Valid {
		errs.Add("studentClass", r.Error, class)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CheckAccessCode gates a quiz that requires a code. Codes compare after
// trimming and upper-casing.
func CheckAccessCode(quiz *models.Quiz, code string) error {
	if !quiz.RequireCode {
		return nil
	}
	if strings.TrimSpace(code) == "" {
		return ErrAccessCodeRequired
	}
	if r := validator.ValidateAccessCode(code); !r.Valid {
		return NewValidationError("accessCode", r.Error, code)
	}
	if validator.NormalizeAccessCode(code) != validator.NormalizeAccessCode(quiz.AccessCode) {
		return ErrAccessCodeMismatch
	}
	return nil
}
