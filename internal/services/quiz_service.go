package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/google/uuid"
)

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	notifier  EventNotifier
	validator *validator.Validator
	log       *ServiceLogger
	now       func() time.Time
}

func NewQuizService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	notifier EventNotifier,
	validator *validator.Validator,
	logger *ServiceLogger,
) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		notifier:  notifier,
		validator: validator,
		log:       logger,
		now:       time.Now,
	}
}

// ===== WRITE OPERATIONS =====

func (s *quizService) Create(ctx context.Context, quiz *models.Quiz, actor string) (*models.Quiz, error) {
	op := s.log.start(ctx, "create_quiz", "quiz")

	prepared, err := s.prepare(quiz)
	if err != nil {
		op.done(quizID(quiz), err)
		return nil, err
	}
	if prepared.CreatedAt.IsZero() {
		prepared.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Quiz().Create(ctx, prepared); err != nil {
		if repositories.IsDuplicateError(err) {
			err = ErrQuizAlreadyExists
		} else {
			err = fmt.Errorf("failed to save quiz: %w", err)
		}
		op.done(prepared.ID, err)
		return nil, err
	}

	s.invalidate(ctx)
	s.notifier.NotifyQuizChanged(ctx, events.EventQuizCreated, prepared, actor)
	op.done(prepared.ID, nil)
	return prepared, nil
}

func (s *quizService) CreateFromJSON(ctx context.Context, data []byte, actor string) (*models.Quiz, error) {
	if errs := validator.ValidateQuizDocument(data); len(errs) > 0 {
		return nil, errs
	}

	var quiz models.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, NewValidationError("questions", err.Error(), nil)
	}
	return s.Create(ctx, &quiz, actor)
}

// Update replaces a quiz and its questions. The original creation time is
// kept.
func (s *quizService) Update(ctx context.Context, quiz *models.Quiz, actor string) (*models.Quiz, error) {
	op := s.log.start(ctx, "update_quiz", "quiz")

	if quiz == nil || strings.TrimSpace(quiz.ID) == "" {
		err := NewValidationError("id", "is required", nil)
		op.done("", err)
		return nil, err
	}

	existing, err := s.repo.Quiz().GetByID(ctx, quiz.ID)
	if err != nil {
		err = notFound(err, ErrQuizNotFound)
		op.done(quiz.ID, err)
		return nil, err
	}

	prepared, err := s.prepare(quiz)
	if err != nil {
		op.done(quiz.ID, err)
		return nil, err
	}
	prepared.CreatedAt = existing.CreatedAt

	if err := s.repo.Quiz().Update(ctx, prepared); err != nil {
		err = notFound(err, ErrQuizNotFound)
		if !IsNotFound(err) {
			err = fmt.Errorf("failed to update quiz: %w", err)
		}
		op.done(prepared.ID, err)
		return nil, err
	}

	s.invalidate(ctx)
	s.notifier.NotifyQuizChanged(ctx, events.EventQuizUpdated, prepared, actor)
	op.done(prepared.ID, nil)
	return prepared, nil
}

func (s *quizService) Delete(ctx context.Context, id string, actor string) error {
	op := s.log.start(ctx, "delete_quiz", "quiz")

	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		err = notFound(err, ErrQuizNotFound)
		op.done(id, err)
		return err
	}

	s.invalidate(ctx)
	s.notifier.NotifyQuizDeleted(ctx, id, actor)
	op.done(id, nil)
	return nil
}

// ===== READ OPERATIONS =====

func (s *quizService) Get(ctx context.Context, id string) (*models.Quiz, error) {
	var cached models.Quiz
	if s.cacheGet(ctx, cache.QuizKey(id), &cached) {
		return &cached, nil
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrQuizNotFound)
	}

	s.cacheSet(ctx, cache.QuizKey(id), quiz)
	return quiz, nil
}

// List caches only the unfiltered listing.
func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	unfiltered := filters == repositories.QuizFilters{}
	if unfiltered {
		var cached []*models.Quiz
		if s.cacheGet(ctx, cache.QuizListKey(), &cached) {
			return cached, nil
		}
	}

	quizzes, err := s.repo.Quiz().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	if unfiltered {
		s.cacheSet(ctx, cache.QuizListKey(), quizzes)
	}
	return quizzes, nil
}

// Search matches title and category ignoring case and Vietnamese diacritics.
func (s *quizService) Search(ctx context.Context, query string) ([]*models.Quiz, error) {
	quizzes, err := s.List(ctx, repositories.QuizFilters{})
	if err != nil {
		return nil, err
	}

	needle := validator.NormalizeVietnamese(query)
	if needle == "" {
		return quizzes, nil
	}

	matched := make([]*models.Quiz, 0)
	for _, quiz := range quizzes {
		if strings.Contains(validator.NormalizeVietnamese(quiz.Title), needle) ||
			strings.Contains(validator.NormalizeVietnamese(quiz.Category), needle) {
			matched = append(matched, quiz)
		}
	}
	return matched, nil
}

func (s *quizService) Questions(ctx context.Context, quizID string) ([]models.Question, error) {
	quiz, err := s.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return append([]models.Question(nil), quiz.Questions...), nil
}

// ===== HELPERS =====

// prepare returns a cleaned copy of quiz, or every validation problem found.
func (s *quizService) prepare(quiz *models.Quiz) (*models.Quiz, error) {
	if quiz == nil {
		return nil, NewValidationError("quiz", "is required", nil)
	}

	prepared := *quiz
	prepared.Title = validator.SanitizeInput(prepared.Title)
	prepared.Category = validator.SanitizeInput(prepared.Category)
	prepared.AccessCode = validator.NormalizeAccessCode(prepared.AccessCode)
	if strings.TrimSpace(prepared.ID) == "" {
		prepared.ID = uuid.NewString()
	}
	if prepared.TimeLimit == 0 {
		prepared.TimeLimit = models.DefaultTimeLimit
	}
	// Structural checks need a creation time; the caller sets the real one.
	checked := prepared
	if checked.CreatedAt.IsZero() {
		checked.CreatedAt = s.now()
	}

	var errs ValidationErrors
	if r := validator.ValidateQuizTitle(prepared.Title); !r.Valid {
		errs.Add("title", r.Error, prepared.Title)
	}
	if r := validator.ValidateTimeLimit(prepared.TimeLimit); !r.Valid {
		errs.Add("timeLimit", r.Error, prepared.TimeLimit)
	}
	if r := validator.ValidateQuestionCount(len(prepared.Questions)); !r.Valid {
		errs.Add("questions", r.Error, len(prepared.Questions))
	}
	if prepared.AccessCode != "" {
		if r := validator.ValidateAccessCode(prepared.AccessCode); !r.Valid {
			errs.Add("accessCode", r.Error, prepared.AccessCode)
		}
	}

	reported := make(map[string]bool, len(errs))
	for _, field := range errs.Fields() {
		reported[field] = true
	}
	for _, e := range s.validator.ValidateQuiz(&checked) {
		if !reported[e.Field] {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &prepared, nil
}

func (s *quizService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cache.QuizzesPattern()); err != nil {
		s.log.Logger().Warn("Failed to invalidate quiz cache", "error", err)
	}
}

func (s *quizService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Logger().Warn("Cache read failed", "key", key, "error", err)
	}
	return err == nil
}

func (s *quizService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, cache.QuizzesTTL); err != nil {
		s.log.Logger().Warn("Cache write failed", "key", key, "error", err)
	}
}

func quizID(quiz *models.Quiz) string {
	if quiz == nil {
		return ""
	}
	return quiz.ID
}
